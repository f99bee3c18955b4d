package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ginagrosso/biblioteca/internal/apperrors"
	"github.com/ginagrosso/biblioteca/internal/core/domain"
	portsrepo "github.com/ginagrosso/biblioteca/internal/core/ports/repositories"
	portssvc "github.com/ginagrosso/biblioteca/internal/core/ports/services"
	"github.com/ginagrosso/biblioteca/internal/dto"
	"github.com/ginagrosso/biblioteca/internal/utils"
	"github.com/ginagrosso/biblioteca/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type loanService struct {
	BaseService
	policy      domain.Policy
	memberRepo  portsrepo.MemberRepository
	bookRepo    portsrepo.BookReader
	copyRepo    portsrepo.CopyRepository
	loanRepo    portsrepo.LoanRepository
	fineRepo    portsrepo.FineRepository
	eventRepo   portsrepo.EventRepository
	receiptRepo portsrepo.ReceiptRepository
}

// NewLoanService creates the loan engine. The policy is copied and never changes afterwards.
func NewLoanService(repos portsrepo.RepositoryProvider, policy domain.Policy, opts ...Option) portssvc.LoanSvcFacade {
	return &loanService{
		BaseService: newBaseService(repos.TxManager, opts...),
		policy:      policy,
		memberRepo:  repos.MemberRepo,
		bookRepo:    repos.BookRepo,
		copyRepo:    repos.CopyRepo,
		loanRepo:    repos.LoanRepo,
		fineRepo:    repos.FineRepo,
		eventRepo:   repos.EventRepo,
		receiptRepo: repos.ReceiptRepo,
	}
}

var _ portssvc.LoanSvcFacade = (*loanService)(nil)

func (s *loanService) PlaceLoan(ctx context.Context, req dto.PlaceLoanRequest, actorID string) (*domain.Loan, error) {
	req.MemberID = strings.TrimSpace(req.MemberID)
	req.CopyCode = strings.TrimSpace(req.CopyCode)
	if err := s.ValidateRequest(req); err != nil {
		return nil, err
	}

	now := s.Now()
	var loan domain.Loan

	err := s.WithinTx(ctx, func(tx pgx.Tx) error {
		// Member first, then copy. Every writer takes the locks in this order.
		member, err := s.memberRepo.FindMemberByIDForUpdate(ctx, tx, req.MemberID)
		if err != nil {
			return err
		}
		bookCopy, err := s.copyRepo.FindCopyByCodeForUpdate(ctx, tx, req.CopyCode)
		if err != nil {
			return err
		}
		balance, err := s.fineRepo.GetFineBalanceInTx(ctx, tx, member.MemberID)
		if err != nil {
			return err
		}
		openLoans, err := s.loanRepo.CountOpenLoansByMemberInTx(ctx, tx, member.MemberID)
		if err != nil {
			return err
		}

		if err := s.policy.CheckLoanEligibility(domain.LoanEligibility{
			Member:      *member,
			Copy:        *bookCopy,
			Outstanding: balance.Total,
			OpenLoans:   openLoans,
		}); err != nil {
			return err
		}

		loan = domain.Loan{
			LoanID:      uuid.NewString(),
			MemberID:    member.MemberID,
			CopyCode:    bookCopy.Code,
			StartedAt:   now,
			DueDate:     s.policy.DueDate(now, req.LoanDays),
			Notes:       trimPtr(req.Notes),
			AuditFields: domain.NewAuditFields(actorID, now),
		}
		if err := s.loanRepo.SaveLoanInTx(ctx, tx, loan); err != nil {
			return err
		}
		if err := s.copyRepo.UpdateCopyStateInTx(ctx, tx, bookCopy.Code, domain.CopyLoaned, nil, actorID, now); err != nil {
			return err
		}

		event := s.newEvent(domain.EventLoanPlaced, actorID, now)
		event.MemberID = member.MemberID
		event.LoanID = loan.LoanID
		event.CopyCode = bookCopy.Code
		event.ISBN = bookCopy.ISBN
		event.Payload = map[string]any{"dueDate": loan.DueDate.Format(dateLayout)}
		return s.eventRepo.AppendEventsInTx(ctx, tx, []domain.CirculationEvent{event})
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to place loan", "member_id", req.MemberID, "copy_code", req.CopyCode)
		return nil, err
	}

	s.LogInfo(ctx, "Loan placed", "loan_id", loan.LoanID, "due_date", loan.DueDate.Format(dateLayout))
	return &loan, nil
}

func (s *loanService) ReturnLoan(ctx context.Context, loanID string, req dto.ReturnLoanRequest, actorID string) (*domain.ReturnResult, error) {
	condition := domain.PhysicalCondition(strings.ToLower(strings.TrimSpace(req.Condition)))
	if !condition.IsValid() {
		return nil, fmt.Errorf("%w: unknown condition %q", apperrors.ErrValidation, req.Condition)
	}

	now := s.Now()
	notes := trimPtr(req.Notes)
	var result domain.ReturnResult

	err := s.WithinTx(ctx, func(tx pgx.Tx) error {
		loan, err := s.loanRepo.FindLoanByIDForUpdate(ctx, tx, loanID)
		if err != nil {
			return err
		}
		if !loan.IsOpen() {
			return fmt.Errorf("%w: loan %s", apperrors.ErrAlreadyReturned, loanID)
		}

		// Amounts are checked before anything is written.
		var penalty decimal.Decimal
		switch condition {
		case domain.ConditionDamaged:
			if penalty, err = s.policy.ValidateAmount(derefString(req.DamageAmount)); err != nil {
				return err
			}
		case domain.ConditionLost:
			if penalty, err = s.policy.ValidateAmount(derefString(req.LossAmount)); err != nil {
				return err
			}
		}

		bookCopy, err := s.copyRepo.FindCopyByCodeForUpdate(ctx, tx, loan.CopyCode)
		if err != nil {
			return err
		}
		title := s.bookTitle(ctx, bookCopy.ISBN)

		if err := s.loanRepo.CloseLoanInTx(ctx, tx, loan.LoanID, now, notes, actorID); err != nil {
			return err
		}
		loan.ReturnedAt = &now
		if notes != nil {
			loan.Notes = notes
		}
		loan.LastUpdatedAt = now
		loan.LastUpdatedBy = actorID

		overdueDays := s.policy.OverdueDays(*loan, now)
		today := s.policy.Today(now).Format(dateLayout)

		newState := domain.CopyAvailable
		var copyNotes *string
		switch condition {
		case domain.ConditionDamaged:
			newState = domain.CopyMaintenance
			copyNotes = stringPtr("damaged on return - " + today)
		case domain.ConditionLost:
			newState = domain.CopyLost
			copyNotes = stringPtr("reported lost - " + today)
		}
		if err := s.copyRepo.UpdateCopyStateInTx(ctx, tx, bookCopy.Code, newState, copyNotes, actorID, now); err != nil {
			return err
		}

		fines := make([]domain.Fine, 0, 2)
		chargeLateFee := overdueDays > 0 && (condition != domain.ConditionLost || s.policy.LateFeeOnLoss)
		if chargeLateFee {
			fee := s.policy.LateFee(overdueDays)
			desc := fmt.Sprintf("Late return of %d days for %s (%s)", overdueDays, title, utils.FormatAmount(fee))
			fines = append(fines, s.newFine(*loan, domain.FineLateReturn, fee, desc, actorID, now))
		}
		switch condition {
		case domain.ConditionDamaged:
			desc := withNotes(fmt.Sprintf("%s returned damaged", title), notes)
			fines = append(fines, s.newFine(*loan, domain.FineDamage, penalty, desc, actorID, now))
		case domain.ConditionLost:
			desc := withNotes(fmt.Sprintf("%s reported lost", title), notes)
			fines = append(fines, s.newFine(*loan, domain.FineLoss, penalty, desc, actorID, now))
		}
		if len(fines) > 0 {
			if err := s.fineRepo.SaveFinesInTx(ctx, tx, fines); err != nil {
				return err
			}
		}

		events := make([]domain.CirculationEvent, 0, len(fines)+1)
		returned := s.newEvent(domain.EventLoanReturned, actorID, now)
		returned.MemberID = loan.MemberID
		returned.LoanID = loan.LoanID
		returned.CopyCode = bookCopy.Code
		returned.ISBN = bookCopy.ISBN
		returned.Payload = map[string]any{
			"condition":   string(condition),
			"overdueDays": overdueDays,
			"copyState":   string(newState),
		}
		events = append(events, returned)
		for _, fine := range fines {
			assessed := s.newEvent(domain.EventFineAssessed, actorID, now)
			assessed.MemberID = fine.MemberID
			assessed.LoanID = loan.LoanID
			assessed.FineID = fine.FineID
			assessed.Payload = map[string]any{"reason": string(fine.Reason), "amount": fine.Amount.StringFixed(2)}
			events = append(events, assessed)
		}
		if err := s.eventRepo.AppendEventsInTx(ctx, tx, events); err != nil {
			return err
		}

		result = domain.ReturnResult{
			Loan:        *loan,
			CopyState:   newState,
			OverdueDays: overdueDays,
			Fines:       fines,
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to return loan", "loan_id", loanID, "condition", string(condition))
		return nil, err
	}

	s.LogInfo(ctx, "Loan returned",
		"loan_id", loanID,
		"condition", string(condition),
		"overdue_days", result.OverdueDays,
		"fines", len(result.Fines))
	return &result, nil
}

func (s *loanService) newFine(loan domain.Loan, reason domain.FineReason, amount decimal.Decimal, description string, actorID string, now time.Time) domain.Fine {
	loanID := loan.LoanID
	return domain.Fine{
		FineID:      uuid.NewString(),
		MemberID:    loan.MemberID,
		LoanID:      &loanID,
		Amount:      amount,
		Reason:      reason,
		Description: description,
		IssuedAt:    now,
		AuditFields: domain.NewAuditFields(actorID, now),
	}
}

// bookTitle returns the quoted title for fine descriptions, or the ISBN when the lookup fails.
func (s *loanService) bookTitle(ctx context.Context, isbn string) string {
	book, err := s.bookRepo.FindBookByISBN(ctx, isbn)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load book title", "isbn", isbn)
		}
		return "ISBN " + isbn
	}
	return fmt.Sprintf("%q", book.Title)
}

func (s *loanService) GetLoan(ctx context.Context, loanID string) (*domain.Loan, error) {
	return s.loanRepo.FindLoanByID(ctx, loanID)
}

func (s *loanService) ListLoans(ctx context.Context, params dto.ListLoansParams) (*dto.ListLoansResponse, error) {
	limit := clampLimit(params.Limit)
	filter := domain.LoanFilter{
		MemberID: strings.TrimSpace(params.MemberID),
		CopyCode: strings.TrimSpace(params.CopyCode),
		Status:   domain.LoanStatus(params.Status),
		Limit:    limit + 1,
	}
	if err := checkUUID(filter.MemberID, "memberID"); err != nil {
		return nil, err
	}
	if params.OverdueOnly {
		today := s.policy.Today(s.Now())
		filter.Status = domain.LoanStatusOpen
		filter.DueBefore = &today
	}
	if params.NextToken != "" {
		startedAt, loanID, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		if err := checkUUID(loanID, "nextToken"); err != nil {
			return nil, err
		}
		filter.AfterStarted = &startedAt
		filter.AfterLoanID = loanID
	}

	loans, err := s.loanRepo.ListLoans(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list loans")
		return nil, err
	}

	resp := &dto.ListLoansResponse{Loans: loans}
	if len(loans) > limit {
		resp.Loans = loans[:limit]
		last := resp.Loans[limit-1]
		token := pagination.EncodeToken(last.StartedAt, last.LoanID)
		resp.NextToken = &token
	}
	if resp.Loans == nil {
		resp.Loans = []domain.Loan{}
	}
	return resp, nil
}

func (s *loanService) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.OverdueLoan, error) {
	loans, err := s.loanRepo.ListOverdueLoans(ctx, s.policy.Today(asOf), 0)
	if err != nil {
		s.LogError(ctx, err, "Failed to list overdue loans")
		return nil, err
	}

	overdue := make([]domain.OverdueLoan, 0, len(loans))
	for _, loan := range loans {
		days := s.policy.OverdueDays(loan, asOf)
		if days <= 0 {
			continue
		}
		overdue = append(overdue, domain.OverdueLoan{
			Loan:         loan,
			OverdueDays:  days,
			EstimatedFee: s.policy.LateFee(days),
		})
	}
	return overdue, nil
}

func (s *loanService) PreviewReturn(ctx context.Context, loanID string) (*domain.ReturnPreview, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if !loan.IsOpen() {
		return nil, fmt.Errorf("%w: loan %s", apperrors.ErrAlreadyReturned, loanID)
	}

	now := s.Now()
	overdueDays := s.policy.OverdueDays(*loan, now)
	return &domain.ReturnPreview{
		Loan:             *loan,
		DaysElapsed:      domain.DaysBetween(s.policy.Today(loan.StartedAt), s.policy.Today(now)),
		OverdueDays:      overdueDays,
		EstimatedLateFee: s.policy.LateFee(overdueDays),
		MinFineAmount:    s.policy.MinFineAmount,
		MaxFineAmount:    s.policy.MaxFineAmount,
	}, nil
}

func (s *loanService) LoanReceipt(ctx context.Context, loanID string) (*domain.LoanReceipt, error) {
	receipt, err := s.receiptRepo.FindLoanReceipt(ctx, loanID)
	if err != nil {
		return nil, err
	}
	receipt.OverdueDays = s.policy.OverdueDays(receipt.Loan, s.Now())
	receipt.IsOverdue = receipt.OverdueDays > 0
	if receipt.Fines == nil {
		receipt.Fines = []domain.Fine{}
	}
	return receipt, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func stringPtr(s string) *string {
	return &s
}

func withNotes(desc string, notes *string) string {
	if notes == nil {
		return desc
	}
	return desc + ". " + *notes
}
