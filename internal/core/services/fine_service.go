package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ginagrosso/biblioteca/internal/apperrors"
	"github.com/ginagrosso/biblioteca/internal/core/domain"
	portsrepo "github.com/ginagrosso/biblioteca/internal/core/ports/repositories"
	portssvc "github.com/ginagrosso/biblioteca/internal/core/ports/services"
	"github.com/ginagrosso/biblioteca/internal/dto"
	"github.com/ginagrosso/biblioteca/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type fineService struct {
	BaseService
	policy      domain.Policy
	fineRepo    portsrepo.FineRepository
	memberRepo  portsrepo.MemberReader
	loanRepo    portsrepo.LoanReader
	eventRepo   portsrepo.EventRepository
	receiptRepo portsrepo.ReceiptRepository
}

// NewFineService creates the fine engine.
func NewFineService(repos portsrepo.RepositoryProvider, policy domain.Policy, opts ...Option) portssvc.FineSvcFacade {
	return &fineService{
		BaseService: newBaseService(repos.TxManager, opts...),
		policy:      policy,
		fineRepo:    repos.FineRepo,
		memberRepo:  repos.MemberRepo,
		loanRepo:    repos.LoanRepo,
		eventRepo:   repos.EventRepo,
		receiptRepo: repos.ReceiptRepo,
	}
}

var _ portssvc.FineSvcFacade = (*fineService)(nil)

func (s *fineService) ComputeLateFee(overdueDays int) decimal.Decimal {
	return s.policy.LateFee(overdueDays)
}

func (s *fineService) ValidateAmount(raw string) (decimal.Decimal, error) {
	return s.policy.ValidateAmount(raw)
}

func (s *fineService) IssueFine(ctx context.Context, req dto.IssueFineRequest, actorID string) (*domain.Fine, error) {
	req.MemberID = strings.TrimSpace(req.MemberID)
	req.Description = strings.TrimSpace(req.Description)
	req.LoanID = trimPtr(req.LoanID)
	if err := s.ValidateRequest(req); err != nil {
		return nil, err
	}
	amount, err := s.policy.ValidateAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	if _, err := s.memberRepo.FindMemberByID(ctx, req.MemberID); err != nil {
		return nil, err
	}
	if req.LoanID != nil {
		loan, err := s.loanRepo.FindLoanByID(ctx, *req.LoanID)
		if err != nil {
			return nil, err
		}
		if loan.MemberID != req.MemberID {
			return nil, fmt.Errorf("%w: loan %s does not belong to member %s", apperrors.ErrValidation, loan.LoanID, req.MemberID)
		}
	}

	now := s.Now()
	fine := domain.Fine{
		FineID:      uuid.NewString(),
		MemberID:    req.MemberID,
		LoanID:      req.LoanID,
		Amount:      amount,
		Reason:      domain.FineReason(req.Reason),
		Description: req.Description,
		IssuedAt:    now,
		AuditFields: domain.NewAuditFields(actorID, now),
	}

	err = s.WithinTx(ctx, func(tx pgx.Tx) error {
		if err := s.fineRepo.SaveFinesInTx(ctx, tx, []domain.Fine{fine}); err != nil {
			return err
		}
		event := s.newEvent(domain.EventFineAssessed, actorID, now)
		event.MemberID = fine.MemberID
		event.FineID = fine.FineID
		if fine.LoanID != nil {
			event.LoanID = *fine.LoanID
		}
		event.Payload = map[string]any{"reason": string(fine.Reason), "amount": fine.Amount.StringFixed(2)}
		return s.eventRepo.AppendEventsInTx(ctx, tx, []domain.CirculationEvent{event})
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to issue fine", "member_id", req.MemberID)
		return nil, err
	}

	s.LogInfo(ctx, "Fine issued", "fine_id", fine.FineID, "amount", fine.Amount.StringFixed(2))
	return &fine, nil
}

func (s *fineService) MarkPaid(ctx context.Context, fineID string, actorID string) (*domain.Fine, error) {
	now := s.Now()
	var paid domain.Fine

	err := s.WithinTx(ctx, func(tx pgx.Tx) error {
		fine, err := s.fineRepo.FindFineByIDForUpdate(ctx, tx, fineID)
		if err != nil {
			return err
		}
		if fine.IsPaid {
			return fmt.Errorf("%w: fine %s", apperrors.ErrAlreadyPaid, fineID)
		}
		if err := s.fineRepo.MarkFinePaidInTx(ctx, tx, fineID, now, actorID); err != nil {
			return err
		}

		event := s.newEvent(domain.EventFinePaid, actorID, now)
		event.MemberID = fine.MemberID
		event.FineID = fine.FineID
		if fine.LoanID != nil {
			event.LoanID = *fine.LoanID
		}
		event.Payload = map[string]any{"amount": fine.Amount.StringFixed(2)}
		if err := s.eventRepo.AppendEventsInTx(ctx, tx, []domain.CirculationEvent{event}); err != nil {
			return err
		}

		paid = *fine
		paid.IsPaid = true
		paid.PaidAt = &now
		paid.LastUpdatedAt = now
		paid.LastUpdatedBy = actorID
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to mark fine as paid", "fine_id", fineID)
		return nil, err
	}

	s.LogInfo(ctx, "Fine paid", "fine_id", fineID)
	return &paid, nil
}

func (s *fineService) GetFine(ctx context.Context, fineID string) (*domain.Fine, error) {
	return s.fineRepo.FindFineByID(ctx, fineID)
}

func (s *fineService) ListFines(ctx context.Context, params dto.ListFinesParams) (*dto.ListFinesResponse, error) {
	limit := clampLimit(params.Limit)
	filter := domain.FineFilter{
		MemberID:   strings.TrimSpace(params.MemberID),
		LoanID:     strings.TrimSpace(params.LoanID),
		Reason:     domain.FineReason(params.Reason),
		UnpaidOnly: params.UnpaidOnly,
		Limit:      limit + 1,
	}
	if filter.Reason != "" && !filter.Reason.IsValid() {
		return nil, fmt.Errorf("%w: unknown fine reason %q", apperrors.ErrValidation, params.Reason)
	}
	if err := checkUUID(filter.MemberID, "memberID"); err != nil {
		return nil, err
	}
	if err := checkUUID(filter.LoanID, "loanID"); err != nil {
		return nil, err
	}
	if params.NextToken != "" {
		issuedAt, fineID, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		if err := checkUUID(fineID, "nextToken"); err != nil {
			return nil, err
		}
		filter.AfterIssued = &issuedAt
		filter.AfterFineID = fineID
	}

	fines, err := s.fineRepo.ListFines(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fines")
		return nil, err
	}

	resp := &dto.ListFinesResponse{Fines: fines}
	if len(fines) > limit {
		resp.Fines = fines[:limit]
		last := resp.Fines[limit-1]
		token := pagination.EncodeToken(last.IssuedAt, last.FineID)
		resp.NextToken = &token
	}
	if resp.Fines == nil {
		resp.Fines = []domain.Fine{}
	}
	return resp, nil
}

func (s *fineService) FineReceipt(ctx context.Context, fineID string) (*domain.FineReceipt, error) {
	return s.receiptRepo.FindFineReceipt(ctx, fineID)
}
