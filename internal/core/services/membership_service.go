package services

import (
	"context"
	"strings"

	"github.com/ginagrosso/biblioteca/internal/core/domain"
	portsrepo "github.com/ginagrosso/biblioteca/internal/core/ports/repositories"
	portssvc "github.com/ginagrosso/biblioteca/internal/core/ports/services"
	"github.com/ginagrosso/biblioteca/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type membershipService struct {
	BaseService
	memberRepo portsrepo.MemberRepository
	fineRepo   portsrepo.FineReader
	loanRepo   portsrepo.LoanReader
	seqRepo    portsrepo.SequenceRepository
	eventRepo  portsrepo.EventRepository
	policy     domain.Policy
}

// NewMembershipService creates the service that manages library members.
// Member numbers take their year from the policy's time zone.
func NewMembershipService(repos portsrepo.RepositoryProvider, policy domain.Policy, opts ...Option) portssvc.MembershipSvcFacade {
	return &membershipService{
		BaseService: newBaseService(repos.TxManager, opts...),
		memberRepo:  repos.MemberRepo,
		fineRepo:    repos.FineRepo,
		loanRepo:    repos.LoanRepo,
		seqRepo:     repos.SequenceRepo,
		eventRepo:   repos.EventRepo,
		policy:      policy,
	}
}

var _ portssvc.MembershipSvcFacade = (*membershipService)(nil)

func (s *membershipService) RegisterMember(ctx context.Context, req dto.RegisterMemberRequest, actorID string) (*domain.Member, error) {
	req.NationalID = strings.TrimSpace(req.NationalID)
	req.Name = strings.TrimSpace(req.Name)
	req.Email = trimPtr(req.Email)
	if err := s.ValidateRequest(req); err != nil {
		return nil, err
	}

	now := s.Now()
	member := domain.Member{
		MemberID:     uuid.NewString(),
		NationalID:   req.NationalID,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        trimPtr(req.Phone),
		Address:      trimPtr(req.Address),
		RegisteredAt: now,
		IsActive:     true,
		AuditFields:  domain.NewAuditFields(actorID, now),
	}

	err := s.WithinTx(ctx, func(tx pgx.Tx) error {
		year := s.policy.Today(now).Year()
		seq, err := s.seqRepo.NextSequenceValueInTx(ctx, tx, domain.MemberSequenceScope(year))
		if err != nil {
			return err
		}
		member.MemberNumber = domain.MemberNumber(year, seq)

		if err := s.memberRepo.SaveMemberInTx(ctx, tx, member); err != nil {
			return err
		}
		event := s.newEvent(domain.EventMemberRegistered, actorID, now)
		event.MemberID = member.MemberID
		event.Payload = map[string]any{"memberNumber": member.MemberNumber}
		return s.eventRepo.AppendEventsInTx(ctx, tx, []domain.CirculationEvent{event})
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to register member")
		return nil, err
	}

	s.LogInfo(ctx, "Member registered", "member_id", member.MemberID, "member_number", member.MemberNumber)
	return &member, nil
}

func (s *membershipService) GetMember(ctx context.Context, memberID string) (*domain.Member, error) {
	return s.memberRepo.FindMemberByID(ctx, memberID)
}

func (s *membershipService) ListMembers(ctx context.Context, params dto.ListMembersParams) ([]domain.Member, error) {
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	members, err := s.memberRepo.ListMembers(ctx, clampLimit(params.Limit), offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list members")
		return nil, err
	}
	return members, nil
}

func (s *membershipService) FineBalance(ctx context.Context, memberID string) (domain.FineBalance, error) {
	if _, err := s.memberRepo.FindMemberByID(ctx, memberID); err != nil {
		return domain.FineBalance{}, err
	}
	return s.fineRepo.GetFineBalance(ctx, memberID)
}

func (s *membershipService) HasOutstandingFines(ctx context.Context, memberID string) (bool, error) {
	balance, err := s.FineBalance(ctx, memberID)
	if err != nil {
		return false, err
	}
	return balance.HasOutstanding(), nil
}

func (s *membershipService) TotalOutstanding(ctx context.Context, memberID string) (decimal.Decimal, error) {
	balance, err := s.FineBalance(ctx, memberID)
	if err != nil {
		return decimal.Zero, err
	}
	return balance.Total, nil
}

func (s *membershipService) ActiveLoans(ctx context.Context, memberID string) ([]domain.Loan, error) {
	if _, err := s.memberRepo.FindMemberByID(ctx, memberID); err != nil {
		return nil, err
	}
	return s.loanRepo.ListLoans(ctx, domain.LoanFilter{
		MemberID: memberID,
		Status:   domain.LoanStatusOpen,
	})
}

func (s *membershipService) MemberHistory(ctx context.Context, memberID string, limit int) ([]domain.CirculationEvent, error) {
	if _, err := s.memberRepo.FindMemberByID(ctx, memberID); err != nil {
		return nil, err
	}
	return s.eventRepo.ListEvents(ctx, domain.EventFilter{MemberID: memberID, Limit: clampLimit(limit)})
}

func (s *membershipService) DeactivateMember(ctx context.Context, memberID string, actorID string) error {
	return s.setActive(ctx, memberID, false, actorID)
}

func (s *membershipService) ReactivateMember(ctx context.Context, memberID string, actorID string) error {
	return s.setActive(ctx, memberID, true, actorID)
}

func (s *membershipService) setActive(ctx context.Context, memberID string, active bool, actorID string) error {
	now := s.Now()
	eventType := domain.EventMemberReactivated
	if !active {
		eventType = domain.EventMemberDeactivated
	}
	err := s.WithinTx(ctx, func(tx pgx.Tx) error {
		if _, err := s.memberRepo.FindMemberByIDForUpdate(ctx, tx, memberID); err != nil {
			return err
		}
		if err := s.memberRepo.SetMemberActiveInTx(ctx, tx, memberID, active, actorID, now); err != nil {
			return err
		}
		event := s.newEvent(eventType, actorID, now)
		event.MemberID = memberID
		return s.eventRepo.AppendEventsInTx(ctx, tx, []domain.CirculationEvent{event})
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to change member active flag", "member_id", memberID)
	}
	return err
}
