package services

import (
	"context"

	"github.com/ginagrosso/biblioteca/internal/core/domain"
	"github.com/ginagrosso/biblioteca/internal/dto"
	"github.com/shopspring/decimal"
)

// MemberReaderSvc defines read operations for members
type MemberReaderSvc interface {
	GetMember(ctx context.Context, memberID string) (*domain.Member, error)
	ListMembers(ctx context.Context, params dto.ListMembersParams) ([]domain.Member, error)

	// HasOutstandingFines reports whether the member owes anything.
	HasOutstandingFines(ctx context.Context, memberID string) (bool, error)

	// TotalOutstanding sums the unpaid fines of the member.
	TotalOutstanding(ctx context.Context, memberID string) (decimal.Decimal, error)

	// FineBalance returns both figures from a single aggregate.
	FineBalance(ctx context.Context, memberID string) (domain.FineBalance, error)

	// ActiveLoans lists the member's loans that are still open.
	ActiveLoans(ctx context.Context, memberID string) ([]domain.Loan, error)

	// MemberHistory lists the circulation events of a member, newest first.
	MemberHistory(ctx context.Context, memberID string, limit int) ([]domain.CirculationEvent, error)
}

// MemberWriterSvc defines write operations for members
type MemberWriterSvc interface {
	// RegisterMember registers a member and assigns the next member number of the year.
	RegisterMember(ctx context.Context, req dto.RegisterMemberRequest, actorID string) (*domain.Member, error)

	DeactivateMember(ctx context.Context, memberID string, actorID string) error
	ReactivateMember(ctx context.Context, memberID string, actorID string) error
}

// MembershipSvcFacade combines all member service interfaces
type MembershipSvcFacade interface {
	MemberReaderSvc
	MemberWriterSvc
}
