package repositories

import (
	"context"
	"time"

	"github.com/ginagrosso/biblioteca/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// MemberReader defines read operations for members
type MemberReader interface {
	FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error)
	FindMemberByNationalID(ctx context.Context, nationalID string) (*domain.Member, error)
	ListMembers(ctx context.Context, limit int, offset int) ([]domain.Member, error)
}

// MemberWriter defines write operations for members
type MemberWriter interface {
	// SaveMemberInTx inserts a member. A taken national ID yields apperrors.ErrDuplicate.
	SaveMemberInTx(ctx context.Context, tx pgx.Tx, member domain.Member) error

	FindMemberByIDForUpdate(ctx context.Context, tx pgx.Tx, memberID string) (*domain.Member, error)
	SetMemberActiveInTx(ctx context.Context, tx pgx.Tx, memberID string, active bool, actorID string, now time.Time) error
}

// MemberRepository combines all member operations
type MemberRepository interface {
	MemberReader
	MemberWriter
}
