package repositories

import (
	"context"
	"time"

	"github.com/ginagrosso/biblioteca/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// FineReader defines read operations for fines
type FineReader interface {
	FindFineByID(ctx context.Context, fineID string) (*domain.Fine, error)

	// ListFines retrieves fines matching the filter, newest first.
	ListFines(ctx context.Context, filter domain.FineFilter) ([]domain.Fine, error)

	// GetFineBalance aggregates the unpaid fines of a member.
	GetFineBalance(ctx context.Context, memberID string) (domain.FineBalance, error)
}

// FineWriter defines write operations for fines
type FineWriter interface {
	SaveFinesInTx(ctx context.Context, tx pgx.Tx, fines []domain.Fine) error
	FindFineByIDForUpdate(ctx context.Context, tx pgx.Tx, fineID string) (*domain.Fine, error)
	MarkFinePaidInTx(ctx context.Context, tx pgx.Tx, fineID string, paidAt time.Time, actorID string) error

	// GetFineBalanceInTx is GetFineBalance evaluated inside tx.
	GetFineBalanceInTx(ctx context.Context, tx pgx.Tx, memberID string) (domain.FineBalance, error)
}

// FineRepository combines all fine operations
type FineRepository interface {
	FineReader
	FineWriter
}
