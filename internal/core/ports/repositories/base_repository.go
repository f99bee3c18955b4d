package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// Begin starts a new database transaction
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction. It is a no-op after Commit.
	Rollback(ctx context.Context, tx pgx.Tx) error
}

// SequenceRepository hands out gap-free numbers per scope.
type SequenceRepository interface {
	// NextSequenceValueInTx increments the counter for scope and returns the new value.
	// The increment is undone if tx rolls back.
	NextSequenceValueInTx(ctx context.Context, tx pgx.Tx, scope string) (int, error)
}
