package pgsql

import (
	"context"

	"github.com/ginagrosso/biblioteca/internal/apperrors"
	portsrepo "github.com/ginagrosso/biblioteca/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type PgxSequenceRepository struct{}

func newPgxSequenceRepository() portsrepo.SequenceRepository {
	return &PgxSequenceRepository{}
}

var _ portsrepo.SequenceRepository = (*PgxSequenceRepository)(nil)

// NextSequenceValueInTx bumps the counter of scope with a single upsert. The row
// lock taken by the upsert serializes concurrent registrations in the same scope.
func (r *PgxSequenceRepository) NextSequenceValueInTx(ctx context.Context, tx pgx.Tx, scope string) (int, error) {
	query := `
		INSERT INTO sequence_counters (scope, last_value)
		VALUES ($1, 1)
		ON CONFLICT (scope) DO UPDATE SET last_value = sequence_counters.last_value + 1
		RETURNING last_value;
	`
	var next int
	if err := tx.QueryRow(ctx, query, scope).Scan(&next); err != nil {
		return 0, apperrors.NewStorageError("failed to advance sequence "+scope, err)
	}
	return next, nil
}
