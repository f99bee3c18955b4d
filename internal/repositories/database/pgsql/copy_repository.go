package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/ginagrosso/biblioteca/internal/apperrors"
	"github.com/ginagrosso/biblioteca/internal/core/domain"
	portsrepo "github.com/ginagrosso/biblioteca/internal/core/ports/repositories"
	"github.com/ginagrosso/biblioteca/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCopyRepository struct {
	pool *pgxpool.Pool
}

func newPgxCopyRepository(pool *pgxpool.Pool) portsrepo.CopyRepository {
	return &PgxCopyRepository{pool: pool}
}

var _ portsrepo.CopyRepository = (*PgxCopyRepository)(nil)

const selectCopySQL = `
	SELECT code, isbn, state, acquired_at, notes, is_active,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM copies
`

func scanCopy(row pgx.Row) (models.Copy, error) {
	var m models.Copy
	err := row.Scan(
		&m.Code,
		&m.ISBN,
		&m.State,
		&m.AcquiredAt,
		&m.Notes,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveCopyInTx inserts a new copy.
func (r *PgxCopyRepository) SaveCopyInTx(ctx context.Context, tx pgx.Tx, bookCopy domain.Copy) error {
	m := toModelCopy(bookCopy)
	query := `
		INSERT INTO copies (code, isbn, state, acquired_at, notes, is_active,
		                    created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, query,
		m.Code, m.ISBN, m.State, m.AcquiredAt, m.Notes, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "copy "+m.Code,
			fmt.Errorf("%w: copy %s already exists", apperrors.ErrDuplicate, m.Code))
	}
	return nil
}

// FindCopyByCode retrieves a copy by its code.
func (r *PgxCopyRepository) FindCopyByCode(ctx context.Context, code string) (*domain.Copy, error) {
	m, err := scanCopy(r.pool.QueryRow(ctx, selectCopySQL+" WHERE code = $1;", code))
	if err != nil {
		return nil, mapReadError(err, "copy "+code)
	}
	c := toDomainCopy(m)
	return &c, nil
}

// FindCopyByCodeForUpdate loads a copy and locks its row until tx ends.
func (r *PgxCopyRepository) FindCopyByCodeForUpdate(ctx context.Context, tx pgx.Tx, code string) (*domain.Copy, error) {
	m, err := scanCopy(tx.QueryRow(ctx, selectCopySQL+" WHERE code = $1 FOR UPDATE;", code))
	if err != nil {
		return nil, mapReadError(err, "copy "+code)
	}
	c := toDomainCopy(m)
	return &c, nil
}

// ListCopiesByISBN retrieves all copies of a book ordered by code.
func (r *PgxCopyRepository) ListCopiesByISBN(ctx context.Context, isbn string) ([]domain.Copy, error) {
	rows, err := r.pool.Query(ctx, selectCopySQL+" WHERE isbn = $1 ORDER BY code;", isbn)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list copies of "+isbn, err)
	}
	defer rows.Close()

	copies := []domain.Copy{}
	for rows.Next() {
		m, err := scanCopy(rows)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to scan copy row", err)
		}
		copies = append(copies, toDomainCopy(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("error iterating copy rows", err)
	}
	return copies, nil
}

// CountAvailableCopies counts active copies in the available state.
func (r *PgxCopyRepository) CountAvailableCopies(ctx context.Context, isbn string) (int, error) {
	query := `SELECT COUNT(*) FROM copies WHERE isbn = $1 AND state = 'available' AND is_active;`
	var n int
	if err := r.pool.QueryRow(ctx, query, isbn).Scan(&n); err != nil {
		return 0, apperrors.NewStorageError("failed to count available copies of "+isbn, err)
	}
	return n, nil
}

// UpdateCopyStateInTx sets the state and, when notes is not nil, the notes of a copy.
func (r *PgxCopyRepository) UpdateCopyStateInTx(ctx context.Context, tx pgx.Tx, code string, state domain.CopyState, notes *string, actorID string, now time.Time) error {
	query := `
		UPDATE copies
		SET state = $2, notes = COALESCE($3, notes), last_updated_at = $4, last_updated_by = $5
		WHERE code = $1;
	`
	tag, err := tx.Exec(ctx, query, code, string(state), notes, now, actorID)
	if err != nil {
		return apperrors.NewStorageError("failed to update copy "+code, err)
	}
	return expectOneRow(tag, "copy "+code)
}

// SetCopyActiveInTx flips the active flag of a copy.
func (r *PgxCopyRepository) SetCopyActiveInTx(ctx context.Context, tx pgx.Tx, code string, active bool, actorID string, now time.Time) error {
	query := `
		UPDATE copies SET is_active = $2, last_updated_at = $3, last_updated_by = $4
		WHERE code = $1;
	`
	tag, err := tx.Exec(ctx, query, code, active, now, actorID)
	if err != nil {
		return apperrors.NewStorageError("failed to update copy "+code, err)
	}
	return expectOneRow(tag, "copy "+code)
}

// DeactivateCopiesByISBNInTx deactivates every active copy of a book.
func (r *PgxCopyRepository) DeactivateCopiesByISBNInTx(ctx context.Context, tx pgx.Tx, isbn string, actorID string, now time.Time) (int, error) {
	query := `
		UPDATE copies SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE isbn = $1 AND is_active;
	`
	tag, err := tx.Exec(ctx, query, isbn, now, actorID)
	if err != nil {
		return 0, apperrors.NewStorageError("failed to deactivate copies of "+isbn, err)
	}
	return int(tag.RowsAffected()), nil
}
