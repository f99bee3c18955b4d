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
	"github.com/shopspring/decimal"
)

type PgxFineRepository struct {
	pool *pgxpool.Pool
}

func newPgxFineRepository(pool *pgxpool.Pool) portsrepo.FineRepository {
	return &PgxFineRepository{pool: pool}
}

var _ portsrepo.FineRepository = (*PgxFineRepository)(nil)

const selectFineSQL = `
	SELECT fine_id, member_id, loan_id, amount, reason, description, issued_at, is_paid, paid_at,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM fines
`

func scanFine(row pgx.Row) (models.Fine, error) {
	var m models.Fine
	err := row.Scan(
		&m.FineID,
		&m.MemberID,
		&m.LoanID,
		&m.Amount,
		&m.Reason,
		&m.Description,
		&m.IssuedAt,
		&m.IsPaid,
		&m.PaidAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveFinesInTx inserts all fines in a single batch.
func (r *PgxFineRepository) SaveFinesInTx(ctx context.Context, tx pgx.Tx, fines []domain.Fine) error {
	if len(fines) == 0 {
		return nil
	}

	query := `
		INSERT INTO fines (fine_id, member_id, loan_id, amount, reason, description, issued_at, is_paid, paid_at,
		                   created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	batch := &pgx.Batch{}
	for _, fine := range fines {
		m := toModelFine(fine)
		batch.Queue(query,
			m.FineID, m.MemberID, m.LoanID, m.Amount, m.Reason, m.Description, m.IssuedAt, m.IsPaid, m.PaidAt,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return mapWriteError(err, fmt.Sprintf("%d fines for member %s", len(fines), fines[0].MemberID), nil)
	}
	return nil
}

// FindFineByID retrieves a fine by ID.
func (r *PgxFineRepository) FindFineByID(ctx context.Context, fineID string) (*domain.Fine, error) {
	m, err := scanFine(r.pool.QueryRow(ctx, selectFineSQL+" WHERE fine_id = $1;", fineID))
	if err != nil {
		return nil, mapReadError(err, "fine "+fineID)
	}
	fine := toDomainFine(m)
	return &fine, nil
}

// FindFineByIDForUpdate loads a fine and locks its row until tx ends.
func (r *PgxFineRepository) FindFineByIDForUpdate(ctx context.Context, tx pgx.Tx, fineID string) (*domain.Fine, error) {
	m, err := scanFine(tx.QueryRow(ctx, selectFineSQL+" WHERE fine_id = $1 FOR UPDATE;", fineID))
	if err != nil {
		return nil, mapReadError(err, "fine "+fineID)
	}
	fine := toDomainFine(m)
	return &fine, nil
}

// ListFines retrieves fines matching the filter, newest first.
func (r *PgxFineRepository) ListFines(ctx context.Context, filter domain.FineFilter) ([]domain.Fine, error) {
	query, args, err := buildListFinesQuery(filter)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to build fine listing query", err)
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapListError(err, "fines")
	}
	defer rows.Close()

	fines := []models.Fine{}
	for rows.Next() {
		m, err := scanFine(rows)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to scan fine row", err)
		}
		fines = append(fines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, mapListError(err, "fines")
	}
	return toDomainFineSlice(fines), nil
}

// GetFineBalance aggregates the unpaid fines of a member.
func (r *PgxFineRepository) GetFineBalance(ctx context.Context, memberID string) (domain.FineBalance, error) {
	return fineBalance(ctx, r.pool, memberID)
}

// GetFineBalanceInTx aggregates the unpaid fines of a member inside tx.
func (r *PgxFineRepository) GetFineBalanceInTx(ctx context.Context, tx pgx.Tx, memberID string) (domain.FineBalance, error) {
	return fineBalance(ctx, tx, memberID)
}

func fineBalance(ctx context.Context, q dbtx, memberID string) (domain.FineBalance, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(amount), 0)
		FROM fines
		WHERE member_id = $1 AND NOT is_paid;
	`
	balance := domain.FineBalance{MemberID: memberID, Total: decimal.Zero}
	if err := q.QueryRow(ctx, query, memberID).Scan(&balance.UnpaidCount, &balance.Total); err != nil {
		return domain.FineBalance{}, apperrors.NewStorageError("failed to compute fine balance of member "+memberID, err)
	}
	return balance, nil
}

// MarkFinePaidInTx settles an unpaid fine. A fine settled meanwhile yields ErrAlreadyPaid.
func (r *PgxFineRepository) MarkFinePaidInTx(ctx context.Context, tx pgx.Tx, fineID string, paidAt time.Time, actorID string) error {
	query := `
		UPDATE fines
		SET is_paid = TRUE, paid_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE fine_id = $1 AND NOT is_paid;
	`
	tag, err := tx.Exec(ctx, query, fineID, paidAt, actorID)
	if err != nil {
		return apperrors.NewStorageError("failed to mark fine "+fineID+" paid", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: fine %s", apperrors.ErrAlreadyPaid, fineID)
	}
	return nil
}
