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

type PgxLoanRepository struct {
	pool *pgxpool.Pool
}

func newPgxLoanRepository(pool *pgxpool.Pool) portsrepo.LoanRepository {
	return &PgxLoanRepository{pool: pool}
}

var _ portsrepo.LoanRepository = (*PgxLoanRepository)(nil)

const selectLoanSQL = `
	SELECT loan_id, member_id, copy_code, started_at, due_date, returned_at, notes,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM loans
`

func scanLoan(row pgx.Row) (models.Loan, error) {
	var m models.Loan
	err := row.Scan(
		&m.LoanID,
		&m.MemberID,
		&m.CopyCode,
		&m.StartedAt,
		&m.DueDate,
		&m.ReturnedAt,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func collectLoans(rows pgx.Rows) ([]domain.Loan, error) {
	defer rows.Close()
	loans := []domain.Loan{}
	for rows.Next() {
		m, err := scanLoan(rows)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to scan loan row", err)
		}
		loans = append(loans, toDomainLoan(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapListError(err, "loans")
	}
	return loans, nil
}

// SaveLoanInTx inserts a loan. The partial unique index on open loans per copy
// turns a concurrent second checkout into ErrConflict.
func (r *PgxLoanRepository) SaveLoanInTx(ctx context.Context, tx pgx.Tx, loan domain.Loan) error {
	m := toModelLoan(loan)
	query := `
		INSERT INTO loans (loan_id, member_id, copy_code, started_at, due_date, returned_at, notes,
		                   created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, query,
		m.LoanID, m.MemberID, m.CopyCode, m.StartedAt, m.DueDate, m.ReturnedAt, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "loan "+m.LoanID,
			fmt.Errorf("%w: copy %s already has an open loan", apperrors.ErrConflict, m.CopyCode))
	}
	return nil
}

// FindLoanByID retrieves a loan by ID.
func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	m, err := scanLoan(r.pool.QueryRow(ctx, selectLoanSQL+" WHERE loan_id = $1;", loanID))
	if err != nil {
		return nil, mapReadError(err, "loan "+loanID)
	}
	loan := toDomainLoan(m)
	return &loan, nil
}

// FindLoanByIDForUpdate loads a loan and locks its row until tx ends.
func (r *PgxLoanRepository) FindLoanByIDForUpdate(ctx context.Context, tx pgx.Tx, loanID string) (*domain.Loan, error) {
	m, err := scanLoan(tx.QueryRow(ctx, selectLoanSQL+" WHERE loan_id = $1 FOR UPDATE;", loanID))
	if err != nil {
		return nil, mapReadError(err, "loan "+loanID)
	}
	loan := toDomainLoan(m)
	return &loan, nil
}

// ListLoans retrieves loans matching the filter, newest first.
func (r *PgxLoanRepository) ListLoans(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error) {
	query, args, err := buildListLoansQuery(filter)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to build loan listing query", err)
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapListError(err, "loans")
	}
	return collectLoans(rows)
}

// ListOverdueLoans retrieves open loans due before dueBefore.
func (r *PgxLoanRepository) ListOverdueLoans(ctx context.Context, dueBefore time.Time, limit int) ([]domain.Loan, error) {
	query, args, err := buildOverdueLoansQuery(dueBefore, limit)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to build overdue query", err)
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list overdue loans", err)
	}
	return collectLoans(rows)
}

// CloseLoanInTx marks an open loan returned. A loan closed meanwhile yields ErrAlreadyReturned.
func (r *PgxLoanRepository) CloseLoanInTx(ctx context.Context, tx pgx.Tx, loanID string, returnedAt time.Time, notes *string, actorID string) error {
	query := `
		UPDATE loans
		SET returned_at = $2, notes = COALESCE($3, notes), last_updated_at = $2, last_updated_by = $4
		WHERE loan_id = $1 AND returned_at IS NULL;
	`
	tag, err := tx.Exec(ctx, query, loanID, returnedAt, notes, actorID)
	if err != nil {
		return apperrors.NewStorageError("failed to close loan "+loanID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: loan %s", apperrors.ErrAlreadyReturned, loanID)
	}
	return nil
}

// CountOpenLoansByMemberInTx counts the open loans held by a member.
func (r *PgxLoanRepository) CountOpenLoansByMemberInTx(ctx context.Context, tx pgx.Tx, memberID string) (int, error) {
	return countInTx(ctx, tx,
		`SELECT COUNT(*) FROM loans WHERE member_id = $1 AND returned_at IS NULL;`,
		memberID, "open loans of member "+memberID)
}

// HasOpenLoanForCopyInTx reports whether a copy is currently lent.
func (r *PgxLoanRepository) HasOpenLoanForCopyInTx(ctx context.Context, tx pgx.Tx, code string) (bool, error) {
	n, err := countInTx(ctx, tx,
		`SELECT COUNT(*) FROM loans WHERE copy_code = $1 AND returned_at IS NULL;`,
		code, "open loans of copy "+code)
	return n > 0, err
}

// CountOpenLoansByISBNInTx counts open loans over every copy of a book.
func (r *PgxLoanRepository) CountOpenLoansByISBNInTx(ctx context.Context, tx pgx.Tx, isbn string) (int, error) {
	return countInTx(ctx, tx, `
		SELECT COUNT(*)
		FROM loans l
		JOIN copies c ON c.code = l.copy_code
		WHERE c.isbn = $1 AND l.returned_at IS NULL;`,
		isbn, "open loans of book "+isbn)
}

func countInTx(ctx context.Context, q dbtx, query string, arg any, what string) (int, error) {
	var n int
	if err := q.QueryRow(ctx, query, arg).Scan(&n); err != nil {
		return 0, apperrors.NewStorageError("failed to count "+what, err)
	}
	return n, nil
}
