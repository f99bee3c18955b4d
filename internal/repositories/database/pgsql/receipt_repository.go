package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ginagrosso/biblioteca/internal/apperrors"
	"github.com/ginagrosso/biblioteca/internal/core/domain"
	portsrepo "github.com/ginagrosso/biblioteca/internal/core/ports/repositories"
	"github.com/ginagrosso/biblioteca/internal/models"
	"github.com/jmoiron/sqlx"
)

// SqlxReceiptRepository reads the joined receipt rows straight into tagged structs.
type SqlxReceiptRepository struct {
	db *sqlx.DB
}

func newSqlxReceiptRepository(db *sqlx.DB) portsrepo.ReceiptRepository {
	return &SqlxReceiptRepository{db: db}
}

var _ portsrepo.ReceiptRepository = (*SqlxReceiptRepository)(nil)

const loanReceiptSQL = `
	SELECT l.loan_id, l.member_id, l.copy_code, l.started_at, l.due_date, l.returned_at, l.notes,
	       l.created_at, l.created_by, l.last_updated_at, l.last_updated_by,
	       b.isbn, b.title AS book_title, b.author AS book_author,
	       m.name AS member_name, m.member_number, m.national_id
	FROM loans l
	JOIN copies c ON c.code = l.copy_code
	JOIN books b ON b.isbn = c.isbn
	JOIN members m ON m.member_id = l.member_id
	WHERE l.loan_id = $1;
`

const loanFinesSQL = `
	SELECT fine_id, member_id, loan_id, amount, reason, description, issued_at, is_paid, paid_at,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM fines
	WHERE loan_id = $1
	ORDER BY issued_at, fine_id;
`

const fineReceiptSQL = `
	SELECT f.fine_id, f.member_id, f.loan_id, f.amount, f.reason, f.description, f.issued_at, f.is_paid, f.paid_at,
	       f.created_at, f.created_by, f.last_updated_at, f.last_updated_by,
	       m.name AS member_name, m.member_number, m.national_id,
	       l.copy_code, b.title AS book_title
	FROM fines f
	JOIN members m ON m.member_id = f.member_id
	LEFT JOIN loans l ON l.loan_id = f.loan_id
	LEFT JOIN copies c ON c.code = l.copy_code
	LEFT JOIN books b ON b.isbn = c.isbn
	WHERE f.fine_id = $1;
`

// FindLoanReceipt loads a loan with its book, member and fines.
func (r *SqlxReceiptRepository) FindLoanReceipt(ctx context.Context, loanID string) (*domain.LoanReceipt, error) {
	var row models.LoanReceipt
	if err := r.db.GetContext(ctx, &row, loanReceiptSQL, loanID); err != nil {
		return nil, mapSQLReadError(err, "loan receipt "+loanID)
	}

	var fines []models.Fine
	if err := r.db.SelectContext(ctx, &fines, loanFinesSQL, loanID); err != nil {
		return nil, apperrors.NewStorageError("failed to load fines of loan "+loanID, err)
	}

	return &domain.LoanReceipt{
		Loan:         toDomainLoan(row.Loan),
		ISBN:         row.ISBN,
		BookTitle:    row.BookTitle,
		BookAuthor:   row.BookAuthor,
		MemberName:   row.MemberName,
		MemberNumber: row.MemberNumber,
		NationalID:   row.NationalID,
		Fines:        toDomainFineSlice(fines),
	}, nil
}

// FindFineReceipt loads a fine with its member and, when linked, its copy and book.
func (r *SqlxReceiptRepository) FindFineReceipt(ctx context.Context, fineID string) (*domain.FineReceipt, error) {
	var row models.FineReceipt
	if err := r.db.GetContext(ctx, &row, fineReceiptSQL, fineID); err != nil {
		return nil, mapSQLReadError(err, "fine receipt "+fineID)
	}
	return &domain.FineReceipt{
		Fine:         toDomainFine(row.Fine),
		MemberName:   row.MemberName,
		MemberNumber: row.MemberNumber,
		NationalID:   row.NationalID,
		CopyCode:     row.CopyCode,
		BookTitle:    row.BookTitle,
	}, nil
}

func mapSQLReadError(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) || isInvalidText(err) {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, what)
	}
	return apperrors.NewStorageError("failed to load "+what, err)
}
