package repositories

import (
	"context"
	"time"

	"github.com/ginagrosso/biblioteca/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// LoanReader defines read operations for loans
type LoanReader interface {
	FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)

	// ListLoans retrieves loans matching the filter, newest first.
	ListLoans(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error)

	// ListOverdueLoans retrieves open loans due before the given date, oldest due date first.
	ListOverdueLoans(ctx context.Context, dueBefore time.Time, limit int) ([]domain.Loan, error)
}

// LoanWriter defines write operations for loans
type LoanWriter interface {
	// SaveLoanInTx inserts a loan. A second open loan for the same copy yields apperrors.ErrConflict.
	SaveLoanInTx(ctx context.Context, tx pgx.Tx, loan domain.Loan) error

	FindLoanByIDForUpdate(ctx context.Context, tx pgx.Tx, loanID string) (*domain.Loan, error)

	// CloseLoanInTx sets the return timestamp and, when notes is not nil, the notes.
	CloseLoanInTx(ctx context.Context, tx pgx.Tx, loanID string, returnedAt time.Time, notes *string, actorID string) error
}

// LoanTransactionSupport defines guard queries evaluated inside a transaction
type LoanTransactionSupport interface {
	CountOpenLoansByMemberInTx(ctx context.Context, tx pgx.Tx, memberID string) (int, error)
	HasOpenLoanForCopyInTx(ctx context.Context, tx pgx.Tx, code string) (bool, error)
	CountOpenLoansByISBNInTx(ctx context.Context, tx pgx.Tx, isbn string) (int, error)
}

// LoanRepository combines all loan operations
type LoanRepository interface {
	LoanReader
	LoanWriter
	LoanTransactionSupport
}
