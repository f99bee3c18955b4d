package repositories

import (
	"context"

	"github.com/ginagrosso/biblioteca/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// EventRepository stores the circulation event log
type EventRepository interface {
	AppendEventsInTx(ctx context.Context, tx pgx.Tx, events []domain.CirculationEvent) error
	ListEvents(ctx context.Context, filter domain.EventFilter) ([]domain.CirculationEvent, error)
}

// ReceiptRepository reads the denormalised receipt views
type ReceiptRepository interface {
	FindLoanReceipt(ctx context.Context, loanID string) (*domain.LoanReceipt, error)
	FindFineReceipt(ctx context.Context, fineID string) (*domain.FineReceipt, error)
}

// LibrarianRepository stores staff accounts
type LibrarianRepository interface {
	SaveLibrarian(ctx context.Context, librarian domain.Librarian) error
	FindLibrarianByID(ctx context.Context, librarianID string) (*domain.Librarian, error)
	FindLibrarianByUsername(ctx context.Context, username string) (*domain.Librarian, error)
}
