package repositories

import (
	"context"
	"time"

	"github.com/ginagrosso/biblioteca/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// BookReader defines read operations for books
type BookReader interface {
	// FindBookByISBN retrieves a book by its ISBN.
	FindBookByISBN(ctx context.Context, isbn string) (*domain.Book, error)

	// ListBooks retrieves books matching the filter ordered by ISBN.
	ListBooks(ctx context.Context, filter domain.BookFilter) ([]domain.Book, error)
}

// BookWriter defines write operations for books
type BookWriter interface {
	// SaveBookInTx persists a new book. A taken ISBN yields apperrors.ErrDuplicate.
	SaveBookInTx(ctx context.Context, tx pgx.Tx, book domain.Book) error

	// FindBookByISBNForUpdate loads and locks a book row.
	FindBookByISBNForUpdate(ctx context.Context, tx pgx.Tx, isbn string) (*domain.Book, error)

	// SetBookActiveInTx flips the active flag of a book.
	SetBookActiveInTx(ctx context.Context, tx pgx.Tx, isbn string, active bool, actorID string, now time.Time) error
}

// BookRepository combines all book operations
type BookRepository interface {
	BookReader
	BookWriter
}

// CopyReader defines read operations for copies
type CopyReader interface {
	FindCopyByCode(ctx context.Context, code string) (*domain.Copy, error)
	ListCopiesByISBN(ctx context.Context, isbn string) ([]domain.Copy, error)

	// CountAvailableCopies counts active copies in the available state.
	CountAvailableCopies(ctx context.Context, isbn string) (int, error)
}

// CopyWriter defines write operations for copies
type CopyWriter interface {
	SaveCopyInTx(ctx context.Context, tx pgx.Tx, bookCopy domain.Copy) error
	FindCopyByCodeForUpdate(ctx context.Context, tx pgx.Tx, code string) (*domain.Copy, error)

	// UpdateCopyStateInTx sets the state and, when notes is not nil, the notes of a copy.
	UpdateCopyStateInTx(ctx context.Context, tx pgx.Tx, code string, state domain.CopyState, notes *string, actorID string, now time.Time) error

	SetCopyActiveInTx(ctx context.Context, tx pgx.Tx, code string, active bool, actorID string, now time.Time) error

	// DeactivateCopiesByISBNInTx deactivates every active copy of a book and returns how many changed.
	DeactivateCopiesByISBNInTx(ctx context.Context, tx pgx.Tx, isbn string, actorID string, now time.Time) (int, error)
}

// CopyRepository combines all copy operations
type CopyRepository interface {
	CopyReader
	CopyWriter
}
