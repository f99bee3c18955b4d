package services

import (
	"context"

	"github.com/ginagrosso/biblioteca/internal/core/domain"
	"github.com/ginagrosso/biblioteca/internal/dto"
)

// BookSvc defines operations on catalog titles
type BookSvc interface {
	// RegisterBook adds a title to the catalog.
	RegisterBook(ctx context.Context, req dto.RegisterBookRequest, actorID string) (*domain.Book, error)

	GetBook(ctx context.Context, isbn string) (*domain.Book, error)
	ListBooks(ctx context.Context, params dto.ListBooksParams) (*dto.ListBooksResponse, error)

	// DeactivateBook soft-deletes a book and all its copies. Fails with
	// apperrors.ErrConflict while any copy is on loan.
	DeactivateBook(ctx context.Context, isbn string, actorID string) error

	// ReactivateBook restores a book. Its copies keep their own active flag.
	ReactivateBook(ctx context.Context, isbn string, actorID string) error
}

// CopySvc defines operations on physical copies
type CopySvc interface {
	// RegisterCopy adds a copy to an active book and assigns its code.
	RegisterCopy(ctx context.Context, isbn string, req dto.RegisterCopyRequest, actorID string) (*domain.Copy, error)

	GetCopy(ctx context.Context, code string) (*domain.Copy, error)
	ListCopies(ctx context.Context, isbn string) ([]domain.Copy, error)

	// CountAvailable counts active copies that can be lent.
	CountAvailable(ctx context.Context, isbn string) (int, error)

	// SetCopyState changes the physical state of a copy outside the loan flow.
	SetCopyState(ctx context.Context, code string, state domain.CopyState, actorID string) (*domain.Copy, error)

	DeactivateCopy(ctx context.Context, code string, actorID string) error
	ReactivateCopy(ctx context.Context, code string, actorID string) error
}

// CatalogSvcFacade combines all catalog service interfaces
type CatalogSvcFacade interface {
	BookSvc
	CopySvc
}
