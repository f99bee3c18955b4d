package services

import (
	"context"

	"github.com/ginagrosso/biblioteca/internal/core/domain"
	"github.com/ginagrosso/biblioteca/internal/dto"
)

// AuthSvcFacade authenticates librarians and manages their accounts
type AuthSvcFacade interface {
	// Login checks credentials and returns a signed bearer token.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)

	CreateLibrarian(ctx context.Context, req dto.CreateLibrarianRequest, actorID string) (*domain.Librarian, error)
	GetLibrarian(ctx context.Context, librarianID string) (*domain.Librarian, error)
}
