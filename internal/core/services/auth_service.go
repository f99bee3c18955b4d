package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ginagrosso/biblioteca/internal/apperrors"
	"github.com/ginagrosso/biblioteca/internal/core/domain"
	portsrepo "github.com/ginagrosso/biblioteca/internal/core/ports/repositories"
	portssvc "github.com/ginagrosso/biblioteca/internal/core/ports/services"
	"github.com/ginagrosso/biblioteca/internal/dto"
	"github.com/ginagrosso/biblioteca/internal/utils"
	"github.com/google/uuid"
)

// TokenSettings configures the bearer tokens handed out on login.
type TokenSettings struct {
	Secret string
	Expiry time.Duration
	Issuer string
}

// authService checks librarian credentials and issues JWTs.
type authService struct {
	BaseService
	librarianRepo portsrepo.LibrarianRepository
	tokens        TokenSettings
}

// NewAuthService creates a new instance of authService.
func NewAuthService(repos portsrepo.RepositoryProvider, tokens TokenSettings, opts ...Option) portssvc.AuthSvcFacade {
	return &authService{
		BaseService:   newBaseService(repos.TxManager, opts...),
		librarianRepo: repos.LibrarianRepo,
		tokens:        tokens,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	librarian, err := s.librarianRepo.FindLibrarianByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogInfo(ctx, "Login attempt for unknown username", "username", username)
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if !librarian.IsActive || !utils.CheckPasswordHash(req.Password, librarian.PasswordHash) {
		s.LogInfo(ctx, "Login rejected", "librarian_id", librarian.LibrarianID)
		return nil, apperrors.ErrUnauthorized
	}

	token, err := utils.GenerateJWT(librarian.LibrarianID, s.tokens.Secret, s.tokens.Expiry, s.tokens.Issuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", "librarian_id", librarian.LibrarianID)
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: int64(s.tokens.Expiry.Seconds()),
	}, nil
}

func (s *authService) CreateLibrarian(ctx context.Context, req dto.CreateLibrarianRequest, actorID string) (*domain.Librarian, error) {
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	req.Name = strings.TrimSpace(req.Name)
	if err := s.ValidateRequest(req); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.Now()
	librarianID := uuid.NewString()
	if actorID == "" {
		actorID = librarianID
	}
	librarian := domain.Librarian{
		LibrarianID:  librarianID,
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: hash,
		IsActive:     true,
		AuditFields:  domain.NewAuditFields(actorID, now),
	}
	if err := s.librarianRepo.SaveLibrarian(ctx, librarian); err != nil {
		s.LogError(ctx, err, "Failed to create librarian", "username", req.Username)
		return nil, err
	}

	s.LogInfo(ctx, "Librarian created", "librarian_id", librarian.LibrarianID)
	return &librarian, nil
}

func (s *authService) GetLibrarian(ctx context.Context, librarianID string) (*domain.Librarian, error) {
	return s.librarianRepo.FindLibrarianByID(ctx, librarianID)
}
