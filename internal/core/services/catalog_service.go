package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ginagrosso/biblioteca/internal/apperrors"
	"github.com/ginagrosso/biblioteca/internal/core/domain"
	portsrepo "github.com/ginagrosso/biblioteca/internal/core/ports/repositories"
	portssvc "github.com/ginagrosso/biblioteca/internal/core/ports/services"
	"github.com/ginagrosso/biblioteca/internal/dto"
	"github.com/ginagrosso/biblioteca/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

type catalogService struct {
	BaseService
	bookRepo  portsrepo.BookRepository
	copyRepo  portsrepo.CopyRepository
	loanRepo  portsrepo.LoanTransactionSupport
	seqRepo   portsrepo.SequenceRepository
	eventRepo portsrepo.EventRepository
}

// NewCatalogService creates the service that manages books and copies.
func NewCatalogService(repos portsrepo.RepositoryProvider, opts ...Option) portssvc.CatalogSvcFacade {
	return &catalogService{
		BaseService: newBaseService(repos.TxManager, opts...),
		bookRepo:    repos.BookRepo,
		copyRepo:    repos.CopyRepo,
		loanRepo:    repos.LoanRepo,
		seqRepo:     repos.SequenceRepo,
		eventRepo:   repos.EventRepo,
	}
}

var _ portssvc.CatalogSvcFacade = (*catalogService)(nil)

func (s *catalogService) RegisterBook(ctx context.Context, req dto.RegisterBookRequest, actorID string) (*domain.Book, error) {
	req.ISBN = strings.TrimSpace(req.ISBN)
	req.Title = strings.TrimSpace(req.Title)
	req.Author = strings.TrimSpace(req.Author)
	if err := s.ValidateRequest(req); err != nil {
		return nil, err
	}

	now := s.Now()
	book := domain.Book{
		ISBN:            req.ISBN,
		Title:           req.Title,
		Author:          req.Author,
		Publisher:       trimPtr(req.Publisher),
		PublicationYear: req.PublicationYear,
		IsActive:        true,
		AuditFields:     domain.NewAuditFields(actorID, now),
	}

	err := s.WithinTx(ctx, func(tx pgx.Tx) error {
		if err := s.bookRepo.SaveBookInTx(ctx, tx, book); err != nil {
			return err
		}
		event := s.newEvent(domain.EventBookRegistered, actorID, now)
		event.ISBN = book.ISBN
		event.Payload = map[string]any{"title": book.Title, "author": book.Author}
		return s.eventRepo.AppendEventsInTx(ctx, tx, []domain.CirculationEvent{event})
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to register book", "isbn", book.ISBN)
		return nil, err
	}

	s.LogInfo(ctx, "Book registered", "isbn", book.ISBN)
	return &book, nil
}

func (s *catalogService) GetBook(ctx context.Context, isbn string) (*domain.Book, error) {
	return s.bookRepo.FindBookByISBN(ctx, isbn)
}

func (s *catalogService) ListBooks(ctx context.Context, params dto.ListBooksParams) (*dto.ListBooksResponse, error) {
	limit := clampLimit(params.Limit)
	filter := domain.BookFilter{
		Query:      strings.TrimSpace(params.Query),
		ActiveOnly: params.ActiveOnly,
		Limit:      limit + 1,
	}
	if params.NextToken != "" {
		afterISBN, err := pagination.DecodeKeyToken(params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		filter.AfterISBN = afterISBN
	}

	books, err := s.bookRepo.ListBooks(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list books")
		return nil, err
	}

	resp := &dto.ListBooksResponse{Books: books}
	if len(books) > limit {
		resp.Books = books[:limit]
		token := pagination.EncodeKeyToken(resp.Books[limit-1].ISBN)
		resp.NextToken = &token
	}
	if resp.Books == nil {
		resp.Books = []domain.Book{}
	}
	return resp, nil
}

func (s *catalogService) DeactivateBook(ctx context.Context, isbn string, actorID string) error {
	now := s.Now()
	err := s.WithinTx(ctx, func(tx pgx.Tx) error {
		if _, err := s.bookRepo.FindBookByISBNForUpdate(ctx, tx, isbn); err != nil {
			return err
		}
		openLoans, err := s.loanRepo.CountOpenLoansByISBNInTx(ctx, tx, isbn)
		if err != nil {
			return err
		}
		if openLoans > 0 {
			return fmt.Errorf("%w: book %s has %d copies on loan", apperrors.ErrConflict, isbn, openLoans)
		}
		if err := s.bookRepo.SetBookActiveInTx(ctx, tx, isbn, false, actorID, now); err != nil {
			return err
		}
		deactivated, err := s.copyRepo.DeactivateCopiesByISBNInTx(ctx, tx, isbn, actorID, now)
		if err != nil {
			return err
		}
		event := s.newEvent(domain.EventBookDeactivated, actorID, now)
		event.ISBN = isbn
		event.Payload = map[string]any{"copiesDeactivated": deactivated}
		return s.eventRepo.AppendEventsInTx(ctx, tx, []domain.CirculationEvent{event})
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to deactivate book", "isbn", isbn)
		return err
	}
	s.LogInfo(ctx, "Book deactivated", "isbn", isbn)
	return nil
}

func (s *catalogService) ReactivateBook(ctx context.Context, isbn string, actorID string) error {
	now := s.Now()
	return s.WithinTx(ctx, func(tx pgx.Tx) error {
		if _, err := s.bookRepo.FindBookByISBNForUpdate(ctx, tx, isbn); err != nil {
			return err
		}
		if err := s.bookRepo.SetBookActiveInTx(ctx, tx, isbn, true, actorID, now); err != nil {
			return err
		}
		event := s.newEvent(domain.EventBookReactivated, actorID, now)
		event.ISBN = isbn
		return s.eventRepo.AppendEventsInTx(ctx, tx, []domain.CirculationEvent{event})
	})
}

func (s *catalogService) RegisterCopy(ctx context.Context, isbn string, req dto.RegisterCopyRequest, actorID string) (*domain.Copy, error) {
	now := s.Now()
	var created domain.Copy

	err := s.WithinTx(ctx, func(tx pgx.Tx) error {
		book, err := s.bookRepo.FindBookByISBNForUpdate(ctx, tx, isbn)
		if err != nil {
			return err
		}
		if !book.IsActive {
			return fmt.Errorf("%w: book %s is not active", apperrors.ErrNotFound, isbn)
		}

		seq, err := s.seqRepo.NextSequenceValueInTx(ctx, tx, domain.CopySequenceScope(isbn))
		if err != nil {
			return err
		}
		created = domain.Copy{
			Code:        domain.CopyCode(isbn, seq),
			ISBN:        isbn,
			State:       domain.CopyAvailable,
			AcquiredAt:  now,
			Notes:       trimPtr(req.Notes),
			IsActive:    true,
			AuditFields: domain.NewAuditFields(actorID, now),
		}
		if err := s.copyRepo.SaveCopyInTx(ctx, tx, created); err != nil {
			return err
		}

		event := s.newEvent(domain.EventCopyRegistered, actorID, now)
		event.ISBN = isbn
		event.CopyCode = created.Code
		return s.eventRepo.AppendEventsInTx(ctx, tx, []domain.CirculationEvent{event})
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to register copy", "isbn", isbn)
		return nil, err
	}

	s.LogInfo(ctx, "Copy registered", "code", created.Code)
	return &created, nil
}

func (s *catalogService) GetCopy(ctx context.Context, code string) (*domain.Copy, error) {
	return s.copyRepo.FindCopyByCode(ctx, code)
}

func (s *catalogService) ListCopies(ctx context.Context, isbn string) ([]domain.Copy, error) {
	if _, err := s.bookRepo.FindBookByISBN(ctx, isbn); err != nil {
		return nil, err
	}
	return s.copyRepo.ListCopiesByISBN(ctx, isbn)
}

func (s *catalogService) CountAvailable(ctx context.Context, isbn string) (int, error) {
	return s.copyRepo.CountAvailableCopies(ctx, isbn)
}

func (s *catalogService) SetCopyState(ctx context.Context, code string, state domain.CopyState, actorID string) (*domain.Copy, error) {
	if !state.IsValid() {
		return nil, fmt.Errorf("%w: unknown copy state %q", apperrors.ErrValidation, state)
	}
	if state == domain.CopyLoaned {
		return nil, fmt.Errorf("%w: copies are marked loaned only by placing a loan", apperrors.ErrValidation)
	}

	now := s.Now()
	var updated domain.Copy
	err := s.WithinTx(ctx, func(tx pgx.Tx) error {
		bookCopy, err := s.copyRepo.FindCopyByCodeForUpdate(ctx, tx, code)
		if err != nil {
			return err
		}
		if state == domain.CopyAvailable {
			onLoan, err := s.loanRepo.HasOpenLoanForCopyInTx(ctx, tx, code)
			if err != nil {
				return err
			}
			if onLoan {
				return fmt.Errorf("%w: copy %s has an open loan", apperrors.ErrConflict, code)
			}
		}
		if err := s.copyRepo.UpdateCopyStateInTx(ctx, tx, code, state, nil, actorID, now); err != nil {
			return err
		}

		event := s.newEvent(domain.EventCopyStateChanged, actorID, now)
		event.ISBN = bookCopy.ISBN
		event.CopyCode = code
		event.Payload = map[string]any{"from": string(bookCopy.State), "to": string(state)}
		if err := s.eventRepo.AppendEventsInTx(ctx, tx, []domain.CirculationEvent{event}); err != nil {
			return err
		}

		updated = *bookCopy
		updated.State = state
		updated.LastUpdatedAt = now
		updated.LastUpdatedBy = actorID
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to change copy state", "code", code, "state", string(state))
		return nil, err
	}
	return &updated, nil
}

func (s *catalogService) DeactivateCopy(ctx context.Context, code string, actorID string) error {
	return s.setCopyActive(ctx, code, false, actorID)
}

func (s *catalogService) ReactivateCopy(ctx context.Context, code string, actorID string) error {
	return s.setCopyActive(ctx, code, true, actorID)
}

func (s *catalogService) setCopyActive(ctx context.Context, code string, active bool, actorID string) error {
	now := s.Now()
	eventType := domain.EventCopyReactivated
	if !active {
		eventType = domain.EventCopyDeactivated
	}

	err := s.WithinTx(ctx, func(tx pgx.Tx) error {
		bookCopy, err := s.copyRepo.FindCopyByCodeForUpdate(ctx, tx, code)
		if err != nil {
			return err
		}
		if !active {
			onLoan, err := s.loanRepo.HasOpenLoanForCopyInTx(ctx, tx, code)
			if err != nil {
				return err
			}
			if onLoan {
				return fmt.Errorf("%w: copy %s has an open loan", apperrors.ErrConflict, code)
			}
		}
		if err := s.copyRepo.SetCopyActiveInTx(ctx, tx, code, active, actorID, now); err != nil {
			return err
		}
		event := s.newEvent(eventType, actorID, now)
		event.ISBN = bookCopy.ISBN
		event.CopyCode = code
		return s.eventRepo.AppendEventsInTx(ctx, tx, []domain.CirculationEvent{event})
	})
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to change copy active flag", "code", code)
	}
	return err
}
