package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ginagrosso/biblioteca/internal/apperrors"
	"github.com/ginagrosso/biblioteca/internal/core/domain"
	portsrepo "github.com/ginagrosso/biblioteca/internal/core/ports/repositories"
	"github.com/ginagrosso/biblioteca/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// BaseService provides common functionality for all services
type BaseService struct {
	TxManager portsrepo.TransactionManager
	Clock     func() time.Time
}

// Option configures the shared parts of a service.
type Option func(*BaseService)

// WithClock overrides the time source, mainly for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *BaseService) {
		s.Clock = clock
	}
}

func newBaseService(txm portsrepo.TransactionManager, opts ...Option) BaseService {
	base := BaseService{TxManager: txm, Clock: time.Now}
	for _, opt := range opts {
		opt(&base)
	}
	return base
}

// Now returns the current time from the configured clock.
func (s *BaseService) Now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock().UTC()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// ValidateRequest runs struct tag validation and reports failures as apperrors.ErrValidation.
func (s *BaseService) ValidateRequest(req any) error {
	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, strings.Join(msgs, ", "))
		}
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return nil
}

// WithinTx runs fn in a database transaction. The transaction is committed
// when fn returns nil and rolled back otherwise.
func (s *BaseService) WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.TxManager.Begin(ctx)
	if err != nil {
		return err
	}
	// Will be ignored if transaction is committed successfully
	defer func() {
		if rbErr := s.TxManager.Rollback(ctx, tx); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to roll back transaction")
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return s.TxManager.Commit(ctx, tx)
}

// newEvent stamps a circulation event with an ID, the actor and the time.
func (s *BaseService) newEvent(eventType domain.EventType, actorID string, now time.Time) domain.CirculationEvent {
	return domain.CirculationEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		ActorID:    actorID,
		OccurredAt: now,
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// checkUUID rejects a non-empty identifier used as a filter or cursor key
// when it is not a UUID.
func checkUUID(value, field string) error {
	if value == "" {
		return nil
	}
	if _, err := uuid.Parse(value); err != nil {
		return fmt.Errorf("%w: %s must be a UUID", apperrors.ErrValidation, field)
	}
	return nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > 100 {
		return 100
	}
	return limit
}
