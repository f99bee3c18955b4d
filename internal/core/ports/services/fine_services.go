package services

import (
	"context"

	"github.com/ginagrosso/biblioteca/internal/core/domain"
	"github.com/ginagrosso/biblioteca/internal/dto"
	"github.com/shopspring/decimal"
)

// FineRulesSvc exposes the fine calculation rules
type FineRulesSvc interface {
	// ComputeLateFee multiplies the daily rate by the overdue days.
	ComputeLateFee(overdueDays int) decimal.Decimal

	// ValidateAmount parses a raw amount and checks the configured bounds.
	ValidateAmount(raw string) (decimal.Decimal, error)
}

// FineReaderSvc defines read operations for fines
type FineReaderSvc interface {
	GetFine(ctx context.Context, fineID string) (*domain.Fine, error)
	ListFines(ctx context.Context, params dto.ListFinesParams) (*dto.ListFinesResponse, error)
	FineReceipt(ctx context.Context, fineID string) (*domain.FineReceipt, error)
}

// FineWriterSvc defines write operations for fines
type FineWriterSvc interface {
	// IssueFine records an ad hoc fine entered by a librarian.
	IssueFine(ctx context.Context, req dto.IssueFineRequest, actorID string) (*domain.Fine, error)

	// MarkPaid settles a fine once. A second call fails with apperrors.ErrAlreadyPaid.
	MarkPaid(ctx context.Context, fineID string, actorID string) (*domain.Fine, error)
}

// FineSvcFacade combines all fine service interfaces
type FineSvcFacade interface {
	FineRulesSvc
	FineReaderSvc
	FineWriterSvc
}
