package services

import (
	"context"
	"time"

	"github.com/ginagrosso/biblioteca/internal/core/domain"
	"github.com/ginagrosso/biblioteca/internal/dto"
)

// LoanReaderSvc defines read operations for loans
type LoanReaderSvc interface {
	GetLoan(ctx context.Context, loanID string) (*domain.Loan, error)
	ListLoans(ctx context.Context, params dto.ListLoansParams) (*dto.ListLoansResponse, error)

	// ListOverdue reports open loans past due as of asOf with their estimated late fee.
	ListOverdue(ctx context.Context, asOf time.Time) ([]domain.OverdueLoan, error)

	// PreviewReturn shows what a return today would charge for lateness.
	PreviewReturn(ctx context.Context, loanID string) (*domain.ReturnPreview, error)

	LoanReceipt(ctx context.Context, loanID string) (*domain.LoanReceipt, error)
}

// LoanWriterSvc defines the circulation operations
type LoanWriterSvc interface {
	// PlaceLoan lends a copy to a member after checking the lending rules.
	PlaceLoan(ctx context.Context, req dto.PlaceLoanRequest, actorID string) (*domain.Loan, error)

	// ReturnLoan closes a loan, updates the copy and assesses fines.
	ReturnLoan(ctx context.Context, loanID string, req dto.ReturnLoanRequest, actorID string) (*domain.ReturnResult, error)
}

// LoanSvcFacade combines all loan service interfaces
type LoanSvcFacade interface {
	LoanReaderSvc
	LoanWriterSvc
}
