package dto

import (
	"github.com/ginagrosso/biblioteca/internal/core/domain"
)

// PlaceLoanRequest defines the data needed to lend a copy.
// LoanDays outside [1, 90] falls back to the default loan period.
type PlaceLoanRequest struct {
	MemberID string  `json:"memberID" binding:"required" validate:"required"`
	CopyCode string  `json:"copyCode" binding:"required" validate:"required"`
	LoanDays *int    `json:"loanDays,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

// ReturnLoanRequest defines the data captured when a copy comes back.
// Amounts are raw librarian input and are validated by the fine rules.
type ReturnLoanRequest struct {
	Condition    string  `json:"condition" binding:"required" validate:"required"`
	DamageAmount *string `json:"damageAmount,omitempty"`
	LossAmount   *string `json:"lossAmount,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// ListLoansParams defines query parameters for listing loans.
type ListLoansParams struct {
	MemberID    string `form:"memberID"`
	CopyCode    string `form:"copyCode"`
	Status      string `form:"status" binding:"omitempty,oneof=open closed"`
	OverdueOnly bool   `form:"overdueOnly"`
	Limit       int    `form:"limit,default=20"`
	NextToken   string `form:"nextToken"`
}

// ListLoansResponse wraps a page of loans.
type ListLoansResponse struct {
	Loans     []domain.Loan `json:"loans"`
	NextToken *string       `json:"nextToken,omitempty"`
}

// ListOverdueResponse wraps the overdue report.
type ListOverdueResponse struct {
	Loans []domain.OverdueLoan `json:"loans"`
}
