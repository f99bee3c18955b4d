package dto

import (
	"github.com/ginagrosso/biblioteca/internal/core/domain"
	"github.com/shopspring/decimal"
)

// IssueFineRequest defines an ad hoc fine entered by a librarian.
type IssueFineRequest struct {
	MemberID    string  `json:"memberID" binding:"required" validate:"required"`
	LoanID      *string `json:"loanID,omitempty"`
	Reason      string  `json:"reason" binding:"required,oneof=late_return damage loss other" validate:"required,oneof=late_return damage loss other"`
	Amount      string  `json:"amount"`
	Description string  `json:"description" binding:"required" validate:"required,max=500"`
}

// ListFinesParams defines query parameters for listing fines.
type ListFinesParams struct {
	MemberID   string `form:"memberID"`
	LoanID     string `form:"loanID"`
	Reason     string `form:"reason" binding:"omitempty,oneof=late_return damage loss other"`
	UnpaidOnly bool   `form:"unpaidOnly"`
	Limit      int    `form:"limit,default=20"`
	NextToken  string `form:"nextToken"`
}

// ListFinesResponse wraps a page of fines.
type ListFinesResponse struct {
	Fines     []domain.Fine `json:"fines"`
	NextToken *string       `json:"nextToken,omitempty"`
}

// LateFeeResponse previews the late fee for a number of days.
type LateFeeResponse struct {
	OverdueDays int             `json:"overdueDays"`
	Amount      decimal.Decimal `json:"amount"`
}
