package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FineReason is why a fine was charged.
type FineReason string

const (
	FineLateReturn FineReason = "late_return"
	FineDamage     FineReason = "damage"
	FineLoss       FineReason = "loss"
	FineOther      FineReason = "other"
)

// IsValid reports whether r is a known reason.
func (r FineReason) IsValid() bool {
	switch r {
	case FineLateReturn, FineDamage, FineLoss, FineOther:
		return true
	}
	return false
}

// Fine is a monetary penalty owed by a member. LoanID is cleared if the
// originating loan is ever removed; the fine outlives it.
type Fine struct {
	FineID      string          `json:"fineID"`
	MemberID    string          `json:"memberID"`
	LoanID      *string         `json:"loanID,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Reason      FineReason      `json:"reason"`
	Description string          `json:"description"`
	IssuedAt    time.Time       `json:"issuedAt"`
	IsPaid      bool            `json:"isPaid"`
	PaidAt      *time.Time      `json:"paidAt,omitempty"`
	AuditFields
}

// FineFilter narrows fine listings.
type FineFilter struct {
	MemberID    string
	LoanID      string
	Reason      FineReason
	UnpaidOnly  bool
	Limit       int
	AfterIssued *time.Time
	AfterFineID string
}
