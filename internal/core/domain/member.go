package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Member is a registered library patron.
type Member struct {
	MemberID     string    `json:"memberID"`
	NationalID   string    `json:"nationalID"`
	MemberNumber string    `json:"memberNumber"`
	Name         string    `json:"name"`
	Email        *string   `json:"email,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	Address      *string   `json:"address,omitempty"`
	RegisteredAt time.Time `json:"registeredAt"`
	IsActive     bool      `json:"isActive"`
	AuditFields
}

// MemberNumber formats the seq-th member number of a year.
func MemberNumber(year, seq int) string {
	return fmt.Sprintf("MEM-%d-%04d", year, seq)
}

// MemberSequenceScope is the counter scope used to number members registered in year.
func MemberSequenceScope(year int) string {
	return fmt.Sprintf("member:%d", year)
}

// FineBalance summarises the unpaid fines of a member.
type FineBalance struct {
	MemberID    string          `json:"memberID"`
	UnpaidCount int             `json:"unpaidCount"`
	Total       decimal.Decimal `json:"total"`
}

// HasOutstanding reports whether any amount is still owed.
func (b FineBalance) HasOutstanding() bool {
	return b.Total.IsPositive()
}
