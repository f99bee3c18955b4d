package dto

import (
	"github.com/ginagrosso/biblioteca/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RegisterMemberRequest defines the data needed to register a member.
type RegisterMemberRequest struct {
	NationalID string  `json:"nationalID" binding:"required,max=10" validate:"required,max=10"`
	Name       string  `json:"name" binding:"required,max=100" validate:"required,max=100"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Address    *string `json:"address,omitempty" validate:"omitempty,max=200"`
}

// ListMembersParams defines query parameters for listing members.
type ListMembersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListMembersResponse wraps the list of members.
type ListMembersResponse struct {
	Members []domain.Member `json:"members"`
}

// OutstandingFinesResponse reports what a member still owes.
type OutstandingFinesResponse struct {
	MemberID            string          `json:"memberID"`
	HasOutstandingFines bool            `json:"hasOutstandingFines"`
	TotalOutstanding    decimal.Decimal `json:"totalOutstanding"`
	UnpaidCount         int             `json:"unpaidCount"`
}

// ToOutstandingFinesResponse converts a domain.FineBalance to its response DTO.
func ToOutstandingFinesResponse(b domain.FineBalance) OutstandingFinesResponse {
	return OutstandingFinesResponse{
		MemberID:            b.MemberID,
		HasOutstandingFines: b.HasOutstanding(),
		TotalOutstanding:    b.Total,
		UnpaidCount:         b.UnpaidCount,
	}
}
