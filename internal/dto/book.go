package dto

import (
	"github.com/ginagrosso/biblioteca/internal/core/domain"
)

// RegisterBookRequest defines the data needed to add a title to the catalog.
type RegisterBookRequest struct {
	ISBN            string  `json:"isbn" binding:"required,max=13" validate:"required,max=13"`
	Title           string  `json:"title" binding:"required,max=200" validate:"required,max=200"`
	Author          string  `json:"author" binding:"required,max=100" validate:"required,max=100"`
	Publisher       *string `json:"publisher,omitempty" validate:"omitempty,max=100"`
	PublicationYear *int    `json:"publicationYear,omitempty" validate:"omitempty,min=1,max=9999"`
}

// RegisterCopyRequest defines the optional data recorded with a new copy.
type RegisterCopyRequest struct {
	Notes *string `json:"notes,omitempty"`
}

// SetCopyStateRequest changes the physical state of a copy.
type SetCopyStateRequest struct {
	State string `json:"state" binding:"required"`
}

// ListBooksParams defines query parameters for listing books.
type ListBooksParams struct {
	Query      string `form:"q"`
	ActiveOnly bool   `form:"activeOnly"`
	Limit      int    `form:"limit,default=20"`
	NextToken  string `form:"nextToken"`
}

// ListBooksResponse wraps a page of books.
type ListBooksResponse struct {
	Books     []domain.Book `json:"books"`
	NextToken *string       `json:"nextToken,omitempty"`
}

// AvailabilityResponse reports how many copies can be lent.
type AvailabilityResponse struct {
	ISBN      string `json:"isbn"`
	Available int    `json:"available"`
}
