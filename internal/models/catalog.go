package models

import "time"

// Book is a row of the books table.
type Book struct {
	ISBN            string  `db:"isbn"`
	Title           string  `db:"title"`
	Author          string  `db:"author"`
	Publisher       *string `db:"publisher"`
	PublicationYear *int    `db:"publication_year"`
	IsActive        bool    `db:"is_active"`
	AuditFields
}

// Copy is a row of the copies table.
type Copy struct {
	Code       string    `db:"code"`
	ISBN       string    `db:"isbn"`
	State      string    `db:"state"`
	AcquiredAt time.Time `db:"acquired_at"`
	Notes      *string   `db:"notes"`
	IsActive   bool      `db:"is_active"`
	AuditFields
}
