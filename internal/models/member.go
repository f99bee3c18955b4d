package models

import "time"

// Member is a row of the members table.
type Member struct {
	MemberID     string    `db:"member_id"`
	NationalID   string    `db:"national_id"`
	MemberNumber string    `db:"member_number"`
	Name         string    `db:"name"`
	Email        *string   `db:"email"`
	Phone        *string   `db:"phone"`
	Address      *string   `db:"address"`
	RegisteredAt time.Time `db:"registered_at"`
	IsActive     bool      `db:"is_active"`
	AuditFields
}

// Librarian is a row of the librarians table.
type Librarian struct {
	LibrarianID  string `db:"librarian_id"`
	Username     string `db:"username"`
	Name         string `db:"name"`
	PasswordHash string `db:"password_hash"`
	IsActive     bool   `db:"is_active"`
	AuditFields
}
