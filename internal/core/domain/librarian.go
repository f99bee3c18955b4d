package domain

// Librarian is a staff account allowed to operate the circulation desk.
type Librarian struct {
	LibrarianID  string `json:"librarianID"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}
