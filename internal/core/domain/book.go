package domain

// Book is a catalog title identified by its ISBN.
type Book struct {
	ISBN            string  `json:"isbn"`
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	Publisher       *string `json:"publisher,omitempty"`
	PublicationYear *int    `json:"publicationYear,omitempty"`
	IsActive        bool    `json:"isActive"`
	AuditFields
}

// BookFilter narrows catalog listings.
type BookFilter struct {
	Query      string
	ActiveOnly bool
	Limit      int
	AfterISBN  string
}
