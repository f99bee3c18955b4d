package domain

// LoanReceipt is the printable record of a loan.
type LoanReceipt struct {
	Loan         Loan   `json:"loan"`
	ISBN         string `json:"isbn"`
	BookTitle    string `json:"bookTitle"`
	BookAuthor   string `json:"bookAuthor"`
	MemberName   string `json:"memberName"`
	MemberNumber string `json:"memberNumber"`
	NationalID   string `json:"nationalID"`
	OverdueDays  int    `json:"overdueDays"`
	IsOverdue    bool   `json:"isOverdue"`
	Fines        []Fine `json:"fines"`
}

// FineReceipt is the printable record of a fine.
type FineReceipt struct {
	Fine         Fine    `json:"fine"`
	MemberName   string  `json:"memberName"`
	MemberNumber string  `json:"memberNumber"`
	NationalID   string  `json:"nationalID"`
	CopyCode     *string `json:"copyCode,omitempty"`
	BookTitle    *string `json:"bookTitle,omitempty"`
}
