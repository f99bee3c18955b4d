package models

// LoanReceipt is the loan joined with its copy, book and member.
type LoanReceipt struct {
	Loan
	ISBN         string `db:"isbn"`
	BookTitle    string `db:"book_title"`
	BookAuthor   string `db:"book_author"`
	MemberName   string `db:"member_name"`
	MemberNumber string `db:"member_number"`
	NationalID   string `db:"national_id"`
}

// FineReceipt is the fine joined with its member and, when linked, its loan's copy and book.
type FineReceipt struct {
	Fine
	MemberName   string  `db:"member_name"`
	MemberNumber string  `db:"member_number"`
	NationalID   string  `db:"national_id"`
	CopyCode     *string `db:"copy_code"`
	BookTitle    *string `db:"book_title"`
}
