package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan lends one copy to one member. A loan is open until ReturnedAt is set.
type Loan struct {
	LoanID     string     `json:"loanID"`
	MemberID   string     `json:"memberID"`
	CopyCode   string     `json:"copyCode"`
	StartedAt  time.Time  `json:"startedAt"`
	DueDate    time.Time  `json:"dueDate"`
	ReturnedAt *time.Time `json:"returnedAt,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
	AuditFields
}

// IsOpen reports whether the copy has not been returned yet.
func (l Loan) IsOpen() bool {
	return l.ReturnedAt == nil
}

// OverdueDays counts whole days past the due date. Closed loans compare
// against the return date, open loans against today. Never negative.
func (l Loan) OverdueDays(today time.Time, loc *time.Location) int {
	comparison := today
	if l.ReturnedAt != nil {
		comparison = *l.ReturnedAt
	}
	days := DaysBetween(CivilDate(l.DueDate, time.UTC), CivilDate(comparison, loc))
	if days < 0 {
		return 0
	}
	return days
}

// IsOverdue reports whether OverdueDays is positive.
func (l Loan) IsOverdue(today time.Time, loc *time.Location) bool {
	return l.OverdueDays(today, loc) > 0
}

// LoanStatus filters loans by lifecycle state.
type LoanStatus string

const (
	LoanStatusAny    LoanStatus = ""
	LoanStatusOpen   LoanStatus = "open"
	LoanStatusClosed LoanStatus = "closed"
)

// LoanFilter narrows loan listings.
type LoanFilter struct {
	MemberID     string
	CopyCode     string
	Status       LoanStatus
	DueBefore    *time.Time
	Limit        int
	AfterStarted *time.Time
	AfterLoanID  string
}

// PhysicalCondition is the state a copy is returned in.
type PhysicalCondition string

const (
	ConditionGood    PhysicalCondition = "good"
	ConditionDamaged PhysicalCondition = "damaged"
	ConditionLost    PhysicalCondition = "lost"
)

// IsValid reports whether c is a known condition.
func (c PhysicalCondition) IsValid() bool {
	switch c {
	case ConditionGood, ConditionDamaged, ConditionLost:
		return true
	}
	return false
}

// ReturnResult is the outcome of closing a loan.
type ReturnResult struct {
	Loan        Loan      `json:"loan"`
	CopyState   CopyState `json:"copyState"`
	OverdueDays int       `json:"overdueDays"`
	Fines       []Fine    `json:"fines"`
}

// OverdueLoan is an open loan past its due date.
type OverdueLoan struct {
	Loan         Loan            `json:"loan"`
	OverdueDays  int             `json:"overdueDays"`
	EstimatedFee decimal.Decimal `json:"estimatedFee"`
}

// ReturnPreview shows what returning a loan today would charge.
type ReturnPreview struct {
	Loan             Loan            `json:"loan"`
	DaysElapsed      int             `json:"daysElapsed"`
	OverdueDays      int             `json:"overdueDays"`
	EstimatedLateFee decimal.Decimal `json:"estimatedLateFee"`
	MinFineAmount    decimal.Decimal `json:"minFineAmount"`
	MaxFineAmount    decimal.Decimal `json:"maxFineAmount"`
}
