package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan is a row of the loans table. DueDate is a DATE column.
type Loan struct {
	LoanID     string     `db:"loan_id"`
	MemberID   string     `db:"member_id"`
	CopyCode   string     `db:"copy_code"`
	StartedAt  time.Time  `db:"started_at"`
	DueDate    time.Time  `db:"due_date"`
	ReturnedAt *time.Time `db:"returned_at"`
	Notes      *string    `db:"notes"`
	AuditFields
}

// Fine is a row of the fines table.
type Fine struct {
	FineID      string          `db:"fine_id"`
	MemberID    string          `db:"member_id"`
	LoanID      *string         `db:"loan_id"`
	Amount      decimal.Decimal `db:"amount"`
	Reason      string          `db:"reason"`
	Description string          `db:"description"`
	IssuedAt    time.Time       `db:"issued_at"`
	IsPaid      bool            `db:"is_paid"`
	PaidAt      *time.Time      `db:"paid_at"`
	AuditFields
}

// CirculationEvent is a row of the circulation_events table. Payload holds raw jsonb.
type CirculationEvent struct {
	EventID    string    `db:"event_id"`
	EventType  string    `db:"event_type"`
	MemberID   *string   `db:"member_id"`
	LoanID     *string   `db:"loan_id"`
	CopyCode   *string   `db:"copy_code"`
	FineID     *string   `db:"fine_id"`
	ISBN       *string   `db:"isbn"`
	ActorID    string    `db:"actor_id"`
	OccurredAt time.Time `db:"occurred_at"`
	Payload    []byte    `db:"payload"`
}
