package domain

import "time"

// EventType names a circulation change.
type EventType string

const (
	EventBookRegistered    EventType = "book_registered"
	EventBookDeactivated   EventType = "book_deactivated"
	EventBookReactivated   EventType = "book_reactivated"
	EventCopyRegistered    EventType = "copy_registered"
	EventCopyStateChanged  EventType = "copy_state_changed"
	EventCopyDeactivated   EventType = "copy_deactivated"
	EventCopyReactivated   EventType = "copy_reactivated"
	EventMemberRegistered  EventType = "member_registered"
	EventMemberDeactivated EventType = "member_deactivated"
	EventMemberReactivated EventType = "member_reactivated"
	EventLoanPlaced        EventType = "loan_placed"
	EventLoanReturned      EventType = "loan_returned"
	EventFineAssessed      EventType = "fine_assessed"
	EventFinePaid          EventType = "fine_paid"
)

// CirculationEvent is an append-only record of a state change, written in
// the same transaction as the change itself.
type CirculationEvent struct {
	EventID    string         `json:"eventID"`
	Type       EventType      `json:"type"`
	MemberID   string         `json:"memberID,omitempty"`
	LoanID     string         `json:"loanID,omitempty"`
	CopyCode   string         `json:"copyCode,omitempty"`
	FineID     string         `json:"fineID,omitempty"`
	ISBN       string         `json:"isbn,omitempty"`
	ActorID    string         `json:"actorID"`
	OccurredAt time.Time      `json:"occurredAt"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// EventFilter narrows event listings.
type EventFilter struct {
	MemberID string
	LoanID   string
	CopyCode string
	Types    []EventType
	Limit    int
}
