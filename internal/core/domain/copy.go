package domain

import (
	"fmt"
	"time"
)

// CopyState is the physical/availability state of a copy.
type CopyState string

const (
	CopyAvailable   CopyState = "available"
	CopyLoaned      CopyState = "loaned"
	CopyMaintenance CopyState = "maintenance"
	CopyLost        CopyState = "lost"
)

// IsValid reports whether s is a known copy state.
func (s CopyState) IsValid() bool {
	switch s {
	case CopyAvailable, CopyLoaned, CopyMaintenance, CopyLost:
		return true
	}
	return false
}

// Copy is a physical unit of a Book.
type Copy struct {
	Code       string    `json:"code"`
	ISBN       string    `json:"isbn"`
	State      CopyState `json:"state"`
	AcquiredAt time.Time `json:"acquiredAt"`
	Notes      *string   `json:"notes,omitempty"`
	IsActive   bool      `json:"isActive"`
	AuditFields
}

// IsAvailable reports whether the copy can be lent right now.
func (c Copy) IsAvailable() bool {
	return c.State == CopyAvailable && c.IsActive
}

// CopyCode builds the code of the seq-th copy of a book.
func CopyCode(isbn string, seq int) string {
	return fmt.Sprintf("EJ-%s-%03d", isbn, seq)
}

// CopySequenceScope is the counter scope used to number copies of a book.
func CopySequenceScope(isbn string) string {
	return "copy:" + isbn
}
