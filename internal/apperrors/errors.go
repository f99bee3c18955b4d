package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the resource is in a state that blocks the requested change.
var ErrConflict = errors.New("conflicting resource state")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrStorage indicates an unexpected failure of the data store.
var ErrStorage = errors.New("storage error")

// Circulation rule failures.
var (
	ErrMemberInactive    = errors.New("member is not active")
	ErrOutstandingFines  = errors.New("member has outstanding fines")
	ErrCopyUnavailable   = errors.New("copy is not available")
	ErrLoanLimitExceeded = errors.New("loan limit exceeded")
	ErrAlreadyReturned   = errors.New("loan already returned")
	ErrAlreadyPaid       = errors.New("fine already paid")
	ErrInvalidAmount     = errors.New("invalid amount")
)

// OutstandingFinesError carries the unpaid total that blocked a loan.
type OutstandingFinesError struct {
	Amount decimal.Decimal
}

func (e *OutstandingFinesError) Error() string {
	return fmt.Sprintf("member has outstanding fines totalling %s", e.Amount.StringFixed(2))
}

func (e *OutstandingFinesError) Unwrap() error { return ErrOutstandingFines }

// CopyUnavailableError carries the state of the copy that could not be lent.
type CopyUnavailableError struct {
	Code  string
	State string
}

func (e *CopyUnavailableError) Error() string {
	return fmt.Sprintf("copy %s is not available (state: %s)", e.Code, e.State)
}

func (e *CopyUnavailableError) Unwrap() error { return ErrCopyUnavailable }

// LoanLimitError carries the configured maximum of simultaneous loans.
type LoanLimitError struct {
	Limit int
}

func (e *LoanLimitError) Error() string {
	return fmt.Sprintf("member already holds the maximum of %d open loans", e.Limit)
}

func (e *LoanLimitError) Unwrap() error { return ErrLoanLimitExceeded }

// AmountIssue names the reason a monetary amount was rejected.
type AmountIssue string

const (
	AmountEmpty     AmountIssue = "AmountEmpty"
	AmountMalformed AmountIssue = "AmountMalformed"
	BelowMinimum    AmountIssue = "BelowMinimum"
	AboveMaximum    AmountIssue = "AboveMaximum"
)

// InvalidAmountError is returned when a fine amount fails validation.
// Bound is set for BelowMinimum and AboveMaximum.
type InvalidAmountError struct {
	Reason AmountIssue
	Bound  *decimal.Decimal
	Input  string
}

func (e *InvalidAmountError) Error() string {
	switch e.Reason {
	case AmountEmpty:
		return "amount cannot be empty"
	case BelowMinimum:
		return fmt.Sprintf("amount must be at least %s", e.Bound.StringFixed(2))
	case AboveMaximum:
		return fmt.Sprintf("amount is too large, maximum is %s", e.Bound.StringFixed(2))
	default:
		return fmt.Sprintf("amount %q is not a valid monetary value", e.Input)
	}
}

func (e *InvalidAmountError) Unwrap() error { return ErrInvalidAmount }

// AppError wraps an unexpected failure with an HTTP-ish status code.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError. A 5xx code marks it as a storage failure.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Code >= http.StatusInternalServerError {
		errs = append(errs, ErrStorage)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewStorageError wraps a data store failure.
func NewStorageError(message string, err error) *AppError {
	return NewAppError(http.StatusInternalServerError, message, err)
}
