package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ginagrosso/biblioteca/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Policy holds the circulation rules. It is built once at startup and
// passed by value to the services that need it.
type Policy struct {
	DailyLateRate        decimal.Decimal
	DefaultLoanDays      int
	MaxLoanDays          int
	MaxSimultaneousLoans int
	MinFineAmount        decimal.Decimal
	MaxFineAmount        decimal.Decimal
	LateFeeOnLoss        bool
	Location             *time.Location
}

// DefaultPolicy returns the stock circulation rules.
func DefaultPolicy() Policy {
	return Policy{
		DailyLateRate:        decimal.RequireFromString("0.50"),
		DefaultLoanDays:      15,
		MaxLoanDays:          90,
		MaxSimultaneousLoans: 3,
		MinFineAmount:        decimal.RequireFromString("0.01"),
		MaxFineAmount:        decimal.RequireFromString("100000.00"),
		Location:             time.UTC,
	}
}

// Validate checks that the rules are internally consistent.
func (p Policy) Validate() error {
	switch {
	case p.DailyLateRate.IsNegative():
		return fmt.Errorf("%w: daily late rate cannot be negative", apperrors.ErrValidation)
	case p.DefaultLoanDays < 1 || p.DefaultLoanDays > p.MaxLoanDays:
		return fmt.Errorf("%w: default loan days must be between 1 and %d", apperrors.ErrValidation, p.MaxLoanDays)
	case p.MaxSimultaneousLoans < 1:
		return fmt.Errorf("%w: max simultaneous loans must be positive", apperrors.ErrValidation)
	case !p.MinFineAmount.IsPositive():
		return fmt.Errorf("%w: minimum fine amount must be positive", apperrors.ErrValidation)
	case p.MaxFineAmount.LessThan(p.MinFineAmount):
		return fmt.Errorf("%w: maximum fine amount is below the minimum", apperrors.ErrValidation)
	}
	return nil
}

func (p Policy) location() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

// Today returns the library's calendar date for now.
func (p Policy) Today(now time.Time) time.Time {
	return CivilDate(now, p.location())
}

// LoanDays returns the requested period if it is within [1, MaxLoanDays],
// otherwise the default period.
func (p Policy) LoanDays(requested *int) int {
	if requested == nil || *requested < 1 || *requested > p.MaxLoanDays {
		return p.DefaultLoanDays
	}
	return *requested
}

// DueDate computes the due date of a loan started at now.
func (p Policy) DueDate(now time.Time, requested *int) time.Time {
	return p.Today(now).AddDate(0, 0, p.LoanDays(requested))
}

// OverdueDays is Loan.OverdueDays evaluated in the library's time zone.
func (p Policy) OverdueDays(loan Loan, now time.Time) int {
	return loan.OverdueDays(now, p.location())
}

// LateFee is the daily rate times the overdue days.
func (p Policy) LateFee(overdueDays int) decimal.Decimal {
	if overdueDays <= 0 {
		return decimal.Zero
	}
	return p.DailyLateRate.Mul(decimal.NewFromInt(int64(overdueDays))).Round(2)
}

var amountPattern = regexp.MustCompile(`^-?\d+(\.\d{1,2})?$`)

// ValidateAmount parses a librarian-entered amount and checks it against
// the configured bounds.
func (p Policy) ValidateAmount(raw string) (decimal.Decimal, error) {
	input := strings.TrimSpace(raw)
	if input == "" {
		return decimal.Zero, &apperrors.InvalidAmountError{Reason: apperrors.AmountEmpty, Input: raw}
	}
	if !amountPattern.MatchString(input) {
		return decimal.Zero, &apperrors.InvalidAmountError{Reason: apperrors.AmountMalformed, Input: raw}
	}
	amount, err := decimal.NewFromString(input)
	if err != nil {
		return decimal.Zero, &apperrors.InvalidAmountError{Reason: apperrors.AmountMalformed, Input: raw}
	}
	if amount.LessThan(p.MinFineAmount) {
		bound := p.MinFineAmount
		return decimal.Zero, &apperrors.InvalidAmountError{Reason: apperrors.BelowMinimum, Bound: &bound, Input: raw}
	}
	if amount.GreaterThan(p.MaxFineAmount) {
		bound := p.MaxFineAmount
		return decimal.Zero, &apperrors.InvalidAmountError{Reason: apperrors.AboveMaximum, Bound: &bound, Input: raw}
	}
	return amount, nil
}

// LoanEligibility is what PlaceLoan knows once member and copy are loaded.
type LoanEligibility struct {
	Member      Member
	Copy        Copy
	Outstanding decimal.Decimal
	OpenLoans   int
}

// CheckLoanEligibility applies the lending rules in order and returns the
// first one that fails.
func (p Policy) CheckLoanEligibility(e LoanEligibility) error {
	if !e.Member.IsActive {
		return fmt.Errorf("%w: member %s", apperrors.ErrMemberInactive, e.Member.MemberNumber)
	}
	if e.Outstanding.IsPositive() {
		return &apperrors.OutstandingFinesError{Amount: e.Outstanding}
	}
	if !e.Copy.IsAvailable() {
		return &apperrors.CopyUnavailableError{Code: e.Copy.Code, State: string(e.Copy.State)}
	}
	if e.OpenLoans >= p.MaxSimultaneousLoans {
		return &apperrors.LoanLimitError{Limit: p.MaxSimultaneousLoans}
	}
	return nil
}
