package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/ginagrosso/biblioteca/internal/apperrors"
	"github.com/ginagrosso/biblioteca/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int {
	return &i
}

func TestPolicy_LateFee(t *testing.T) {
	p := domain.DefaultPolicy()

	assert.True(t, decimal.RequireFromString("2.50").Equal(p.LateFee(5)))
	assert.True(t, decimal.Zero.Equal(p.LateFee(0)))
	assert.True(t, decimal.Zero.Equal(p.LateFee(-3)))
	assert.Equal(t, "0.50", p.LateFee(1).StringFixed(2))
}

func TestPolicy_LoanDays(t *testing.T) {
	p := domain.DefaultPolicy()

	assert.Equal(t, 15, p.LoanDays(nil))
	assert.Equal(t, 1, p.LoanDays(intPtr(1)))
	assert.Equal(t, 90, p.LoanDays(intPtr(90)))
	assert.Equal(t, 15, p.LoanDays(intPtr(0)))
	assert.Equal(t, 15, p.LoanDays(intPtr(91)))
	assert.Equal(t, 15, p.LoanDays(intPtr(-4)))
}

func TestPolicy_DueDate(t *testing.T) {
	p := domain.DefaultPolicy()
	now := time.Date(2024, time.January, 1, 18, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, time.January, 16, 0, 0, 0, 0, time.UTC), p.DueDate(now, nil))
	assert.Equal(t, time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC), p.DueDate(now, intPtr(7)))
}

func TestPolicy_ValidateAmount(t *testing.T) {
	p := domain.DefaultPolicy()

	tests := []struct {
		name   string
		raw    string
		want   string
		reason apperrors.AmountIssue
	}{
		{name: "valid with cents", raw: "100.50", want: "100.5"},
		{name: "valid integer", raw: "25", want: "25"},
		{name: "valid with surrounding spaces", raw: "  3.75 ", want: "3.75"},
		{name: "minimum accepted", raw: "0.01", want: "0.01"},
		{name: "maximum accepted", raw: "100000.00", want: "100000"},
		{name: "empty", raw: "", reason: apperrors.AmountEmpty},
		{name: "blank", raw: "   ", reason: apperrors.AmountEmpty},
		{name: "letters", raw: "abc", reason: apperrors.AmountMalformed},
		{name: "letters and digits", raw: "abc123", reason: apperrors.AmountMalformed},
		{name: "scientific notation", raw: "1e3", reason: apperrors.AmountMalformed},
		{name: "too many decimals", raw: "1.005", reason: apperrors.AmountMalformed},
		{name: "zero", raw: "0", reason: apperrors.BelowMinimum},
		{name: "negative", raw: "-5", reason: apperrors.BelowMinimum},
		{name: "too large", raw: "10000000", reason: apperrors.AboveMaximum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.ValidateAmount(tt.raw)
			if tt.reason == "" {
				require.NoError(t, err)
				assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
			var amountErr *apperrors.InvalidAmountError
			require.True(t, errors.As(err, &amountErr))
			assert.Equal(t, tt.reason, amountErr.Reason)
		})
	}
}

func TestPolicy_ValidateAmountBoundsInMessage(t *testing.T) {
	p := domain.DefaultPolicy()

	_, err := p.ValidateAmount("0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "0.01")

	_, err = p.ValidateAmount("10000000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "100000.00")
}

func TestPolicy_CheckLoanEligibilityOrder(t *testing.T) {
	p := domain.DefaultPolicy()
	okMember := domain.Member{MemberID: "m-1", IsActive: true}
	okCopy := domain.Copy{Code: "EJ-1-001", State: domain.CopyAvailable, IsActive: true}

	tests := []struct {
		name    string
		e       domain.LoanEligibility
		wantErr error
	}{
		{
			name: "eligible",
			e:    domain.LoanEligibility{Member: okMember, Copy: okCopy, Outstanding: decimal.Zero, OpenLoans: 2},
		},
		{
			name: "inactive member wins over everything else",
			e: domain.LoanEligibility{
				Member:      domain.Member{IsActive: false},
				Copy:        domain.Copy{State: domain.CopyLost},
				Outstanding: decimal.NewFromInt(10),
				OpenLoans:   5,
			},
			wantErr: apperrors.ErrMemberInactive,
		},
		{
			name: "fines before copy state",
			e: domain.LoanEligibility{
				Member:      okMember,
				Copy:        domain.Copy{State: domain.CopyLoaned, IsActive: true},
				Outstanding: decimal.RequireFromString("2.50"),
				OpenLoans:   5,
			},
			wantErr: apperrors.ErrOutstandingFines,
		},
		{
			name:    "copy state before loan limit",
			e:       domain.LoanEligibility{Member: okMember, Copy: domain.Copy{State: domain.CopyMaintenance, IsActive: true}, OpenLoans: 5},
			wantErr: apperrors.ErrCopyUnavailable,
		},
		{
			name:    "inactive copy is unavailable",
			e:       domain.LoanEligibility{Member: okMember, Copy: domain.Copy{State: domain.CopyAvailable, IsActive: false}},
			wantErr: apperrors.ErrCopyUnavailable,
		},
		{
			name:    "loan limit",
			e:       domain.LoanEligibility{Member: okMember, Copy: okCopy, OpenLoans: 3},
			wantErr: apperrors.ErrLoanLimitExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.CheckLoanEligibility(tt.e)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPolicy_CheckLoanEligibilityDetails(t *testing.T) {
	p := domain.DefaultPolicy()
	member := domain.Member{IsActive: true}

	err := p.CheckLoanEligibility(domain.LoanEligibility{Member: member, Outstanding: decimal.RequireFromString("7.25")})
	var finesErr *apperrors.OutstandingFinesError
	require.True(t, errors.As(err, &finesErr))
	assert.Equal(t, "7.25", finesErr.Amount.StringFixed(2))

	err = p.CheckLoanEligibility(domain.LoanEligibility{Member: member, Copy: domain.Copy{State: domain.CopyLost, IsActive: true}})
	var copyErr *apperrors.CopyUnavailableError
	require.True(t, errors.As(err, &copyErr))
	assert.Equal(t, "lost", copyErr.State)

	err = p.CheckLoanEligibility(domain.LoanEligibility{Member: member, Copy: domain.Copy{State: domain.CopyAvailable, IsActive: true}, OpenLoans: 3})
	var limitErr *apperrors.LoanLimitError
	require.True(t, errors.As(err, &limitErr))
	assert.Equal(t, 3, limitErr.Limit)
}

func TestPolicy_Validate(t *testing.T) {
	assert.NoError(t, domain.DefaultPolicy().Validate())

	p := domain.DefaultPolicy()
	p.MaxFineAmount = decimal.RequireFromString("0.001")
	assert.ErrorIs(t, p.Validate(), apperrors.ErrValidation)

	p = domain.DefaultPolicy()
	p.DefaultLoanDays = 0
	assert.ErrorIs(t, p.Validate(), apperrors.ErrValidation)

	p = domain.DefaultPolicy()
	p.MaxSimultaneousLoans = 0
	assert.ErrorIs(t, p.Validate(), apperrors.ErrValidation)
}
