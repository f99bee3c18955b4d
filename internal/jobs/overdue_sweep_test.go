package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ginagrosso/biblioteca/internal/core/domain"
	"github.com/ginagrosso/biblioteca/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockLoanReader struct {
	mock.Mock
}

func (m *mockLoanReader) GetLoan(ctx context.Context, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *mockLoanReader) ListLoans(ctx context.Context, params dto.ListLoansParams) (*dto.ListLoansResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListLoansResponse), args.Error(1)
}
func (m *mockLoanReader) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.OverdueLoan, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OverdueLoan), args.Error(1)
}
func (m *mockLoanReader) PreviewReturn(ctx context.Context, loanID string) (*domain.ReturnPreview, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReturnPreview), args.Error(1)
}
func (m *mockLoanReader) LoanReceipt(ctx context.Context, loanID string) (*domain.LoanReceipt, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanReceipt), args.Error(1)
}

func newTestSweep(loans *mockLoanReader, now time.Time) *OverdueSweep {
	sweep := NewOverdueSweep(loans, slog.New(slog.NewTextHandler(io.Discard, nil)))
	sweep.clock = func() time.Time { return now }
	return sweep
}

func TestOverdueSweep_RunOnce(t *testing.T) {
	now := time.Date(2024, 1, 10, 6, 0, 0, 0, time.UTC)
	loans := new(mockLoanReader)
	loans.On("ListOverdue", mock.Anything, now).Return([]domain.OverdueLoan{
		{Loan: domain.Loan{LoanID: "loan-1", MemberID: "member-1"}, OverdueDays: 9, EstimatedFee: decimal.RequireFromString("4.50")},
		{Loan: domain.Loan{LoanID: "loan-2", MemberID: "member-1"}, OverdueDays: 1, EstimatedFee: decimal.RequireFromString("0.50")},
		{Loan: domain.Loan{LoanID: "loan-3", MemberID: "member-2"}, OverdueDays: 2, EstimatedFee: decimal.RequireFromString("1.00")},
	}, nil).Once()

	report, err := newTestSweep(loans, now).RunOnce(context.Background())

	require.NoError(t, err)
	assert.Len(t, report.Loans, 3)
	assert.Equal(t, 2, report.MembersCount)
	assert.Equal(t, "6.00", report.TotalEstimate.StringFixed(2))
	loans.AssertExpectations(t)
}

func TestOverdueSweep_RunOnceError(t *testing.T) {
	now := time.Date(2024, 1, 10, 6, 0, 0, 0, time.UTC)
	loans := new(mockLoanReader)
	loans.On("ListOverdue", mock.Anything, now).Return(nil, errors.New("db down")).Once()

	_, err := newTestSweep(loans, now).RunOnce(context.Background())

	assert.Error(t, err)
}

func TestOverdueSweep_StartRejectsBadSchedule(t *testing.T) {
	sweep := newTestSweep(new(mockLoanReader), time.Now())

	err := sweep.Start("every tuesday")

	assert.Error(t, err)
}

func TestOverdueSweep_StartAndStop(t *testing.T) {
	sweep := newTestSweep(new(mockLoanReader), time.Now())
	require.NoError(t, sweep.Start("0 6 * * *"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	sweep.Stop(ctx)
}
