package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/ginagrosso/biblioteca/internal/apperrors"
	"github.com/ginagrosso/biblioteca/internal/core/domain"
	portssvc "github.com/ginagrosso/biblioteca/internal/core/ports/services"
	"github.com/ginagrosso/biblioteca/internal/core/services"
	"github.com/ginagrosso/biblioteca/internal/dto"
	"github.com/ginagrosso/biblioteca/internal/utils/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type FineServiceTestSuite struct {
	suite.Suite
	repos   *mockRepos
	tx      *stubTx
	now     time.Time
	service portssvc.FineSvcFacade
	ctx     context.Context
	actorID string
}

func (s *FineServiceTestSuite) SetupTest() {
	s.repos = newMockRepos()
	s.tx = &stubTx{}
	s.now = time.Date(2024, 2, 10, 9, 30, 0, 0, time.UTC)
	s.ctx = context.Background()
	s.actorID = "librarian-1"
	s.service = services.NewFineService(s.repos.provider(), domain.DefaultPolicy(), services.WithClock(func() time.Time { return s.now }))
}

func (s *FineServiceTestSuite) TearDownTest() {
	s.repos.assertExpectations(s.T())
}

func TestFineService(t *testing.T) {
	suite.Run(t, new(FineServiceTestSuite))
}

func (s *FineServiceTestSuite) TestComputeLateFee() {
	s.Equal("2.50", s.service.ComputeLateFee(5).StringFixed(2))
	s.True(s.service.ComputeLateFee(0).IsZero())
	s.True(s.service.ComputeLateFee(-3).IsZero())
}

func (s *FineServiceTestSuite) TestMarkPaid_Success() {
	fineID := "fine-1"
	loanID := "loan-1"
	expectTx(s.repos.tx, s.tx, true)
	s.repos.fine.On("FindFineByIDForUpdate", mock.Anything, s.tx, fineID).Return(&domain.Fine{
		FineID:   fineID,
		MemberID: "member-1",
		LoanID:   &loanID,
		Amount:   decimal.RequireFromString("2.50"),
	}, nil).Once()
	s.repos.fine.On("MarkFinePaidInTx", mock.Anything, s.tx, fineID, s.now, s.actorID).Return(nil).Once()
	s.repos.event.On("AppendEventsInTx", mock.Anything, s.tx, mock.MatchedBy(func(events []domain.CirculationEvent) bool {
		return len(events) == 1 && events[0].Type == domain.EventFinePaid && events[0].LoanID == loanID
	})).Return(nil).Once()

	fine, err := s.service.MarkPaid(s.ctx, fineID, s.actorID)

	s.Require().NoError(err)
	s.True(fine.IsPaid)
	s.Require().NotNil(fine.PaidAt)
	s.Equal(s.now, *fine.PaidAt)
}

func (s *FineServiceTestSuite) TestMarkPaid_AlreadyPaid() {
	fineID := "fine-1"
	paidAt := s.now.Add(-time.Hour)
	expectTx(s.repos.tx, s.tx, false)
	s.repos.fine.On("FindFineByIDForUpdate", mock.Anything, s.tx, fineID).
		Return(&domain.Fine{FineID: fineID, IsPaid: true, PaidAt: &paidAt}, nil).Once()

	_, err := s.service.MarkPaid(s.ctx, fineID, s.actorID)

	s.ErrorIs(err, apperrors.ErrAlreadyPaid)
	s.repos.fine.AssertNotCalled(s.T(), "MarkFinePaidInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *FineServiceTestSuite) TestMarkPaid_NotFound() {
	expectTx(s.repos.tx, s.tx, false)
	s.repos.fine.On("FindFineByIDForUpdate", mock.Anything, s.tx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.MarkPaid(s.ctx, "ghost", s.actorID)

	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *FineServiceTestSuite) TestIssueFine_Success() {
	memberID := "member-1"
	expectTx(s.repos.tx, s.tx, true)
	s.repos.member.On("FindMemberByID", mock.Anything, memberID).Return(&domain.Member{MemberID: memberID}, nil).Once()
	s.repos.fine.On("SaveFinesInTx", mock.Anything, s.tx, mock.MatchedBy(func(fines []domain.Fine) bool {
		return len(fines) == 1 &&
			fines[0].Reason == domain.FineOther &&
			fines[0].Amount.Equal(decimal.RequireFromString("15.50")) &&
			fines[0].LoanID == nil
	})).Return(nil).Once()
	s.repos.event.On("AppendEventsInTx", mock.Anything, s.tx, mock.Anything).Return(nil).Once()

	fine, err := s.service.IssueFine(s.ctx, dto.IssueFineRequest{
		MemberID:    memberID,
		Reason:      "other",
		Amount:      "15.50",
		Description: "Lost library card",
	}, s.actorID)

	s.Require().NoError(err)
	s.False(fine.IsPaid)
}

func (s *FineServiceTestSuite) TestIssueFine_InvalidAmount() {
	tests := []struct {
		name   string
		amount string
		reason apperrors.AmountIssue
	}{
		{"empty", "  ", apperrors.AmountEmpty},
		{"letters", "abc", apperrors.AmountMalformed},
		{"too many decimals", "1.005", apperrors.AmountMalformed},
		{"zero", "0", apperrors.BelowMinimum},
		{"huge", "100000.01", apperrors.AboveMaximum},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.service.IssueFine(s.ctx, dto.IssueFineRequest{
				MemberID:    "member-1",
				Reason:      "damage",
				Amount:      tt.amount,
				Description: "Torn cover",
			}, s.actorID)

			var amountErr *apperrors.InvalidAmountError
			s.Require().ErrorAs(err, &amountErr)
			s.Equal(tt.reason, amountErr.Reason)
		})
	}
	s.repos.tx.AssertNotCalled(s.T(), "Begin", mock.Anything)
}

func (s *FineServiceTestSuite) TestIssueFine_LoanOfAnotherMember() {
	loanID := "loan-9"
	s.repos.member.On("FindMemberByID", mock.Anything, "member-1").Return(&domain.Member{MemberID: "member-1"}, nil).Once()
	s.repos.loan.On("FindLoanByID", mock.Anything, loanID).Return(&domain.Loan{LoanID: loanID, MemberID: "member-2"}, nil).Once()

	_, err := s.service.IssueFine(s.ctx, dto.IssueFineRequest{
		MemberID:    "member-1",
		LoanID:      &loanID,
		Reason:      "damage",
		Amount:      "10",
		Description: "Torn cover",
	}, s.actorID)

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *FineServiceTestSuite) TestListFines_RejectsUnknownReason() {
	_, err := s.service.ListFines(s.ctx, dto.ListFinesParams{Reason: "parking"})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *FineServiceTestSuite) TestListFines_MalformedIDs() {
	tests := []struct {
		name   string
		params dto.ListFinesParams
	}{
		{"member filter", dto.ListFinesParams{MemberID: "foo"}},
		{"loan filter", dto.ListFinesParams{LoanID: "L-1"}},
		{"cursor key", dto.ListFinesParams{NextToken: pagination.EncodeToken(s.now, "xyz")}},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.service.ListFines(s.ctx, tt.params)
			s.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	s.repos.fine.AssertNotCalled(s.T(), "ListFines", mock.Anything, mock.Anything)
}

func (s *FineServiceTestSuite) TestListFines_UnpaidOnly() {
	memberID := "6f1c2a4e-8d1b-4c3a-9f2e-1a2b3c4d5e6f"
	s.repos.fine.On("ListFines", mock.Anything, domain.FineFilter{MemberID: memberID, UnpaidOnly: true, Limit: 21}).
		Return([]domain.Fine{{FineID: "fine-1"}}, nil).Once()

	resp, err := s.service.ListFines(s.ctx, dto.ListFinesParams{MemberID: memberID, UnpaidOnly: true, Limit: 20})

	s.Require().NoError(err)
	s.Len(resp.Fines, 1)
	s.Nil(resp.NextToken)
}

func (s *FineServiceTestSuite) TestFineReceipt() {
	title := "Rayuela"
	s.repos.receipt.On("FindFineReceipt", mock.Anything, "fine-1").
		Return(&domain.FineReceipt{Fine: domain.Fine{FineID: "fine-1"}, MemberName: "Socio", BookTitle: &title}, nil).Once()

	receipt, err := s.service.FineReceipt(s.ctx, "fine-1")

	s.Require().NoError(err)
	s.Equal("Socio", receipt.MemberName)
	s.Equal("Rayuela", *receipt.BookTitle)
}

func (s *FineServiceTestSuite) TestFineReceipt_NotFound() {
	s.repos.receipt.On("FindFineReceipt", mock.Anything, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.FineReceipt(s.ctx, "ghost")

	s.ErrorIs(err, apperrors.ErrNotFound)
}
