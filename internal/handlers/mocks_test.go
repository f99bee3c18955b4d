package handlers_test

import (
	"context"
	"time"

	"github.com/ginagrosso/biblioteca/internal/core/domain"
	portssvc "github.com/ginagrosso/biblioteca/internal/core/ports/services"
	"github.com/ginagrosso/biblioteca/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock CatalogService ---
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) RegisterBook(ctx context.Context, req dto.RegisterBookRequest, actorID string) (*domain.Book, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}
func (m *MockCatalogService) GetBook(ctx context.Context, isbn string) (*domain.Book, error) {
	args := m.Called(ctx, isbn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}
func (m *MockCatalogService) ListBooks(ctx context.Context, params dto.ListBooksParams) (*dto.ListBooksResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListBooksResponse), args.Error(1)
}
func (m *MockCatalogService) DeactivateBook(ctx context.Context, isbn string, actorID string) error {
	return m.Called(ctx, isbn, actorID).Error(0)
}
func (m *MockCatalogService) ReactivateBook(ctx context.Context, isbn string, actorID string) error {
	return m.Called(ctx, isbn, actorID).Error(0)
}
func (m *MockCatalogService) RegisterCopy(ctx context.Context, isbn string, req dto.RegisterCopyRequest, actorID string) (*domain.Copy, error) {
	args := m.Called(ctx, isbn, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Copy), args.Error(1)
}
func (m *MockCatalogService) GetCopy(ctx context.Context, code string) (*domain.Copy, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Copy), args.Error(1)
}
func (m *MockCatalogService) ListCopies(ctx context.Context, isbn string) ([]domain.Copy, error) {
	args := m.Called(ctx, isbn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Copy), args.Error(1)
}
func (m *MockCatalogService) CountAvailable(ctx context.Context, isbn string) (int, error) {
	args := m.Called(ctx, isbn)
	return args.Int(0), args.Error(1)
}
func (m *MockCatalogService) SetCopyState(ctx context.Context, code string, state domain.CopyState, actorID string) (*domain.Copy, error) {
	args := m.Called(ctx, code, state, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Copy), args.Error(1)
}
func (m *MockCatalogService) DeactivateCopy(ctx context.Context, code string, actorID string) error {
	return m.Called(ctx, code, actorID).Error(0)
}
func (m *MockCatalogService) ReactivateCopy(ctx context.Context, code string, actorID string) error {
	return m.Called(ctx, code, actorID).Error(0)
}

var _ portssvc.CatalogSvcFacade = (*MockCatalogService)(nil)

// --- Mock MembershipService ---
type MockMembershipService struct {
	mock.Mock
}

func (m *MockMembershipService) GetMember(ctx context.Context, memberID string) (*domain.Member, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockMembershipService) ListMembers(ctx context.Context, params dto.ListMembersParams) ([]domain.Member, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}
func (m *MockMembershipService) HasOutstandingFines(ctx context.Context, memberID string) (bool, error) {
	args := m.Called(ctx, memberID)
	return args.Bool(0), args.Error(1)
}
func (m *MockMembershipService) TotalOutstanding(ctx context.Context, memberID string) (decimal.Decimal, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockMembershipService) FineBalance(ctx context.Context, memberID string) (domain.FineBalance, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).(domain.FineBalance), args.Error(1)
}
func (m *MockMembershipService) ActiveLoans(ctx context.Context, memberID string) ([]domain.Loan, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}
func (m *MockMembershipService) MemberHistory(ctx context.Context, memberID string, limit int) ([]domain.CirculationEvent, error) {
	args := m.Called(ctx, memberID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CirculationEvent), args.Error(1)
}
func (m *MockMembershipService) RegisterMember(ctx context.Context, req dto.RegisterMemberRequest, actorID string) (*domain.Member, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockMembershipService) DeactivateMember(ctx context.Context, memberID string, actorID string) error {
	return m.Called(ctx, memberID, actorID).Error(0)
}
func (m *MockMembershipService) ReactivateMember(ctx context.Context, memberID string, actorID string) error {
	return m.Called(ctx, memberID, actorID).Error(0)
}

var _ portssvc.MembershipSvcFacade = (*MockMembershipService)(nil)

// --- Mock LoanService ---
type MockLoanService struct {
	mock.Mock
}

func (m *MockLoanService) GetLoan(ctx context.Context, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanService) ListLoans(ctx context.Context, params dto.ListLoansParams) (*dto.ListLoansResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListLoansResponse), args.Error(1)
}
func (m *MockLoanService) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.OverdueLoan, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OverdueLoan), args.Error(1)
}
func (m *MockLoanService) PreviewReturn(ctx context.Context, loanID string) (*domain.ReturnPreview, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReturnPreview), args.Error(1)
}
func (m *MockLoanService) LoanReceipt(ctx context.Context, loanID string) (*domain.LoanReceipt, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanReceipt), args.Error(1)
}
func (m *MockLoanService) PlaceLoan(ctx context.Context, req dto.PlaceLoanRequest, actorID string) (*domain.Loan, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanService) ReturnLoan(ctx context.Context, loanID string, req dto.ReturnLoanRequest, actorID string) (*domain.ReturnResult, error) {
	args := m.Called(ctx, loanID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReturnResult), args.Error(1)
}

var _ portssvc.LoanSvcFacade = (*MockLoanService)(nil)

// --- Mock FineService ---
type MockFineService struct {
	mock.Mock
}

func (m *MockFineService) ComputeLateFee(overdueDays int) decimal.Decimal {
	return m.Called(overdueDays).Get(0).(decimal.Decimal)
}
func (m *MockFineService) ValidateAmount(raw string) (decimal.Decimal, error) {
	args := m.Called(raw)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockFineService) GetFine(ctx context.Context, fineID string) (*domain.Fine, error) {
	args := m.Called(ctx, fineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Fine), args.Error(1)
}
func (m *MockFineService) ListFines(ctx context.Context, params dto.ListFinesParams) (*dto.ListFinesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListFinesResponse), args.Error(1)
}
func (m *MockFineService) FineReceipt(ctx context.Context, fineID string) (*domain.FineReceipt, error) {
	args := m.Called(ctx, fineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FineReceipt), args.Error(1)
}
func (m *MockFineService) IssueFine(ctx context.Context, req dto.IssueFineRequest, actorID string) (*domain.Fine, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Fine), args.Error(1)
}
func (m *MockFineService) MarkPaid(ctx context.Context, fineID string, actorID string) (*domain.Fine, error) {
	args := m.Called(ctx, fineID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Fine), args.Error(1)
}

var _ portssvc.FineSvcFacade = (*MockFineService)(nil)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoginResponse), args.Error(1)
}
func (m *MockAuthService) CreateLibrarian(ctx context.Context, req dto.CreateLibrarianRequest, actorID string) (*domain.Librarian, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Librarian), args.Error(1)
}
func (m *MockAuthService) GetLibrarian(ctx context.Context, librarianID string) (*domain.Librarian, error) {
	args := m.Called(ctx, librarianID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Librarian), args.Error(1)
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)
