package services_test

import (
	"context"
	"time"

	"github.com/ginagrosso/biblioteca/internal/core/domain"
	portsrepo "github.com/ginagrosso/biblioteca/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// stubTx stands in for a pgx transaction. Repository mocks never touch it.
type stubTx struct {
	pgx.Tx
}

// --- Mock TransactionManager ---
type MockTxManager struct {
	mock.Mock
}

var _ portsrepo.TransactionManager = (*MockTxManager)(nil)

func (m *MockTxManager) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockTxManager) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTxManager) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// expectTx sets up a transaction that begins, may roll back and commits when commit is true.
func expectTx(m *MockTxManager, tx pgx.Tx, commit bool) {
	m.On("Begin", mock.Anything).Return(tx, nil).Once()
	m.On("Rollback", mock.Anything, tx).Return(nil).Maybe()
	if commit {
		m.On("Commit", mock.Anything, tx).Return(nil).Once()
	}
}

// --- Mock SequenceRepository ---
type MockSequenceRepository struct {
	mock.Mock
}

var _ portsrepo.SequenceRepository = (*MockSequenceRepository)(nil)

func (m *MockSequenceRepository) NextSequenceValueInTx(ctx context.Context, tx pgx.Tx, scope string) (int, error) {
	args := m.Called(ctx, tx, scope)
	return args.Int(0), args.Error(1)
}

// --- Mock BookRepository ---
type MockBookRepository struct {
	mock.Mock
}

var _ portsrepo.BookRepository = (*MockBookRepository)(nil)

func (m *MockBookRepository) FindBookByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	args := m.Called(ctx, isbn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockBookRepository) ListBooks(ctx context.Context, filter domain.BookFilter) ([]domain.Book, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Book), args.Error(1)
}

func (m *MockBookRepository) SaveBookInTx(ctx context.Context, tx pgx.Tx, book domain.Book) error {
	args := m.Called(ctx, tx, book)
	return args.Error(0)
}

func (m *MockBookRepository) FindBookByISBNForUpdate(ctx context.Context, tx pgx.Tx, isbn string) (*domain.Book, error) {
	args := m.Called(ctx, tx, isbn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockBookRepository) SetBookActiveInTx(ctx context.Context, tx pgx.Tx, isbn string, active bool, actorID string, now time.Time) error {
	args := m.Called(ctx, tx, isbn, active, actorID, now)
	return args.Error(0)
}

// --- Mock CopyRepository ---
type MockCopyRepository struct {
	mock.Mock
}

var _ portsrepo.CopyRepository = (*MockCopyRepository)(nil)

func (m *MockCopyRepository) FindCopyByCode(ctx context.Context, code string) (*domain.Copy, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Copy), args.Error(1)
}

func (m *MockCopyRepository) ListCopiesByISBN(ctx context.Context, isbn string) ([]domain.Copy, error) {
	args := m.Called(ctx, isbn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Copy), args.Error(1)
}

func (m *MockCopyRepository) CountAvailableCopies(ctx context.Context, isbn string) (int, error) {
	args := m.Called(ctx, isbn)
	return args.Int(0), args.Error(1)
}

func (m *MockCopyRepository) SaveCopyInTx(ctx context.Context, tx pgx.Tx, bookCopy domain.Copy) error {
	args := m.Called(ctx, tx, bookCopy)
	return args.Error(0)
}

func (m *MockCopyRepository) FindCopyByCodeForUpdate(ctx context.Context, tx pgx.Tx, code string) (*domain.Copy, error) {
	args := m.Called(ctx, tx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Copy), args.Error(1)
}

func (m *MockCopyRepository) UpdateCopyStateInTx(ctx context.Context, tx pgx.Tx, code string, state domain.CopyState, notes *string, actorID string, now time.Time) error {
	args := m.Called(ctx, tx, code, state, notes, actorID, now)
	return args.Error(0)
}

func (m *MockCopyRepository) SetCopyActiveInTx(ctx context.Context, tx pgx.Tx, code string, active bool, actorID string, now time.Time) error {
	args := m.Called(ctx, tx, code, active, actorID, now)
	return args.Error(0)
}

func (m *MockCopyRepository) DeactivateCopiesByISBNInTx(ctx context.Context, tx pgx.Tx, isbn string, actorID string, now time.Time) (int, error) {
	args := m.Called(ctx, tx, isbn, actorID, now)
	return args.Int(0), args.Error(1)
}

// --- Mock MemberRepository ---
type MockMemberRepository struct {
	mock.Mock
}

var _ portsrepo.MemberRepository = (*MockMemberRepository)(nil)

func (m *MockMemberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberRepository) FindMemberByNationalID(ctx context.Context, nationalID string) (*domain.Member, error) {
	args := m.Called(ctx, nationalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberRepository) ListMembers(ctx context.Context, limit int, offset int) ([]domain.Member, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}

func (m *MockMemberRepository) SaveMemberInTx(ctx context.Context, tx pgx.Tx, member domain.Member) error {
	args := m.Called(ctx, tx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) FindMemberByIDForUpdate(ctx context.Context, tx pgx.Tx, memberID string) (*domain.Member, error) {
	args := m.Called(ctx, tx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberRepository) SetMemberActiveInTx(ctx context.Context, tx pgx.Tx, memberID string, active bool, actorID string, now time.Time) error {
	args := m.Called(ctx, tx, memberID, active, actorID, now)
	return args.Error(0)
}

// --- Mock LoanRepository ---
type MockLoanRepository struct {
	mock.Mock
}

var _ portsrepo.LoanRepository = (*MockLoanRepository)(nil)

func (m *MockLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) ListLoans(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) ListOverdueLoans(ctx context.Context, dueBefore time.Time, limit int) ([]domain.Loan, error) {
	args := m.Called(ctx, dueBefore, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) SaveLoanInTx(ctx context.Context, tx pgx.Tx, loan domain.Loan) error {
	args := m.Called(ctx, tx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) FindLoanByIDForUpdate(ctx context.Context, tx pgx.Tx, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, tx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) CloseLoanInTx(ctx context.Context, tx pgx.Tx, loanID string, returnedAt time.Time, notes *string, actorID string) error {
	args := m.Called(ctx, tx, loanID, returnedAt, notes, actorID)
	return args.Error(0)
}

func (m *MockLoanRepository) CountOpenLoansByMemberInTx(ctx context.Context, tx pgx.Tx, memberID string) (int, error) {
	args := m.Called(ctx, tx, memberID)
	return args.Int(0), args.Error(1)
}

func (m *MockLoanRepository) HasOpenLoanForCopyInTx(ctx context.Context, tx pgx.Tx, code string) (bool, error) {
	args := m.Called(ctx, tx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockLoanRepository) CountOpenLoansByISBNInTx(ctx context.Context, tx pgx.Tx, isbn string) (int, error) {
	args := m.Called(ctx, tx, isbn)
	return args.Int(0), args.Error(1)
}

// --- Mock FineRepository ---
type MockFineRepository struct {
	mock.Mock
}

var _ portsrepo.FineRepository = (*MockFineRepository)(nil)

func (m *MockFineRepository) FindFineByID(ctx context.Context, fineID string) (*domain.Fine, error) {
	args := m.Called(ctx, fineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Fine), args.Error(1)
}

func (m *MockFineRepository) ListFines(ctx context.Context, filter domain.FineFilter) ([]domain.Fine, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Fine), args.Error(1)
}

func (m *MockFineRepository) GetFineBalance(ctx context.Context, memberID string) (domain.FineBalance, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).(domain.FineBalance), args.Error(1)
}

func (m *MockFineRepository) SaveFinesInTx(ctx context.Context, tx pgx.Tx, fines []domain.Fine) error {
	args := m.Called(ctx, tx, fines)
	return args.Error(0)
}

func (m *MockFineRepository) FindFineByIDForUpdate(ctx context.Context, tx pgx.Tx, fineID string) (*domain.Fine, error) {
	args := m.Called(ctx, tx, fineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Fine), args.Error(1)
}

func (m *MockFineRepository) MarkFinePaidInTx(ctx context.Context, tx pgx.Tx, fineID string, paidAt time.Time, actorID string) error {
	args := m.Called(ctx, tx, fineID, paidAt, actorID)
	return args.Error(0)
}

func (m *MockFineRepository) GetFineBalanceInTx(ctx context.Context, tx pgx.Tx, memberID string) (domain.FineBalance, error) {
	args := m.Called(ctx, tx, memberID)
	return args.Get(0).(domain.FineBalance), args.Error(1)
}

// --- Mock EventRepository ---
type MockEventRepository struct {
	mock.Mock
}

var _ portsrepo.EventRepository = (*MockEventRepository)(nil)

func (m *MockEventRepository) AppendEventsInTx(ctx context.Context, tx pgx.Tx, events []domain.CirculationEvent) error {
	args := m.Called(ctx, tx, events)
	return args.Error(0)
}

func (m *MockEventRepository) ListEvents(ctx context.Context, filter domain.EventFilter) ([]domain.CirculationEvent, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CirculationEvent), args.Error(1)
}

// --- Mock ReceiptRepository ---
type MockReceiptRepository struct {
	mock.Mock
}

var _ portsrepo.ReceiptRepository = (*MockReceiptRepository)(nil)

func (m *MockReceiptRepository) FindLoanReceipt(ctx context.Context, loanID string) (*domain.LoanReceipt, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanReceipt), args.Error(1)
}

func (m *MockReceiptRepository) FindFineReceipt(ctx context.Context, fineID string) (*domain.FineReceipt, error) {
	args := m.Called(ctx, fineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FineReceipt), args.Error(1)
}

// --- Mock LibrarianRepository ---
type MockLibrarianRepository struct {
	mock.Mock
}

var _ portsrepo.LibrarianRepository = (*MockLibrarianRepository)(nil)

func (m *MockLibrarianRepository) SaveLibrarian(ctx context.Context, librarian domain.Librarian) error {
	args := m.Called(ctx, librarian)
	return args.Error(0)
}

func (m *MockLibrarianRepository) FindLibrarianByID(ctx context.Context, librarianID string) (*domain.Librarian, error) {
	args := m.Called(ctx, librarianID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Librarian), args.Error(1)
}

func (m *MockLibrarianRepository) FindLibrarianByUsername(ctx context.Context, username string) (*domain.Librarian, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Librarian), args.Error(1)
}

// mockRepos bundles one mock per repository port.
type mockRepos struct {
	tx        *MockTxManager
	seq       *MockSequenceRepository
	book      *MockBookRepository
	copy      *MockCopyRepository
	member    *MockMemberRepository
	loan      *MockLoanRepository
	fine      *MockFineRepository
	event     *MockEventRepository
	receipt   *MockReceiptRepository
	librarian *MockLibrarianRepository
}

func newMockRepos() *mockRepos {
	return &mockRepos{
		tx:        new(MockTxManager),
		seq:       new(MockSequenceRepository),
		book:      new(MockBookRepository),
		copy:      new(MockCopyRepository),
		member:    new(MockMemberRepository),
		loan:      new(MockLoanRepository),
		fine:      new(MockFineRepository),
		event:     new(MockEventRepository),
		receipt:   new(MockReceiptRepository),
		librarian: new(MockLibrarianRepository),
	}
}

func (r *mockRepos) provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:     r.tx,
		SequenceRepo:  r.seq,
		BookRepo:      r.book,
		CopyRepo:      r.copy,
		MemberRepo:    r.member,
		LoanRepo:      r.loan,
		FineRepo:      r.fine,
		EventRepo:     r.event,
		ReceiptRepo:   r.receipt,
		LibrarianRepo: r.librarian,
	}
}

func (r *mockRepos) assertExpectations(t mock.TestingT) {
	r.tx.AssertExpectations(t)
	r.seq.AssertExpectations(t)
	r.book.AssertExpectations(t)
	r.copy.AssertExpectations(t)
	r.member.AssertExpectations(t)
	r.loan.AssertExpectations(t)
	r.fine.AssertExpectations(t)
	r.event.AssertExpectations(t)
	r.receipt.AssertExpectations(t)
	r.librarian.AssertExpectations(t)
}
