package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager     TransactionManager
	SequenceRepo  SequenceRepository
	BookRepo      BookRepository
	CopyRepo      CopyRepository
	MemberRepo    MemberRepository
	LoanRepo      LoanRepository
	FineRepo      FineRepository
	EventRepo     EventRepository
	ReceiptRepo   ReceiptRepository
	LibrarianRepo LibrarianRepository
}
