package pgsql

import (
	portsrepo "github.com/ginagrosso/biblioteca/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
)

// NewRepositoryProvider wires every repository over the shared pool. db serves
// the read-only receipt joins.
func NewRepositoryProvider(dbPool *pgxpool.Pool, db *sqlx.DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:     &BaseRepository{Pool: dbPool},
		SequenceRepo:  newPgxSequenceRepository(),
		BookRepo:      newPgxBookRepository(dbPool),
		CopyRepo:      newPgxCopyRepository(dbPool),
		MemberRepo:    newPgxMemberRepository(dbPool),
		LoanRepo:      newPgxLoanRepository(dbPool),
		FineRepo:      newPgxFineRepository(dbPool),
		EventRepo:     newPgxEventRepository(dbPool),
		ReceiptRepo:   newSqlxReceiptRepository(db),
		LibrarianRepo: newPgxLibrarianRepository(dbPool),
	}
}
