package pgsql

import (
	"context"
	"fmt"

	"github.com/ginagrosso/biblioteca/internal/apperrors"
	"github.com/ginagrosso/biblioteca/internal/core/domain"
	portsrepo "github.com/ginagrosso/biblioteca/internal/core/ports/repositories"
	"github.com/ginagrosso/biblioteca/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLibrarianRepository struct {
	db *pgxpool.Pool
}

func newPgxLibrarianRepository(db *pgxpool.Pool) portsrepo.LibrarianRepository {
	return &PgxLibrarianRepository{db: db}
}

var _ portsrepo.LibrarianRepository = (*PgxLibrarianRepository)(nil)

const selectLibrarianSQL = `
	SELECT librarian_id, username, name, password_hash, is_active,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM librarians
`

func scanLibrarian(row pgx.Row) (models.Librarian, error) {
	var m models.Librarian
	err := row.Scan(
		&m.LibrarianID,
		&m.Username,
		&m.Name,
		&m.PasswordHash,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxLibrarianRepository) SaveLibrarian(ctx context.Context, librarian domain.Librarian) error {
	query := `
		INSERT INTO librarians (librarian_id, username, name, password_hash, is_active,
		                        created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db.Exec(ctx, query,
		librarian.LibrarianID,
		librarian.Username,
		librarian.Name,
		librarian.PasswordHash,
		librarian.IsActive,
		librarian.CreatedAt,
		librarian.CreatedBy,
		librarian.LastUpdatedAt,
		librarian.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "librarian "+librarian.Username,
			fmt.Errorf("%w: username %s is taken", apperrors.ErrDuplicate, librarian.Username))
	}
	return nil
}

func (r *PgxLibrarianRepository) FindLibrarianByID(ctx context.Context, librarianID string) (*domain.Librarian, error) {
	m, err := scanLibrarian(r.db.QueryRow(ctx, selectLibrarianSQL+" WHERE librarian_id = $1;", librarianID))
	if err != nil {
		return nil, mapReadError(err, "librarian "+librarianID)
	}
	librarian := toDomainLibrarian(m)
	return &librarian, nil
}

func (r *PgxLibrarianRepository) FindLibrarianByUsername(ctx context.Context, username string) (*domain.Librarian, error) {
	m, err := scanLibrarian(r.db.QueryRow(ctx, selectLibrarianSQL+" WHERE username = $1;", username))
	if err != nil {
		return nil, mapReadError(err, "librarian "+username)
	}
	librarian := toDomainLibrarian(m)
	return &librarian, nil
}
