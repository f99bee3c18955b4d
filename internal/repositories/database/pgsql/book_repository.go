package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/ginagrosso/biblioteca/internal/apperrors"
	"github.com/ginagrosso/biblioteca/internal/core/domain"
	portsrepo "github.com/ginagrosso/biblioteca/internal/core/ports/repositories"
	"github.com/ginagrosso/biblioteca/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBookRepository struct {
	pool *pgxpool.Pool
}

func newPgxBookRepository(pool *pgxpool.Pool) portsrepo.BookRepository {
	return &PgxBookRepository{pool: pool}
}

var _ portsrepo.BookRepository = (*PgxBookRepository)(nil)

const selectBookSQL = `
	SELECT isbn, title, author, publisher, publication_year, is_active,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM books
`

func scanBook(row pgx.Row) (models.Book, error) {
	var m models.Book
	err := row.Scan(
		&m.ISBN,
		&m.Title,
		&m.Author,
		&m.Publisher,
		&m.PublicationYear,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveBookInTx inserts a new book.
func (r *PgxBookRepository) SaveBookInTx(ctx context.Context, tx pgx.Tx, book domain.Book) error {
	m := toModelBook(book)
	query := `
		INSERT INTO books (isbn, title, author, publisher, publication_year, is_active,
		                   created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, query,
		m.ISBN, m.Title, m.Author, m.Publisher, m.PublicationYear, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "book "+m.ISBN,
			fmt.Errorf("%w: book with ISBN %s already exists", apperrors.ErrDuplicate, m.ISBN))
	}
	return nil
}

// FindBookByISBN retrieves a book by its ISBN.
func (r *PgxBookRepository) FindBookByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	m, err := scanBook(r.pool.QueryRow(ctx, selectBookSQL+" WHERE isbn = $1;", isbn))
	if err != nil {
		return nil, mapReadError(err, "book "+isbn)
	}
	book := toDomainBook(m)
	return &book, nil
}

// FindBookByISBNForUpdate loads a book and locks its row until tx ends.
func (r *PgxBookRepository) FindBookByISBNForUpdate(ctx context.Context, tx pgx.Tx, isbn string) (*domain.Book, error) {
	m, err := scanBook(tx.QueryRow(ctx, selectBookSQL+" WHERE isbn = $1 FOR UPDATE;", isbn))
	if err != nil {
		return nil, mapReadError(err, "book "+isbn)
	}
	book := toDomainBook(m)
	return &book, nil
}

// ListBooks retrieves books matching the filter ordered by ISBN.
func (r *PgxBookRepository) ListBooks(ctx context.Context, filter domain.BookFilter) ([]domain.Book, error) {
	query, args, err := buildListBooksQuery(filter)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to build book listing query", err)
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list books", err)
	}
	defer rows.Close()

	books := []domain.Book{}
	for rows.Next() {
		m, err := scanBook(rows)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to scan book row", err)
		}
		books = append(books, toDomainBook(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("error iterating book rows", err)
	}
	return books, nil
}

// SetBookActiveInTx flips the active flag of a book.
func (r *PgxBookRepository) SetBookActiveInTx(ctx context.Context, tx pgx.Tx, isbn string, active bool, actorID string, now time.Time) error {
	query := `
		UPDATE books SET is_active = $2, last_updated_at = $3, last_updated_by = $4
		WHERE isbn = $1;
	`
	tag, err := tx.Exec(ctx, query, isbn, active, now, actorID)
	if err != nil {
		return apperrors.NewStorageError("failed to update book "+isbn, err)
	}
	return expectOneRow(tag, "book "+isbn)
}
