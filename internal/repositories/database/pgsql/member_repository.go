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

type PgxMemberRepository struct {
	pool *pgxpool.Pool
}

func newPgxMemberRepository(pool *pgxpool.Pool) portsrepo.MemberRepository {
	return &PgxMemberRepository{pool: pool}
}

var _ portsrepo.MemberRepository = (*PgxMemberRepository)(nil)

const selectMemberSQL = `
	SELECT member_id, national_id, member_number, name, email, phone, address,
	       registered_at, is_active, created_at, created_by, last_updated_at, last_updated_by
	FROM members
`

func scanMember(row pgx.Row) (models.Member, error) {
	var m models.Member
	err := row.Scan(
		&m.MemberID,
		&m.NationalID,
		&m.MemberNumber,
		&m.Name,
		&m.Email,
		&m.Phone,
		&m.Address,
		&m.RegisteredAt,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveMemberInTx inserts a new member.
func (r *PgxMemberRepository) SaveMemberInTx(ctx context.Context, tx pgx.Tx, member domain.Member) error {
	m := toModelMember(member)
	query := `
		INSERT INTO members (member_id, national_id, member_number, name, email, phone, address,
		                     registered_at, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		m.MemberID, m.NationalID, m.MemberNumber, m.Name, m.Email, m.Phone, m.Address,
		m.RegisteredAt, m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "member "+m.MemberNumber,
			fmt.Errorf("%w: a member with national ID %s is already registered", apperrors.ErrDuplicate, m.NationalID))
	}
	return nil
}

// FindMemberByID retrieves a member by ID.
func (r *PgxMemberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	m, err := scanMember(r.pool.QueryRow(ctx, selectMemberSQL+" WHERE member_id = $1;", memberID))
	if err != nil {
		return nil, mapReadError(err, "member "+memberID)
	}
	member := toDomainMember(m)
	return &member, nil
}

// FindMemberByNationalID retrieves a member by national ID.
func (r *PgxMemberRepository) FindMemberByNationalID(ctx context.Context, nationalID string) (*domain.Member, error) {
	m, err := scanMember(r.pool.QueryRow(ctx, selectMemberSQL+" WHERE national_id = $1;", nationalID))
	if err != nil {
		return nil, mapReadError(err, "member with national ID "+nationalID)
	}
	member := toDomainMember(m)
	return &member, nil
}

// FindMemberByIDForUpdate loads a member and locks its row until tx ends.
func (r *PgxMemberRepository) FindMemberByIDForUpdate(ctx context.Context, tx pgx.Tx, memberID string) (*domain.Member, error) {
	m, err := scanMember(tx.QueryRow(ctx, selectMemberSQL+" WHERE member_id = $1 FOR UPDATE;", memberID))
	if err != nil {
		return nil, mapReadError(err, "member "+memberID)
	}
	member := toDomainMember(m)
	return &member, nil
}

// ListMembers retrieves members in registration order.
func (r *PgxMemberRepository) ListMembers(ctx context.Context, limit int, offset int) ([]domain.Member, error) {
	query := selectMemberSQL + " ORDER BY registered_at, member_number LIMIT $1 OFFSET $2;"
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list members", err)
	}
	defer rows.Close()

	members := []domain.Member{}
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to scan member row", err)
		}
		members = append(members, toDomainMember(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("error iterating member rows", err)
	}
	return members, nil
}

// SetMemberActiveInTx flips the active flag of a member.
func (r *PgxMemberRepository) SetMemberActiveInTx(ctx context.Context, tx pgx.Tx, memberID string, active bool, actorID string, now time.Time) error {
	query := `
		UPDATE members SET is_active = $2, last_updated_at = $3, last_updated_by = $4
		WHERE member_id = $1;
	`
	tag, err := tx.Exec(ctx, query, memberID, active, now, actorID)
	if err != nil {
		return apperrors.NewStorageError("failed to update member "+memberID, err)
	}
	return expectOneRow(tag, "member "+memberID)
}
