package pgsql

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/ginagrosso/biblioteca/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapReadError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		want      error
		isStorage bool
	}{
		{"no rows", pgx.ErrNoRows, apperrors.ErrNotFound, false},
		{"malformed uuid", &pgconn.PgError{Code: pgInvalidTextRepresentation}, apperrors.ErrNotFound, false},
		{"wrapped malformed uuid", fmt.Errorf("scan: %w", &pgconn.PgError{Code: pgInvalidTextRepresentation}), apperrors.ErrNotFound, false},
		{"connection failure", errors.New("connection reset"), apperrors.ErrStorage, true},
		{"other pg error", &pgconn.PgError{Code: "57014"}, apperrors.ErrStorage, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapReadError(tt.err, "loan abc")

			assert.ErrorIs(t, err, tt.want)
			if !tt.isStorage {
				assert.NotErrorIs(t, err, apperrors.ErrStorage)
			}
		})
	}
}

func TestMapSQLReadError(t *testing.T) {
	assert.ErrorIs(t, mapSQLReadError(sql.ErrNoRows, "fine receipt x"), apperrors.ErrNotFound)

	err := mapSQLReadError(&pgconn.PgError{Code: pgInvalidTextRepresentation}, "fine receipt xyz")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NotErrorIs(t, err, apperrors.ErrStorage)
}

func TestMapListError(t *testing.T) {
	err := mapListError(&pgconn.PgError{Code: pgInvalidTextRepresentation}, "loans")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.NotErrorIs(t, err, apperrors.ErrStorage)

	assert.ErrorIs(t, mapListError(errors.New("timeout"), "loans"), apperrors.ErrStorage)
}

func TestMapWriteError(t *testing.T) {
	dup := fmt.Errorf("%w: member", apperrors.ErrDuplicate)

	assert.Equal(t, dup, mapWriteError(&pgconn.PgError{Code: pgUniqueViolation}, "member", dup))
	assert.ErrorIs(t, mapWriteError(&pgconn.PgError{Code: pgUniqueViolation}, "member", nil), apperrors.ErrStorage)
	assert.ErrorIs(t, mapWriteError(&pgconn.PgError{Code: pgForeignKeyViolation}, "fine", nil), apperrors.ErrValidation)
	assert.ErrorIs(t, mapWriteError(&pgconn.PgError{Code: pgInvalidTextRepresentation}, "fine", nil), apperrors.ErrValidation)
}
