package repository

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"rentaroom/internal/domain"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", pgx.ErrNoRows, domain.ErrRecordNotFound},
		{"unique", &pgconn.PgError{Code: uniqueViolationCode}, domain.ErrUniqueViolation},
		{"foreign key", &pgconn.PgError{Code: foreignKeyViolationCode}, domain.ErrInvalidReference},
		{"string too long", &pgconn.PgError{Code: stringTooLongCode}, domain.ErrInvalidValue},
		{"numeric out of range", &pgconn.PgError{Code: numericOutOfRangeCode}, domain.ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := wrapError("ошибка записи", tt.err)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "ошибка записи")
		})
	}

	other := errors.New("connection reset")
	err := wrapError("ошибка записи", other)
	assert.ErrorIs(t, err, other)
	assert.False(t, errors.Is(err, domain.ErrInvalidValue))
}
