package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"rentaroom/internal/domain"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	stringTooLongCode       = "22001"
	numericOutOfRangeCode   = "22003"
)

type Repositories struct {
	User    UserRepository
	Listing ListingRepository
	Message MessageRepository
}

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:    NewUserRepository(db),
		Listing: NewListingRepository(db),
		Message: NewMessageRepository(db),
	}
}

type UserRepository interface {
	Create(ctx context.Context, user domain.CreateUserDTO) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, id int64, user domain.UpdateUserDTO) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.User, error)
}

type ListingRepository interface {
	Create(ctx context.Context, listing domain.ListingRecord) (*domain.ListingRecord, error)
	GetByID(ctx context.Context, id int64) (*domain.ListingRecord, error)
	Update(ctx context.Context, id int64, fields domain.ListingFields) (*domain.ListingRecord, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.ListingRecord, error)
	ListForStats(ctx context.Context) ([]domain.ListingStatsRow, error)
}

type MessageRepository interface {
	Create(ctx context.Context, message domain.NewMessage) (*domain.Message, error)
	GetByID(ctx context.Context, id int64) (*domain.Message, error)
	GetWithRelations(ctx context.Context, id int64) (*domain.MessageWithRelations, error)
	List(ctx context.Context) ([]domain.MessageWithRelations, error)
	UpdateStatus(ctx context.Context, id int64, status domain.MessageStatus) (*domain.Message, error)
	Delete(ctx context.Context, id int64) error
}

// wrapError maps driver errors to domain sentinels and adds context.
func wrapError(msg string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", msg, domain.ErrRecordNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return fmt.Errorf("%s: %w", msg, domain.ErrUniqueViolation)
		case foreignKeyViolationCode:
			return fmt.Errorf("%s: %w", msg, domain.ErrInvalidReference)
		case stringTooLongCode, numericOutOfRangeCode:
			return fmt.Errorf("%s: %w", msg, domain.ErrInvalidValue)
		}
	}

	return fmt.Errorf("%s: %w", msg, err)
}

// updateBuilder collects "column = $n" pairs for partial updates.
// Argument $1 is reserved for the row id.
type updateBuilder struct {
	setValues []string
	args      []interface{}
}

func newUpdateBuilder(id int64) *updateBuilder {
	return &updateBuilder{args: []interface{}{id}}
}

func (b *updateBuilder) set(column string, value interface{}) {
	b.args = append(b.args, value)
	b.setValues = append(b.setValues, fmt.Sprintf("%s = $%d", column, len(b.args)))
}

func (b *updateBuilder) empty() bool {
	return len(b.setValues) == 0
}

func (b *updateBuilder) query(table, returning string) string {
	return "UPDATE " + table + " SET " + strings.Join(b.setValues, ", ") + " WHERE id = $1 RETURNING " + returning
}
