package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rentaroom/internal/domain"
)

const userColumns = "id, name, email, phone, password_hash, is_admin, created_at"

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{
		db: db,
	}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) Create(ctx context.Context, dto domain.CreateUserDTO) (*domain.User, error) {
	query := `
		INSERT INTO users (name, email, phone, password_hash, is_admin)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRow(ctx, query,
		dto.Name,
		dto.Email,
		dto.Phone,
		dto.Password,
		dto.IsAdmin,
	))
	if err != nil {
		return nil, wrapError("ошибка создания пользователя", err)
	}

	return user, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, wrapError(fmt.Sprintf("ошибка получения пользователя с id %d", id), err)
	}

	return user, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		return nil, wrapError(fmt.Sprintf("ошибка получения пользователя с email %s", email), err)
	}

	return user, nil
}

func (r *UserRepo) Update(ctx context.Context, id int64, dto domain.UpdateUserDTO) (*domain.User, error) {
	b := newUpdateBuilder(id)

	if dto.Name != nil {
		b.set("name", *dto.Name)
	}
	if dto.Email != nil {
		b.set("email", *dto.Email)
	}
	if dto.Phone != nil {
		b.set("phone", *dto.Phone)
	}
	if dto.IsAdmin != nil {
		b.set("is_admin", *dto.IsAdmin)
	}
	if dto.PasswordHash != nil {
		b.set("password_hash", *dto.PasswordHash)
	}

	if b.empty() {
		return r.GetByID(ctx, id)
	}

	user, err := scanUser(r.db.QueryRow(ctx, b.query("users", userColumns), b.args...))
	if err != nil {
		return nil, wrapError("ошибка обновления пользователя", err)
	}

	return user, nil
}

func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return wrapError("ошибка удаления пользователя", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("пользователь с id %d: %w", id, domain.ErrRecordNotFound)
	}

	return nil
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса списка пользователей: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения данных пользователя: %w", err)
		}
		users = append(users, *user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка обработки результатов: %w", err)
	}

	return users, nil
}
