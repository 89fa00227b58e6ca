package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rentaroom/internal/domain"
)

const messageColumns = "id, listing_id, user_id, name, phone, message, days, status, created_at"

// Relations are joined with LEFT JOIN: a deleted listing or user leaves the
// summary columns NULL instead of dropping the message.
const messageWithRelationsQuery = `
	SELECT m.id, m.listing_id, m.user_id, m.name, m.phone, m.message, m.days, m.status, m.created_at,
		l.id, l.name_en, l.price,
		u.id, u.name, u.email
	FROM messages m
	LEFT JOIN listings l ON l.id = m.listing_id
	LEFT JOIN users u ON u.id = m.user_id
`

type MessageRepo struct {
	db *pgxpool.Pool
}

func NewMessageRepository(db *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{
		db: db,
	}
}

func scanMessage(row pgx.Row) (*domain.Message, error) {
	var m domain.Message
	err := row.Scan(
		&m.ID,
		&m.ListingID,
		&m.UserID,
		&m.Name,
		&m.Phone,
		&m.Message,
		&m.Days,
		&m.Status,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanMessageWithRelations(row pgx.Row) (*domain.MessageWithRelations, error) {
	var (
		m            domain.MessageWithRelations
		listingID    *int64
		listingName  *string
		listingPrice *int64
		userID       *int64
		userName     *string
		userEmail    *string
	)

	err := row.Scan(
		&m.ID,
		&m.ListingID,
		&m.UserID,
		&m.Name,
		&m.Phone,
		&m.Message.Message,
		&m.Days,
		&m.Status,
		&m.CreatedAt,
		&listingID,
		&listingName,
		&listingPrice,
		&userID,
		&userName,
		&userEmail,
	)
	if err != nil {
		return nil, err
	}

	if listingID != nil {
		m.Listing = &domain.MessageListingSummary{ID: *listingID, NameEn: deref(listingName), Price: derefInt(listingPrice)}
	}
	if userID != nil {
		m.User = &domain.MessageUserSummary{ID: *userID, Name: deref(userName), Email: deref(userEmail)}
	}

	return &m, nil
}

func (r *MessageRepo) Create(ctx context.Context, msg domain.NewMessage) (*domain.Message, error) {
	query := `
		INSERT INTO messages (listing_id, user_id, name, phone, message, days, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + messageColumns

	m, err := scanMessage(r.db.QueryRow(ctx, query,
		msg.ListingID,
		msg.UserID,
		msg.Name,
		msg.Phone,
		msg.Message,
		msg.Days,
		msg.Status,
	))
	if err != nil {
		return nil, wrapError("ошибка создания заявки", err)
	}

	return m, nil
}

func (r *MessageRepo) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE id = $1`

	m, err := scanMessage(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, wrapError(fmt.Sprintf("ошибка получения заявки с id %d", id), err)
	}

	return m, nil
}

func (r *MessageRepo) GetWithRelations(ctx context.Context, id int64) (*domain.MessageWithRelations, error) {
	m, err := scanMessageWithRelations(r.db.QueryRow(ctx, messageWithRelationsQuery+` WHERE m.id = $1`, id))
	if err != nil {
		return nil, wrapError(fmt.Sprintf("ошибка получения заявки с id %d", id), err)
	}

	return m, nil
}

func (r *MessageRepo) List(ctx context.Context) ([]domain.MessageWithRelations, error) {
	rows, err := r.db.Query(ctx, messageWithRelationsQuery+` ORDER BY m.created_at DESC, m.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса списка заявок: %w", err)
	}
	defer rows.Close()

	messages := []domain.MessageWithRelations{}
	for rows.Next() {
		m, err := scanMessageWithRelations(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения данных заявки: %w", err)
		}
		messages = append(messages, *m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка обработки результатов: %w", err)
	}

	return messages, nil
}

func (r *MessageRepo) UpdateStatus(ctx context.Context, id int64, status domain.MessageStatus) (*domain.Message, error) {
	query := `UPDATE messages SET status = $2 WHERE id = $1 RETURNING ` + messageColumns

	m, err := scanMessage(r.db.QueryRow(ctx, query, id, status))
	if err != nil {
		return nil, wrapError("ошибка обновления статуса заявки", err)
	}

	return m, nil
}

func (r *MessageRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return wrapError("ошибка удаления заявки", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("заявка с id %d: %w", id, domain.ErrRecordNotFound)
	}

	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int64) int64 {
	if n == nil {
		return 0
	}
	return *n
}
