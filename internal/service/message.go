package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"

	"go.uber.org/zap"

	"rentaroom/internal/domain"
	"rentaroom/internal/repository"
)

const (
	errMessageNotFound  = "Message not found"
	errMessageRequired  = "listingId, name, phone, message are required"
	errMessageBadStatus = "status must be PENDING, ACCEPTED or REJECTED"
)

type MessageServiceImpl struct {
	repo     repository.MessageRepository
	notifier BookingNotifier
	logger   *zap.Logger
}

// NewMessageService accepts a nil notifier.
func NewMessageService(repo repository.MessageRepository, notifier BookingNotifier, logger *zap.Logger) *MessageServiceImpl {
	return &MessageServiceImpl{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
	}
}

// Create stores a new booking request. Every request starts as PENDING no
// matter what the client sent.
func (s *MessageServiceImpl) Create(ctx context.Context, dto domain.CreateMessageDTO) (*domain.Message, error) {
	msg, err := newMessage(dto)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, msg)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidReference) {
			return nil, domain.Validation("userId does not reference an existing user")
		}
		if errors.Is(err, domain.ErrInvalidValue) {
			return nil, domain.Validation(errInvalidValue)
		}
		s.logger.Error("ошибка создания заявки", zap.Int64("listingId", msg.ListingID), zap.Error(err))
		return nil, domain.Internal("failed to create message")
	}

	s.logger.Info("заявка создана",
		zap.Int64("id", created.ID),
		zap.Int64("listingId", created.ListingID),
		zap.Int("days", created.Days))

	if s.notifier != nil {
		s.notifier.BookingCreated(*created)
	}

	return created, nil
}

func newMessage(dto domain.CreateMessageDTO) (domain.NewMessage, error) {
	if !truthy(dto.ListingID) || !truthy(dto.Name) || !truthy(dto.Phone) || !truthy(dto.Message) {
		return domain.NewMessage{}, domain.Validation(errMessageRequired)
	}

	name, _ := textValue(dto.Name)
	phone, _ := textValue(dto.Phone)
	text, _ := textValue(dto.Message)
	name, phone, text = strings.TrimSpace(name), strings.TrimSpace(phone), strings.TrimSpace(text)
	if name == "" || phone == "" || text == "" {
		return domain.NewMessage{}, domain.Validation(errMessageRequired)
	}

	listingID := toNumber(dto.ListingID)
	if !listingID.Valid || listingID.Value < 1 {
		return domain.NewMessage{}, domain.Validation("listingId must be a positive integer")
	}

	msg := domain.NewMessage{
		ListingID: listingID.Value,
		Name:      name,
		Phone:     phone,
		Message:   text,
		Days:      1,
		Status:    domain.MessageStatusPending,
	}

	if truthy(dto.UserID) {
		userID := toNumber(dto.UserID)
		if !userID.Valid || userID.Value < 1 {
			return domain.NewMessage{}, domain.Validation("userId must be a positive integer")
		}
		msg.UserID = &userID.Value
	}

	if truthy(dto.Days) {
		if days := toNumber(dto.Days); days.Valid && days.Value > 1 {
			msg.Days = int(days.Value)
		}
	}

	return msg, nil
}

// truthy mirrors how loosely typed clients treat "missing": nil, "", 0 and
// false all count as not provided.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case bool:
		return val
	case float64:
		return val != 0 && !math.IsNaN(val)
	case int:
		return val != 0
	case int64:
		return val != 0
	case json.Number:
		f, err := val.Float64()
		return err == nil && f != 0
	default:
		return true
	}
}

func (s *MessageServiceImpl) List(ctx context.Context) ([]domain.MessageWithRelations, error) {
	messages, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("ошибка получения списка заявок", zap.Error(err))
		return nil, domain.Internal("failed to load messages")
	}

	return messages, nil
}

func (s *MessageServiceImpl) GetByID(ctx context.Context, id int64) (*domain.MessageWithRelations, error) {
	msg, err := s.repo.GetWithRelations(ctx, id)
	if err != nil {
		return nil, s.lookupError(id, err)
	}

	return msg, nil
}

// UpdateStatus moves a message to any of the three statuses. Transitions are
// unrestricted, including to the current status.
func (s *MessageServiceImpl) UpdateStatus(ctx context.Context, id int64, status domain.MessageStatus) (*domain.Message, error) {
	if !status.IsValid() {
		return nil, domain.Validation(errMessageBadStatus)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, s.lookupError(id, err)
	}

	s.logger.Info("статус заявки изменен", zap.Int64("id", id), zap.String("status", string(status)))

	if s.notifier != nil {
		s.notifier.BookingStatusChanged(*updated)
	}

	return updated, nil
}

func (s *MessageServiceImpl) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return s.lookupError(id, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.lookupError(id, err)
	}

	return nil
}

func (s *MessageServiceImpl) lookupError(id int64, err error) error {
	if errors.Is(err, domain.ErrRecordNotFound) {
		return domain.NotFound(errMessageNotFound)
	}
	s.logger.Error("ошибка работы с заявкой", zap.Int64("id", id), zap.Error(err))
	return domain.Internal("failed to process message")
}
