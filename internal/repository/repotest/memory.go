// Package repotest provides in-memory repository implementations for tests.
package repotest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"rentaroom/internal/domain"
	"rentaroom/internal/repository"
)

// Store backs all in-memory repositories so message relations can be resolved.
type Store struct {
	mu       sync.Mutex
	now      time.Time
	nextID   int64
	users    map[int64]domain.User
	listings map[int64]domain.ListingRecord
	messages map[int64]domain.Message
}

func NewStore() *Store {
	return &Store{
		now:      time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
		users:    map[int64]domain.User{},
		listings: map[int64]domain.ListingRecord{},
		messages: map[int64]domain.Message{},
	}
}

// Repositories returns repositories sharing this store.
func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		User:    &UserRepo{s},
		Listing: &ListingRepo{s},
		Message: &MessageRepo{s},
	}
}

// tick hands out ids and strictly increasing creation times. Caller holds mu.
func (s *Store) tick() (int64, time.Time) {
	s.nextID++
	s.now = s.now.Add(time.Second)
	return s.nextID, s.now
}

func notFound(entity string, id int64) error {
	return fmt.Errorf("%s с id %d: %w", entity, id, domain.ErrRecordNotFound)
}

type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, dto domain.CreateUserDTO) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == dto.Email {
			return nil, fmt.Errorf("email %s: %w", dto.Email, domain.ErrUniqueViolation)
		}
	}

	id, now := r.s.tick()
	u := domain.User{
		ID:           id,
		Name:         dto.Name,
		Email:        dto.Email,
		Phone:        dto.Phone,
		PasswordHash: dto.Password,
		IsAdmin:      dto.IsAdmin,
		CreatedAt:    now,
	}
	r.s.users[id] = u
	return &u, nil
}

func (r *UserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, notFound("пользователь", id)
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("email %s: %w", email, domain.ErrRecordNotFound)
}

func (r *UserRepo) Update(_ context.Context, id int64, dto domain.UpdateUserDTO) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, notFound("пользователь", id)
	}
	if dto.Email != nil {
		for _, other := range r.s.users {
			if other.ID != id && other.Email == *dto.Email {
				return nil, fmt.Errorf("email %s: %w", *dto.Email, domain.ErrUniqueViolation)
			}
		}
		u.Email = *dto.Email
	}
	if dto.Name != nil {
		u.Name = *dto.Name
	}
	if dto.Phone != nil {
		u.Phone = *dto.Phone
	}
	if dto.IsAdmin != nil {
		u.IsAdmin = *dto.IsAdmin
	}
	if dto.PasswordHash != nil {
		u.PasswordHash = *dto.PasswordHash
	}
	r.s.users[id] = u
	return &u, nil
}

func (r *UserRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return notFound("пользователь", id)
	}
	delete(r.s.users, id)
	for mid, m := range r.s.messages {
		if m.UserID != nil && *m.UserID == id {
			m.UserID = nil
			r.s.messages[mid] = m
		}
	}
	return nil
}

func (r *UserRepo) List(_ context.Context) ([]domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	users := make([]domain.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return users, nil
}

type ListingRepo struct{ s *Store }

func (r *ListingRepo) Create(_ context.Context, l domain.ListingRecord) (*domain.ListingRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	l.ID, l.CreatedAt = r.s.tick()
	r.s.listings[l.ID] = l
	return &l, nil
}

func (r *ListingRepo) GetByID(_ context.Context, id int64) (*domain.ListingRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	l, ok := r.s.listings[id]
	if !ok {
		return nil, notFound("объявление", id)
	}
	return &l, nil
}

func (r *ListingRepo) Update(_ context.Context, id int64, f domain.ListingFields) (*domain.ListingRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	l, ok := r.s.listings[id]
	if !ok {
		return nil, notFound("объявление", id)
	}

	assign := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	assign(&l.NameEn, f.NameEn)
	assign(&l.NameRu, f.NameRu)
	assign(&l.NameTj, f.NameTj)
	assign(&l.LocationEn, f.LocationEn)
	assign(&l.LocationRu, f.LocationRu)
	assign(&l.LocationTj, f.LocationTj)
	assign(&l.TypeEn, f.TypeEn)
	assign(&l.TypeRu, f.TypeRu)
	assign(&l.TypeTj, f.TypeTj)
	assign(&l.About, f.About)
	assign(&l.Image, f.Image)
	if f.Rooms != nil {
		l.Rooms = f.Rooms.Value
	}
	if f.Price != nil {
		l.Price = f.Price.Value
	}

	r.s.listings[id] = l
	return &l, nil
}

func (r *ListingRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.listings[id]; !ok {
		return notFound("объявление", id)
	}
	delete(r.s.listings, id)
	return nil
}

func (r *ListingRepo) List(_ context.Context) ([]domain.ListingRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	listings := make([]domain.ListingRecord, 0, len(r.s.listings))
	for _, l := range r.s.listings {
		listings = append(listings, l)
	}
	sort.Slice(listings, func(i, j int) bool { return listings[i].CreatedAt.After(listings[j].CreatedAt) })
	return listings, nil
}

func (r *ListingRepo) ListForStats(_ context.Context) ([]domain.ListingStatsRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ids := make([]int64, 0, len(r.s.listings))
	for id := range r.s.listings {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var rows []domain.ListingStatsRow
	for _, id := range ids {
		l := r.s.listings[id]
		rows = append(rows, domain.ListingStatsRow{LocationEn: l.LocationEn, TypeEn: l.TypeEn, Price: l.Price})
	}
	return rows, nil
}

type MessageRepo struct{ s *Store }

func (r *MessageRepo) Create(_ context.Context, msg domain.NewMessage) (*domain.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if msg.UserID != nil {
		if _, ok := r.s.users[*msg.UserID]; !ok {
			return nil, fmt.Errorf("user_id %d: %w", *msg.UserID, domain.ErrInvalidReference)
		}
	}

	id, now := r.s.tick()
	m := domain.Message{
		ID:        id,
		ListingID: msg.ListingID,
		UserID:    msg.UserID,
		Name:      msg.Name,
		Phone:     msg.Phone,
		Message:   msg.Message,
		Days:      msg.Days,
		Status:    msg.Status,
		CreatedAt: now,
	}
	r.s.messages[id] = m
	return &m, nil
}

func (r *MessageRepo) GetByID(_ context.Context, id int64) (*domain.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.messages[id]
	if !ok {
		return nil, notFound("заявка", id)
	}
	return &m, nil
}

func (r *MessageRepo) GetWithRelations(_ context.Context, id int64) (*domain.MessageWithRelations, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.messages[id]
	if !ok {
		return nil, notFound("заявка", id)
	}
	withRelations := r.withRelations(m)
	return &withRelations, nil
}

func (r *MessageRepo) List(_ context.Context) ([]domain.MessageWithRelations, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	messages := make([]domain.MessageWithRelations, 0, len(r.s.messages))
	for _, m := range r.s.messages {
		messages = append(messages, r.withRelations(m))
	}
	sort.Slice(messages, func(i, j int) bool { return messages[i].CreatedAt.After(messages[j].CreatedAt) })
	return messages, nil
}

func (r *MessageRepo) withRelations(m domain.Message) domain.MessageWithRelations {
	out := domain.MessageWithRelations{Message: m}
	if l, ok := r.s.listings[m.ListingID]; ok {
		out.Listing = &domain.MessageListingSummary{ID: l.ID, NameEn: l.NameEn, Price: l.Price}
	}
	if m.UserID != nil {
		if u, ok := r.s.users[*m.UserID]; ok {
			out.User = &domain.MessageUserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
		}
	}
	return out
}

func (r *MessageRepo) UpdateStatus(_ context.Context, id int64, status domain.MessageStatus) (*domain.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.messages[id]
	if !ok {
		return nil, notFound("заявка", id)
	}
	m.Status = status
	r.s.messages[id] = m
	return &m, nil
}

func (r *MessageRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.messages[id]; !ok {
		return notFound("заявка", id)
	}
	delete(r.s.messages, id)
	return nil
}

var (
	_ repository.UserRepository    = (*UserRepo)(nil)
	_ repository.ListingRepository = (*ListingRepo)(nil)
	_ repository.MessageRepository = (*MessageRepo)(nil)
)
