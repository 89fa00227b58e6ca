package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rentaroom/internal/domain"
	"rentaroom/internal/repository"
	"rentaroom/internal/repository/repotest"
	"rentaroom/pkg/auth"
)

func newTestUserService() *UserServiceImpl {
	repos := repotest.NewStore().Repositories()
	return NewUserService(repos.User, zap.NewNop())
}

func strPtr(s string) *string { return &s }

func TestUserService_CreateAndGet(t *testing.T) {
	s := newTestUserService()
	ctx := context.Background()

	user, err := s.Create(ctx, domain.CreateUserDTO{Name: "Manager", Email: "m@example.com", Password: "pw", IsAdmin: true})
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)

	got, err := s.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = s.GetByID(ctx, 999)
	assert.EqualError(t, err, "User not found")
}

func TestUserService_UpdateProfile(t *testing.T) {
	s := newTestUserService()
	ctx := context.Background()

	user, err := s.Create(ctx, domain.CreateUserDTO{Name: "Old", Email: "u@example.com", Phone: "1", Password: "pw"})
	require.NoError(t, err)

	updated, err := s.UpdateProfile(ctx, user.ID, domain.UpdateProfileDTO{Name: "", Phone: strPtr("2")})
	require.NoError(t, err)
	assert.Equal(t, "Old", updated.Name)
	assert.Equal(t, "2", updated.Phone)

	updated, err = s.UpdateProfile(ctx, user.ID, domain.UpdateProfileDTO{Name: "New"})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, "2", updated.Phone)
}

func TestUserService_AdminUpdate(t *testing.T) {
	s := newTestUserService()
	ctx := context.Background()

	a, err := s.Create(ctx, domain.CreateUserDTO{Name: "A", Email: "a@example.com", Password: "pw"})
	require.NoError(t, err)
	_, err = s.Create(ctx, domain.CreateUserDTO{Name: "B", Email: "b@example.com", Password: "pw"})
	require.NoError(t, err)

	isAdmin := true
	updated, err := s.AdminUpdate(ctx, a.ID, domain.AdminUpdateUserDTO{IsAdmin: &isAdmin, Password: "new-password"})
	require.NoError(t, err)
	assert.True(t, updated.IsAdmin)

	ok, err := auth.VerifyPassword("new-password", updated.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = s.AdminUpdate(ctx, a.ID, domain.AdminUpdateUserDTO{Email: strPtr("B@example.com")})
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	_, err = s.AdminUpdate(ctx, a.ID, domain.AdminUpdateUserDTO{Name: strPtr(" ")})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = s.AdminUpdate(ctx, 999, domain.AdminUpdateUserDTO{Name: strPtr("X")})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestUserService_DeleteAndList(t *testing.T) {
	s := newTestUserService()
	ctx := context.Background()

	first, err := s.Create(ctx, domain.CreateUserDTO{Name: "A", Email: "a@example.com", Password: "pw"})
	require.NoError(t, err)
	second, err := s.Create(ctx, domain.CreateUserDTO{Name: "B", Email: "b@example.com", Password: "pw"})
	require.NoError(t, err)

	users, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, second.ID, users[0].ID)

	require.NoError(t, s.Delete(ctx, first.ID))
	assert.Equal(t, domain.KindNotFound, domain.KindOf(s.Delete(ctx, first.ID)))

	users, err = s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserService_EnsureAdmin(t *testing.T) {
	s := newTestUserService()
	ctx := context.Background()

	admin, created, err := s.EnsureAdmin(ctx, "Admin", "admin@admin.com", "admin0000")
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, admin.IsAdmin)

	again, created, err := s.EnsureAdmin(ctx, "Admin", "admin@admin.com", "admin0000")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, admin.ID, again.ID)

	regular, err := s.Create(ctx, domain.CreateUserDTO{Name: "U", Email: "u@example.com", Password: "pw"})
	require.NoError(t, err)

	promoted, created, err := s.EnsureAdmin(ctx, "Ignored", "U@example.com", "other")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, regular.ID, promoted.ID)
	assert.True(t, promoted.IsAdmin)
}

func TestUserService_RejectsLongPassword(t *testing.T) {
	s := newTestUserService()
	ctx := context.Background()
	long := strings.Repeat("p", 80)

	_, err := s.Create(ctx, domain.CreateUserDTO{Name: "A", Email: "a@example.com", Password: long})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.EqualError(t, err, "password must be at most 72 bytes")

	a, err := s.Create(ctx, domain.CreateUserDTO{Name: "A", Email: "a@example.com", Password: "pw"})
	require.NoError(t, err)

	_, err = s.AdminUpdate(ctx, a.ID, domain.AdminUpdateUserDTO{Password: long})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	ok, err := auth.VerifyPassword("pw", a.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

// oversizedUserRepo answers writes the way Postgres does for values a column
// cannot hold.
type oversizedUserRepo struct {
	repository.UserRepository
}

func (r oversizedUserRepo) Create(context.Context, domain.CreateUserDTO) (*domain.User, error) {
	return nil, fmt.Errorf("ошибка создания пользователя: %w", domain.ErrInvalidValue)
}

func (r oversizedUserRepo) Update(context.Context, int64, domain.UpdateUserDTO) (*domain.User, error) {
	return nil, fmt.Errorf("ошибка обновления пользователя: %w", domain.ErrInvalidValue)
}

func TestUserService_ValueOutOfRangeIsValidation(t *testing.T) {
	repos := repotest.NewStore().Repositories()
	s := NewUserService(oversizedUserRepo{repos.User}, zap.NewNop())
	ctx := context.Background()

	_, err := s.Create(ctx, domain.CreateUserDTO{Name: strings.Repeat("n", 300), Email: "a@example.com", Password: "pw"})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.EqualError(t, err, "field value is out of range or too long")

	_, err = s.UpdateProfile(ctx, 1, domain.UpdateProfileDTO{Phone: strPtr(strings.Repeat("9", 100))})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}
