package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rentaroom/config"
	"rentaroom/internal/domain"
	"rentaroom/internal/repository/repotest"
)

const testSigningKey = "test-signing-key"

func newTestAuthService(ttl time.Duration) *AuthServiceImpl {
	repos := repotest.NewStore().Repositories()
	return NewAuthService(repos.User, config.JWTConfig{SigningKey: testSigningKey, TokenTTL: ttl}, zap.NewNop())
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	s := newTestAuthService(time.Hour)
	ctx := context.Background()

	registered, err := s.Register(ctx, domain.RegisterRequest{
		Name:     "Nigora",
		Email:    " Nigora@Example.com ",
		Phone:    "+992900000000",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "nigora@example.com", registered.User.Email)
	assert.False(t, registered.User.IsAdmin)
	assert.NotEmpty(t, registered.Token)
	assert.NotEqual(t, "secret123", registered.User.PasswordHash)

	identity, err := s.ParseToken(ctx, registered.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.Identity{UserID: registered.User.ID, Email: "nigora@example.com"}, identity)

	loggedIn, err := s.Login(ctx, domain.LoginRequest{Email: "NIGORA@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)
}

func TestAuthService_RegisterErrors(t *testing.T) {
	s := newTestAuthService(time.Hour)
	ctx := context.Background()

	_, err := s.Register(ctx, domain.RegisterRequest{Email: "a@b.com", Password: "x"})
	assert.EqualError(t, err, "name, email and password are required")

	_, err = s.Register(ctx, domain.RegisterRequest{Name: "A", Email: "not-an-email", Password: "x"})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = s.Register(ctx, domain.RegisterRequest{Name: "A", Email: "a@b.com", Password: "x"})
	require.NoError(t, err)

	_, err = s.Register(ctx, domain.RegisterRequest{Name: "B", Email: "A@b.com", Password: "y"})
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	assert.EqualError(t, err, "Email already registered")

	_, err = s.Register(ctx, domain.RegisterRequest{Name: "C", Email: "c@b.com", Password: strings.Repeat("x", 80)})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.EqualError(t, err, "password must be at most 72 bytes")
}

func TestAuthService_LoginFailures(t *testing.T) {
	s := newTestAuthService(time.Hour)
	ctx := context.Background()

	_, err := s.Register(ctx, domain.RegisterRequest{Name: "A", Email: "a@b.com", Password: "right"})
	require.NoError(t, err)

	_, err = s.Login(ctx, domain.LoginRequest{Email: "a@b.com", Password: "wrong"})
	assert.EqualError(t, err, "Invalid email or password")
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))

	_, err = s.Login(ctx, domain.LoginRequest{Email: "nobody@b.com", Password: "right"})
	assert.EqualError(t, err, "Invalid email or password")

	_, err = s.Login(ctx, domain.LoginRequest{Email: "a@b.com"})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestAuthService_ParseTokenRejects(t *testing.T) {
	ctx := context.Background()
	user := domain.User{ID: 1, Email: "a@b.com", IsAdmin: true}

	expired, err := newTestAuthService(-time.Minute).IssueToken(user)
	require.NoError(t, err)

	s := newTestAuthService(time.Hour)
	_, err = s.ParseToken(ctx, expired)
	assert.EqualError(t, err, "Invalid or expired token")

	foreign := NewAuthService(nil, config.JWTConfig{SigningKey: "other", TokenTTL: time.Hour}, zap.NewNop())
	token, err := foreign.IssueToken(user)
	require.NoError(t, err)
	_, err = s.ParseToken(ctx, token)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"id": 1, "isAdmin": true})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = s.ParseToken(ctx, unsigned)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))

	_, err = s.ParseToken(ctx, "garbage")
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
}

func TestAuthService_TokenCarriesAdminFlag(t *testing.T) {
	s := newTestAuthService(time.Hour)

	token, err := s.IssueToken(domain.User{ID: 5, Email: "admin@admin.com", IsAdmin: true})
	require.NoError(t, err)

	identity, err := s.ParseToken(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, identity.IsAdmin)
	assert.Equal(t, int64(5), identity.UserID)
}
