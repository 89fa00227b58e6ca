package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := HashPassword("admin0000")
	require.NoError(t, err)
	assert.NotEqual(t, "admin0000", hash)

	ok, err := VerifyPassword("admin0000", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_Empty(t *testing.T) {
	_, err := HashPassword("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	ok, err := VerifyPassword("secret", "not-a-hash")
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", MaxPasswordBytes+1))
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	hash, err := HashPassword(strings.Repeat("a", MaxPasswordBytes))
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
}
