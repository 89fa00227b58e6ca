package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const passwordCost = 10

// MaxPasswordBytes is the bcrypt input limit.
const MaxPasswordBytes = 72

var (
	ErrEmptyPassword   = errors.New("пустой пароль")
	ErrPasswordTooLong = bcrypt.ErrPasswordTooLong
)

func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", fmt.Errorf("ошибка хеширования пароля: %w", err)
	}

	return string(hash), nil
}

// VerifyPassword reports whether password matches the bcrypt hash.
// A malformed hash is an error; a plain mismatch is not.
func VerifyPassword(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("ошибка проверки пароля: %w", err)
}
