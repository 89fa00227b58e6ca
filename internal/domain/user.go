package domain

import (
	"time"
)

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}

type CreateUserDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

// UpdateUserDTO is a partial update; nil fields are left unchanged.
type UpdateUserDTO struct {
	Name         *string
	Email        *string
	Phone        *string
	IsAdmin      *bool
	PasswordHash *string
}

type UpdateProfileDTO struct {
	Name  string  `json:"name"`
	Phone *string `json:"phone"`
}

type AdminUpdateUserDTO struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	IsAdmin  *bool   `json:"isAdmin"`
	Password string  `json:"password"`
}
