package domain

import (
	"errors"
	"time"
)

const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("a user with that username already exists")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
)

// User models a stored account. Roles travel into issued tokens; the active
// flag only matters at login time — an already issued token outlives a
// deactivation until it expires.
type User struct {
	ID           string    `json:"-"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	Active       bool      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
