// Package entities содержит сущности домена Conduit и их ошибки.
package entities

import (
	"errors"
	"time"
)

// Ошибки домена пользователя.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email has already been taken")
	ErrUsernameTaken      = errors.New("username has already been taken")
	ErrInvalidCredentials = errors.New("email or password is invalid")
	ErrCannotFollowSelf   = errors.New("cannot follow yourself")
)

// User представляет зарегистрированного пользователя.
type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	Bio          *string
	Image        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile - публичное представление пользователя с точки зрения читателя.
type Profile struct {
	ID        string
	Username  string
	Bio       *string
	Image     *string
	Following bool
}

// Profile возвращает публичный профиль пользователя.
func (u *User) Profile(following bool) *Profile {
	return &Profile{
		ID:        u.ID,
		Username:  u.Username,
		Bio:       u.Bio,
		Image:     u.Image,
		Following: following,
	}
}
