// Package api определяет основные порты сценариев использования Conduit.
package api

import (
	"context"

	"conduit/internal/conduit/domain/entities"
	"conduit/pkg/validation"
)

// AuthenticatedUser - пользователь вместе с выданным ему токеном.
type AuthenticatedUser struct {
	User  *entities.User
	Token string
}

// UserUseCase определяет операции регистрации, входа и изменения пользователя.
type UserUseCase interface {
	Register(ctx context.Context, input validation.RegisterUser) (*AuthenticatedUser, error)

	Login(ctx context.Context, input validation.LoginUser) (*AuthenticatedUser, error)

	Current(ctx context.Context, userID, token string) (*AuthenticatedUser, error)

	Update(ctx context.Context, userID string, changes validation.UserChanges) (*AuthenticatedUser, error)
}
