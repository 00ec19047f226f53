// Package repositories определяет порты хранилища данных.
package repositories

import (
	"context"

	"conduit/internal/conduit/domain/entities"
)

// UserRepository определяет интерфейс для операций сохранения данных пользователей.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id string) (*entities.User, error)

	FindByEmail(ctx context.Context, email string) (*entities.User, error)

	FindByUsername(ctx context.Context, username string) (*entities.User, error)

	Update(ctx context.Context, user *entities.User) (*entities.User, error)
}
