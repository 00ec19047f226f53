package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"conduit/internal/conduit/domain/services"
	svc "conduit/internal/conduit/ports/services"
	"conduit/pkg/logger"
)

const (
	methodHash      = "Hash"
	methodVerify    = "Verify"
	msgCostAdjusted = "bcrypt cost out of range, using default"
	msgHashMismatch = "password does not match hash"
	errCtxHashing   = "hashing password"
	errCtxComparing = "comparing password with hash"
)

// ServiceBcrypt хэширует пароли пользователей bcrypt с фиксированной стоимостью.
type ServiceBcrypt struct {
	cost int
}

// NewBcrypt создает сервис паролей. Стоимость вне [bcrypt.MinCost, bcrypt.MaxCost] заменяется bcrypt.DefaultCost.
func NewBcrypt(cost int) svc.PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		logger.Log(context.Background()).Warn(context.Background(), msgCostAdjusted,
			zap.Int("cost", cost), zap.Int("default", bcrypt.DefaultCost))
		cost = bcrypt.DefaultCost
	}
	return &ServiceBcrypt{cost: cost}
}

// Hash возвращает bcrypt хэш пароля.
func (s *ServiceBcrypt) Hash(ctx context.Context, password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%s: %w", errCtxHashing, services.ErrInvalidPassword)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		logger.Log(ctx).Error(ctx, errCtxHashing, zap.String("method", methodHash), zap.Error(err))
		return "", fmt.Errorf("%s: %w: %w", errCtxHashing, services.ErrHashingFailed, err)
	}
	return string(hash), nil
}

// Verify сообщает, соответствует ли пароль хэшу. Несовпадение не является ошибкой.
func (s *ServiceBcrypt) Verify(ctx context.Context, password, hash string) (bool, error) {
	if password == "" || hash == "" {
		return false, fmt.Errorf("%s: %w", errCtxComparing, services.ErrInvalidPassword)
	}

	switch err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		logger.Log(ctx).Debug(ctx, msgHashMismatch, zap.String("method", methodVerify))
		return false, nil
	default:
		return false, fmt.Errorf("%s: %w", errCtxComparing, err)
	}
}
