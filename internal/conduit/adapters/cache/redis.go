// Package cache содержит реализацию кэширования с использованием Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"conduit/internal/conduit/ports/cache"
	"conduit/pkg/db/redis"
	"conduit/pkg/logger"
	"conduit/pkg/resilience"
)

// Константы для логирования.
const (
	LogMethodGet    = "get"
	LogMethodSet    = "set"
	LogMethodDelete = "delete"

	ErrorFailedToGet    = "failed to get value from redis"
	ErrorFailedToSet    = "failed to set value in redis"
	ErrorFailedToDelete = "failed to delete value from redis"
	ErrorFailedToClose  = "failed to close redis connection"
)

// KeyPrefix добавляется ко всем ключам сервиса.
const KeyPrefix = "conduit:"

// RedisCache реализует интерфейс Cache с использованием Redis.
type RedisCache struct {
	client     *redis.Client
	policy     *resilience.Policy
	defaultTTL time.Duration
}

// NewRedisCache создает новый экземпляр RedisCache поверх готового клиента.
// Обращения к Redis выполняются под policy.
func NewRedisCache(client *redis.Client, policy *resilience.Policy, defaultTTL time.Duration) cache.Cache {
	return &RedisCache{
		client:     client,
		policy:     policy,
		defaultTTL: defaultTTL,
	}
}

// Get получает значение по ключу. Отсутствующий ключ дает cache.ErrCacheMiss.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodGet), zap.String("key", key))

	value, err := resilience.Do(ctx, c.policy, LogMethodGet, func(ctx context.Context) ([]byte, error) {
		value, err := c.client.Get(ctx, KeyPrefix+key)
		if errors.Is(err, redis.ErrNotFound) {
			return nil, nil
		}
		return value, err
	})
	if err != nil {
		log.Warn(ctx, ErrorFailedToGet, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}
	if value == nil {
		return nil, cache.ErrCacheMiss
	}

	return value, nil
}

// Set устанавливает значение для ключа с временем жизни; ttl == 0 означает TTL по умолчанию.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodSet), zap.String("key", key))

	if ttl == 0 {
		ttl = c.defaultTTL
	}

	err := c.policy.Execute(ctx, LogMethodSet, func(ctx context.Context) error {
		return c.client.Set(ctx, KeyPrefix+key, value, ttl)
	})
	if err != nil {
		log.Warn(ctx, ErrorFailedToSet, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}

	return nil
}

// Delete удаляет значения по ключам.
func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodDelete), zap.Strings("keys", keys))

	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = KeyPrefix + key
	}

	err := c.policy.Execute(ctx, LogMethodDelete, func(ctx context.Context) error {
		return c.client.Delete(ctx, prefixed...)
	})
	if err != nil {
		log.Warn(ctx, ErrorFailedToDelete, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToDelete, err)
	}

	return nil
}

// Close закрывает соединение с Redis.
func (c *RedisCache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}
