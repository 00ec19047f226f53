package app

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"conduit/internal/conduit/ports/cache"
	"conduit/pkg/logger"
)

const (
	cacheKeyTags          = "tags"
	cacheKeyArticlePrefix = "article:"

	msgCacheHit       = "cache hit"
	msgErrCacheRead   = "failed to read from cache"
	msgErrCacheWrite  = "failed to write to cache"
	msgErrCacheDecode = "failed to decode cached value"
	msgErrCacheEvict  = "failed to evict cache entry"
)

func articleCacheKey(slug string) string {
	return cacheKeyArticlePrefix + slug
}

// cacheLoad читает значение из кэша. Любая ошибка кэша трактуется как промах,
// источником истины остается база данных.
func cacheLoad[T any](ctx context.Context, c cache.Cache, key string) (T, bool) {
	var value T

	data, err := c.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			logger.Log(ctx).Warn(ctx, msgErrCacheRead, zap.String("key", key), zap.Error(err))
		}
		return value, false
	}

	if err := json.Unmarshal(data, &value); err != nil {
		logger.Log(ctx).Warn(ctx, msgErrCacheDecode, zap.String("key", key), zap.Error(err))
		return value, false
	}

	logger.Log(ctx).Debug(ctx, msgCacheHit, zap.String("key", key))
	return value, true
}

func cacheStore(ctx context.Context, c cache.Cache, key string, value any) {
	data, err := json.Marshal(value)
	if err == nil {
		err = c.Set(ctx, key, data, 0)
	}
	if err != nil {
		logger.Log(ctx).Warn(ctx, msgErrCacheWrite, zap.String("key", key), zap.Error(err))
	}
}

func cacheEvict(ctx context.Context, c cache.Cache, keys ...string) {
	if err := c.Delete(ctx, keys...); err != nil {
		logger.Log(ctx).Warn(ctx, msgErrCacheEvict, zap.Strings("keys", keys), zap.Error(err))
	}
}
