package cache

import (
	"context"
	"time"

	"conduit/internal/conduit/ports/cache"
)

// NoopCache используется, когда Redis отключен: любое чтение - промах.
type NoopCache struct{}

// NewNoopCache создает кэш, который ничего не хранит.
func NewNoopCache() cache.Cache {
	return NoopCache{}
}

// Get всегда возвращает cache.ErrCacheMiss.
func (NoopCache) Get(context.Context, string) ([]byte, error) {
	return nil, cache.ErrCacheMiss
}

// Set ничего не делает.
func (NoopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete ничего не делает.
func (NoopCache) Delete(context.Context, ...string) error { return nil }

// Close ничего не делает.
func (NoopCache) Close() error { return nil }
