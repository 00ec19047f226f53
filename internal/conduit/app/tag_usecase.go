package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"conduit/internal/conduit/ports/api"
	"conduit/internal/conduit/ports/cache"
	"conduit/internal/conduit/ports/repositories"
	"conduit/pkg/logger"
)

const (
	methodListTags = "ListTags"

	msgErrListTags    = "failed to list tags"
	errCtxListingTags = "listing tags"
)

// TagUseCaseImpl реализует интерфейс TagUseCase.
type TagUseCaseImpl struct {
	tagRepo repositories.TagRepository
	cache   cache.Cache
}

// NewTagUseCase создает новый экземпляр сервиса тегов.
func NewTagUseCase(tagRepo repositories.TagRepository, c cache.Cache) api.TagUseCase {
	return &TagUseCaseImpl{tagRepo: tagRepo, cache: c}
}

// List возвращает теги по убыванию популярности.
func (t *TagUseCaseImpl) List(ctx context.Context) ([]string, error) {
	if tags, ok := cacheLoad[[]string](ctx, t.cache, cacheKeyTags); ok && tags != nil {
		return tags, nil
	}

	tags, err := t.tagRepo.List(ctx)
	if err != nil {
		logger.Log(ctx).With(zap.String("method", methodListTags)).Error(ctx, msgErrListTags, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingTags, err)
	}

	cacheStore(ctx, t.cache, cacheKeyTags, tags)
	return tags, nil
}
