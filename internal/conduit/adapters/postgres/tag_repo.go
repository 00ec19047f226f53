package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"conduit/internal/conduit/ports/repositories"
	"conduit/pkg/logger"
)

// TagRepository реализует repositories.TagRepository.
type TagRepository struct {
	pool PgxPoolInterface
}

// NewTagRepository создает новый экземпляр репозитория тегов.
func NewTagRepository(pool PgxPoolInterface) repositories.TagRepository {
	return &TagRepository{pool: pool}
}

// List возвращает теги по убыванию частоты использования.
func (r *TagRepository) List(ctx context.Context) ([]string, error) {
	log := logger.Log(ctx).With(zap.String("repository", "tag"), zap.String("method", "List"))

	query := `
        SELECT tag
        FROM article_tags
        GROUP BY tag
        ORDER BY COUNT(*) DESC, tag
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		log.Error(ctx, "error listing tags", zap.Error(err))
		return nil, fmt.Errorf("error listing tags: %w", err)
	}

	tags, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		log.Error(ctx, "error reading tags", zap.Error(err))
		return nil, fmt.Errorf("error reading tags: %w", err)
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}
