package repositories

import (
	"context"

	"conduit/internal/conduit/domain/entities"
)

// ArticleRepository определяет интерфейс хранилища статей, тегов и избранного.
// viewerID может быть пустым для анонимного читателя.
type ArticleRepository interface {
	Create(ctx context.Context, article *entities.Article) (*entities.Article, error)

	FindBySlug(ctx context.Context, slug, viewerID string) (*entities.Article, error)

	List(ctx context.Context, filter entities.ArticleFilter) (*entities.ArticlePage, error)

	Update(ctx context.Context, article *entities.Article) (*entities.Article, error)

	Delete(ctx context.Context, id string) error

	Favorite(ctx context.Context, userID, articleID string) error

	Unfavorite(ctx context.Context, userID, articleID string) error
}
