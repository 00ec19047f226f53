package api

import (
	"context"

	"conduit/internal/conduit/domain/entities"
	"conduit/pkg/validation"
)

// ArticleUseCase определяет операции над статьями и избранным.
type ArticleUseCase interface {
	List(ctx context.Context, viewerID string, query validation.GetArticlesQuery) (*entities.ArticlePage, error)

	Feed(ctx context.Context, viewerID string, query validation.GetArticleFeedQuery) (*entities.ArticlePage, error)

	Get(ctx context.Context, viewerID, slug string) (*entities.Article, error)

	Create(ctx context.Context, authorID string, input validation.NewArticle) (*entities.Article, error)

	Update(ctx context.Context, userID, slug string, changes validation.ArticleChanges) (*entities.Article, error)

	Delete(ctx context.Context, userID, slug string) error

	Favorite(ctx context.Context, userID, slug string) (*entities.Article, error)

	Unfavorite(ctx context.Context, userID, slug string) (*entities.Article, error)
}
