package repositories

import (
	"context"

	"conduit/internal/conduit/domain/entities"
)

// CommentRepository определяет интерфейс хранилища комментариев.
type CommentRepository interface {
	Create(ctx context.Context, comment *entities.Comment) (*entities.Comment, error)

	FindByID(ctx context.Context, id string) (*entities.Comment, error)

	ListByArticle(ctx context.Context, articleID, viewerID string, limit, offset int) ([]*entities.Comment, error)

	Delete(ctx context.Context, id string) error
}
