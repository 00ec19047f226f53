package api

import (
	"context"

	"conduit/internal/conduit/domain/entities"
	"conduit/pkg/validation"
)

// CommentUseCase определяет операции над комментариями к статьям.
type CommentUseCase interface {
	List(ctx context.Context, viewerID, slug string, query validation.GetCommentsQuery) ([]*entities.Comment, error)

	Add(ctx context.Context, authorID, slug string, input validation.NewComment) (*entities.Comment, error)

	Delete(ctx context.Context, userID, slug, commentID string) error
}
