package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"conduit/internal/conduit/domain/entities"
	"conduit/internal/conduit/ports/api"
	"conduit/internal/conduit/ports/repositories"
	"conduit/pkg/logger"
	"conduit/pkg/validation"
)

const (
	methodListComments  = "ListComments"
	methodAddComment    = "AddComment"
	methodDeleteComment = "DeleteComment"

	msgCommentAdded     = "comment added"
	msgCommentDeleted   = "comment deleted"
	msgNotCommentAuthor = "user is not the author of the comment"
	msgCommentMismatch  = "comment belongs to another article"

	msgErrListComments  = "failed to list comments"
	msgErrAddComment    = "failed to add comment"
	msgErrDeleteComment = "failed to delete comment"
	msgErrFindComment   = "error finding comment"

	errCtxListingComments = "listing comments"
	errCtxAddingComment   = "adding comment"
	errCtxDeletingComment = "deleting comment"
	errCtxFindingComment  = "finding comment"
	errCtxFindingAuthor   = "finding comment author"
	errCtxCommentAuthor   = "checking comment author"
)

// CommentUseCaseImpl реализует интерфейс CommentUseCase.
type CommentUseCaseImpl struct {
	articleRepo repositories.ArticleRepository
	commentRepo repositories.CommentRepository
	userRepo    repositories.UserRepository
}

// NewCommentUseCase создает новый экземпляр сервиса комментариев.
func NewCommentUseCase(
	articleRepo repositories.ArticleRepository,
	commentRepo repositories.CommentRepository,
	userRepo repositories.UserRepository,
) api.CommentUseCase {
	return &CommentUseCaseImpl{
		articleRepo: articleRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
	}
}

// List возвращает комментарии статьи, новые первыми.
func (c *CommentUseCaseImpl) List(ctx context.Context, viewerID, slug string, query validation.GetCommentsQuery) ([]*entities.Comment, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListComments), zap.String("slug", slug))

	article, err := c.findArticle(ctx, slug)
	if err != nil {
		return nil, err
	}

	comments, err := c.commentRepo.ListByArticle(ctx, article.ID, viewerID, query.Limit, query.Offset)
	if err != nil {
		log.Error(ctx, msgErrListComments, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingComments, err)
	}
	return comments, nil
}

// Add добавляет комментарий от имени authorID.
func (c *CommentUseCaseImpl) Add(ctx context.Context, authorID, slug string, input validation.NewComment) (*entities.Comment, error) {
	log := logger.Log(ctx).With(zap.String("method", methodAddComment), zap.String("slug", slug))

	article, err := c.findArticle(ctx, slug)
	if err != nil {
		return nil, err
	}

	author, err := c.userRepo.FindByID(ctx, authorID)
	if err != nil {
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingAuthor, err)
	}

	created, err := c.commentRepo.Create(ctx, &entities.Comment{
		Body:      input.Body,
		ArticleID: article.ID,
		AuthorID:  author.ID,
	})
	if err != nil {
		log.Error(ctx, msgErrAddComment, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxAddingComment, err)
	}
	created.Author = author.Profile(false)

	log.Info(ctx, msgCommentAdded, zap.String("commentID", created.ID))
	return created, nil
}

// Delete удаляет комментарий. Удалять комментарий может только его автор.
func (c *CommentUseCaseImpl) Delete(ctx context.Context, userID, slug, commentID string) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteComment), zap.String("commentID", commentID))

	article, err := c.findArticle(ctx, slug)
	if err != nil {
		return err
	}

	comment, err := c.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		log.Debug(ctx, msgErrFindComment, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxFindingComment, err)
	}
	if comment.ArticleID != article.ID {
		log.Debug(ctx, msgCommentMismatch)
		return fmt.Errorf("%s: %w", errCtxFindingComment, entities.ErrCommentNotFound)
	}
	if comment.AuthorID != userID {
		log.Debug(ctx, msgNotCommentAuthor, zap.String("userID", userID))
		return fmt.Errorf("%s: %w", errCtxCommentAuthor, entities.ErrNotCommentAuthor)
	}

	if err := c.commentRepo.Delete(ctx, comment.ID); err != nil {
		log.Error(ctx, msgErrDeleteComment, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeletingComment, err)
	}

	log.Info(ctx, msgCommentDeleted)
	return nil
}

func (c *CommentUseCaseImpl) findArticle(ctx context.Context, slug string) (*entities.Article, error) {
	article, err := c.articleRepo.FindBySlug(ctx, slug, "")
	if err != nil {
		logger.Log(ctx).Debug(ctx, msgErrFindingArticle, zap.String("slug", slug), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingArticle, err)
	}
	return article, nil
}
