package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"conduit/internal/conduit/domain/entities"
	"conduit/internal/conduit/ports/api"
	"conduit/internal/conduit/ports/cache"
	"conduit/internal/conduit/ports/repositories"
	"conduit/pkg/logger"
	"conduit/pkg/validation"
)

const (
	methodListArticles  = "ListArticles"
	methodFeed          = "Feed"
	methodGetArticle    = "GetArticle"
	methodCreateArticle = "CreateArticle"
	methodUpdateArticle = "UpdateArticle"
	methodDeleteArticle = "DeleteArticle"
	methodFavorite      = "Favorite"
	methodUnfavorite    = "Unfavorite"

	msgArticleCreated  = "article created"
	msgArticleUpdated  = "article updated"
	msgArticleDeleted  = "article deleted"
	msgFavoriteChanged = "favorite status changed"
	msgNotAuthor       = "user is not the author of the article"

	msgErrListArticles   = "failed to list articles"
	msgErrFindingArticle = "error finding article"
	msgErrCreateArticle  = "failed to create article"
	msgErrUpdateArticle  = "failed to update article"
	msgErrDeleteArticle  = "failed to delete article"
	msgErrChangeFavorite = "failed to change favorite status"

	errCtxListingArticles = "listing articles"
	errCtxFindingArticle  = "finding article"
	errCtxCreatingArticle = "creating article"
	errCtxUpdatingArticle = "updating article"
	errCtxDeletingArticle = "deleting article"
	errCtxFavoriting      = "favoriting article"
	errCtxUnfavoriting    = "unfavoriting article"
	errCtxCheckingAuthor  = "checking article author"
)

// ArticleUseCaseImpl реализует интерфейс ArticleUseCase.
// Анонимное представление статьи и список тегов кэшируются.
type ArticleUseCaseImpl struct {
	articleRepo repositories.ArticleRepository
	cache       cache.Cache
}

// NewArticleUseCase создает новый экземпляр сервиса статей.
func NewArticleUseCase(articleRepo repositories.ArticleRepository, c cache.Cache) api.ArticleUseCase {
	return &ArticleUseCaseImpl{articleRepo: articleRepo, cache: c}
}

// List возвращает статьи по фильтрам, новые первыми.
func (a *ArticleUseCaseImpl) List(ctx context.Context, viewerID string, query validation.GetArticlesQuery) (*entities.ArticlePage, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListArticles))

	page, err := a.articleRepo.List(ctx, entities.ArticleFilter{
		Tag:       query.Tag,
		Author:    query.Author,
		Favorited: query.Favorited,
		ViewerID:  viewerID,
		Limit:     query.Limit,
		Offset:    query.Offset,
	})
	if err != nil {
		log.Error(ctx, msgErrListArticles, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingArticles, err)
	}
	return page, nil
}

// Feed возвращает статьи авторов, на которых подписан viewerID.
func (a *ArticleUseCaseImpl) Feed(ctx context.Context, viewerID string, query validation.GetArticleFeedQuery) (*entities.ArticlePage, error) {
	log := logger.Log(ctx).With(zap.String("method", methodFeed), zap.String("userID", viewerID))

	page, err := a.articleRepo.List(ctx, entities.ArticleFilter{
		FeedOf:   viewerID,
		ViewerID: viewerID,
		Limit:    query.Limit,
		Offset:   query.Offset,
	})
	if err != nil {
		log.Error(ctx, msgErrListArticles, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingArticles, err)
	}
	return page, nil
}

// Get возвращает статью по slug.
func (a *ArticleUseCaseImpl) Get(ctx context.Context, viewerID, slug string) (*entities.Article, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetArticle), zap.String("slug", slug))

	if viewerID == "" {
		if article, ok := cacheLoad[*entities.Article](ctx, a.cache, articleCacheKey(slug)); ok && article != nil {
			return article, nil
		}
	}

	article, err := a.articleRepo.FindBySlug(ctx, slug, viewerID)
	if err != nil {
		log.Debug(ctx, msgErrFindingArticle, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingArticle, err)
	}

	if viewerID == "" {
		cacheStore(ctx, a.cache, articleCacheKey(slug), article)
	}
	return article, nil
}

// Create публикует статью от имени authorID.
func (a *ArticleUseCaseImpl) Create(ctx context.Context, authorID string, input validation.NewArticle) (*entities.Article, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateArticle), zap.String("userID", authorID))

	created, err := a.articleRepo.Create(ctx, &entities.Article{
		Slug:        newSlug(input.Title),
		Title:       input.Title,
		Description: input.Description,
		Body:        input.Body,
		TagList:     input.TagList,
		AuthorID:    authorID,
	})
	if err != nil {
		log.Error(ctx, msgErrCreateArticle, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingArticle, err)
	}

	if len(input.TagList) > 0 {
		cacheEvict(ctx, a.cache, cacheKeyTags)
	}

	log.Info(ctx, msgArticleCreated, zap.String("slug", created.Slug))
	return a.reload(ctx, created.Slug, authorID)
}

// Update изменяет статью. Менять статью может только ее автор; смена заголовка меняет slug.
func (a *ArticleUseCaseImpl) Update(ctx context.Context, userID, slug string, changes validation.ArticleChanges) (*entities.Article, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateArticle), zap.String("slug", slug))

	article, err := a.ownedArticle(ctx, userID, slug)
	if err != nil {
		return nil, err
	}

	if changes.Title != nil && *changes.Title != article.Title {
		article.Title = *changes.Title
		article.Slug = newSlug(article.Title)
	}
	if changes.Description != nil {
		article.Description = *changes.Description
	}
	if changes.Body != nil {
		article.Body = *changes.Body
	}
	article.TagList = changes.TagList

	updated, err := a.articleRepo.Update(ctx, article)
	if err != nil {
		log.Error(ctx, msgErrUpdateArticle, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingArticle, err)
	}

	keys := []string{articleCacheKey(slug)}
	if changes.TagList != nil {
		keys = append(keys, cacheKeyTags)
	}
	cacheEvict(ctx, a.cache, keys...)

	log.Info(ctx, msgArticleUpdated, zap.String("newSlug", updated.Slug))
	return a.reload(ctx, updated.Slug, userID)
}

// Delete удаляет статью. Удалять статью может только ее автор.
func (a *ArticleUseCaseImpl) Delete(ctx context.Context, userID, slug string) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteArticle), zap.String("slug", slug))

	article, err := a.ownedArticle(ctx, userID, slug)
	if err != nil {
		return err
	}

	if err := a.articleRepo.Delete(ctx, article.ID); err != nil {
		log.Error(ctx, msgErrDeleteArticle, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeletingArticle, err)
	}

	cacheEvict(ctx, a.cache, articleCacheKey(slug), cacheKeyTags)
	log.Info(ctx, msgArticleDeleted)
	return nil
}

// Favorite добавляет статью в избранное пользователя.
func (a *ArticleUseCaseImpl) Favorite(ctx context.Context, userID, slug string) (*entities.Article, error) {
	return a.changeFavorite(ctx, methodFavorite, errCtxFavoriting, userID, slug, a.articleRepo.Favorite)
}

// Unfavorite убирает статью из избранного пользователя.
func (a *ArticleUseCaseImpl) Unfavorite(ctx context.Context, userID, slug string) (*entities.Article, error) {
	return a.changeFavorite(ctx, methodUnfavorite, errCtxUnfavoriting, userID, slug, a.articleRepo.Unfavorite)
}

func (a *ArticleUseCaseImpl) changeFavorite(
	ctx context.Context,
	method, errCtx, userID, slug string,
	change func(ctx context.Context, userID, articleID string) error,
) (*entities.Article, error) {
	log := logger.Log(ctx).With(zap.String("method", method), zap.String("slug", slug))

	article, err := a.articleRepo.FindBySlug(ctx, slug, userID)
	if err != nil {
		log.Debug(ctx, msgErrFindingArticle, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingArticle, err)
	}

	if err := change(ctx, userID, article.ID); err != nil {
		log.Error(ctx, msgErrChangeFavorite, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	cacheEvict(ctx, a.cache, articleCacheKey(slug))
	log.Info(ctx, msgFavoriteChanged, zap.String("userID", userID))
	return a.reload(ctx, slug, userID)
}

// ownedArticle находит статью и проверяет, что ее автор - userID.
func (a *ArticleUseCaseImpl) ownedArticle(ctx context.Context, userID, slug string) (*entities.Article, error) {
	log := logger.Log(ctx)

	article, err := a.articleRepo.FindBySlug(ctx, slug, userID)
	if err != nil {
		log.Debug(ctx, msgErrFindingArticle, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingArticle, err)
	}
	if article.AuthorID != userID {
		log.Debug(ctx, msgNotAuthor, zap.String("userID", userID))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingAuthor, entities.ErrNotArticleAuthor)
	}
	return article, nil
}

func (a *ArticleUseCaseImpl) reload(ctx context.Context, slug, viewerID string) (*entities.Article, error) {
	article, err := a.articleRepo.FindBySlug(ctx, slug, viewerID)
	if err != nil {
		logger.Log(ctx).Error(ctx, msgErrFindingArticle, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingArticle, err)
	}
	return article, nil
}
