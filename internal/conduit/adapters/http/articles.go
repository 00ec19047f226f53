package http

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"conduit/pkg/logger"
	"conduit/pkg/validation"
)

// Константы для логирования.
const (
	LogHandlerListArticles  = "articles handler: list"
	LogHandlerFeed          = "articles handler: feed"
	LogHandlerGetArticle    = "articles handler: get"
	LogHandlerCreateArticle = "articles handler: create"
	LogHandlerUpdateArticle = "articles handler: update"
	LogHandlerDeleteArticle = "articles handler: delete"
	LogHandlerFavorite      = "articles handler: favorite"
	LogHandlerUnfavorite    = "articles handler: unfavorite"
)

// ListArticles обрабатывает GET /api/articles?tag=&author=&favorited=&limit=&offset=.
func (h *Handler) ListArticles(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Info(requestCtx, LogHandlerListArticles)

	query := validation.ValidateGetArticlesQuery(ctx.Queries())
	if err := query.Err(); err != nil {
		return err
	}

	page, err := h.articles.List(requestCtx, viewerID(ctx), query.Data)
	if err != nil {
		return fmt.Errorf("listing articles: %w", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(newArticlesResponse(page))
}

// Feed обрабатывает GET /api/articles/feed.
func (h *Handler) Feed(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Info(requestCtx, LogHandlerFeed)

	s, err := currentSession(ctx)
	if err != nil {
		return err
	}

	query := validation.ValidateGetArticleFeedQuery(ctx.Queries())
	if err := query.Err(); err != nil {
		return err
	}

	page, err := h.articles.Feed(requestCtx, s.UserID, query.Data)
	if err != nil {
		return fmt.Errorf("loading feed: %w", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(newArticlesResponse(page))
}

// GetArticle обрабатывает GET /api/articles/:slug.
func (h *Handler) GetArticle(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Info(requestCtx, LogHandlerGetArticle)

	article, err := h.articles.Get(requestCtx, viewerID(ctx), ctx.Params("slug"))
	if err != nil {
		return fmt.Errorf("getting article: %w", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(ArticleResponse{Article: newArticleDTO(article)})
}

// CreateArticle обрабатывает POST /api/articles.
func (h *Handler) CreateArticle(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Info(requestCtx, LogHandlerCreateArticle)

	s, err := currentSession(ctx)
	if err != nil {
		return err
	}

	raw, err := readBody(ctx)
	if err != nil {
		return err
	}
	req := validation.ValidateCreateArticle(raw)
	if err := req.Err(); err != nil {
		return err
	}

	article, err := h.articles.Create(requestCtx, s.UserID, req.Data.Article)
	if err != nil {
		return fmt.Errorf("creating article: %w", err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(ArticleResponse{Article: newArticleDTO(article)})
}

// UpdateArticle обрабатывает PUT /api/articles/:slug.
func (h *Handler) UpdateArticle(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Info(requestCtx, LogHandlerUpdateArticle)

	s, err := currentSession(ctx)
	if err != nil {
		return err
	}

	raw, err := readBody(ctx)
	if err != nil {
		return err
	}
	req := validation.ValidateUpdateArticle(raw)
	if err := req.Err(); err != nil {
		return err
	}

	article, err := h.articles.Update(requestCtx, s.UserID, ctx.Params("slug"), req.Data.Article)
	if err != nil {
		return fmt.Errorf("updating article: %w", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(ArticleResponse{Article: newArticleDTO(article)})
}

// DeleteArticle обрабатывает DELETE /api/articles/:slug.
func (h *Handler) DeleteArticle(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Info(requestCtx, LogHandlerDeleteArticle)

	s, err := currentSession(ctx)
	if err != nil {
		return err
	}

	if err := h.articles.Delete(requestCtx, s.UserID, ctx.Params("slug")); err != nil {
		return fmt.Errorf("deleting article: %w", err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// FavoriteArticle обрабатывает POST /api/articles/:slug/favorite.
func (h *Handler) FavoriteArticle(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Info(requestCtx, LogHandlerFavorite)

	s, err := currentSession(ctx)
	if err != nil {
		return err
	}

	article, err := h.articles.Favorite(requestCtx, s.UserID, ctx.Params("slug"))
	if err != nil {
		return fmt.Errorf("favoriting article: %w", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(ArticleResponse{Article: newArticleDTO(article)})
}

// UnfavoriteArticle обрабатывает DELETE /api/articles/:slug/favorite.
func (h *Handler) UnfavoriteArticle(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Info(requestCtx, LogHandlerUnfavorite)

	s, err := currentSession(ctx)
	if err != nil {
		return err
	}

	article, err := h.articles.Unfavorite(requestCtx, s.UserID, ctx.Params("slug"))
	if err != nil {
		return fmt.Errorf("unfavoriting article: %w", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(ArticleResponse{Article: newArticleDTO(article)})
}
