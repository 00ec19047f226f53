// Package http содержит HTTP API Conduit: маршруты, обработчики и преобразование ошибок.
package http

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"go.uber.org/zap"

	"conduit/internal/conduit/adapters/http/middleware"
	"conduit/internal/conduit/config"
	svc "conduit/internal/conduit/ports/services"
	"conduit/pkg/apperr"
	"conduit/pkg/logger"
)

// Константы для логирования.
const (
	LogHealthCheckFailed = "health check failed"

	ErrorRouteNotFound = "route not found"
	ErrorUnhealthy     = "service unavailable"
)

// HealthCheck проверяет зависимости сервиса, например соединение с базой данных.
type HealthCheck func(ctx context.Context) error

// RouterOptions - необязательные части маршрутизации.
type RouterOptions struct {
	CORSOrigins []string
	// RateLimiter == nil отключает ограничение частоты запросов.
	RateLimiter *middleware.RateLimiter
	HealthCheck HealthCheck
}

// NewApp создает приложение fiber с общим обработчиком ошибок.
func NewApp(cfg *config.HTTPConfig) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      config.ServiceName,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: ErrorHandler,
	})
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, uc UseCases, tokens svc.TokenService, opts RouterOptions) {
	h := NewHandler(uc)
	requireAuth := middleware.NewAuthMiddleware(tokens)
	optionalAuth := middleware.NewOptionalAuthMiddleware(tokens)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodDelete, fiber.MethodOptions},
		AllowHeaders:  []string{fiber.HeaderOrigin, fiber.HeaderContentType, fiber.HeaderAccept, fiber.HeaderAuthorization, logger.RequestIDHeader},
		ExposeHeaders: []string{logger.RequestIDHeader},
	}))

	app.Get("/health", healthHandler(opts.HealthCheck))

	api := app.Group("/api")
	if opts.RateLimiter != nil {
		api.Use(opts.RateLimiter.Handler())
	}

	// Пользователи.
	api.Post("/users", h.Register)
	api.Post("/users/login", h.Login)
	api.Get("/user", h.CurrentUser, requireAuth)
	api.Put("/user", h.UpdateUser, requireAuth)

	// Профили.
	api.Get("/profiles/:username", h.GetProfile, optionalAuth)
	api.Post("/profiles/:username/follow", h.Follow, requireAuth)
	api.Delete("/profiles/:username/follow", h.Unfollow, requireAuth)

	// Статьи. /articles/feed объявлен раньше /articles/:slug.
	api.Get("/articles", h.ListArticles, optionalAuth)
	api.Get("/articles/feed", h.Feed, requireAuth)
	api.Post("/articles", h.CreateArticle, requireAuth)
	api.Get("/articles/:slug", h.GetArticle, optionalAuth)
	api.Put("/articles/:slug", h.UpdateArticle, requireAuth)
	api.Delete("/articles/:slug", h.DeleteArticle, requireAuth)
	api.Post("/articles/:slug/favorite", h.FavoriteArticle, requireAuth)
	api.Delete("/articles/:slug/favorite", h.UnfavoriteArticle, requireAuth)

	// Комментарии.
	api.Get("/articles/:slug/comments", h.ListComments, optionalAuth)
	api.Post("/articles/:slug/comments", h.AddComment, requireAuth)
	api.Delete("/articles/:slug/comments/:id", h.DeleteComment, requireAuth)

	// Теги.
	api.Get("/tags", h.ListTags)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(fiber.Ctx) error {
		return apperr.NotFound(ErrorRouteNotFound)
	})
}

func healthHandler(check HealthCheck) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		if check != nil {
			if err := check(requestCtx); err != nil {
				logger.Log(requestCtx).Warn(requestCtx, LogHealthCheckFailed, zap.Error(err))
				return apperr.Wrap(apperr.KindServiceUnavailable, ErrorUnhealthy, err)
			}
		}
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	}
}
