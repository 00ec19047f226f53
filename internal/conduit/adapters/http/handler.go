package http

import (
	"github.com/gofiber/fiber/v3"

	"conduit/internal/conduit/ports/api"
	"conduit/internal/conduit/session"
	"conduit/pkg/apperr"
)

// Сообщения об ошибках запроса.
const (
	ErrorMissingSession = "authentication required"
	ErrorMalformedBody  = "malformed JSON body"
)

// UseCases - сценарии использования, которые обслуживает HTTP API.
type UseCases struct {
	Users    api.UserUseCase
	Profiles api.ProfileUseCase
	Articles api.ArticleUseCase
	Comments api.CommentUseCase
	Tags     api.TagUseCase
}

// Handler содержит HTTP обработчики API Conduit.
type Handler struct {
	users    api.UserUseCase
	profiles api.ProfileUseCase
	articles api.ArticleUseCase
	comments api.CommentUseCase
	tags     api.TagUseCase
}

// NewHandler создает новый экземпляр обработчика.
func NewHandler(uc UseCases) *Handler {
	return &Handler{
		users:    uc.Users,
		profiles: uc.Profiles,
		articles: uc.Articles,
		comments: uc.Comments,
		tags:     uc.Tags,
	}
}

// readBody декодирует JSON тела запроса в нетипизированное значение для пакета validation.
// Пустое тело дает nil, и проверка сообщит об отсутствующем объекте.
func readBody(ctx fiber.Ctx) (any, error) {
	if len(ctx.Body()) == 0 {
		return nil, nil
	}

	var raw any
	if err := ctx.Bind().JSON(&raw); err != nil {
		return nil, apperr.Wrap(apperr.KindBadRequest, ErrorMalformedBody, err)
	}
	return raw, nil
}

func currentSession(ctx fiber.Ctx) (*session.Session, error) {
	s, ok := session.FromContext(ctx.Context())
	if !ok {
		return nil, apperr.Unauthorized(ErrorMissingSession)
	}
	return s, nil
}

func viewerID(ctx fiber.Ctx) string {
	return session.UserID(ctx.Context())
}
