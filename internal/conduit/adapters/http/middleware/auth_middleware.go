// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	svc "conduit/internal/conduit/ports/services"
	"conduit/internal/conduit/session"
	"conduit/pkg/apperr"
	"conduit/pkg/logger"
)

// Константы для логирования.
const (
	LogAuthMiddleware   = "auth middleware"
	LogAnonymousRequest = "anonymous request"
	LogIgnoredToken     = "ignoring invalid token on optional auth route"

	ErrorNoAuthHeader       = "missing authorization token"
	ErrorInvalidTokenFormat = "invalid token format"
	ErrorInvalidToken       = "invalid or expired token"
)

// LocalsSession - ключ fiber locals, под которым хранится *session.Session.
const LocalsSession = "session"

var tokenSchemes = []string{"Token ", "Bearer "}

// extractToken поддерживает схемы "Token <jwt>" (RealWorld) и "Bearer <jwt>".
func extractToken(header string) (string, bool) {
	for _, scheme := range tokenSchemes {
		if len(header) > len(scheme) && strings.EqualFold(header[:len(scheme)], scheme) {
			token := strings.TrimSpace(header[len(scheme):])
			return token, token != ""
		}
	}
	return "", false
}

// NewAuthMiddleware создает промежуточное ПО, которое требует валидный токен.
func NewAuthMiddleware(tokens svc.TokenService) fiber.Handler {
	return newAuthMiddleware(tokens, true)
}

// NewOptionalAuthMiddleware пропускает анонимные запросы, но заполняет сессию, если токен валиден.
func NewOptionalAuthMiddleware(tokens svc.TokenService) fiber.Handler {
	return newAuthMiddleware(tokens, false)
}

func newAuthMiddleware(tokens svc.TokenService, required bool) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"), zap.Bool("required", required))
		log.Debug(requestCtx, LogAuthMiddleware)

		authHeader := ctx.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			if required {
				log.Debug(requestCtx, ErrorNoAuthHeader)
				return apperr.Unauthorized(ErrorNoAuthHeader)
			}
			log.Debug(requestCtx, LogAnonymousRequest)
			return ctx.Next()
		}

		token, ok := extractToken(authHeader)
		if !ok {
			if required {
				log.Debug(requestCtx, ErrorInvalidTokenFormat)
				return apperr.Unauthorized(ErrorInvalidTokenFormat)
			}
			log.Debug(requestCtx, LogIgnoredToken)
			return ctx.Next()
		}

		claims, err := tokens.ValidateToken(requestCtx, token)
		if err != nil {
			if required {
				log.Debug(requestCtx, ErrorInvalidToken, zap.Error(err))
				return apperr.Wrap(apperr.KindUnauthorized, ErrorInvalidToken, err)
			}
			log.Debug(requestCtx, LogIgnoredToken, zap.Error(err))
			return ctx.Next()
		}

		s := &session.Session{UserID: claims.UserID, Username: claims.Username, Token: token}
		ctx.SetContext(session.NewContext(requestCtx, s))
		ctx.Locals(LocalsSession, s)

		return ctx.Next()
	}
}
