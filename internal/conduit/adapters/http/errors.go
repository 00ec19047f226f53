package http

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"conduit/internal/conduit/domain/entities"
	"conduit/internal/conduit/domain/services"
	"conduit/pkg/apperr"
	"conduit/pkg/logger"
	"conduit/pkg/validation"
)

// Константы для логирования.
const (
	LogRequestRejected = "request rejected"
	LogInternalError   = "internal error while serving request"
	LogValidationError = "request validation failed"
)

// domainErrors связывает ошибки домена с видами прикладных ошибок.
var domainErrors = []apperr.Mapping{
	{Target: entities.ErrUserNotFound, Kind: apperr.KindNotFound},
	{Target: entities.ErrEmailTaken, Kind: apperr.KindConflict},
	{Target: entities.ErrUsernameTaken, Kind: apperr.KindConflict},
	{Target: entities.ErrInvalidCredentials, Kind: apperr.KindUnauthorized},
	{Target: entities.ErrCannotFollowSelf, Kind: apperr.KindBadRequest},
	{Target: entities.ErrArticleNotFound, Kind: apperr.KindNotFound},
	{Target: entities.ErrSlugTaken, Kind: apperr.KindConflict},
	{Target: entities.ErrNotArticleAuthor, Kind: apperr.KindForbidden},
	{Target: entities.ErrCommentNotFound, Kind: apperr.KindNotFound},
	{Target: entities.ErrNotCommentAuthor, Kind: apperr.KindForbidden},
	{Target: services.ErrInvalidJWTToken, Kind: apperr.KindUnauthorized},
	{Target: services.ErrExpiredJWTToken, Kind: apperr.KindUnauthorized},
}

// ErrorBody - тело ответа об ошибке в формате RealWorld: {"errors": {"body": [...]}}.
type ErrorBody struct {
	Errors struct {
		Body []string `json:"body"`
	} `json:"errors"`
}

func newErrorBody(messages ...string) ErrorBody {
	var body ErrorBody
	body.Errors.Body = messages
	return body
}

// ErrorHandler - обработчик ошибок fiber для всего приложения.
// Ошибки проверки отдаются как 422 с перечнем полей, остальные - по виду apperr.
func ErrorHandler(ctx fiber.Ctx, err error) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("path", ctx.Path()))

	var validationErr *validation.Error
	if errors.As(err, &validationErr) {
		log.Debug(requestCtx, LogValidationError, zap.Error(err))
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(validation.FormatValidationError(validationErr))
	}

	var fiberErr *fiber.Error
	if _, ok := apperr.As(err); !ok && errors.As(err, &fiberErr) {
		err = apperr.New(kindForStatus(fiberErr.Code), fiberErr.Message)
	}

	appErr := apperr.From(err, domainErrors...)
	if appErr.Kind == apperr.KindInternal {
		log.Error(requestCtx, LogInternalError, zap.Error(err))
	} else {
		log.Debug(requestCtx, LogRequestRejected, zap.String("kind", string(appErr.Kind)), zap.Error(err))
	}

	return ctx.Status(appErr.StatusCode).JSON(newErrorBody(appErr.Message))
}

func kindForStatus(code int) apperr.Kind {
	switch code {
	case fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge:
		return apperr.KindBadRequest
	case fiber.StatusUnauthorized:
		return apperr.KindUnauthorized
	case fiber.StatusForbidden:
		return apperr.KindForbidden
	case fiber.StatusNotFound:
		return apperr.KindNotFound
	case fiber.StatusMethodNotAllowed:
		return apperr.KindMethodNotAllowed
	case fiber.StatusRequestTimeout:
		return apperr.KindRequestTimeout
	case fiber.StatusConflict:
		return apperr.KindConflict
	case fiber.StatusUnprocessableEntity:
		return apperr.KindUnprocessableEntity
	case fiber.StatusTooManyRequests:
		return apperr.KindTooManyRequests
	case fiber.StatusServiceUnavailable:
		return apperr.KindServiceUnavailable
	default:
		return apperr.KindInternal
	}
}
