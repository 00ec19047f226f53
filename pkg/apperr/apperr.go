// Package apperr описывает ошибки прикладного уровня с HTTP-кодом и метаданными
// для мониторинга. Вместо иерархии типов используется одна структура с полем Kind.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind - вид ошибки.
type Kind string

// Виды ошибок.
const (
	KindBadRequest          Kind = "bad_request"
	KindUnauthorized        Kind = "unauthorized"
	KindForbidden           Kind = "forbidden"
	KindNotFound            Kind = "not_found"
	KindMethodNotAllowed    Kind = "method_not_allowed"
	KindRequestTimeout      Kind = "request_timeout"
	KindConflict            Kind = "conflict"
	KindUnprocessableEntity Kind = "unprocessable_entity"
	KindTooManyRequests     Kind = "too_many_requests"
	KindInternal            Kind = "internal"
	KindNotImplemented      Kind = "not_implemented"
	KindServiceUnavailable  Kind = "service_unavailable"
)

// Severity - уровень серьезности ошибки.
type Severity string

// Уровни серьезности.
const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Category - категория ошибки для мониторинга и алертов.
type Category string

// Категории ошибок.
const (
	CategoryValidation      Category = "validation"
	CategoryAuthentication  Category = "authentication"
	CategoryAuthorization   Category = "authorization"
	CategoryBusinessLogic   Category = "business_logic"
	CategoryExternalService Category = "external_service"
	CategoryDatabase        Category = "database"
	CategoryNetwork         Category = "network"
	CategorySystem          Category = "system"
)

// Metadata - метаданные вида ошибки.
type Metadata struct {
	Severity  Severity `json:"severity"`
	Category  Category `json:"category"`
	Retryable bool     `json:"retryable"`
}

type kindInfo struct {
	status int
	meta   Metadata
}

var kinds = map[Kind]kindInfo{
	KindBadRequest:          {http.StatusBadRequest, Metadata{SeverityLow, CategoryValidation, false}},
	KindUnauthorized:        {http.StatusUnauthorized, Metadata{SeverityMedium, CategoryAuthentication, false}},
	KindForbidden:           {http.StatusForbidden, Metadata{SeverityMedium, CategoryAuthorization, false}},
	KindNotFound:            {http.StatusNotFound, Metadata{SeverityLow, CategoryBusinessLogic, false}},
	KindMethodNotAllowed:    {http.StatusMethodNotAllowed, Metadata{SeverityLow, CategoryValidation, false}},
	KindRequestTimeout:      {http.StatusRequestTimeout, Metadata{SeverityMedium, CategoryNetwork, true}},
	KindConflict:            {http.StatusConflict, Metadata{SeverityLow, CategoryBusinessLogic, false}},
	KindUnprocessableEntity: {http.StatusUnprocessableEntity, Metadata{SeverityLow, CategoryValidation, false}},
	KindTooManyRequests:     {http.StatusTooManyRequests, Metadata{SeverityMedium, CategoryNetwork, true}},
	KindInternal:            {http.StatusInternalServerError, Metadata{SeverityHigh, CategorySystem, false}},
	KindNotImplemented:      {http.StatusNotImplemented, Metadata{SeverityMedium, CategorySystem, false}},
	KindServiceUnavailable:  {http.StatusServiceUnavailable, Metadata{SeverityCritical, CategoryExternalService, true}},
}

// StatusCode возвращает HTTP-код вида ошибки. Для неизвестного вида - 500.
func (k Kind) StatusCode() int {
	if info, ok := kinds[k]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

// Metadata возвращает метаданные вида ошибки.
func (k Kind) Metadata() Metadata {
	if info, ok := kinds[k]; ok {
		return info.meta
	}
	return kinds[KindInternal].meta
}

// Error - ошибка прикладного уровня.
type Error struct {
	Kind       Kind           `json:"kind"`
	StatusCode int            `json:"statusCode"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

// New создает ошибку вида kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, StatusCode: kind.StatusCode(), Message: message}
}

// Wrap создает ошибку вида kind с причиной err.
func Wrap(kind Kind, message string, err error) *Error {
	e := New(kind, message)
	e.Err = err
	return e
}

// Error реализует интерфейс error.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap возвращает причину ошибки.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is сравнивает ошибки по виду: errors.Is(err, apperr.New(apperr.KindNotFound, "")).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// WithDetails возвращает копию ошибки с дополнительными деталями.
func (e *Error) WithDetails(details map[string]any) *Error {
	out := *e
	out.Details = make(map[string]any, len(e.Details)+len(details))
	for k, v := range e.Details {
		out.Details[k] = v
	}
	for k, v := range details {
		out.Details[k] = v
	}
	return &out
}

// Metadata возвращает метаданные ошибки.
func (e *Error) Metadata() Metadata {
	return e.Kind.Metadata()
}

// BadRequest создает ошибку 400.
func BadRequest(message string) *Error { return New(KindBadRequest, message) }

// Unauthorized создает ошибку 401.
func Unauthorized(message string) *Error { return New(KindUnauthorized, message) }

// Forbidden создает ошибку 403.
func Forbidden(message string) *Error { return New(KindForbidden, message) }

// NotFound создает ошибку 404.
func NotFound(message string) *Error { return New(KindNotFound, message) }

// MethodNotAllowed создает ошибку 405.
func MethodNotAllowed(message string) *Error { return New(KindMethodNotAllowed, message) }

// RequestTimeout создает ошибку 408.
func RequestTimeout(message string) *Error { return New(KindRequestTimeout, message) }

// Conflict создает ошибку 409.
func Conflict(message string) *Error { return New(KindConflict, message) }

// UnprocessableEntity создает ошибку 422.
func UnprocessableEntity(message string) *Error { return New(KindUnprocessableEntity, message) }

// TooManyRequests создает ошибку 429.
func TooManyRequests(message string) *Error { return New(KindTooManyRequests, message) }

// Internal создает ошибку 500.
func Internal(message string) *Error { return New(KindInternal, message) }

// NotImplemented создает ошибку 501.
func NotImplemented(message string) *Error { return New(KindNotImplemented, message) }

// ServiceUnavailable создает ошибку 503.
func ServiceUnavailable(message string) *Error { return New(KindServiceUnavailable, message) }

// As извлекает *Error из цепочки ошибок.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Mapping связывает доменную ошибку с видом прикладной ошибки.
type Mapping struct {
	Target  error
	Kind    Kind
	Message string
}

// From приводит произвольную ошибку к *Error: сначала ищется *Error в цепочке,
// затем первое совпадение errors.Is среди mappings. Остальное становится KindInternal.
func From(err error, mappings ...Mapping) *Error {
	if err == nil {
		return nil
	}
	if e, ok := As(err); ok {
		return e
	}
	for _, m := range mappings {
		if errors.Is(err, m.Target) {
			message := m.Message
			if message == "" {
				message = m.Target.Error()
			}
			return Wrap(m.Kind, message, err)
		}
	}
	return Wrap(KindInternal, http.StatusText(http.StatusInternalServerError), err)
}
