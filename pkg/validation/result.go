// Package validation содержит схемы проверки и нормализации входящих данных API:
// реестр ограничений, фабрики схем полей, схемы сущностей и оболочки запросов.
//
// Все схемы строятся один раз при инициализации пакета и безопасны для
// конкурентного использования.
package validation

import (
	"strconv"
	"strings"
)

// Code определяет вид нарушения правила поля.
type Code string

// Коды нарушений.
const (
	CodeRequired         Code = "required"
	CodeInvalidType      Code = "invalid_type"
	CodeTooShort         Code = "too_short"
	CodeTooLong          Code = "too_long"
	CodeTooSmall         Code = "too_small"
	CodeTooBig           Code = "too_big"
	CodeInvalidFormat    Code = "invalid_format"
	CodeInvalidURL       Code = "invalid_url"
	CodeDuplicate        Code = "duplicate"
	CodeUnrecognizedKeys Code = "unrecognized_keys"
	CodeCustom           Code = "custom"
)

// Path указывает на поле внутри проверяемого значения.
type Path []string

// With возвращает новый путь с добавленным сегментом.
func (p Path) With(segment string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, segment)
}

// Index возвращает путь к элементу массива.
func (p Path) Index(i int) Path {
	return p.With(strconv.Itoa(i))
}

// String возвращает путь через точку.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// Issue описывает одно нарушение.
type Issue struct {
	Path    Path   `json:"path"`
	Message string `json:"message"`
	Code    Code   `json:"code"`
}

func newIssue(path Path, code Code, message string) Issue {
	if path == nil {
		path = Path{}
	}
	return Issue{Path: path, Message: message, Code: code}
}

// Error содержит все нарушения, найденные при проверке значения.
type Error struct {
	Issues []Issue `json:"issues"`
}

// Error реализует интерфейс error.
func (e *Error) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if len(issue.Path) == 0 {
			parts = append(parts, issue.Message)
			continue
		}
		parts = append(parts, issue.Path.String()+": "+issue.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Result - результат безопасного разбора: либо данные, либо ошибка, без частичного успеха.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   *Error `json:"error,omitempty"`
}

func newResult[T any](data T, issues []Issue) Result[T] {
	if len(issues) > 0 {
		return Result[T]{Error: &Error{Issues: issues}}
	}
	return Result[T]{Success: true, Data: data}
}

// Err возвращает ошибку проверки или nil.
func (r Result[T]) Err() error {
	if r.Success {
		return nil
	}
	return r.Error
}
