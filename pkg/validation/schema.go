package validation

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Schema проверяет и нормализует одно значение.
// raw == nil означает, что значение отсутствует.
type Schema[T any] interface {
	Parse(path Path, raw any) (T, []Issue)
}

// SchemaFunc позволяет использовать функцию как Schema.
type SchemaFunc[T any] func(path Path, raw any) (T, []Issue)

// Parse реализует Schema.
func (f SchemaFunc[T]) Parse(path Path, raw any) (T, []Issue) {
	return f(path, raw)
}

// Parse выполняет безопасный разбор значения схемой и никогда не паникует на входных данных.
func Parse[T any](schema Schema[T], raw any) Result[T] {
	data, issues := schema.Parse(Path{}, raw)
	return newResult(data, issues)
}

// Optional пропускает отсутствующее значение, возвращая nil.
func Optional[T any](schema Schema[T]) Schema[*T] {
	return SchemaFunc[*T](func(path Path, raw any) (*T, []Issue) {
		if raw == nil {
			return nil, nil
		}
		value, issues := schema.Parse(path, raw)
		if len(issues) > 0 {
			return nil, issues
		}
		return &value, nil
	})
}

// Default подставляет значение по умолчанию вместо отсутствующего и проверяет его той же схемой.
func Default[T any](schema Schema[T], def func() any) Schema[T] {
	return SchemaFunc[T](func(path Path, raw any) (T, []Issue) {
		if raw == nil {
			raw = def()
		}
		return schema.Parse(path, raw)
	})
}

// Refine добавляет проверку, выполняемую только над успешно разобранным значением.
func Refine[T any](schema Schema[T], check func(T) bool, message string) Schema[T] {
	return SchemaFunc[T](func(path Path, raw any) (T, []Issue) {
		value, issues := schema.Parse(path, raw)
		if len(issues) > 0 {
			return value, issues
		}
		if !check(value) {
			return value, []Issue{newIssue(path, CodeCustom, message)}
		}
		return value, nil
	})
}

// Transform преобразует успешно разобранное значение.
func Transform[T, U any](schema Schema[T], fn func(T) U) Schema[U] {
	return SchemaFunc[U](func(path Path, raw any) (U, []Issue) {
		value, issues := schema.Parse(path, raw)
		if len(issues) > 0 {
			var zero U
			return zero, issues
		}
		return fn(value), nil
	})
}

// typeName возвращает имя типа значения в терминах JSON.
func typeName(raw any) string {
	switch raw.(type) {
	case nil:
		return "undefined"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float32, float64, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, json.Number:
		return "number"
	case []any, []string:
		return "array"
	case map[string]any, map[string]string, map[string][]string:
		return "object"
	default:
		return fmt.Sprintf("%T", raw)
	}
}

func invalidType(path Path, expected string, raw any) Issue {
	return newIssue(path, CodeInvalidType, fmt.Sprintf("Expected %s, received %s", expected, typeName(raw)))
}

// expectString требует наличия строкового значения.
func expectString(path Path, raw any, requiredMessage string) (string, []Issue) {
	if raw == nil {
		return "", []Issue{newIssue(path, CodeRequired, requiredMessage)}
	}
	s, ok := raw.(string)
	if !ok {
		return "", []Issue{invalidType(path, "string", raw)}
	}
	return s, nil
}

func isTrimSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

func trim(s string) string {
	return strings.TrimFunc(s, isTrimSpace)
}

// length считает кодовые точки, а не UTF-16 единицы: символ вне BMP (например, эмодзи) считается за один.
func length(s string) int {
	return utf8.RuneCountInString(s)
}

// StringSchema принимает любую строку без нормализации.
var StringSchema Schema[string] = SchemaFunc[string](func(path Path, raw any) (string, []Issue) {
	return expectString(path, raw, "Required")
})

// TextSchema создает схему текстового поля: значение обрезается и проверяется на длину.
func TextSchema(bounds TextBounds, fieldName string) Schema[string] {
	requiredMessage := fieldName + " is required"
	tooLongMessage := fmt.Sprintf("%s must be no more than %d characters", fieldName, bounds.Max)

	return SchemaFunc[string](func(path Path, raw any) (string, []Issue) {
		s, issues := expectString(path, raw, requiredMessage)
		if issues != nil {
			return "", issues
		}

		s = trim(s)
		n := length(s)

		switch {
		case n == 0 && bounds.Min > 0:
			issues = append(issues, newIssue(path, CodeRequired, requiredMessage))
		case n < bounds.Min:
			issues = append(issues, newIssue(path, CodeTooShort, requiredMessage))
		}
		if n > bounds.Max {
			issues = append(issues, newIssue(path, CodeTooLong, tooLongMessage))
		}
		if issues != nil {
			return "", issues
		}
		return s, nil
	})
}

var fieldValidator = validator.New(validator.WithRequiredStructEnabled())

// Сообщения схемы URL.
const (
	msgInvalidURL         = "Invalid URL format"
	msgDisallowedProtocol = "URL must use one of these protocols: %s"
)

// URLSchema создает схему абсолютного URL с разрешенными протоколами (по умолчанию http и https).
// Синтаксическая ошибка и недопустимый протокол имеют один код CodeInvalidURL.
func URLSchema(protocols ...string) Schema[string] {
	if len(protocols) == 0 {
		protocols = []string{"http", "https"}
	}
	allowed := make([]string, len(protocols))
	copy(allowed, protocols)
	protocolMessage := fmt.Sprintf(msgDisallowedProtocol, strings.Join(allowed, ", "))

	return SchemaFunc[string](func(path Path, raw any) (string, []Issue) {
		s, issues := expectString(path, raw, "Required")
		if issues != nil {
			return "", issues
		}

		if err := fieldValidator.Var(s, "url"); err != nil {
			return "", []Issue{newIssue(path, CodeInvalidURL, msgInvalidURL)}
		}

		for _, protocol := range allowed {
			if strings.HasPrefix(s, protocol+"://") {
				return s, nil
			}
		}
		return "", []Issue{newIssue(path, CodeInvalidURL, protocolMessage)}
	})
}

// emailPattern: локальная часть не начинается и не заканчивается точкой,
// не содержит двух точек подряд, апостроф допустим.
var emailPattern = func() *regexp2.Regexp {
	re := regexp2.MustCompile(`^(?!\.)(?!.*\.\.)([A-Z0-9_'+\-\.]*)[A-Z0-9_+-]@([A-Z0-9][A-Z0-9\-]*\.)+[A-Z]{2,}$`,
		regexp2.IgnoreCase|regexp2.ECMAScript)
	re.MatchTimeout = 100 * time.Millisecond
	return re
}()

// EmailSchema обрезает пробелы, проверяет формат и приводит адрес к нижнему регистру.
var EmailSchema Schema[string] = SchemaFunc[string](func(path Path, raw any) (string, []Issue) {
	s, issues := expectString(path, raw, "Required")
	if issues != nil {
		return "", issues
	}

	s = trim(s)
	if ok, err := emailPattern.MatchString(s); err != nil || !ok {
		return "", []Issue{newIssue(path, CodeInvalidFormat, "Please enter a valid email address")}
	}
	return strings.ToLower(s), nil
})

// IDSchema принимает UUID в каноническом виде.
var IDSchema Schema[string] = SchemaFunc[string](func(path Path, raw any) (string, []Issue) {
	s, issues := expectString(path, raw, "Required")
	if issues != nil {
		return "", issues
	}

	// uuid.Parse принимает также urn- и {}-формы, поэтому длина проверяется отдельно.
	if len(s) != 36 {
		return "", []Issue{newIssue(path, CodeInvalidFormat, "Invalid ID format")}
	}
	if _, err := uuid.Parse(s); err != nil {
		return "", []Issue{newIssue(path, CodeInvalidFormat, "Invalid ID format")}
	}
	return s, nil
})
