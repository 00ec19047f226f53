package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Сообщения схем пагинации.
const (
	msgLimitTooSmall   = "Limit must be at least %d"
	msgLimitTooBig     = "Limit cannot exceed %d"
	msgOffsetNegative  = "Offset must be non-negative"
	msgExpectedInteger = "Expected integer, received float"
	msgExpectedNumber  = "Expected number, received nan"
)

// Значения пагинации по умолчанию.
const (
	DefaultLimit         = 20
	DefaultCommentsLimit = 10
	DefaultOffset        = 0
)

// coerceNumber приводит значение к числу так же, как это делает Number(x) в JSON-клиентах:
// строки разбираются после обрезки пробелов, пустая строка дает 0, true дает 1.
func coerceNumber(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case json.Number:
		f, err := strconv.ParseFloat(v.String(), 64)
		return f, err == nil
	case string:
		s := trim(v)
		if s == "" {
			return 0, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN(), true
		}
		return f, true
	default:
		return 0, false
	}
}

// intSchema приводит значение к целому числу и проверяет границы.
func intSchema(check func(path Path, n int) []Issue) Schema[int] {
	return SchemaFunc[int](func(path Path, raw any) (int, []Issue) {
		if raw == nil {
			return 0, []Issue{newIssue(path, CodeRequired, "Required")}
		}

		f, ok := coerceNumber(raw)
		if !ok {
			return 0, []Issue{invalidType(path, "number", raw)}
		}
		if math.IsNaN(f) {
			return 0, []Issue{newIssue(path, CodeInvalidType, msgExpectedNumber)}
		}
		if math.IsInf(f, 0) || f != math.Trunc(f) {
			return 0, []Issue{newIssue(path, CodeInvalidType, msgExpectedInteger)}
		}
		if f > math.MaxInt32 || f < math.MinInt32 {
			return 0, []Issue{newIssue(path, CodeTooBig, fmt.Sprintf("Number must be between %d and %d", math.MinInt32, math.MaxInt32))}
		}

		n := int(f)
		if issues := check(path, n); issues != nil {
			return 0, issues
		}
		return n, nil
	})
}

// LimitSchema создает схему размера страницы в диапазоне [PositiveInt.Min, Pagination.Max]
// со значением def для отсутствующего параметра.
func LimitSchema(def int) Schema[int] {
	limit := intSchema(func(path Path, n int) []Issue {
		if n < registry.PositiveInt.Min {
			return []Issue{newIssue(path, CodeTooSmall, fmt.Sprintf(msgLimitTooSmall, registry.PositiveInt.Min))}
		}
		if n > registry.Pagination.Max {
			return []Issue{newIssue(path, CodeTooBig, fmt.Sprintf(msgLimitTooBig, registry.Pagination.Max))}
		}
		return nil
	})
	return Default(limit, func() any { return def })
}

// OffsetSchema создает схему смещения (>= 0, по умолчанию 0).
func OffsetSchema() Schema[int] {
	offset := intSchema(func(path Path, n int) []Issue {
		if n < registry.Pagination.Min {
			return []Issue{newIssue(path, CodeTooSmall, msgOffsetNegative)}
		}
		return nil
	})
	return Default(offset, func() any { return DefaultOffset })
}
