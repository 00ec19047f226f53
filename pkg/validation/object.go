package validation

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// objectReader читает поля объекта и накапливает нарушения.
type objectReader struct {
	path   Path
	values map[string]any
	issues []Issue
}

// readObject приводит входное значение к объекту.
// Поддерживаются декодированный JSON, map[string]string и url.Values (берется первое значение).
func readObject(path Path, raw any) (*objectReader, []Issue) {
	var values map[string]any

	switch v := raw.(type) {
	case nil:
		return nil, []Issue{newIssue(path, CodeRequired, "Required")}
	case map[string]any:
		values = v
	case map[string]string:
		values = make(map[string]any, len(v))
		for key, value := range v {
			values[key] = value
		}
	case url.Values:
		values = firstValues(v)
	case map[string][]string:
		values = firstValues(v)
	default:
		return nil, []Issue{invalidType(path, "object", raw)}
	}

	return &objectReader{path: path, values: values}, nil
}

func firstValues(v map[string][]string) map[string]any {
	values := make(map[string]any, len(v))
	for key, list := range v {
		if len(list) > 0 {
			values[key] = list[0]
		}
	}
	return values
}

// field разбирает одно поле объекта схемой и запоминает нарушения.
func field[T any](o *objectReader, key string, schema Schema[T]) T {
	value, issues := schema.Parse(o.path.With(key), o.values[key])
	o.issues = append(o.issues, issues...)
	return value
}

// nested разбирает вложенный объект-оболочку ("user", "article", "comment").
func nested[T any](o *objectReader, key string, parse func(*objectReader) T, known ...string) T {
	inner, issues := readObject(o.path.With(key), o.values[key])
	if issues != nil {
		o.issues = append(o.issues, issues...)
		var zero T
		return zero
	}

	value := parse(inner)
	if known != nil {
		inner.strict(known...)
	}
	o.issues = append(o.issues, inner.issues...)
	return value
}

// strict запрещает ключи, не входящие в known.
func (o *objectReader) strict(known ...string) {
	allowed := make(map[string]struct{}, len(known))
	for _, key := range known {
		allowed[key] = struct{}{}
	}

	var extra []string
	for key := range o.values {
		if _, ok := allowed[key]; !ok {
			extra = append(extra, key)
		}
	}
	if len(extra) == 0 {
		return
	}

	sort.Strings(extra)
	quoted := make([]string, len(extra))
	for i, key := range extra {
		quoted[i] = fmt.Sprintf("'%s'", key)
	}
	o.issues = append(o.issues, newIssue(o.path, CodeUnrecognizedKeys,
		"Unrecognized key(s) in object: "+strings.Join(quoted, ", ")))
}

// objectSchema собирает схему объекта из функции чтения полей.
func objectSchema[T any](parse func(*objectReader) T) Schema[T] {
	return SchemaFunc[T](func(path Path, raw any) (T, []Issue) {
		o, issues := readObject(path, raw)
		if issues != nil {
			var zero T
			return zero, issues
		}

		value := parse(o)
		if len(o.issues) > 0 {
			var zero T
			return zero, o.issues
		}
		return value, nil
	})
}
