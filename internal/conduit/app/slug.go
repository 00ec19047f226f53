package app

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

const slugSuffixLength = 9

// slugify переводит заголовок в нижний регистр и заменяет все,
// кроме букв и цифр, одиночным дефисом.
func slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	dash := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

// newSlug добавляет к заголовку случайный суффикс, чтобы одинаковые заголовки не конфликтовали.
func newSlug(title string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:slugSuffixLength]
	base := slugify(title)
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}
