// Package session описывает аутентифицированного пользователя текущего запроса.
// Сессия передается явно через контекст запроса, глобального состояния нет.
package session

import "context"

// Session - данные пользователя, прошедшего проверку токена.
type Session struct {
	UserID   string
	Username string
	Token    string
}

type sessionKeyType struct{}

var sessionKey = sessionKeyType{}

// NewContext возвращает копию ctx с сессией s.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// FromContext извлекает сессию из контекста.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey).(*Session)
	return s, ok && s != nil
}

// UserID возвращает идентификатор пользователя или пустую строку для анонимного запроса.
func UserID(ctx context.Context) string {
	if s, ok := FromContext(ctx); ok {
		return s.UserID
	}
	return ""
}
