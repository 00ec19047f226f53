package entities

import (
	"errors"
	"time"
)

// Ошибки домена комментариев.
var (
	ErrCommentNotFound  = errors.New("comment not found")
	ErrNotCommentAuthor = errors.New("only the author can delete this comment")
)

// Comment представляет комментарий к статье.
type Comment struct {
	ID        string
	Body      string
	ArticleID string
	AuthorID  string
	Author    *Profile
	CreatedAt time.Time
	UpdatedAt time.Time
}
