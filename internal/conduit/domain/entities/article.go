package entities

import (
	"errors"
	"time"
)

// Ошибки домена статей.
var (
	ErrArticleNotFound  = errors.New("article not found")
	ErrSlugTaken        = errors.New("slug has already been taken")
	ErrNotArticleAuthor = errors.New("only the author can modify this article")
)

// Article представляет статью вместе с данными, зависящими от читателя.
type Article struct {
	ID             string
	Slug           string
	Title          string
	Description    string
	Body           string
	TagList        []string
	AuthorID       string
	Author         *Profile
	Favorited      bool
	FavoritesCount int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ArticleFilter задает условия выборки списка статей.
// Пустой FeedOf означает обычный список, иначе - ленту подписок этого пользователя.
type ArticleFilter struct {
	Tag       *string
	Author    *string
	Favorited *string
	FeedOf    string
	ViewerID  string
	Limit     int
	Offset    int
}

// ArticlePage - страница списка статей и общее количество подходящих статей.
type ArticlePage struct {
	Articles []*Article
	Count    int
}
