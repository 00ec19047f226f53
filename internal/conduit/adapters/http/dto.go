package http

import (
	"time"

	"conduit/internal/conduit/domain/entities"
	"conduit/internal/conduit/ports/api"
)

// UserDTO - пользователь в ответах /users и /user.
type UserDTO struct {
	Email    string  `json:"email"`
	Token    string  `json:"token"`
	Username string  `json:"username"`
	Bio      *string `json:"bio"`
	Image    *string `json:"image"`
}

// UserResponse - {"user": {...}}.
type UserResponse struct {
	User UserDTO `json:"user"`
}

// ProfileDTO - публичный профиль.
type ProfileDTO struct {
	Username  string  `json:"username"`
	Bio       *string `json:"bio"`
	Image     *string `json:"image"`
	Following bool    `json:"following"`
}

// ProfileResponse - {"profile": {...}}.
type ProfileResponse struct {
	Profile ProfileDTO `json:"profile"`
}

// ArticleDTO - статья в ответах API.
type ArticleDTO struct {
	Slug           string     `json:"slug"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Body           string     `json:"body"`
	TagList        []string   `json:"tagList"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	Favorited      bool       `json:"favorited"`
	FavoritesCount int        `json:"favoritesCount"`
	Author         ProfileDTO `json:"author"`
}

// ArticleResponse - {"article": {...}}.
type ArticleResponse struct {
	Article ArticleDTO `json:"article"`
}

// ArticlesResponse - {"articles": [...], "articlesCount": n}.
type ArticlesResponse struct {
	Articles      []ArticleDTO `json:"articles"`
	ArticlesCount int          `json:"articlesCount"`
}

// CommentDTO - комментарий в ответах API.
type CommentDTO struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	Body      string     `json:"body"`
	Author    ProfileDTO `json:"author"`
}

// CommentResponse - {"comment": {...}}.
type CommentResponse struct {
	Comment CommentDTO `json:"comment"`
}

// CommentsResponse - {"comments": [...]}.
type CommentsResponse struct {
	Comments []CommentDTO `json:"comments"`
}

// TagsResponse - {"tags": [...]}.
type TagsResponse struct {
	Tags []string `json:"tags"`
}

func newUserResponse(u *api.AuthenticatedUser) UserResponse {
	return UserResponse{User: UserDTO{
		Email:    u.User.Email,
		Token:    u.Token,
		Username: u.User.Username,
		Bio:      u.User.Bio,
		Image:    u.User.Image,
	}}
}

func newProfileDTO(p *entities.Profile) ProfileDTO {
	if p == nil {
		return ProfileDTO{}
	}
	return ProfileDTO{
		Username:  p.Username,
		Bio:       p.Bio,
		Image:     p.Image,
		Following: p.Following,
	}
}

func newArticleDTO(a *entities.Article) ArticleDTO {
	tags := a.TagList
	if tags == nil {
		tags = []string{}
	}
	return ArticleDTO{
		Slug:           a.Slug,
		Title:          a.Title,
		Description:    a.Description,
		Body:           a.Body,
		TagList:        tags,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
		Favorited:      a.Favorited,
		FavoritesCount: a.FavoritesCount,
		Author:         newProfileDTO(a.Author),
	}
}

func newArticlesResponse(page *entities.ArticlePage) ArticlesResponse {
	articles := make([]ArticleDTO, 0, len(page.Articles))
	for _, a := range page.Articles {
		articles = append(articles, newArticleDTO(a))
	}
	return ArticlesResponse{Articles: articles, ArticlesCount: page.Count}
}

func newCommentDTO(c *entities.Comment) CommentDTO {
	return CommentDTO{
		ID:        c.ID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Body:      c.Body,
		Author:    newProfileDTO(c.Author),
	}
}
