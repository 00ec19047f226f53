// Package postgres содержит реализации репозиториев Conduit поверх PostgreSQL.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"conduit/internal/conduit/ports/repositories"
)

// PgxPoolInterface - подмножество pgxpool.Pool, используемое репозиториями.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// RepositoryFactory создает все необходимые репозитории для работы с PostgreSQL.
type RepositoryFactory struct {
	userRepo    repositories.UserRepository
	followRepo  repositories.FollowRepository
	articleRepo repositories.ArticleRepository
	commentRepo repositories.CommentRepository
	tagRepo     repositories.TagRepository
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{
		userRepo:    NewUserRepository(pool),
		followRepo:  NewFollowRepository(pool),
		articleRepo: NewArticleRepository(pool),
		commentRepo: NewCommentRepository(pool),
		tagRepo:     NewTagRepository(pool),
	}
}

// UserRepository возвращает репозиторий пользователей.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return f.userRepo
}

// FollowRepository возвращает репозиторий подписок.
func (f *RepositoryFactory) FollowRepository() repositories.FollowRepository {
	return f.followRepo
}

// ArticleRepository возвращает репозиторий статей.
func (f *RepositoryFactory) ArticleRepository() repositories.ArticleRepository {
	return f.articleRepo
}

// CommentRepository возвращает репозиторий комментариев.
func (f *RepositoryFactory) CommentRepository() repositories.CommentRepository {
	return f.commentRepo
}

// TagRepository возвращает репозиторий тегов.
func (f *RepositoryFactory) TagRepository() repositories.TagRepository {
	return f.tagRepo
}

// nullableID превращает пустой идентификатор читателя в NULL.
func nullableID(id string) any {
	if id == "" {
		return nil
	}
	return id
}
