package postgres_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conduit/internal/conduit/adapters/postgres"
	"conduit/internal/conduit/domain/entities"
)

var articleColumns = []string{
	"id", "slug", "title", "description", "body", "created_at", "updated_at",
	"author_id", "username", "bio", "image",
	"tag_list", "favorites_count", "favorited", "following",
}

func articleRow(rows *pgxmock.Rows, slug string, at time.Time, tags []string, favorited bool) *pgxmock.Rows {
	return rows.AddRow("article-"+slug, slug, "How to train your dragon", "Ever wonder how?", "You have to believe",
		at, at, "author-1", "jake", nil, nil, tags, int64(2), favorited, true)
}

func TestArticleRepository_FindBySlug(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("Статья для авторизованного читателя", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`SELECT .+ FROM articles a\s+JOIN users u .+ WHERE a.slug = \$2`).
			WithArgs("viewer-1", "dragon").
			WillReturnRows(articleRow(pgxmock.NewRows(articleColumns), "dragon", now, []string{"dragons", "training"}, true))

		article, err := postgres.NewArticleRepository(mock).FindBySlug(ctx, "dragon", "viewer-1")
		require.NoError(t, err)
		assert.Equal(t, "dragon", article.Slug)
		assert.Equal(t, "author-1", article.AuthorID)
		assert.Equal(t, "jake", article.Author.Username)
		assert.True(t, article.Author.Following)
		assert.True(t, article.Favorited)
		assert.Equal(t, 2, article.FavoritesCount)
		assert.Equal(t, []string{"dragons", "training"}, article.TagList)
	})

	t.Run("Анонимный читатель передает NULL", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`WHERE a.slug = \$2`).
			WithArgs(nil, "dragon").
			WillReturnRows(articleRow(pgxmock.NewRows(articleColumns), "dragon", now, nil, false))

		article, err := postgres.NewArticleRepository(mock).FindBySlug(ctx, "dragon", "")
		require.NoError(t, err)
		assert.NotNil(t, article.TagList)
		assert.Empty(t, article.TagList)
	})

	t.Run("Статья не найдена", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`WHERE a.slug = \$2`).
			WithArgs(nil, "missing").
			WillReturnRows(pgxmock.NewRows(articleColumns))

		_, err := postgres.NewArticleRepository(mock).FindBySlug(ctx, "missing", "")
		assert.ErrorIs(t, err, entities.ErrArticleNotFound)
	})
}

func TestArticleRepository_List(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("Фильтр по тегу и автору", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM articles a JOIN users u ON u.id = a.author_id WHERE .+t.tag = \$1.+u.username = \$2`).
			WithArgs("dragons", "jake").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(25)))
		mock.ExpectQuery(`t.tag = \$2\) AND u.username = \$3 ORDER BY a.created_at DESC LIMIT \$4 OFFSET \$5`).
			WithArgs("viewer-1", "dragons", "jake", 2, 20).
			WillReturnRows(articleRow(articleRow(pgxmock.NewRows(articleColumns), "b", now, nil, false), "a", now.Add(-time.Hour), nil, false))

		tag, author := "dragons", "jake"
		page, err := postgres.NewArticleRepository(mock).List(ctx, entities.ArticleFilter{
			Tag: &tag, Author: &author, ViewerID: "viewer-1", Limit: 2, Offset: 20,
		})
		require.NoError(t, err)
		assert.Equal(t, 25, page.Count)
		require.Len(t, page.Articles, 2)
		assert.Equal(t, "b", page.Articles[0].Slug)
	})

	t.Run("Лента подписок", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`SELECT COUNT\(\*\) .+ WHERE a.author_id IN \(SELECT following_id FROM user_follows WHERE follower_id = \$1\)`).
			WithArgs("viewer-1").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))
		mock.ExpectQuery(`follower_id = \$2\) ORDER BY`).
			WithArgs("viewer-1", "viewer-1", 20, 0).
			WillReturnRows(pgxmock.NewRows(articleColumns))

		page, err := postgres.NewArticleRepository(mock).List(ctx, entities.ArticleFilter{
			FeedOf: "viewer-1", ViewerID: "viewer-1", Limit: 20,
		})
		require.NoError(t, err)
		assert.Zero(t, page.Count)
		assert.NotNil(t, page.Articles)
		assert.Empty(t, page.Articles)
	})

	t.Run("Без фильтров", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM articles a JOIN users u ON u.id = a.author_id$`).
			WithArgs().
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
		mock.ExpectQuery(`JOIN users u ON u.id = a.author_id\s+ORDER BY a.created_at DESC LIMIT \$2 OFFSET \$3`).
			WithArgs(nil, 20, 0).
			WillReturnRows(articleRow(pgxmock.NewRows(articleColumns), "a", now, nil, false))

		page, err := postgres.NewArticleRepository(mock).List(ctx, entities.ArticleFilter{Limit: 20})
		require.NoError(t, err)
		assert.Equal(t, 1, page.Count)
		assert.Len(t, page.Articles, 1)
	})

	t.Run("Ошибка подсчета", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`SELECT COUNT`).WillReturnError(errors.New("boom"))

		_, err := postgres.NewArticleRepository(mock).List(ctx, entities.ArticleFilter{Limit: 20})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error counting articles")
	})
}

func TestArticleRepository_Create(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC().Truncate(time.Microsecond)
	input := &entities.Article{
		Slug: "how-to-train-your-dragon-abc123def", Title: "How to train your dragon",
		Description: "Ever wonder how?", Body: "You have to believe",
		TagList: []string{"dragons", "training"}, AuthorID: "author-1",
	}

	t.Run("Статья и теги сохраняются в транзакции", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO articles .+ RETURNING id, created_at, updated_at`).
			WithArgs(input.Slug, input.Title, input.Description, input.Body, input.AuthorID).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("article-1", now, now))
		mock.ExpectExec(`INSERT INTO article_tags .+ unnest`).
			WithArgs("article-1", input.TagList).
			WillReturnResult(pgxmock.NewResult("INSERT", 2))
		mock.ExpectCommit()

		created, err := postgres.NewArticleRepository(mock).Create(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, "article-1", created.ID)
		assert.Equal(t, now, created.CreatedAt)
		assert.Equal(t, input.TagList, created.TagList)
		assert.Empty(t, input.ID)
	})

	t.Run("Slug уже занят", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO articles`).
			WithArgs(input.Slug, input.Title, input.Description, input.Body, input.AuthorID).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "articles_slug_key"})
		mock.ExpectRollback()

		_, err := postgres.NewArticleRepository(mock).Create(ctx, input)
		assert.ErrorIs(t, err, entities.ErrSlugTaken)
	})

	t.Run("Ошибка сохранения тегов откатывает транзакцию", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO articles`).
			WithArgs(input.Slug, input.Title, input.Description, input.Body, input.AuthorID).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("article-1", now, now))
		mock.ExpectExec(`INSERT INTO article_tags`).
			WithArgs("article-1", input.TagList).
			WillReturnError(errors.New("boom"))
		mock.ExpectRollback()

		_, err := postgres.NewArticleRepository(mock).Create(ctx, input)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error storing tags")
	})
}

func TestArticleRepository_Update(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC().Truncate(time.Microsecond)
	article := &entities.Article{ID: "article-1", Slug: "new-slug", Title: "New", Description: "d", Body: "b"}

	t.Run("Без изменения тегов", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE articles .+ RETURNING updated_at`).
			WithArgs(article.ID, article.Slug, article.Title, article.Description, article.Body, pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(now))
		mock.ExpectCommit()

		updated, err := postgres.NewArticleRepository(mock).Update(ctx, article)
		require.NoError(t, err)
		assert.Equal(t, now, updated.UpdatedAt)
	})

	t.Run("Пустой список тегов очищает теги", func(t *testing.T) {
		withTags := *article
		withTags.TagList = []string{}

		mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE articles`).
			WithArgs(article.ID, article.Slug, article.Title, article.Description, article.Body, pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(now))
		mock.ExpectExec(`DELETE FROM article_tags WHERE article_id = \$1`).
			WithArgs(article.ID).
			WillReturnResult(pgxmock.NewResult("DELETE", 3))
		mock.ExpectCommit()

		_, err := postgres.NewArticleRepository(mock).Update(ctx, &withTags)
		require.NoError(t, err)
	})

	t.Run("Статья не найдена", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE articles`).
			WithArgs(article.ID, article.Slug, article.Title, article.Description, article.Body, pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows([]string{"updated_at"}))
		mock.ExpectRollback()

		_, err := postgres.NewArticleRepository(mock).Update(ctx, article)
		assert.ErrorIs(t, err, entities.ErrArticleNotFound)
	})
}

func TestArticleRepository_DeleteAndFavorites(t *testing.T) {
	ctx := testContext(t)

	t.Run("Удаление", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(`DELETE FROM articles WHERE id = \$1`).
			WithArgs("article-1").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		require.NoError(t, postgres.NewArticleRepository(mock).Delete(ctx, "article-1"))
	})

	t.Run("Удаление несуществующей статьи", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(`DELETE FROM articles`).
			WithArgs("article-1").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err := postgres.NewArticleRepository(mock).Delete(ctx, "article-1")
		assert.ErrorIs(t, err, entities.ErrArticleNotFound)
	})

	t.Run("Избранное", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(`INSERT INTO article_favorites .+ ON CONFLICT`).
			WithArgs("user-1", "article-1").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec(`DELETE FROM article_favorites`).
			WithArgs("user-1", "article-1").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		repo := postgres.NewArticleRepository(mock)
		require.NoError(t, repo.Favorite(ctx, "user-1", "article-1"))
		require.NoError(t, repo.Unfavorite(ctx, "user-1", "article-1"))
	})
}
