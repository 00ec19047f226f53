package app_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"conduit/internal/conduit/app"
	"conduit/internal/conduit/domain/entities"
	"conduit/pkg/validation"
)

func newArticleDeps(t *testing.T) (*mockArticleRepository, *memoryCache) {
	t.Helper()
	repo := new(mockArticleRepository)
	t.Cleanup(func() { repo.AssertExpectations(t) })
	return repo, newMemoryCache()
}

func sampleArticle() *entities.Article {
	return &entities.Article{
		ID:          "article-1",
		Slug:        "dragons-abc",
		Title:       "Dragons",
		Description: "About dragons",
		Body:        "Body",
		TagList:     []string{"dragons"},
		AuthorID:    "author-1",
		Author:      &entities.Profile{ID: "author-1", Username: "jake"},
	}
}

func TestArticleUseCase_List(t *testing.T) {
	repo, c := newArticleDeps(t)
	page := &entities.ArticlePage{Articles: []*entities.Article{sampleArticle()}, Count: 1}

	repo.On("List", mock.Anything, entities.ArticleFilter{
		Tag:      ptr("dragons"),
		ViewerID: "viewer-1",
		Limit:    20,
		Offset:   0,
	}).Return(page, nil).Once()
	repo.On("List", mock.Anything, entities.ArticleFilter{
		FeedOf:   "viewer-1",
		ViewerID: "viewer-1",
		Limit:    5,
		Offset:   10,
	}).Return(&entities.ArticlePage{Articles: []*entities.Article{}}, nil).Once()

	uc := app.NewArticleUseCase(repo, c)

	got, err := uc.List(context.Background(), "viewer-1", validation.GetArticlesQuery{Tag: ptr("dragons"), Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, page, got)

	feed, err := uc.Feed(context.Background(), "viewer-1", validation.GetArticleFeedQuery{Limit: 5, Offset: 10})
	require.NoError(t, err)
	assert.Zero(t, feed.Count)
}

func TestArticleUseCase_Get(t *testing.T) {
	t.Run("анонимный просмотр кэшируется", func(t *testing.T) {
		repo, c := newArticleDeps(t)
		repo.On("FindBySlug", mock.Anything, "dragons-abc", "").Return(sampleArticle(), nil).Once()

		uc := app.NewArticleUseCase(repo, c)
		first, err := uc.Get(context.Background(), "", "dragons-abc")
		require.NoError(t, err)
		second, err := uc.Get(context.Background(), "", "dragons-abc")
		require.NoError(t, err)

		assert.Equal(t, first.Slug, second.Slug)
		assert.Equal(t, first.Author.Username, second.Author.Username)
		assert.True(t, c.has("article:dragons-abc"))
	})

	t.Run("просмотр с сессией не использует кэш", func(t *testing.T) {
		repo, c := newArticleDeps(t)
		repo.On("FindBySlug", mock.Anything, "dragons-abc", "viewer-1").Return(sampleArticle(), nil).Twice()

		uc := app.NewArticleUseCase(repo, c)
		for range 2 {
			_, err := uc.Get(context.Background(), "viewer-1", "dragons-abc")
			require.NoError(t, err)
		}
		assert.False(t, c.has("article:dragons-abc"))
	})

	t.Run("статья не найдена", func(t *testing.T) {
		repo, c := newArticleDeps(t)
		repo.On("FindBySlug", mock.Anything, "missing", "").Return(nil, entities.ErrArticleNotFound).Once()

		_, err := app.NewArticleUseCase(repo, c).Get(context.Background(), "", "missing")
		require.ErrorIs(t, err, entities.ErrArticleNotFound)
	})
}

func TestArticleUseCase_Create(t *testing.T) {
	repo, c := newArticleDeps(t)
	require.NoError(t, c.Set(context.Background(), "tags", []byte(`["old"]`), 0))

	var slug string
	repo.On("Create", mock.Anything, mock.MatchedBy(func(a *entities.Article) bool {
		slug = a.Slug
		return strings.HasPrefix(a.Slug, "how-to-train-your-dragon-") && a.AuthorID == "author-1"
	})).Return(&entities.Article{ID: "article-1", Slug: "how-to-train-your-dragon-123456789"}, nil).Once()
	repo.On("FindBySlug", mock.Anything, "how-to-train-your-dragon-123456789", "author-1").Return(sampleArticle(), nil).Once()

	got, err := app.NewArticleUseCase(repo, c).Create(context.Background(), "author-1", validation.NewArticle{
		Title:       "How to train your dragon",
		Description: "Ever wonder how?",
		Body:        "You have to believe",
		TagList:     []string{"dragons"},
	})
	require.NoError(t, err)
	assert.Equal(t, "article-1", got.ID)
	assert.NotEmpty(t, slug)
	assert.False(t, c.has("tags"))
}

func TestArticleUseCase_Update(t *testing.T) {
	t.Run("смена заголовка меняет slug", func(t *testing.T) {
		repo, c := newArticleDeps(t)
		require.NoError(t, c.Set(context.Background(), "article:dragons-abc", []byte(`{}`), 0))

		repo.On("FindBySlug", mock.Anything, "dragons-abc", "author-1").Return(sampleArticle(), nil).Once()
		repo.On("Update", mock.Anything, mock.MatchedBy(func(a *entities.Article) bool {
			return a.Title == "Wyverns" && strings.HasPrefix(a.Slug, "wyverns-") && a.TagList == nil
		})).Return(&entities.Article{ID: "article-1", Slug: "wyverns-xyz"}, nil).Once()
		repo.On("FindBySlug", mock.Anything, "wyverns-xyz", "author-1").Return(sampleArticle(), nil).Once()

		_, err := app.NewArticleUseCase(repo, c).Update(context.Background(), "author-1", "dragons-abc", validation.ArticleChanges{
			Title: ptr("Wyverns"),
		})
		require.NoError(t, err)
		assert.False(t, c.has("article:dragons-abc"))
	})

	t.Run("пустой список тегов очищает теги", func(t *testing.T) {
		repo, c := newArticleDeps(t)
		repo.On("FindBySlug", mock.Anything, "dragons-abc", "author-1").Return(sampleArticle(), nil).Once()
		repo.On("Update", mock.Anything, mock.MatchedBy(func(a *entities.Article) bool {
			return a.Slug == "dragons-abc" && a.TagList != nil && len(a.TagList) == 0 && a.Body == "New body"
		})).Return(sampleArticle(), nil).Once()
		repo.On("FindBySlug", mock.Anything, "dragons-abc", "author-1").Return(sampleArticle(), nil).Once()

		_, err := app.NewArticleUseCase(repo, c).Update(context.Background(), "author-1", "dragons-abc", validation.ArticleChanges{
			Body:    ptr("New body"),
			TagList: []string{},
		})
		require.NoError(t, err)
	})

	t.Run("чужая статья", func(t *testing.T) {
		repo, c := newArticleDeps(t)
		repo.On("FindBySlug", mock.Anything, "dragons-abc", "intruder").Return(sampleArticle(), nil).Once()

		_, err := app.NewArticleUseCase(repo, c).Update(context.Background(), "intruder", "dragons-abc", validation.ArticleChanges{})
		require.ErrorIs(t, err, entities.ErrNotArticleAuthor)
	})
}

func TestArticleUseCase_Delete(t *testing.T) {
	t.Run("автор удаляет статью", func(t *testing.T) {
		repo, c := newArticleDeps(t)
		require.NoError(t, c.Set(context.Background(), "tags", []byte(`["dragons"]`), 0))
		repo.On("FindBySlug", mock.Anything, "dragons-abc", "author-1").Return(sampleArticle(), nil).Once()
		repo.On("Delete", mock.Anything, "article-1").Return(nil).Once()

		require.NoError(t, app.NewArticleUseCase(repo, c).Delete(context.Background(), "author-1", "dragons-abc"))
		assert.False(t, c.has("tags"))
	})

	t.Run("чужая статья", func(t *testing.T) {
		repo, c := newArticleDeps(t)
		repo.On("FindBySlug", mock.Anything, "dragons-abc", "intruder").Return(sampleArticle(), nil).Once()

		err := app.NewArticleUseCase(repo, c).Delete(context.Background(), "intruder", "dragons-abc")
		require.ErrorIs(t, err, entities.ErrNotArticleAuthor)
	})
}

func TestArticleUseCase_Favorite(t *testing.T) {
	repo, c := newArticleDeps(t)
	favorited := sampleArticle()
	favorited.Favorited = true
	favorited.FavoritesCount = 1

	repo.On("FindBySlug", mock.Anything, "dragons-abc", "fan-1").Return(sampleArticle(), nil).Once()
	repo.On("Favorite", mock.Anything, "fan-1", "article-1").Return(nil).Once()
	repo.On("FindBySlug", mock.Anything, "dragons-abc", "fan-1").Return(favorited, nil).Once()
	repo.On("FindBySlug", mock.Anything, "missing", "fan-1").Return(nil, entities.ErrArticleNotFound).Once()

	uc := app.NewArticleUseCase(repo, c)

	got, err := uc.Favorite(context.Background(), "fan-1", "dragons-abc")
	require.NoError(t, err)
	assert.True(t, got.Favorited)
	assert.Equal(t, 1, got.FavoritesCount)

	_, err = uc.Unfavorite(context.Background(), "fan-1", "missing")
	require.ErrorIs(t, err, entities.ErrArticleNotFound)
}
