package postgres_test

import (
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conduit/internal/conduit/adapters/postgres"
)

func TestFollowRepository(t *testing.T) {
	ctx := testContext(t)

	t.Run("Подписка идемпотентна", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(`INSERT INTO user_follows .+ ON CONFLICT \(follower_id, following_id\) DO NOTHING`).
			WithArgs("user-1", "user-2").
			WillReturnResult(pgxmock.NewResult("INSERT", 0))

		require.NoError(t, postgres.NewFollowRepository(mock).Follow(ctx, "user-1", "user-2"))
	})

	t.Run("Подписка и отписка", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(`INSERT INTO user_follows .+ ON CONFLICT`).
			WithArgs("user-1", "user-2").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec(`DELETE FROM user_follows`).
			WithArgs("user-1", "user-2").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		repo := postgres.NewFollowRepository(mock)
		require.NoError(t, repo.Follow(ctx, "user-1", "user-2"))
		require.NoError(t, repo.Unfollow(ctx, "user-1", "user-2"))
	})

	t.Run("Ошибка подписки", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(`INSERT INTO user_follows`).
			WithArgs("user-1", "user-2").
			WillReturnError(errors.New("connection lost"))

		err := postgres.NewFollowRepository(mock).Follow(ctx, "user-1", "user-2")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error following user")
	})

	t.Run("Ошибка отписки", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(`DELETE FROM user_follows WHERE follower_id = \$1 AND following_id = \$2`).
			WithArgs("user-1", "user-2").
			WillReturnError(errors.New("connection lost"))

		err := postgres.NewFollowRepository(mock).Unfollow(ctx, "user-1", "user-2")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error unfollowing user")
	})

	t.Run("Проверка подписки", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs("user-1", "user-2").
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

		following, err := postgres.NewFollowRepository(mock).IsFollowing(ctx, "user-1", "user-2")
		require.NoError(t, err)
		assert.True(t, following)
	})

	t.Run("Анонимный зритель не обращается к базе", func(t *testing.T) {
		mock := newMock(t)

		following, err := postgres.NewFollowRepository(mock).IsFollowing(ctx, "", "user-2")
		require.NoError(t, err)
		assert.False(t, following)
	})
}

func TestTagRepository_List(t *testing.T) {
	ctx := testContext(t)

	t.Run("Теги по частоте", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`SELECT tag FROM article_tags GROUP BY tag`).
			WillReturnRows(pgxmock.NewRows([]string{"tag"}).AddRow("dragons").AddRow("angularjs"))

		tags, err := postgres.NewTagRepository(mock).List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"dragons", "angularjs"}, tags)
	})

	t.Run("Пустая база дает пустой список", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`SELECT tag FROM article_tags`).
			WillReturnRows(pgxmock.NewRows([]string{"tag"}))

		tags, err := postgres.NewTagRepository(mock).List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, tags)
		assert.Empty(t, tags)
	})
}
