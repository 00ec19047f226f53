package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conduit/internal/conduit/adapters/postgres"
	"conduit/internal/conduit/domain/entities"
	"conduit/pkg/logger"
)

var userColumns = []string{"id", "email", "username", "password_hash", "bio", "image", "created_at", "updated_at"}

func testContext(t *testing.T) context.Context {
	t.Helper()
	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func ptr[T any](v T) *T { return &v }

func TestUserRepository_Find(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC().Truncate(time.Microsecond)
	bio := "I work at statefarm"

	t.Run("Успешный поиск по email", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \$1`).
			WithArgs("jake@jake.jake").
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow("user-1", "jake@jake.jake", "jake", "hash", &bio, nil, now, now))

		user, err := postgres.NewUserRepository(mock).FindByEmail(ctx, "jake@jake.jake")
		require.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
		assert.Equal(t, "jake", user.Username)
		require.NotNil(t, user.Bio)
		assert.Equal(t, bio, *user.Bio)
		assert.Nil(t, user.Image)
		assert.Equal(t, now, user.CreatedAt)
	})

	t.Run("Пользователь не найден по имени", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`SELECT .+ FROM users WHERE username = \$1`).
			WithArgs("ghost").
			WillReturnRows(pgxmock.NewRows(userColumns))

		user, err := postgres.NewUserRepository(mock).FindByUsername(ctx, "ghost")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, entities.ErrUserNotFound)
	})

	t.Run("Ошибка БД при поиске по ID", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`SELECT .+ FROM users WHERE id = \$1`).
			WithArgs("user-1").
			WillReturnError(errors.New("connection reset"))

		user, err := postgres.NewUserRepository(mock).FindByID(ctx, "user-1")
		assert.Nil(t, user)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error querying user by id")
	})
}

func TestUserRepository_Create(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC().Truncate(time.Microsecond)
	input := &entities.User{Email: "jake@jake.jake", Username: "jake", PasswordHash: "hash"}

	t.Run("Успешное создание пользователя", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`INSERT INTO users .+`).
			WithArgs(input.Email, input.Username, input.PasswordHash, input.Bio, input.Image).
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow("user-1", input.Email, input.Username, input.PasswordHash, nil, nil, now, now))

		user, err := postgres.NewUserRepository(mock).Create(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
		assert.Equal(t, now, user.UpdatedAt)
	})

	conflicts := []struct {
		name       string
		constraint string
		want       error
	}{
		{"Дублирующийся email", "users_email_key", entities.ErrEmailTaken},
		{"Дублирующееся имя", "users_username_key", entities.ErrUsernameTaken},
	}
	for _, tt := range conflicts {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			mock.ExpectQuery(`INSERT INTO users .+`).
				WithArgs(input.Email, input.Username, input.PasswordHash, input.Bio, input.Image).
				WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: tt.constraint})

			user, err := postgres.NewUserRepository(mock).Create(ctx, input)
			assert.Nil(t, user)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("Общая ошибка БД", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`INSERT INTO users .+`).
			WithArgs(input.Email, input.Username, input.PasswordHash, input.Bio, input.Image).
			WillReturnError(errors.New("database connection error"))

		_, err := postgres.NewUserRepository(mock).Create(ctx, input)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error creating user")
	})
}

func TestUserRepository_Update(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := &entities.User{ID: "user-1", Email: "jake@jake.jake", Username: "jake", PasswordHash: "hash", Image: ptr("https://i.example/a.png")}

	t.Run("Успешное обновление", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`UPDATE users .+ RETURNING`).
			WithArgs(user.ID, user.Email, user.Username, user.PasswordHash, user.Bio, user.Image, pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow(user.ID, user.Email, user.Username, user.PasswordHash, nil, user.Image, now, now))

		updated, err := postgres.NewUserRepository(mock).Update(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, user.Image, updated.Image)
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`UPDATE users .+`).
			WithArgs(user.ID, user.Email, user.Username, user.PasswordHash, user.Bio, user.Image, pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows(userColumns))

		_, err := postgres.NewUserRepository(mock).Update(ctx, user)
		assert.ErrorIs(t, err, entities.ErrUserNotFound)
	})

	t.Run("Имя уже занято", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`UPDATE users .+`).
			WithArgs(user.ID, user.Email, user.Username, user.PasswordHash, user.Bio, user.Image, pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

		_, err := postgres.NewUserRepository(mock).Update(ctx, user)
		assert.ErrorIs(t, err, entities.ErrUsernameTaken)
	})
}

func TestRepositoryFactory(t *testing.T) {
	mock := newMock(t)
	f := postgres.NewRepositoryFactory(mock)
	assert.NotNil(t, f.UserRepository())
	assert.NotNil(t, f.FollowRepository())
	assert.NotNil(t, f.ArticleRepository())
	assert.NotNil(t, f.CommentRepository())
	assert.NotNil(t, f.TagRepository())
}
