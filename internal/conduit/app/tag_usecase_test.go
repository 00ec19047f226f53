package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"conduit/internal/conduit/app"
)

func TestTagUseCase_List(t *testing.T) {
	t.Run("второй запрос обслуживается из кэша", func(t *testing.T) {
		repo := new(mockTagRepository)
		defer repo.AssertExpectations(t)
		c := newMemoryCache()
		repo.On("List", mock.Anything).Return([]string{"dragons", "training"}, nil).Once()

		uc := app.NewTagUseCase(repo, c)
		for range 2 {
			tags, err := uc.List(context.Background())
			require.NoError(t, err)
			assert.Equal(t, []string{"dragons", "training"}, tags)
		}
	})

	t.Run("ошибка хранилища", func(t *testing.T) {
		repo := new(mockTagRepository)
		defer repo.AssertExpectations(t)
		repo.On("List", mock.Anything).Return(nil, errDatabase).Once()

		_, err := app.NewTagUseCase(repo, newMemoryCache()).List(context.Background())
		require.ErrorIs(t, err, errDatabase)
	})
}
