package api

import "context"

// TagUseCase возвращает список популярных тегов.
type TagUseCase interface {
	List(ctx context.Context) ([]string, error)
}
