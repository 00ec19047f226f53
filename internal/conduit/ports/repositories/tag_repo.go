package repositories

import "context"

// TagRepository возвращает теги, использованные в статьях.
type TagRepository interface {
	List(ctx context.Context) ([]string, error)
}
