package api

import (
	"context"

	"conduit/internal/conduit/domain/entities"
)

// ProfileUseCase определяет операции над профилями и подписками.
type ProfileUseCase interface {
	Get(ctx context.Context, viewerID, username string) (*entities.Profile, error)

	Follow(ctx context.Context, followerID, username string) (*entities.Profile, error)

	Unfollow(ctx context.Context, followerID, username string) (*entities.Profile, error)
}
