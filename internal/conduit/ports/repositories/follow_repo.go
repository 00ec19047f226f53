package repositories

import "context"

// FollowRepository хранит подписки пользователей друг на друга.
type FollowRepository interface {
	Follow(ctx context.Context, followerID, followingID string) error

	Unfollow(ctx context.Context, followerID, followingID string) error

	IsFollowing(ctx context.Context, followerID, followingID string) (bool, error)
}
