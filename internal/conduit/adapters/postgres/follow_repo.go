package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"conduit/internal/conduit/ports/repositories"
	"conduit/pkg/logger"
)

// FollowRepository реализует repositories.FollowRepository.
type FollowRepository struct {
	pool PgxPoolInterface
}

// NewFollowRepository создает новый экземпляр репозитория подписок.
func NewFollowRepository(pool PgxPoolInterface) repositories.FollowRepository {
	return &FollowRepository{pool: pool}
}

// Follow подписывает followerID на followingID. Повторная подписка не является ошибкой.
func (r *FollowRepository) Follow(ctx context.Context, followerID, followingID string) error {
	log := logger.Log(ctx).With(zap.String("repository", "follow"), zap.String("method", "Follow"))

	query := `
        INSERT INTO user_follows (follower_id, following_id)
        VALUES ($1, $2)
        ON CONFLICT (follower_id, following_id) DO NOTHING
    `

	if _, err := r.pool.Exec(ctx, query, followerID, followingID); err != nil {
		log.Error(ctx, "error following user", zap.Error(err))
		return fmt.Errorf("error following user: %w", err)
	}
	return nil
}

// Unfollow отменяет подписку.
func (r *FollowRepository) Unfollow(ctx context.Context, followerID, followingID string) error {
	log := logger.Log(ctx).With(zap.String("repository", "follow"), zap.String("method", "Unfollow"))

	query := `DELETE FROM user_follows WHERE follower_id = $1 AND following_id = $2`

	if _, err := r.pool.Exec(ctx, query, followerID, followingID); err != nil {
		log.Error(ctx, "error unfollowing user", zap.Error(err))
		return fmt.Errorf("error unfollowing user: %w", err)
	}
	return nil
}

// IsFollowing проверяет наличие подписки.
func (r *FollowRepository) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	if followerID == "" {
		return false, nil
	}

	query := `SELECT EXISTS (SELECT 1 FROM user_follows WHERE follower_id = $1 AND following_id = $2)`

	var following bool
	if err := r.pool.QueryRow(ctx, query, followerID, followingID).Scan(&following); err != nil {
		logger.Log(ctx).Error(ctx, "error checking follow", zap.Error(err))
		return false, fmt.Errorf("error checking follow: %w", err)
	}
	return following, nil
}
