package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"conduit/internal/conduit/domain/entities"
	"conduit/internal/conduit/ports/api"
	"conduit/internal/conduit/ports/repositories"
	"conduit/pkg/logger"
)

const (
	methodGetProfile = "GetProfile"
	methodFollow     = "Follow"
	methodUnfollow   = "Unfollow"

	msgFollowSelf   = "attempt to follow yourself"
	msgUserFollowed = "user followed"
	msgUserUnfollow = "user unfollowed"

	msgErrFindingProfile   = "error finding profile"
	msgErrCheckingFollow   = "error checking follow status"
	msgErrChangingFollower = "error changing follow status"

	errCtxFindingProfile = "finding profile"
	errCtxCheckingFollow = "checking follow status"
	errCtxFollowing      = "following user"
	errCtxUnfollowing    = "unfollowing user"
	errCtxFollowingSelf  = "following self"
)

// ProfileUseCaseImpl реализует интерфейс ProfileUseCase.
type ProfileUseCaseImpl struct {
	userRepo   repositories.UserRepository
	followRepo repositories.FollowRepository
}

// NewProfileUseCase создает новый экземпляр сервиса профилей.
func NewProfileUseCase(userRepo repositories.UserRepository, followRepo repositories.FollowRepository) api.ProfileUseCase {
	return &ProfileUseCaseImpl{userRepo: userRepo, followRepo: followRepo}
}

// Get возвращает профиль пользователя; для анонимного читателя following всегда false.
func (p *ProfileUseCaseImpl) Get(ctx context.Context, viewerID, username string) (*entities.Profile, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetProfile), zap.String("username", username))

	user, err := p.userRepo.FindByUsername(ctx, username)
	if err != nil {
		log.Debug(ctx, msgErrFindingProfile, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingProfile, err)
	}

	following, err := p.followRepo.IsFollowing(ctx, viewerID, user.ID)
	if err != nil {
		log.Error(ctx, msgErrCheckingFollow, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingFollow, err)
	}

	return user.Profile(following), nil
}

// Follow подписывает followerID на пользователя username. Повторная подписка не является ошибкой.
func (p *ProfileUseCaseImpl) Follow(ctx context.Context, followerID, username string) (*entities.Profile, error) {
	log := logger.Log(ctx).With(zap.String("method", methodFollow), zap.String("username", username))

	user, err := p.userRepo.FindByUsername(ctx, username)
	if err != nil {
		log.Debug(ctx, msgErrFindingProfile, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingProfile, err)
	}
	if user.ID == followerID {
		log.Debug(ctx, msgFollowSelf)
		return nil, fmt.Errorf("%s: %w", errCtxFollowingSelf, entities.ErrCannotFollowSelf)
	}

	if err := p.followRepo.Follow(ctx, followerID, user.ID); err != nil {
		log.Error(ctx, msgErrChangingFollower, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFollowing, err)
	}

	log.Info(ctx, msgUserFollowed, zap.String("followerID", followerID))
	return user.Profile(true), nil
}

// Unfollow отменяет подписку.
func (p *ProfileUseCaseImpl) Unfollow(ctx context.Context, followerID, username string) (*entities.Profile, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUnfollow), zap.String("username", username))

	user, err := p.userRepo.FindByUsername(ctx, username)
	if err != nil {
		log.Debug(ctx, msgErrFindingProfile, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingProfile, err)
	}

	if err := p.followRepo.Unfollow(ctx, followerID, user.ID); err != nil {
		log.Error(ctx, msgErrChangingFollower, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUnfollowing, err)
	}

	log.Info(ctx, msgUserUnfollow, zap.String("followerID", followerID))
	return user.Profile(false), nil
}
