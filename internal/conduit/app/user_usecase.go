// Package app содержит сценарии использования Conduit.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"conduit/internal/conduit/domain/entities"
	"conduit/internal/conduit/ports/api"
	"conduit/internal/conduit/ports/cache"
	"conduit/internal/conduit/ports/repositories"
	svc "conduit/internal/conduit/ports/services"
	"conduit/pkg/logger"
	"conduit/pkg/validation"
)

const (
	methodRegister   = "Register"
	methodLogin      = "Login"
	methodCurrent    = "Current"
	methodUpdateUser = "UpdateUser"

	msgStartRegistration   = "starting user registration"
	msgEmailExists         = "user with this email already exists"
	msgUsernameExists      = "user with this username already exists"
	msgUserRegistered      = "user registered successfully"
	msgLoginAttempt        = "login attempt"
	msgLoginNonExistent    = "login attempt with non-existent email"
	msgInvalidPasswordAuth = "invalid password provided"
	msgUserLoggedIn        = "user logged in successfully"
	msgUserUpdated         = "user updated successfully"

	msgErrCheckExistingUser = "failed to check existing user"
	msgErrHashPassword      = "failed to hash password"
	msgErrCreateUser        = "failed to create user"
	msgErrGenerateToken     = "failed to generate token"
	msgErrFindingUser       = "error finding user"
	msgErrVerifyingPassword = "error verifying password"
	msgErrUpdateUser        = "failed to update user"
	msgErrListAuthored      = "failed to list authored articles for cache eviction"

	errCtxCheckingUser       = "checking existing user"
	errCtxEmailRegistered    = "email already registered"
	errCtxUsernameRegistered = "username already registered"
	errCtxHashingPassword    = "hashing password"
	errCtxCreatingUser       = "creating user"
	errCtxGeneratingToken    = "generating token"
	errCtxInvalidCredentials = "invalid credentials"
	errCtxFindingUser        = "finding user"
	errCtxVerifyingPassword  = "verifying password"
	errCtxUpdatingUser       = "updating user"
)

// UserUseCaseImpl реализует интерфейс UserUseCase.
type UserUseCaseImpl struct {
	userRepo    repositories.UserRepository
	articleRepo repositories.ArticleRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
	cache       cache.Cache
}

// NewUserUseCase создает новый экземпляр сервиса пользователей.
// articleRepo и c нужны, чтобы сбрасывать кэш статей автора после смены профиля.
func NewUserUseCase(
	userRepo repositories.UserRepository,
	articleRepo repositories.ArticleRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
	c cache.Cache,
) api.UserUseCase {
	return &UserUseCaseImpl{
		userRepo:    userRepo,
		articleRepo: articleRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		cache:       c,
	}
}

// Register создает нового пользователя и выдает ему токен.
func (u *UserUseCaseImpl) Register(ctx context.Context, input validation.RegisterUser) (*api.AuthenticatedUser, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("email", input.Email))
	log.Debug(ctx, msgStartRegistration)

	if err := u.ensureEmailFree(ctx, input.Email, ""); err != nil {
		return nil, err
	}
	if err := u.ensureUsernameFree(ctx, input.Username, ""); err != nil {
		return nil, err
	}

	hashedPassword, err := u.passwordSvc.Hash(ctx, input.Password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	createdUser, err := u.userRepo.Create(ctx, &entities.User{
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: hashedPassword,
		Bio:          input.Bio,
		Image:        input.Image,
	})
	if err != nil {
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", createdUser.ID))
	return u.authenticate(ctx, createdUser)
}

// Login аутентифицирует пользователя по email и паролю.
func (u *UserUseCaseImpl) Login(ctx context.Context, input validation.LoginUser) (*api.AuthenticatedUser, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("email", input.Email))
	log.Debug(ctx, msgLoginAttempt)

	user, err := u.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, entities.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	valid, err := u.passwordSvc.Verify(ctx, input.Password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgInvalidPasswordAuth, zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, entities.ErrInvalidCredentials)
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))
	return u.authenticate(ctx, user)
}

// Current возвращает пользователя текущей сессии вместе с ее токеном.
func (u *UserUseCaseImpl) Current(ctx context.Context, userID, token string) (*api.AuthenticatedUser, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCurrent), zap.String("userID", userID))

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		log.Debug(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	return &api.AuthenticatedUser{User: user, Token: token}, nil
}

// Update применяет переданные изменения и выдает новый токен,
// так как имя пользователя входит в его claims.
func (u *UserUseCaseImpl) Update(ctx context.Context, userID string, changes validation.UserChanges) (*api.AuthenticatedUser, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateUser), zap.String("userID", userID))

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		log.Debug(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	if changes.Email != nil && *changes.Email != user.Email {
		if err := u.ensureEmailFree(ctx, *changes.Email, user.ID); err != nil {
			return nil, err
		}
		user.Email = *changes.Email
	}
	profileChanged := changes.Bio != nil || changes.Image != nil
	if changes.Username != nil && *changes.Username != user.Username {
		if err := u.ensureUsernameFree(ctx, *changes.Username, user.ID); err != nil {
			return nil, err
		}
		user.Username = *changes.Username
		profileChanged = true
	}
	if changes.Password != nil {
		hashedPassword, err := u.passwordSvc.Hash(ctx, *changes.Password)
		if err != nil {
			log.Error(ctx, msgErrHashPassword, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
		}
		user.PasswordHash = hashedPassword
	}
	if changes.Bio != nil {
		user.Bio = changes.Bio
	}
	if changes.Image != nil {
		user.Image = changes.Image
	}

	updated, err := u.userRepo.Update(ctx, user)
	if err != nil {
		log.Error(ctx, msgErrUpdateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingUser, err)
	}

	if profileChanged {
		u.evictAuthoredArticles(ctx, updated.Username)
	}

	log.Info(ctx, msgUserUpdated)
	return u.authenticate(ctx, updated)
}

// evictAuthoredArticles сбрасывает закэшированные статьи автора: в них встроен его профиль.
func (u *UserUseCaseImpl) evictAuthoredArticles(ctx context.Context, username string) {
	filter := entities.ArticleFilter{Author: &username, Limit: validation.Constraints().Pagination.Max}
	for {
		page, err := u.articleRepo.List(ctx, filter)
		if err != nil {
			logger.Log(ctx).Warn(ctx, msgErrListAuthored, zap.String("username", username), zap.Error(err))
			return
		}
		if len(page.Articles) == 0 {
			return
		}

		keys := make([]string, 0, len(page.Articles))
		for _, article := range page.Articles {
			keys = append(keys, articleCacheKey(article.Slug))
		}
		cacheEvict(ctx, u.cache, keys...)

		filter.Offset += len(page.Articles)
		if filter.Offset >= page.Count {
			return
		}
	}
}

// ensureEmailFree проверяет, что email не занят другим пользователем.
func (u *UserUseCaseImpl) ensureEmailFree(ctx context.Context, email, ownerID string) error {
	log := logger.Log(ctx)

	existing, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		log.Error(ctx, msgErrCheckExistingUser, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxCheckingUser, err)
	}
	if existing != nil && existing.ID != ownerID {
		log.Debug(ctx, msgEmailExists)
		return fmt.Errorf("%s: %w", errCtxEmailRegistered, entities.ErrEmailTaken)
	}
	return nil
}

func (u *UserUseCaseImpl) ensureUsernameFree(ctx context.Context, username, ownerID string) error {
	log := logger.Log(ctx)

	existing, err := u.userRepo.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		log.Error(ctx, msgErrCheckExistingUser, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxCheckingUser, err)
	}
	if existing != nil && existing.ID != ownerID {
		log.Debug(ctx, msgUsernameExists)
		return fmt.Errorf("%s: %w", errCtxUsernameRegistered, entities.ErrUsernameTaken)
	}
	return nil
}

func (u *UserUseCaseImpl) authenticate(ctx context.Context, user *entities.User) (*api.AuthenticatedUser, error) {
	token, _, err := u.tokenSvc.GenerateToken(ctx, user.ID, user.Username)
	if err != nil {
		logger.Log(ctx).Error(ctx, msgErrGenerateToken, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingToken, err)
	}
	return &api.AuthenticatedUser{User: user, Token: token}, nil
}
