package app_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"conduit/internal/conduit/domain/entities"
	"conduit/internal/conduit/domain/services"
	"conduit/internal/conduit/ports/cache"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	return userArg(args, 0), args.Error(1)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	return userArg(args, 0), args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	return userArg(args, 0), args.Error(1)
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	args := m.Called(ctx, username)
	return userArg(args, 0), args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	return userArg(args, 0), args.Error(1)
}

func userArg(args mock.Arguments, i int) *entities.User {
	if u, ok := args.Get(i).(*entities.User); ok {
		return u
	}
	return nil
}

type mockFollowRepository struct {
	mock.Mock
}

func (m *mockFollowRepository) Follow(ctx context.Context, followerID, followingID string) error {
	return m.Called(ctx, followerID, followingID).Error(0)
}

func (m *mockFollowRepository) Unfollow(ctx context.Context, followerID, followingID string) error {
	return m.Called(ctx, followerID, followingID).Error(0)
}

func (m *mockFollowRepository) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	args := m.Called(ctx, followerID, followingID)
	return args.Bool(0), args.Error(1)
}

type mockArticleRepository struct {
	mock.Mock
}

func (m *mockArticleRepository) Create(ctx context.Context, article *entities.Article) (*entities.Article, error) {
	args := m.Called(ctx, article)
	return articleArg(args, 0), args.Error(1)
}

func (m *mockArticleRepository) FindBySlug(ctx context.Context, slug, viewerID string) (*entities.Article, error) {
	args := m.Called(ctx, slug, viewerID)
	return articleArg(args, 0), args.Error(1)
}

func (m *mockArticleRepository) List(ctx context.Context, filter entities.ArticleFilter) (*entities.ArticlePage, error) {
	args := m.Called(ctx, filter)
	page, _ := args.Get(0).(*entities.ArticlePage)
	return page, args.Error(1)
}

func (m *mockArticleRepository) Update(ctx context.Context, article *entities.Article) (*entities.Article, error) {
	args := m.Called(ctx, article)
	return articleArg(args, 0), args.Error(1)
}

func (m *mockArticleRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockArticleRepository) Favorite(ctx context.Context, userID, articleID string) error {
	return m.Called(ctx, userID, articleID).Error(0)
}

func (m *mockArticleRepository) Unfavorite(ctx context.Context, userID, articleID string) error {
	return m.Called(ctx, userID, articleID).Error(0)
}

func articleArg(args mock.Arguments, i int) *entities.Article {
	if a, ok := args.Get(i).(*entities.Article); ok {
		return a
	}
	return nil
}

type mockCommentRepository struct {
	mock.Mock
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *entities.Comment) (*entities.Comment, error) {
	args := m.Called(ctx, comment)
	c, _ := args.Get(0).(*entities.Comment)
	return c, args.Error(1)
}

func (m *mockCommentRepository) FindByID(ctx context.Context, id string) (*entities.Comment, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*entities.Comment)
	return c, args.Error(1)
}

func (m *mockCommentRepository) ListByArticle(ctx context.Context, articleID, viewerID string, limit, offset int) ([]*entities.Comment, error) {
	args := m.Called(ctx, articleID, viewerID, limit, offset)
	c, _ := args.Get(0).([]*entities.Comment)
	return c, args.Error(1)
}

func (m *mockCommentRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockTagRepository struct {
	mock.Mock
}

func (m *mockTagRepository) List(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	tags, _ := args.Get(0).([]string)
	return tags, args.Error(1)
}

type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) Hash(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) Verify(ctx context.Context, password, hash string) (bool, error) {
	args := m.Called(ctx, password, hash)
	return args.Bool(0), args.Error(1)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateToken(ctx context.Context, userID, username string) (string, time.Time, error) {
	args := m.Called(ctx, userID, username)
	expiresAt, _ := args.Get(1).(time.Time)
	return args.String(0), expiresAt, args.Error(2)
}

func (m *mockTokenService) ValidateToken(ctx context.Context, token string) (*services.JWTClaims, error) {
	args := m.Called(ctx, token)
	claims, _ := args.Get(0).(*services.JWTClaims)
	return claims, args.Error(1)
}

// memoryCache - потокобезопасный кэш в памяти для тестов.
type memoryCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	deleted []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return v, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
		c.deleted = append(c.deleted, k)
	}
	return nil
}

func (c *memoryCache) Close() error { return nil }

func (c *memoryCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}
