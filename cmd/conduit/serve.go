package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"conduit/internal/conduit/adapters/cache"
	"conduit/internal/conduit/adapters/grpc"
	httpapi "conduit/internal/conduit/adapters/http"
	"conduit/internal/conduit/adapters/http/middleware"
	"conduit/internal/conduit/adapters/postgres"
	"conduit/internal/conduit/adapters/services"
	"conduit/internal/conduit/app"
	"conduit/internal/conduit/config"
	"conduit/internal/conduit/db"
	portcache "conduit/internal/conduit/ports/cache"
	"conduit/pkg/db/redis"
	"conduit/pkg/logger"
	"conduit/pkg/resilience"
	"conduit/pkg/shutdown"
)

// Константы для сообщений об ошибках.
const (
	ErrInitDatabase    = "failed to initialize database"
	ErrStartHTTPServer = "failed to start HTTP server"
	ErrStartGRPCServer = "failed to start gRPC server"
	ErrShutdown        = "graceful shutdown finished with errors"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "conduit service started"
	LogServiceShutdownDone = "conduit service shutdown complete"
	LogInitDatabase        = "initializing database"
	LogInitCache           = "initializing cache"
	LogCacheDisabled       = "redis cache disabled, using no-op cache"
	LogCacheUnavailable    = "redis unavailable, falling back to no-op cache"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingCache        = "closing cache"
	LogClosingDatabase     = "closing database"
)

// healthCheckInterval - период проверки базы данных для gRPC health.
const healthCheckInterval = 15 * time.Second

// databaseRetry - повторы подключения к базе при старте.
var databaseRetry = resilience.RetryConfig{
	MaxAttempts:    10,
	InitialBackoff: 500 * time.Millisecond,
	MaxBackoff:     5 * time.Second,
	BackoffFactor:  2,
}

func (c *cli) runServe(cmd *cobra.Command) error {
	ctx := cmd.Context()
	log := logger.Log(ctx)
	cfg := c.cfg

	log.Info(ctx, LogInitDatabase)
	database, err := db.New(ctx, &cfg.Postgres, databaseRetry)
	if err != nil {
		log.Error(ctx, ErrInitDatabase, zap.Error(err))
		return err
	}

	log.Info(ctx, LogInitCache)
	articleCache := newCache(ctx, &cfg.Redis)

	log.Info(ctx, LogInitServices)
	serviceFactory := services.NewServiceFactory(cfg.JWT.SecretKey, cfg.JWT.GetTokenTTL(), cfg.JWT.Issuer, cfg.JWT.BCryptCost)
	repoFactory := postgres.NewRepositoryFactory(database.Pool())

	useCases := httpapi.UseCases{
		Users: app.NewUserUseCase(
			repoFactory.UserRepository(),
			repoFactory.ArticleRepository(),
			serviceFactory.PasswordService(),
			serviceFactory.TokenService(),
			articleCache),
		Profiles: app.NewProfileUseCase(repoFactory.UserRepository(), repoFactory.FollowRepository()),
		Articles: app.NewArticleUseCase(repoFactory.ArticleRepository(), articleCache),
		Comments: app.NewCommentUseCase(
			repoFactory.ArticleRepository(),
			repoFactory.CommentRepository(),
			repoFactory.UserRepository()),
		Tags: app.NewTagUseCase(repoFactory.TagRepository(), articleCache),
	}

	log.Info(ctx, LogInitHTTPServer)
	opts := httpapi.RouterOptions{
		CORSOrigins: cfg.HTTP.GetCORSOrigins(),
		HealthCheck: database.Ping,
	}
	if cfg.RateLimit.Enabled {
		opts.RateLimiter = middleware.NewRateLimiter(cfg.RateLimit.Window, cfg.RateLimit.Max)
	}

	server := httpapi.NewApp(&cfg.HTTP)
	httpapi.SetupRouter(server, useCases, serviceFactory.TokenService(), opts)

	log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
	go func() {
		if err := server.Listen(cfg.HTTP.GetAddress()); err != nil {
			log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
		}
	}()

	grpcServer := grpc.New(&cfg.GRPC)
	if err := grpcServer.Start(ctx); err != nil {
		log.Error(ctx, ErrStartGRPCServer, zap.Error(err))
		_ = server.Shutdown()
		_ = articleCache.Close()
		database.Close(ctx)
		return err
	}

	watchCtx, stopWatch := context.WithCancel(ctx)
	go grpcServer.Watch(watchCtx, database.Ping, healthCheckInterval)

	err = shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
		// Остановка HTTP сервера.
		func(ctx context.Context) error {
			log.Info(ctx, LogStoppingHTTP)
			return server.ShutdownWithContext(ctx)
		},
		// Остановка gRPC сервера.
		func(ctx context.Context) error {
			stopWatch()
			grpcServer.Stop(ctx)
			return nil
		},
		// Закрытие Redis соединения.
		func(ctx context.Context) error {
			log.Info(ctx, LogClosingCache)
			return articleCache.Close()
		},
	)
	// Пул закрывается после остановки серверов.
	log.Info(ctx, LogClosingDatabase)
	database.Close(ctx)

	if err != nil {
		log.Error(ctx, ErrShutdown, zap.Error(err))
		return err
	}

	log.Info(ctx, LogServiceShutdownDone)
	return nil
}

// newCache подключается к Redis, если он включен. Недоступный Redis заменяется no-op кэшем.
func newCache(ctx context.Context, cfg *config.RedisConfig) portcache.Cache {
	log := logger.Log(ctx)

	if !cfg.Enabled {
		log.Info(ctx, LogCacheDisabled)
		return cache.NewNoopCache()
	}

	client, err := redis.NewClient(ctx, cfg.ClientConfig())
	if err != nil {
		log.Warn(ctx, LogCacheUnavailable, zap.String("address", cfg.GetAddress()), zap.Error(err))
		return cache.NewNoopCache()
	}

	policy := resilience.NewPolicy("redis", resilience.DefaultCircuitBreakerConfig(), resilience.DefaultRetryConfig())
	return cache.NewRedisCache(client, policy, cfg.DefaultTTL)
}
