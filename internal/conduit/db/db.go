// Package db инициализирует базу данных Conduit: миграции и пул соединений.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"conduit/internal/conduit/config"
	"conduit/pkg/db/postgres"
	"conduit/pkg/logger"
	"conduit/pkg/resilience"
)

// Константы для сообщений логгера.
const (
	LogDBInitializing    = "initializing conduit database"
	LogDBInitialized     = "conduit database initialized successfully"
	LogMigrationStarting = "starting database migrations"
)

// Константы для сообщений об ошибках.
const (
	ErrDBMigrations = "failed to apply conduit database migrations"
	ErrDBConnection = "failed to connect to conduit database"
)

// DB представляет соединение с базой данных сервиса.
type DB struct {
	database *postgres.Database
}

// Migrate применяет (или откатывает) миграции из каталога cfg.MigrationsDir.
func Migrate(ctx context.Context, cfg *config.PostgresConfig, direction postgres.Direction) error {
	sourceURL, err := postgres.SourceURL(cfg.MigrationsDir)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	logger.Log(ctx).Info(ctx, LogMigrationStarting,
		zap.String("migrations_path", sourceURL),
		zap.String("direction", string(direction)))

	if err := postgres.Migrate(ctx, cfg.GetConnectionURL(), sourceURL, direction); err != nil {
		return fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}
	return nil
}

// New инициализирует соединение с базой данных, предварительно применив миграции.
// Подключение повторяется по правилам retry, пока база не станет доступна.
func New(ctx context.Context, cfg *config.PostgresConfig, retry resilience.RetryConfig) (*DB, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn))

	var database *postgres.Database
	err := resilience.NewRetry("postgres", retry).Execute(ctx, func() error {
		var err error
		database, err = postgres.New(ctx, cfg.GetDSN(), cfg.GetOptions())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	if err := Migrate(ctx, cfg, postgres.Up); err != nil {
		database.Close(ctx)
		return nil, err
	}

	log.Info(ctx, LogDBInitialized)

	return &DB{database: database}, nil
}

// Close закрывает соединение с базой данных.
func (db *DB) Close(ctx context.Context) {
	db.database.Close(ctx)
}

// Pool возвращает пул соединений с базой данных.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Ping проверяет соединение с базой данных.
func (db *DB) Ping(ctx context.Context) error {
	return db.database.Ping(ctx)
}
