package postgres

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"conduit/pkg/logger"
)

// Константы для сообщений об ошибках миграций.
const (
	ErrCreateMigrationInstance = "failed to create migration instance"
	ErrApplyMigrations         = "failed to apply migrations"
	ErrRollbackMigrations      = "failed to roll back migrations"
	ErrMigrationsPath          = "failed to resolve migrations path"
)

// Direction - направление миграции.
type Direction string

// Направления миграций.
const (
	Up   Direction = "up"
	Down Direction = "down"
)

// SourceURL превращает каталог миграций в URL источника file://.
func SourceURL(dir string) (string, error) {
	if filepath.IsAbs(dir) {
		return "file://" + dir, nil
	}
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrMigrationsPath, err)
	}
	return "file://" + absPath, nil
}

// MigrateDSN применяет миграции из migrationsPath в направлении Up.
func MigrateDSN(ctx context.Context, dsn string, migrationsPath string) error {
	return Migrate(ctx, dsn, migrationsPath, Up)
}

// Migrate применяет или откатывает все миграции из migrationsPath.
func Migrate(ctx context.Context, dsn string, migrationsPath string, direction Direction) error {
	log := logger.Log(ctx).With(zap.String("direction", string(direction)))

	m, err := migrate.New(migrationsPath, dsn)
	if err != nil {
		log.Error(ctx, ErrCreateMigrationInstance, zap.Error(err), zap.String("path", migrationsPath))
		return fmt.Errorf("%s: %w", ErrCreateMigrationInstance, err)
	}
	defer m.Close()

	if direction == Down {
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Error(ctx, ErrRollbackMigrations, zap.Error(err))
			return fmt.Errorf("%s: %w", ErrRollbackMigrations, err)
		}
	} else if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Error(ctx, ErrApplyMigrations, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrApplyMigrations, err)
	}

	log.Info(ctx, LogMigrationsApplied)
	return nil
}
