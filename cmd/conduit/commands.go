package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"conduit/internal/conduit/config"
	"conduit/internal/conduit/db"
	"conduit/pkg/db/postgres"
	"conduit/pkg/logger"
)

// Константы для сообщений об ошибках.
const (
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrMigrate              = "failed to run migrations"
)

// Константы для сообщений сервиса.
const (
	LogMigrationsDone = "migrations finished"
)

const flagEnvFile = "env-file"

// cli хранит состояние, общее для всех подкоманд.
type cli struct {
	envPath string
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           config.ServiceName,
		Short:         "Conduit (RealWorld) API server",
		Long:          `Conduit serves the RealWorld JSON API over HTTP and exposes gRPC health checks.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runServe(cmd)
		},
	}
	root.PersistentFlags().StringVar(&c.envPath, flagEnvFile, ".env", "path to .env file with CONDUIT_* settings")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start HTTP and gRPC servers (default)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.runServe(cmd)
			},
		},
		&cobra.Command{
			Use:       "migrate [up|down]",
			Short:     "Apply or roll back database migrations",
			Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
			ValidArgs: []string{string(postgres.Up), string(postgres.Down)},
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.runMigrate(cmd, postgres.Direction(args[0]))
			},
		},
	)

	return root
}

// loadConfig загружает конфигурацию и заменяет загрузочный логгер логгером с настройками из нее.
func (c *cli) loadConfig(cmd *cobra.Command) error {
	ctx := cmd.Context()
	log := logger.Log(ctx)

	cfg, err := config.Load(ctx, c.envPath)
	if err != nil {
		log.Error(ctx, ErrLoadConfig, zap.Error(err))
		return err
	}

	finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
	if err != nil {
		log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrInitLoggerWithConfig, err)
	}
	logger.SetGlobalLogger(finalLogger)

	finalLogger.Info(ctx, LogServiceStarted,
		zap.String("command", cmd.Name()),
		zap.String("environment", string(cfg.Logging.GetEnvironment())),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("startup_time", time.Now().Format(time.RFC3339)))

	c.cfg = cfg
	return nil
}

func (c *cli) runMigrate(cmd *cobra.Command, direction postgres.Direction) error {
	ctx := cmd.Context()
	log := logger.Log(ctx)

	if err := db.Migrate(ctx, &c.cfg.Postgres, direction); err != nil {
		log.Error(ctx, ErrMigrate, zap.Error(err))
		return err
	}

	log.Info(ctx, LogMigrationsDone, zap.String("direction", string(direction)))
	return nil
}
