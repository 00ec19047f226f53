package config_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conduit/internal/conduit/config"
	"conduit/pkg/logger"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(context.Background(), filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:3000", cfg.HTTP.GetAddress())
	assert.Equal(t, "0.0.0.0:50051", cfg.GRPC.GetAddress())
	assert.Equal(t, 12, cfg.JWT.BCryptCost)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.GetTokenTTL())
	assert.Equal(t, 10*time.Second, cfg.Shutdown.GetTimeout())
	assert.Equal(t, logger.Development, cfg.Logging.GetEnvironment())
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 100, cfg.RateLimit.Max)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CONDUIT_HTTP_PORT", "8081")
	t.Setenv("CONDUIT_LOGGER_MODE", "production")
	t.Setenv("CONDUIT_JWT_TOKEN_TTL", "36h")
	t.Setenv("CONDUIT_HTTP_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := config.Load(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.HTTP.Port)
	assert.Equal(t, logger.Production, cfg.Logging.GetEnvironment())
	assert.Equal(t, 36*time.Hour, cfg.JWT.GetTokenTTL())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.GetCORSOrigins())
}

func TestTokenTTL(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"7d", 7 * 24 * time.Hour},
		{"1d", 24 * time.Hour},
		{"90m", 90 * time.Minute},
		{"0d", config.DefaultTokenTTL},
		{"xd", config.DefaultTokenTTL},
		{"-1h", config.DefaultTokenTTL},
		{"", config.DefaultTokenTTL},
		{"week", config.DefaultTokenTTL},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			cfg := config.JWTConfig{TokenTTL: tt.value}
			assert.Equal(t, tt.want, cfg.GetTokenTTL())
		})
	}
}

func TestPostgresConnectionStrings(t *testing.T) {
	cfg := config.PostgresConfig{
		Host: "db", Port: 5433, User: "app", Password: "p@ss word", Database: "conduit", SSLMode: "disable",
		MinConn: 1, MaxConn: 4,
	}

	assert.Equal(t, "host=db port=5433 user=app password=p@ss word dbname=conduit sslmode=disable", cfg.GetDSN())
	assert.Equal(t, "postgres://app:p%40ss%20word@db:5433/conduit?sslmode=disable", cfg.GetConnectionURL())

	opts := cfg.GetOptions()
	assert.Equal(t, 1, opts.MinConns)
	assert.Equal(t, 4, opts.MaxConns)
}

func TestCORSOriginsFallback(t *testing.T) {
	cfg := config.HTTPConfig{CORSOrigins: " , "}
	assert.Equal(t, []string{"*"}, cfg.GetCORSOrigins())
}

func TestRedisClientConfig(t *testing.T) {
	cfg := config.RedisConfig{Host: "cache", Port: 6380, DB: 2, PoolSize: 5, Timeout: time.Second}
	client := cfg.ClientConfig()
	assert.Equal(t, "cache:6380", client.Addr())
	assert.Equal(t, 2, client.DB)
	assert.Equal(t, time.Second, client.Timeout)
}
