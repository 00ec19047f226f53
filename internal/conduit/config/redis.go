package config

import (
	"fmt"
	"time"

	"conduit/pkg/db/redis"
)

// RedisConfig представляет конфигурацию для Redis.
type RedisConfig struct {
	Enabled    bool          `yaml:"enabled" env:"CONDUIT_REDIS_ENABLED" env-default:"true"`
	Host       string        `yaml:"host" env:"CONDUIT_REDIS_HOST" env-default:"localhost"`
	Port       int           `yaml:"port" env:"CONDUIT_REDIS_PORT" env-default:"6379"`
	Password   string        `yaml:"password" env:"CONDUIT_REDIS_PASSWORD" env-default:""`
	DB         int           `yaml:"db" env:"CONDUIT_REDIS_DB" env-default:"0"`
	PoolSize   int           `yaml:"pool_size" env:"CONDUIT_REDIS_POOL_SIZE" env-default:"10"`
	Timeout    time.Duration `yaml:"timeout" env:"CONDUIT_REDIS_TIMEOUT" env-default:"3s"`
	DefaultTTL time.Duration `yaml:"default_ttl" env:"CONDUIT_REDIS_DEFAULT_TTL" env-default:"5m"`
}

// GetAddress возвращает адрес Redis.
func (c *RedisConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ClientConfig возвращает настройки клиента Redis.
func (c *RedisConfig) ClientConfig() *redis.Config {
	return &redis.Config{
		Host:     c.Host,
		Port:     c.Port,
		Password: c.Password,
		DB:       c.DB,
		PoolSize: c.PoolSize,
		Timeout:  c.Timeout,
	}
}
