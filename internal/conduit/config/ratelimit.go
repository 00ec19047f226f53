package config

import "time"

// RateLimitConfig задает ограничение числа запросов с одного адреса.
type RateLimitConfig struct {
	Enabled bool          `yaml:"enabled" env:"CONDUIT_RATE_LIMIT_ENABLED" env-default:"true"`
	Window  time.Duration `yaml:"window" env:"CONDUIT_RATE_LIMIT_WINDOW" env-default:"15m"`
	Max     int           `yaml:"max" env:"CONDUIT_RATE_LIMIT_MAX" env-default:"100"`
}
