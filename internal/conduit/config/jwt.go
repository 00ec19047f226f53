package config

import (
	"strconv"
	"strings"
	"time"
)

// DefaultTokenTTL используется, если CONDUIT_JWT_TOKEN_TTL не удалось разобрать.
const DefaultTokenTTL = 7 * 24 * time.Hour

// JWTConfig содержит настройки для JWT токенов и хэширования паролей.
type JWTConfig struct {
	SecretKey  string `yaml:"secret_key" env:"CONDUIT_JWT_SECRET_KEY" env-default:"super-secret-key-change-me-in-production"`
	TokenTTL   string `yaml:"token_ttl" env:"CONDUIT_JWT_TOKEN_TTL" env-default:"7d"`
	Issuer     string `yaml:"issuer" env:"CONDUIT_JWT_ISSUER" env-default:"conduit"`
	BCryptCost int    `yaml:"bcrypt_cost" env:"CONDUIT_JWT_BCRYPT_COST" env-default:"12"`
}

// GetTokenTTL возвращает время жизни токена. Кроме формата time.ParseDuration
// поддерживается суффикс "d" для дней ("7d").
func (c *JWTConfig) GetTokenTTL() time.Duration {
	return parseTTL(c.TokenTTL, DefaultTokenTTL)
}

func parseTTL(value string, fallback time.Duration) time.Duration {
	value = strings.TrimSpace(value)
	if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return fallback
		}
		return time.Duration(n) * 24 * time.Hour
	}
	duration, err := time.ParseDuration(value)
	if err != nil || duration <= 0 {
		return fallback
	}
	return duration
}
