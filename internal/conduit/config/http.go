package config

import (
	"fmt"
	"strings"
	"time"
)

// HTTPConfig представляет конфигурацию HTTP сервера.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"CONDUIT_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `yaml:"port" env:"CONDUIT_HTTP_PORT" env-default:"3000"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"CONDUIT_HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"CONDUIT_HTTP_WRITE_TIMEOUT" env-default:"10s"`
	BodyLimit    int           `yaml:"body_limit" env:"CONDUIT_HTTP_BODY_LIMIT" env-default:"1048576"`
	CORSOrigins  string        `yaml:"cors_origins" env:"CONDUIT_HTTP_CORS_ORIGINS" env-default:"*"`
}

// GetAddress возвращает адрес HTTP сервера.
func (c *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GetCORSOrigins возвращает список разрешенных источников.
func (c *HTTPConfig) GetCORSOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.CORSOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
