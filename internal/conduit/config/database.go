package config

import (
	"fmt"
	"net/url"
	"time"

	"conduit/pkg/db/postgres"
)

// PostgresConfig содержит настройки подключения к базе данных.
type PostgresConfig struct {
	Host            string        `yaml:"host" env:"CONDUIT_POSTGRES_HOST" env-default:"localhost"`
	Port            int           `yaml:"port" env:"CONDUIT_POSTGRES_PORT" env-default:"5432"`
	User            string        `yaml:"user" env:"CONDUIT_POSTGRES_USER" env-default:"postgres"`
	Password        string        `yaml:"password" env:"CONDUIT_POSTGRES_PASSWORD" env-default:"postgres"`
	Database        string        `yaml:"database" env:"CONDUIT_POSTGRES_DB" env-default:"conduit"`
	SSLMode         string        `yaml:"ssl_mode" env:"CONDUIT_POSTGRES_SSL_MODE" env-default:"disable"`
	MinConn         int           `yaml:"min_conn" env:"CONDUIT_POSTGRES_MIN_CONN" env-default:"2"`
	MaxConn         int           `yaml:"max_conn" env:"CONDUIT_POSTGRES_MAX_CONN" env-default:"10"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"CONDUIT_POSTGRES_MAX_CONN_LIFETIME" env-default:"1h"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout" env:"CONDUIT_POSTGRES_CONNECT_TIMEOUT" env-default:"5s"`
	MigrationsDir   string        `yaml:"migrations_dir" env:"CONDUIT_POSTGRES_MIGRATIONS_DIR" env-default:"./migrations/conduit"`
}

// GetDSN возвращает строку подключения к PostgreSQL.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}

// GetConnectionURL возвращает URL-строку подключения для миграций.
func (p *PostgresConfig) GetConnectionURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:     p.Database,
		RawQuery: "sslmode=" + url.QueryEscape(p.SSLMode),
	}
	return u.String()
}

// GetOptions возвращает параметры пула соединений.
func (p *PostgresConfig) GetOptions() postgres.Options {
	return postgres.Options{
		MinConns:        p.MinConn,
		MaxConns:        p.MaxConn,
		MaxConnLifetime: p.MaxConnLifetime,
		ConnectTimeout:  p.ConnectTimeout,
	}
}
