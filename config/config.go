package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

const (
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
	StorageMemory   = "memory"
)

type Config struct {
	Env      string `env:"ENV"       envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT"      envDefault:"8080"  validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"  validate:"oneof=debug info warn error"`

	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"postgres" validate:"required,oneof=postgres sqlite memory"`
	DatabaseURL   string `env:"DATABASE_URL"                         validate:"required_if=StorageDriver postgres"`
	SQLitePath    string `env:"SQLITE_PATH"    envDefault:"data/tasks.db" validate:"required_if=StorageDriver sqlite"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	JWTSecret  string        `env:"JWT_SECRET,required" validate:"required,min=32"`
	JWTTTL     time.Duration `env:"JWT_TTL"    envDefault:"24h"          validate:"min=1m,max=168h"`
	JWTIssuer  string        `env:"JWT_ISSUER" envDefault:"task-manager" validate:"required"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"          validate:"min=4,max=31"`

	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`
	StatsCron   string   `env:"STATS_CRON"   envDefault:"@every 1m"`

	ResendAPIKey string `env:"RESEND_API_KEY" validate:"required_if=Env production,required_if=Env staging"`
	ResendFrom   string `env:"RESEND_FROM"    validate:"required_if=Env production,required_if=Env staging"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SlogLevel maps LOG_LEVEL onto a slog level. Unknown values fall back to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
