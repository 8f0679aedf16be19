package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath   string     `env:"DB_PATH" envDefault:"data/spinwin.db"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir   string     `env:"SPA_DIR" envDefault:"../web/dist"`

	// GamesFile is a YAML game catalog; empty means built-in games.
	GamesFile string `env:"GAMES_FILE"`

	// RedisURL enables the registration stream when set.
	RedisURL    string `env:"REDIS_URL"`
	RedisStream string `env:"REDIS_STREAM" envDefault:"spinwin:registrations"`

	SessionTTL          time.Duration `env:"SESSION_TTL" envDefault:"1h"`
	RegistrationTimeout time.Duration `env:"REGISTRATION_TIMEOUT" envDefault:"5s"`

	AdminEmail    string `env:"ADMIN_EMAIL" envDefault:"admin@spinwin.local"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"changeme"`
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}
	return &cfg, nil
}
