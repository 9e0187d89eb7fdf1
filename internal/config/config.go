// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings for the Taskdeck API.
type Config struct {
	ListenAddr  string `env:"TASKDECK_LISTEN_ADDR" envDefault:":8080"`
	DatabaseDSN string `env:"TASKDECK_PG_DSN"`

	// AuthSecret signs access tokens (HS256). The service refuses to start
	// without it.
	AuthSecret string `env:"TASKDECK_AUTH_SECRET"`

	AccessTokenTTL  time.Duration `env:"TASKDECK_ACCESS_TOKEN_TTL" envDefault:"15m"`
	RefreshTokenTTL time.Duration `env:"TASKDECK_REFRESH_TOKEN_TTL" envDefault:"240h"`

	RateLimitPerSecond int `env:"TASKDECK_RATE_LIMIT_PER_SECOND" envDefault:"25"`
	RateLimitBurst     int `env:"TASKDECK_RATE_LIMIT_BURST" envDefault:"50"`

	// AllowedOrigins is the CORS whitelist for browser clients.
	AllowedOrigins []string `env:"TASKDECK_CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:4200"`
}

// Load parses configuration from environment variables and validates the
// values the service cannot run without.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.AuthSecret == "" {
		return errors.New("config: TASKDECK_AUTH_SECRET is required")
	}
	if c.AccessTokenTTL <= 0 {
		return errors.New("config: access token TTL must be positive")
	}
	if c.RefreshTokenTTL <= 0 {
		return errors.New("config: refresh token TTL must be positive")
	}
	if c.RateLimitPerSecond <= 0 || c.RateLimitBurst <= 0 {
		return errors.New("config: rate limit values must be positive")
	}
	return nil
}
