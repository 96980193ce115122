// Package config handles application configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds configuration for every binary in the repo. Each binary
// reads the subset it needs; unset values fall back to defaults suitable
// for local development.
type Config struct {
	// Echo-cache server.
	Port       string `env:"PORT" envDefault:"8080"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"echo_cache.db"`
	// DatabaseURL, when set, selects the Postgres store over SQLite.
	DatabaseURL string `env:"DATABASE_URL"`

	// Rate limit on cache-save requests, per client IP.
	SaveRatePerSec float64 `env:"SAVE_RATE_PER_SEC" envDefault:"2"`
	SaveRateBurst  int     `env:"SAVE_RATE_BURST" envDefault:"5"`

	// Purge worker.
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	PurgeSchedule string `env:"PURGE_SCHEDULE" envDefault:"@every 6h"`

	// Discovery client.
	CacheDir   string `env:"CHRONOS_CACHE_DIR"`
	EchoURL    string `env:"ECHO_CACHE_URL" envDefault:"http://localhost:8080"`
	DailyLimit int    `env:"DAILY_QUOTA_LIMIT" envDefault:"100"`

	// Generator proxy. An empty URL leaves only the offline generator.
	OpenAIURL   string `env:"OPENAI_PROXY_URL"`
	OpenAIKey   string `env:"OPENAI_API_KEY"`
	OpenAIModel string `env:"OPENAI_MODEL" envDefault:"gpt-3.5-turbo"`
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// UsePostgres reports whether the server should back onto Postgres.
func (c Config) UsePostgres() bool {
	return c.DatabaseURL != ""
}
