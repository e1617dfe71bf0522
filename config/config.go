package config

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the application configuration. It is resolved once at startup
// and passed into constructors; nothing outside main reads the environment.
type Config struct {
	Port        string `envconfig:"PORT" default:"3000"`
	DatabaseURL string `envconfig:"DATABASE_URL"`

	GeminiAPIKey string        `envconfig:"GEMINI_API_KEY"`
	GeminiModel  string        `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash-lite"`
	AITimeout    time.Duration `envconfig:"AI_TIMEOUT" default:"30s"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	return &cfg, nil
}

// AIConfigured reports whether a Gemini credential is available. Without one
// the deterministic mock predictor is used instead of the remote strategy.
func (c *Config) AIConfigured() bool {
	return c.GeminiAPIKey != ""
}
