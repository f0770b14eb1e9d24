// Package config loads the application configuration from environment
// variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration. Only the API key is required;
// everything else has a workable default.
type Config struct {
	GeminiAPIKey string        `env:"GEMINI_API_KEY,required"`
	Model        string        `env:"GAME_MODEL" envDefault:"gemini-flash-lite-latest"`
	Timeout      time.Duration `env:"GAME_TIMEOUT" envDefault:"90s"`
	LogFile      string        `env:"GAME_LOG_FILE"`
	SettingsFile string        `env:"GAME_SETTINGS_FILE"`
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
