package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the server configuration, read from environment variables.
type Config struct {
	Addr            string `env:"CRICKTLE_ADDR" envDefault:":8080"`
	DBPath          string `env:"CRICKTLE_DB" envDefault:"./cricktle.db"`
	PlayersFile     string `env:"CRICKTLE_PLAYERS" envDefault:"data/players.json"`
	MaxAttempts     int    `env:"CRICKTLE_MAX_ATTEMPTS" envDefault:"6"`
	SuggestionLimit int    `env:"CRICKTLE_SUGGESTION_LIMIT" envDefault:"8"`
}

// Load parses configuration from the environment. Non-positive game settings
// snap back to their defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 6
	}
	if cfg.SuggestionLimit <= 0 {
		cfg.SuggestionLimit = 8
	}
	return cfg, nil
}
