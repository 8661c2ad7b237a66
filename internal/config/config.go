// Package config loads application settings from environment variables.
//
// Struct tags declare the variable name and default, and env.Parse fills
// the struct in one call — no scattered os.Getenv with hand-rolled
// defaulting and strconv noise in main.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the server needs to start.
type Config struct {
	// Port the HTTP server listens on.
	Port int `env:"PORT" envDefault:"8080"`

	// DBPath is the SQLite database file. Override for deployments:
	// DB_PATH=/var/lib/taskboard/prod.db
	DBPath string `env:"DB_PATH" envDefault:"data/taskboard.db"`

	// LogDebug enables debug-level logging.
	LogDebug bool `env:"LOG_DEBUG" envDefault:"false"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing environment: %w", err)
	}
	return cfg, nil
}
