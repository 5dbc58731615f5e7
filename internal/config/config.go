// Package config reads QUESTNOTES_* environment variables. Values here seed
// the CLI flag defaults; flags always win.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"questnotes/internal/store"
)

type Config struct {
	// Dir is the data directory; empty means Home or ~/.questnotes.
	Dir  string `env:"QUESTNOTES_DIR"`
	Home string `env:"QUESTNOTES_HOME"`

	Format     string `env:"QUESTNOTES_FORMAT" envDefault:"text"`
	LogLevel   string `env:"QUESTNOTES_LOG_LEVEL" envDefault:"warn"`
	LogDev     bool   `env:"QUESTNOTES_LOG_DEV"`
	StorageKey string `env:"QUESTNOTES_STORAGE_KEY" envDefault:"questnotes_save"`
}

// Load parses the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFrom parses environ instead of the process environment.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// DataDir resolves where the save database lives.
func (c Config) DataDir() (string, error) {
	if d := strings.TrimSpace(c.Dir); d != "" {
		return d, nil
	}
	return store.DefaultDir(c.Home)
}
