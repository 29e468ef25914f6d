// Package config reads process configuration from HEXWORKS_* environment
// variables.
package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"golang.org/x/text/language"

	"github.com/talgya/hexworks/internal/registry"
	"github.com/talgya/hexworks/internal/resource"
	"github.com/talgya/hexworks/internal/world"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Config is the hexworks process configuration.
type Config struct {
	ContentRoot string                   `env:"HEXWORKS_CONTENT_ROOT" envDefault:"resources"`
	Namespace   string                   `env:"HEXWORKS_NAMESPACE" envDefault:"hexworks"`
	Locale      language.Tag             `env:"HEXWORKS_LOCALE" envDefault:"en-US"`
	Duplicates  registry.DuplicatePolicy `env:"HEXWORKS_DUPLICATES" envDefault:"overwrite"`
	Strict      bool                     `env:"HEXWORKS_STRICT" envDefault:"false"`
	DBPath      string                   `env:"HEXWORKS_DB_PATH" envDefault:"data/hexworks.db"`
	MapRadius   int32                    `env:"HEXWORKS_MAP_RADIUS" envDefault:"8"`
	Seed        int64                    `env:"HEXWORKS_SEED" envDefault:"42"`
	LogLevel    slog.Level               `env:"HEXWORKS_LOG_LEVEL" envDefault:"info"`
}

// Load reads Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.MapRadius < 0 {
		return Config{}, fmt.Errorf("parse env: HEXWORKS_MAP_RADIUS must not be negative, got %d", cfg.MapRadius)
	}
	return cfg, nil
}

// Resource returns the loader configuration. CheckFunction is left for the
// caller to fill in.
func (c Config) Resource() resource.Config {
	return resource.Config{
		Root:       c.ContentRoot,
		Namespace:  c.Namespace,
		Locale:     c.Locale,
		Duplicates: c.Duplicates,
	}
}

// Generation returns the map seeding configuration.
func (c Config) Generation() world.GenConfig {
	gen := world.DefaultGenConfig()
	gen.Radius = c.MapRadius
	gen.Seed = c.Seed
	return gen
}
