package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the server settings read from the environment.
type Config struct {
	Port      int    `env:"PORT"                envDefault:"3000"`
	StaticDir string `env:"STACKVIZ_STATIC_DIR"`
	LogLevel  string `env:"STACKVIZ_LOG_LEVEL"  envDefault:"info"`
	LogJSON   bool   `env:"STACKVIZ_LOG_JSON"   envDefault:"false"`
}

// Load parses the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", c.Port)
	}
	return nil
}

// Addr is the listen address for Port.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
