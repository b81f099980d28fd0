package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/sirupsen/logrus"
)

var ErrNoAllowedOrigins = errors.New("at least one CORS origin must be configured")

type Config struct {
	Server struct {
		// Port the HTTP API listens on
		Port string `env:"PORT" envDefault:"5250"`

		// Gin mode: debug, release or test
		GinMode string `env:"GIN_MODE" envDefault:"release"`

		// Origins allowed to call the API; "*" allows any origin
		AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	}

	Logging struct {
		// Logrus level name (debug, info, warn, error)
		Level string `env:"LOG_LEVEL" envDefault:"info"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values env.Parse cannot check on its own.
func (c *Config) Validate() error {
	if len(c.Server.AllowedOrigins) == 0 {
		return ErrNoAllowedOrigins
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses the configured logging level.
func (c *Config) LogLevel() (logrus.Level, error) {
	level, err := logrus.ParseLevel(c.Logging.Level)
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("invalid log level %q: %w", c.Logging.Level, err)
	}
	return level, nil
}

// AllowsAnyOrigin reports whether the wildcard origin is configured.
func (c *Config) AllowsAnyOrigin() bool {
	for _, origin := range c.Server.AllowedOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
