// Copyright (c) 2026 Citely. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Once loaded, configuration is read-only and handed to constructors. Both the
web shell (cmd/api) and the operator CLI (cmd/cite) read the same variables.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Citely client.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"5000"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Remote citation service
	ServiceURL     string        `env:"CITATION_SERVICE_URL"     envDefault:"http://localhost:8080"`
	RequestTimeout time.Duration `env:"CITATION_REQUEST_TIMEOUT" envDefault:"10s"`
	HealthTimeout  time.Duration `env:"CITATION_HEALTH_TIMEOUT"  envDefault:"5s"`

	// Cross-Origin Resource Sharing (comma separated domains; subdomains included)
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.ServiceURL) == "" {
		return fmt.Errorf("config: CITATION_SERVICE_URL must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config: CITATION_REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	if c.HealthTimeout <= 0 {
		return fmt.Errorf("config: CITATION_HEALTH_TIMEOUT must be positive, got %s", c.HealthTimeout)
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// AllowedOrigins splits ExtraOrigins into trimmed, non-empty entries.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
