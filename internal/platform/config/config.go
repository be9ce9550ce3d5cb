// Copyright (c) 2026 Yomira. All rights reserved.
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

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, sessions) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/crypto/bcrypt"
)

// Storage drivers selectable through STORAGE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// minSessionSecretLength is the shortest accepted HS256 key.
const minSessionSecretLength = 32

// # Configuration Schema

// Config holds all runtime configuration for the snippet server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// StorageDriver selects the account, snippet and session backends.
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"postgres"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath is a directory of SQL migrations. Empty means the schema
	// embedded in the binary.
	MigrationPath string `env:"MIGRATION_PATH"`

	// Session store (Redis)
	RedisURL string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`

	// Sessions
	SessionSecret string        `env:"SESSION_SECRET,required"`
	SessionName   string        `env:"SESSION_NAME"   envDefault:"snipbin_session"`
	SessionTTL    time.Duration `env:"SESSION_TTL"    envDefault:"24h"`

	// TLSTerminated marks the session cookie Secure. Set it when the service
	// sits behind an HTTPS-terminating proxy.
	TLSTerminated bool `env:"TLS_TERMINATED" envDefault:"false"`

	// BcryptCost is the work factor of newly stored password hashes.
	BcryptCost int `env:"BCRYPT_COST" envDefault:"8"`

	// Cross-Origin Resource Sharing
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct and validates the
// rules that span more than one variable.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// validate checks cross-field constraints.
func (c *Config) validate() error {
	var errs []error

	switch c.StorageDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when STORAGE_DRIVER=postgres"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver))
	}

	if len(c.SessionSecret) < minSessionSecretLength {
		errs = append(errs, fmt.Errorf("SESSION_SECRET must be at least %d characters", minSessionSecretLength))
	}

	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}

	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}

	return errors.Join(errs...)
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UsesPostgres reports whether accounts and snippets live in PostgreSQL.
func (c *Config) UsesPostgres() bool {
	return c.StorageDriver == DriverPostgres
}
