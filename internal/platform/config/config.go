// Copyright (c) 2026 Pizza Noir. All rights reserved.
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
  - DI-Friendly: Passed to core components (DB, Redis, token codec) via constructors.
  - Zero Hidden State: No global variables are used to store config.

Every infrastructure client is built from a fully loaded [Config]; nothing
reads the environment lazily.
*/
package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Pizza Noir API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath overrides the embedded migrations with a directory on disk.
	MigrationPath string `env:"MIGRATION_PATH"`

	// Token denylist (Redis)
	RedisHost     string `env:"REDIS_HOST"     envDefault:"localhost"`
	RedisPort     int    `env:"REDIS_PORT"     envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB"       envDefault:"0"`

	// JWTSecretKey is the base64-encoded HMAC-SHA256 signing key.
	JWTSecretKey string `env:"JWT_SECRET_KEY,required,notEmpty"`

	// JWTLifetimeMillis is the access token lifetime in milliseconds.
	JWTLifetimeMillis int64 `env:"JWT_ACCESS_TOKEN_LIFETIME" envDefault:"86400000"`

	// CookieSecure toggles the Secure attribute on the access token cookie.
	CookieSecure bool `env:"COOKIE_SECURE" envDefault:"true"`

	// Cross-Origin Resource Sharing, comma separated
	ExtraOrigins []string `env:"EXTRA_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.JWTLifetimeMillis <= 0 {
		return nil, fmt.Errorf("config: JWT_ACCESS_TOKEN_LIFETIME must be positive, got %d", cfg.JWTLifetimeMillis)
	}

	// The access token cookie never travels over plain HTTP in production.
	if cfg.IsProduction() && !cfg.CookieSecure {
		return nil, fmt.Errorf("config: COOKIE_SECURE cannot be disabled when ENVIRONMENT=production")
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// RedisAddr joins the configured Redis host and port.
func (c *Config) RedisAddr() string {
	return net.JoinHostPort(c.RedisHost, strconv.Itoa(c.RedisPort))
}

// TokenLifetime converts the millisecond lifetime into a [time.Duration].
func (c *Config) TokenLifetime() time.Duration {
	return time.Duration(c.JWTLifetimeMillis) * time.Millisecond
}

// CORSOrigins lists the origins allowed outside development.
func (c *Config) CORSOrigins() []string {
	return c.ExtraOrigins
}
