// Copyright (c) 2026 CRM Local. All rights reserved.
// Author: dev@crm-local.app

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
  - DI-Friendly: Passed to core components (DB, Redis, token service) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the CRM Local API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis) — presence tracking
	RedisURL string `env:"REDIS_URL,required"`

	// SecretKey signs session JWTs (HS256). Rotating it invalidates every
	// outstanding token.
	SecretKey string `env:"CRM_SECRET_KEY,required"`

	// TokenExpireMinutes is the session token lifetime in minutes.
	TokenExpireMinutes int `env:"CRM_TOKEN_EXPIRE_MINUTES" envDefault:"480"`

	// AdminUsername/AdminPassword seed the initial admin account when the
	// credential store is empty. Never consulted afterwards.
	AdminUsername string `env:"CRM_ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"CRM_ADMIN_PASSWORD" envDefault:"admin"`

	// SessionCookieName is the name of the cookie carrying the session token.
	// Both the write path (login) and the read path (guard) resolve the name
	// from this single field.
	SessionCookieName string `env:"CRM_SESSION_COOKIE_NAME" envDefault:"session_token"`

	// SessionCookieSecure sets the Secure attribute on the session cookie.
	SessionCookieSecure bool `env:"CRM_SESSION_COOKIE_SECURE" envDefault:"false"`

	// PasswordMinLength is the minimum length accepted for any new password.
	PasswordMinLength int `env:"CRM_PASSWORD_MIN_LENGTH" envDefault:"8"`
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

	if cfg.TokenExpireMinutes <= 0 {
		return nil, fmt.Errorf("config: CRM_TOKEN_EXPIRE_MINUTES must be positive, got %d", cfg.TokenExpireMinutes)
	}

	if cfg.PasswordMinLength < 1 {
		return nil, fmt.Errorf("config: CRM_PASSWORD_MIN_LENGTH must be at least 1, got %d", cfg.PasswordMinLength)
	}

	return cfg, nil
}

// TokenTTL returns the configured session token lifetime as a [time.Duration].
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenExpireMinutes) * time.Minute
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
