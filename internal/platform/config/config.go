// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config maps environment variables into a strongly-typed [Config].

A local .env file is loaded first when present (godotenv never overrides
variables that are already set), then 'caarlos0/env' parses and validates
the process environment.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// # Configuration Schema

// Config holds all runtime configuration for the API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Store (Redis), used for confirmation-code attempt counters
	RedisURL string `env:"REDIS_URL,required"`

	// Access tokens (RS256)
	JWTPrivKeyPath string        `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string        `env:"JWT_PUBLIC_KEY_PATH,required"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"24h"`

	// Confirmation codes
	ConfirmationSecret  string        `env:"CONFIRMATION_SECRET,required"`
	ConfirmationCodeTTL time.Duration `env:"CONFIRMATION_CODE_TTL" envDefault:"24h"`
	CodeAttemptLimit    int           `env:"CODE_ATTEMPT_LIMIT" envDefault:"5"`
	CodeAttemptWindow   time.Duration `env:"CODE_ATTEMPT_WINDOW" envDefault:"15m"`

	// Outbound mail
	MailBackend  string        `env:"MAIL_BACKEND" envDefault:"log"`
	MailFrom     string        `env:"MAIL_FROM" envDefault:"no-reply@yamdb.local"`
	MailTimeout  time.Duration `env:"MAIL_TIMEOUT" envDefault:"10s"`
	SMTPHost     string        `env:"SMTP_HOST"`
	SMTPPort     string        `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string        `env:"SMTP_USERNAME"`
	SMTPPassword string        `env:"SMTP_PASSWORD"`

	// Cross-Origin Resource Sharing
	ExtraOrigins []string `env:"EXTRA_ORIGINS" envSeparator:","`

	// Bulk import
	ImportDir string `env:"IMPORT_DIR" envDefault:"./static/data"`
}

// # Configuration Loading

// Load reads an optional .env file and parses environment variables into a [Config].
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env file: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDatabase parses only the settings the import command needs.
func LoadDatabase() (*DatabaseConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env file: %w", err)
	}

	cfg := &DatabaseConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	return cfg, nil
}

// DatabaseConfig is the subset of settings used by offline commands.
type DatabaseConfig struct {
	DatabaseURL   string `env:"DATABASE_URL,required"`
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`
	ImportDir     string `env:"IMPORT_DIR" envDefault:"./static/data"`
	Debug         bool   `env:"DEBUG" envDefault:"false"`
}

func (c *Config) validate() error {
	if len(c.ConfirmationSecret) < 32 {
		return fmt.Errorf("config: CONFIRMATION_SECRET must be at least 32 characters")
	}
	switch c.MailBackend {
	case "log":
	case "smtp":
		if c.SMTPHost == "" {
			return fmt.Errorf("config: SMTP_HOST is required when MAIL_BACKEND=smtp")
		}
	default:
		return fmt.Errorf("config: unknown MAIL_BACKEND %q", c.MailBackend)
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the extra CORS origins accepted outside development.
func (c *Config) AllowedOrigins() []string {
	return c.ExtraOrigins
}
