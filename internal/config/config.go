// Package config loads service configuration from environment variables,
// falling back to sensible local-development defaults.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full service configuration.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	Database Database
	Auth     Auth
	Intake   Intake
	Tracing  Tracing
}

// Database holds PostgreSQL connection settings.
type Database struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	Name     string `env:"DB_NAME" envDefault:"communityhub"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

// DSN builds a libpq-compatible connection string.
func (d Database) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// Auth holds the admin credential and token settings. The credential is only
// ever compared server-side; clients hold a signed token.
type Auth struct {
	AdminPassword string        `env:"ADMIN_PASSWORD"`
	Secret        string        `env:"AUTH_SECRET"`
	TokenTTL      time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"12h"`
}

// Intake tunes the public registration endpoint.
type Intake struct {
	// RequireActive rejects registrations against inactive listings.
	// Off by default: inactive listings are hidden from public views but
	// still accept registrations, e.g. via direct links.
	RequireActive bool `env:"REGISTRATION_REQUIRE_ACTIVE" envDefault:"false"`
	// Rate and Burst bound registration requests per second.
	Rate  float64 `env:"INTAKE_RATE" envDefault:"10"`
	Burst int     `env:"INTAKE_BURST" envDefault:"20"`
}

// Tracing toggles OpenTelemetry span export.
type Tracing struct {
	Enabled bool `env:"TRACING_ENABLED" envDefault:"false"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
