// Package config loads application settings from the environment.
//
// It uses caarlos0/env to map environment variables onto a typed struct:
// defaults and required-ness are declared right next to each field, parsing
// happens once at startup, and everything downstream receives the struct by
// injection — no package reads os.Getenv on its own.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime configuration.
type Config struct {
	// Port the HTTP server listens on.
	Port int `env:"PORT" envDefault:"4000"`

	// DBPath is the SQLite database file (":memory:" for an in-memory DB).
	DBPath string `env:"DB_PATH" envDefault:"data/users.db"`

	// JWTSecret signs and verifies bearer tokens. No default on purpose:
	// a forgotten secret should stop the server, not silently ship a
	// well-known one.
	// Generate with: JWT_KEY=$(openssl rand -hex 32)
	JWTSecret string `env:"JWT_KEY,required,notEmpty"`

	// Token expiry windows: the short default, and the long one used when
	// a login sets rememberMe.
	TokenTTL           time.Duration `env:"ACCESS_TOKEN_EXPIRES_IN" envDefault:"15m"`
	RememberMeTokenTTL time.Duration `env:"ACCESS_TOKEN_EXPIRES_IN_REMEMBER_ME" envDefault:"168h"`

	// BcryptCost is the password hashing work factor. The default is the
	// historical value this API shipped with — low; raise it in production.
	BcryptCost int `env:"BCRYPT_COST" envDefault:"7"`
}

// Load parses the environment into a Config. It fails if a required
// variable is missing or a value doesn't parse (e.g. a malformed duration).
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parsing environment: %w", err)
	}
	return cfg, nil
}
