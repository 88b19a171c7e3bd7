// Package config loads the guestbook settings from the environment.
package config

import (
	"fmt"
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	EnvLocal      = "local"
	EnvProduction = "production"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	SessionStoreGorm   = "gorm"
	SessionStoreCookie = "cookie"

	defaultSessionSecret = "secret_key_change_me"
)

type Config struct {
	Env           string        `env:"ENV" env-default:"local"`
	HTTPAddress   string        `env:"HTTP_ADDRESS"`
	Port          string        `env:"PORT" env-default:"8080"`
	RedirectDelay time.Duration `env:"REDIRECT_DELAY" env-default:"2s"`
	Database      Database
	Session       Session
}

type Database struct {
	Driver string `env:"DB_DRIVER" env-default:"postgres"`
	URL    string `env:"DATABASE_URL"`
}

type Session struct {
	Secret string        `env:"SESSION_SECRET" env-default:"secret_key_change_me"`
	Store  string        `env:"SESSION_STORE" env-default:"gorm"`
	Name   string        `env:"SESSION_NAME" env-default:"guestbook_session"`
	MaxAge time.Duration `env:"SESSION_MAX_AGE" env-default:"24h"`
}

// Load reads the configuration from environment variables and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustLoad is Load for main: a bad configuration stops the process.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

func (c *Config) validate() error {
	switch c.Env {
	case EnvLocal, EnvProduction:
	default:
		return fmt.Errorf("unknown ENV %q", c.Env)
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.Database.Driver)
	}
	switch c.Session.Store {
	case SessionStoreGorm, SessionStoreCookie:
	default:
		return fmt.Errorf("unknown SESSION_STORE %q", c.Session.Store)
	}
	// Cookie sessions cannot be revoked server-side at logout.
	if c.Session.Store == SessionStoreCookie && c.IsProduction() {
		return fmt.Errorf("SESSION_STORE=cookie is not allowed when ENV=production")
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("SESSION_SECRET must not be empty")
	}
	if c.RedirectDelay < 0 {
		return fmt.Errorf("REDIRECT_DELAY must not be negative")
	}
	return nil
}

// Addr is the listen address, HTTP_ADDRESS taking precedence over PORT.
func (c *Config) Addr() string {
	if c.HTTPAddress != "" {
		return c.HTTPAddress
	}
	return ":" + c.Port
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// DefaultSecret reports whether the development session secret is in use.
func (s Session) DefaultSecret() bool {
	return s.Secret == defaultSessionSecret
}

// DSN returns DATABASE_URL or a local default for the configured driver.
func (d Database) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	if d.Driver == DriverSQLite {
		return "file:guestbook.db?_busy_timeout=5000&_foreign_keys=on"
	}
	return "host=localhost user=postgres password=postgres dbname=guestbook port=5432 sslmode=disable"
}
