// Package config loads service configuration from YAML and environment
// variables with a predictable priority: explicit path, CONFIG_PATH,
// ./local.yaml, then plain environment.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is the root service configuration.
type Config struct {
	Env       string      `yaml:"env" env:"ENV" env-default:"production"`
	HTTP      HTTPConfig  `yaml:"http"`
	DB        DBConfig    `yaml:"db"`
	Admin     AdminConfig `yaml:"admin"`
	Email     EmailConfig `yaml:"email"`
	Site      SiteConfig  `yaml:"site"`
	CORS      CORSConfig  `yaml:"cors"`
	RateLimit int         `yaml:"rate_limit" env:"RATE_LIMIT" env-default:"120"`

	// ContactRateLimit is a stricter per-IP budget for the contact form.
	ContactRateLimit int `yaml:"contact_rate_limit" env:"CONTACT_RATE_LIMIT" env-default:"10"`
}

// HTTPConfig holds the listener address and server timeouts.
type HTTPConfig struct {
	Host            string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Addr returns the address in host:port form.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// DBConfig holds the MongoDB connection settings.
type DBConfig struct {
	URL string `yaml:"url" env:"DATABASE_URL" env-default:"mongodb://localhost:27017/portfolio"`
}

// AdminConfig gates the mutating endpoints. An empty key disables them.
type AdminConfig struct {
	Key string `yaml:"key" env:"ADMIN_KEY"`
}

// EmailConfig holds the SMTP settings for contact notifications.
// Notifications are skipped entirely when User/Pass are unset.
type EmailConfig struct {
	Host       string `yaml:"host" env:"EMAIL_HOST" env-default:"smtp.gmail.com"`
	Port       int    `yaml:"port" env:"EMAIL_PORT" env-default:"587"`
	User       string `yaml:"user" env:"EMAIL_USER"`
	Pass       string `yaml:"pass" env:"EMAIL_PASS"`
	OwnerEmail string `yaml:"owner_email" env:"OWNER_EMAIL"`
}

// SiteConfig holds site-level defaults baked into responses and emails.
type SiteConfig struct {
	Author    string `yaml:"author" env:"SITE_AUTHOR" env-default:"Site Owner"`
	OwnerName string `yaml:"owner_name" env:"OWNER_NAME" env-default:"Portfolio Owner"`
}

// CORSConfig is the browser origin allowlist.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:3000"`
}

// Dev reports whether the service runs in development mode. Development
// echoes internal error detail to API callers.
func (c *Config) Dev() bool {
	return c.Env == EnvDevelopment
}

func (c *Config) validate() error {
	if c.Env != EnvDevelopment && c.Env != EnvProduction {
		return fmt.Errorf("config: unknown env %q", c.Env)
	}
	if c.DB.URL == "" {
		return fmt.Errorf("config: database url is required")
	}
	if c.RateLimit < 0 || c.ContactRateLimit < 0 {
		return fmt.Errorf("config: rate limit must not be negative")
	}
	return nil
}

// MustLoad wraps Load and panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads the configuration by priority: explicit path, CONFIG_PATH,
// ./local.yaml, environment only. Environment variables always overlay
// values read from a file.
func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}
		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}
		return &cfg, nil
	}

	if path != "" {
		c, err := tryRead(path)
		if err != nil {
			return nil, err
		}
		return c, c.validate()
	}

	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		c, err := tryRead(envPath)
		if err != nil {
			return nil, err
		}
		return c, c.validate()
	}

	if _, err := os.Stat("local.yaml"); err == nil {
		c, err := tryRead("local.yaml")
		if err != nil {
			return nil, err
		}
		return c, c.validate()
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read env: %w", err)
	}
	return &cfg, cfg.validate()
}
