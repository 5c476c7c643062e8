package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the gateway configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	// Upstream describes the scheduling backend the gateway mirrors.
	Upstream struct {
		BaseURL string `yaml:"base_url" env:"API_URL"`
		Timeout string `yaml:"timeout" env:"API_TIMEOUT"`
		// LoginTimeout is the client-side give-up window for the
		// login call.
		LoginTimeout string `yaml:"login_timeout" env:"API_LOGIN_TIMEOUT"`
	} `yaml:"upstream"`

	Session struct {
		Secret     string `yaml:"secret" env:"SESSION_SECRET"`
		Expiration string `yaml:"expiration" env:"SESSION_EXPIRATION"`
		Issuer     string `yaml:"issuer" env:"SESSION_ISSUER"`
		CookieName string `yaml:"cookie_name" env:"SESSION_COOKIE_NAME"`
	} `yaml:"session"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from an optional .env file, an optional
// YAML file, and environment variables, in increasing precedence.
func LoadConfig(configPath string) (*Config, error) {
	// A missing .env is fine; explicit env vars still apply.
	_ = godotenv.Load()

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	// The backend's documented default address.
	config.Upstream.BaseURL = "http://localhost:5000"
	config.Upstream.Timeout = "10s"
	config.Upstream.LoginTimeout = "30s"

	config.Session.Expiration = "12h"
	config.Session.Issuer = "classboard.app"
	config.Session.CookieName = "classboard_session"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is usable
func validateConfig(config *Config) error {
	if config.Upstream.BaseURL == "" {
		return fmt.Errorf("upstream base URL is required")
	}
	if config.Session.Secret == "" {
		return fmt.Errorf("session secret is required")
	}
	if _, err := time.ParseDuration(config.Upstream.Timeout); err != nil {
		return fmt.Errorf("invalid upstream timeout format: %w", err)
	}
	if _, err := time.ParseDuration(config.Upstream.LoginTimeout); err != nil {
		return fmt.Errorf("invalid upstream login timeout format: %w", err)
	}
	if _, err := time.ParseDuration(config.Session.Expiration); err != nil {
		return fmt.Errorf("invalid session expiration format: %w", err)
	}
	return nil
}

// UpstreamTimeout returns the parsed request timeout.
func (c *Config) UpstreamTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Upstream.Timeout)
	return d
}

// UpstreamLoginTimeout returns the parsed login give-up window.
func (c *Config) UpstreamLoginTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Upstream.LoginTimeout)
	return d
}

// SessionExpiration returns the parsed session token lifetime.
func (c *Config) SessionExpiration() time.Duration {
	d, _ := time.ParseDuration(c.Session.Expiration)
	return d
}
