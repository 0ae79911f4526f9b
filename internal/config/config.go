// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// placeholderKeys are signing-key values that must never reach production.
// A key matching one of these fails Load; there is no runtime fallback.
var placeholderKeys = map[string]bool{
	"":           true,
	"secret":     true,
	"SECRET_KEY": true,
	"changeme":   true,
	"change-me":  true,
}

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the HTTP server listens on (e.g. :8080).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// DatabaseURL is the Postgres DSN.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// SessionSigningKey is the symmetric key used to sign session tokens (HS256).
	// Required; placeholder values like "changeme" are rejected at load time.
	SessionSigningKey string `mapstructure:"SESSION_SIGNING_KEY"`
	// SessionIssuer is the iss claim on session tokens.
	SessionIssuer string `mapstructure:"SESSION_ISSUER"`
	// SessionTTLRaw is the session token lifetime (e.g. "24h").
	SessionTTLRaw string `mapstructure:"SESSION_TTL"`
	// SessionCookieSecure marks the session cookie Secure; set true behind TLS.
	SessionCookieSecure bool `mapstructure:"SESSION_COOKIE_SECURE"`
	// BcryptCost is the bcrypt cost factor (4-31); default 12.
	BcryptCost int `mapstructure:"BCRYPT_COST"`
	// UploadDir is the directory uploaded media files are written to.
	UploadDir string `mapstructure:"UPLOAD_DIR"`
	// OTLPEndpoint enables tracing when set (e.g. http://localhost:4318).
	OTLPEndpoint string `mapstructure:"OTLP_ENDPOINT"`
	// OTLPInsecure forces a plaintext OTLP connection even for https endpoints.
	OTLPInsecure bool `mapstructure:"OTLP_INSECURE"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("SESSION_SIGNING_KEY", "")
	v.SetDefault("SESSION_ISSUER", "pagecraft")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("SESSION_COOKIE_SECURE", false)
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("OTLP_ENDPOINT", "")
	v.SetDefault("OTLP_INSECURE", false)
	v.SetDefault("APP_ENV", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}

	if placeholderKeys[cfg.SessionSigningKey] {
		return nil, errors.New("config: SESSION_SIGNING_KEY must be set to a non-placeholder value")
	}

	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = 12
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, errors.New("config: BCRYPT_COST must be between 4 and 31")
	}

	if cfg.UploadDir == "" {
		return nil, errors.New("config: UPLOAD_DIR must be set")
	}

	return &cfg, nil
}

// SessionTTL parses SessionTTLRaw as a time.Duration. Returns 24h if unset or invalid.
func (c *Config) SessionTTL() time.Duration {
	d, err := time.ParseDuration(c.SessionTTLRaw)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}
