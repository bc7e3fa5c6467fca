package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultSecret is used to sign tokens when JWT_SECRET is not set.
// It must never be used in production.
const DefaultSecret = "changeme"

var (
	ErrInvalidPort     = errors.New("PORT must be a number between 1 and 65535")
	ErrInvalidLifetime = errors.New("TOKEN_LIFETIME must be a positive duration")
	ErrInvalidAPIURL   = errors.New("API_URL must be an absolute URL")
)

// Config holds the runtime configuration of the backend.
type Config struct {
	Port            int
	Secret          string
	TokenLifetime   time.Duration
	DatabasePath    string
	APIURL          *url.URL
	AllowOrigins    []string
	EnablePprof     bool
	StrictOwnership bool
}

// DefaultSecretUsed reports if tokens are signed with the placeholder secret.
func (c Config) DefaultSecretUsed() bool {
	return c.Secret == DefaultSecret
}

// Addr is the address the HTTP server listens on.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		Port:          4000,
		Secret:        DefaultSecret,
		TokenLifetime: 7 * 24 * time.Hour,
		DatabasePath:  "data/gorm.db",
	}

	if port, ok := os.LookupEnv("PORT"); ok {
		p, err := strconv.Atoi(port)
		if err != nil || p < 1 || p > 65535 {
			return Config{}, fmt.Errorf("%w, got '%s'", ErrInvalidPort, port)
		}
		cfg.Port = p
	}

	if secret, ok := os.LookupEnv("JWT_SECRET"); ok && secret != "" {
		cfg.Secret = secret
	}

	if lifetime, ok := os.LookupEnv("TOKEN_LIFETIME"); ok {
		d, err := time.ParseDuration(lifetime)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("%w, got '%s'", ErrInvalidLifetime, lifetime)
		}
		cfg.TokenLifetime = d
	}

	if path, ok := os.LookupEnv("DATABASE_PATH"); ok && path != "" {
		cfg.DatabasePath = path
	}

	apiURL := fmt.Sprintf("http://localhost:%d/api", cfg.Port)
	if u, ok := os.LookupEnv("API_URL"); ok {
		apiURL = u
	}
	parsed, err := url.Parse(apiURL)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return Config{}, fmt.Errorf("%w, got '%s'", ErrInvalidAPIURL, apiURL)
	}
	cfg.APIURL = parsed

	if origins, ok := os.LookupEnv("CORS_ALLOW_ORIGINS"); ok {
		cfg.AllowOrigins = strings.Fields(origins)
	}

	cfg.EnablePprof = os.Getenv("ENABLE_PPROF") == "true"
	cfg.StrictOwnership = os.Getenv("STRICT_OWNERSHIP") == "true"

	return cfg, nil
}
