// Package config provides environment-driven configuration for the server.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/careerforge/resume-builder/internal/auth"
)

// Config holds the full server configuration. Load fails fast: a missing
// required value aborts startup rather than surfacing later as a broken
// request.
type Config struct {
	ListenAddr string

	// AI
	GeminiAPIKey string

	// Auth
	OAuth     auth.Config
	JWTSecret string

	// Storage. DatabaseURL enables the usage store, RedisURL switches the
	// session store from in-memory to Redis; both are optional.
	DatabaseURL string
	RedisURL    string

	Admin AdminConfig
}

// Load reads configuration from environment variables.
// GEMINI_API_KEY and JWT_SECRET are required.
func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr:   getEnvDefault("LISTEN_ADDR", ":8080"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisURL:     os.Getenv("REDIS_URL"),
		OAuth: auth.Config{
			ClientID:         os.Getenv("OAUTH_CLIENT_ID"),
			ClientSecret:     os.Getenv("OAUTH_CLIENT_SECRET"),
			AuthEndpoint:     getEnvDefault("OAUTH_AUTH_ENDPOINT", "https://accounts.google.com/o/oauth2/v2/auth"),
			TokenEndpoint:    getEnvDefault("OAUTH_TOKEN_ENDPOINT", "https://oauth2.googleapis.com/token"),
			UserInfoEndpoint: getEnvDefault("OAUTH_USERINFO_ENDPOINT", "https://openidconnect.googleapis.com/v1/userinfo"),
			RedirectURI:      os.Getenv("OAUTH_REDIRECT_URI"),
			TokenSecret:      os.Getenv("JWT_SECRET"),
		},
	}

	admin, err := NewAdminConfig()
	if err != nil {
		return nil, err
	}
	cfg.Admin = *admin

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize validates the configuration.
func (c *Config) normalize() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required but not set")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required but not set")
	}
	return nil
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return n, nil
}
