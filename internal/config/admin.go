// Package config provides environment-driven configuration for the server.
package config

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// AdminConfig protects the stats endpoint. The password is stored only as a
// bcrypt hash; an empty hash disables the endpoint entirely.
type AdminConfig struct {
	PasswordHash string
	BcryptCost   int
	Pepper       string // optional global secret for additional security
}

// NewAdminConfig creates an admin configuration from environment variables.
// It reads ADMIN_PASSWORD_HASH, BCRYPT_COST (default: 12), and optionally
// PASSWORD_PEPPER.
func NewAdminConfig() (*AdminConfig, error) {
	cost, err := getEnvInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, err
	}

	config := &AdminConfig{
		PasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		BcryptCost:   cost,
		Pepper:       os.Getenv("PASSWORD_PEPPER"),
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}
	return config, nil
}

// normalize validates the configuration.
func (c *AdminConfig) normalize() error {
	if c.BcryptCost < 10 || c.BcryptCost > 14 {
		return fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", c.BcryptCost)
	}
	return nil
}

// Enabled reports whether an admin password hash is configured.
func (c *AdminConfig) Enabled() bool {
	return c.PasswordHash != ""
}

// HashPassword hashes a password using bcrypt (with optional pepper). Used
// by the hash-admin-password CLI helper.
func (c *AdminConfig) HashPassword(pw string) (string, error) {
	password := pw
	if c.Pepper != "" {
		password = pw + c.Pepper
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword verifies a password against the configured hash.
func (c *AdminConfig) VerifyPassword(pw string) bool {
	if c.PasswordHash == "" {
		return false
	}

	password := pw
	if c.Pepper != "" {
		password = pw + c.Pepper
	}

	return bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) == nil
}
