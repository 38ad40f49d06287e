package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-api-key")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "test-api-key", cfg.GeminiAPIKey)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "test-secret", cfg.OAuth.TokenSecret)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Empty(t, cfg.RedisURL)
	assert.False(t, cfg.Admin.Enabled())
}

func TestLoadMissingAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestLoadMissingJWTSecret(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-api-key")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/builder")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("OAUTH_CLIENT_ID", "client-123")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "postgres://localhost/builder", cfg.DatabaseURL)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, "client-123", cfg.OAuth.ClientID)
}

func TestLoadInvalidBcryptCost(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BCRYPT_COST", "not-a-number")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BCRYPT_COST")
}

func TestAdminConfigCostRange(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BCRYPT_COST", "4")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestAdminPasswordRoundTrip(t *testing.T) {
	admin := &AdminConfig{BcryptCost: 10}

	hash, err := admin.HashPassword("correct horse")
	require.NoError(t, err)

	admin.PasswordHash = hash
	assert.True(t, admin.Enabled())
	assert.True(t, admin.VerifyPassword("correct horse"))
	assert.False(t, admin.VerifyPassword("wrong horse"))
}

func TestAdminPasswordWithPepper(t *testing.T) {
	admin := &AdminConfig{BcryptCost: 10, Pepper: "global-secret"}

	hash, err := admin.HashPassword("correct horse")
	require.NoError(t, err)
	admin.PasswordHash = hash

	assert.True(t, admin.VerifyPassword("correct horse"))

	// Same password without the pepper must not verify.
	unpeppered := &AdminConfig{BcryptCost: 10, PasswordHash: hash}
	assert.False(t, unpeppered.VerifyPassword("correct horse"))
}

func TestVerifyPasswordDisabled(t *testing.T) {
	admin := &AdminConfig{BcryptCost: 12}
	assert.False(t, admin.VerifyPassword("anything"))
}
