// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	setEnvVars(t, map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_ENV":                "production",
		"ENCRYPTION_KEY":         "passphrase",
		"ADMIN_PORTAL_KEY":       "staff-key",
		"ADMIN_SESSION_DURATION": "2h",

		"IDENTITY_STORE_BACKEND":    "sql",
		"IDENTITY_STORE_PATH":       "/tmp/identity.json",
		"IDENTITY_STORE_DURABILITY": "strict",
		"IDENTITY_STORE_DRIVER":     "sqlite3",
		"IDENTITY_STORE_DSN":        "file:identity.db",

		"IDENTITY_VERIFICATION_API_BASE_URL": "https://verify.example.com",
		"IDENTITY_VERIFICATION_TIMEOUT":      "3s",

		"R2_ACCOUNT_ID":        "acct",
		"R2_ACCESS_KEY_ID":     "akid",
		"R2_SECRET_ACCESS_KEY": "secret",
		"R2_BUCKET_NAME":       "ids",
		"R2_ENDPOINT":          "https://r2.example.com",
		"R2_PUBLIC_BASE_URL":   "https://cdn.example.com",

		"SERVER_ADDRESS":          "localhost:8080",
		"SERVER_REQUEST_TIMEOUT":  "30s",
		"SERVER_SHUTDOWN_TIMEOUT": "5s",
		"SERVER_ALLOWED_ORIGINS":  "https://a.example.com,https://b.example.com",
		"SERVER_RATE_LIMIT":       "2.5",
		"SERVER_RATE_BURST":       "4",
	})

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.True(t, cfg.App.IsProduction())
	assert.Equal(t, "passphrase", cfg.App.EncryptionKey)
	assert.Equal(t, "staff-key", cfg.App.AdminPortalKey)
	assert.Equal(t, 2*time.Hour, cfg.App.AdminSessionDuration)

	assert.Equal(t, Storage{
		Backend:    "sql",
		Path:       "/tmp/identity.json",
		Durability: "strict",
		Driver:     "sqlite3",
		DSN:        "file:identity.db",
	}, cfg.Storage)

	assert.Equal(t, "https://verify.example.com", cfg.Verification.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Verification.Timeout)

	assert.Equal(t, "acct", cfg.Uploads.AccountID)
	assert.Equal(t, "akid", cfg.Uploads.AccessKeyID)
	assert.Equal(t, "secret", cfg.Uploads.SecretAccessKey)
	assert.Equal(t, "ids", cfg.Uploads.BucketName)
	assert.Equal(t, "https://r2.example.com", cfg.Uploads.Endpoint)
	assert.Equal(t, "https://cdn.example.com", cfg.Uploads.PublicBaseURL)

	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 2.5, cfg.Server.RateLimit)
	assert.Equal(t, 4, cfg.Server.RateBurst)
}

func TestParseEnv_PartialFields(t *testing.T) {
	setEnvVars(t, map[string]string{
		"ENCRYPTION_KEY": "passphrase",
		"SERVER_ADDRESS": "localhost:8080",
	})

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "passphrase", cfg.App.EncryptionKey)
	assert.Empty(t, cfg.App.AdminPortalKey)
	assert.Empty(t, cfg.Storage.Backend)
	assert.Zero(t, cfg.Verification.Timeout)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	t.Setenv("IDENTITY_VERIFICATION_TIMEOUT", "not-a-duration")

	err := parseEnv(&StructuredConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}
