// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"strings"
	"time"
)

// Store backends selectable with IDENTITY_STORE_BACKEND.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQL    = "sql"
)

// File store durability modes selectable with IDENTITY_STORE_DURABILITY.
const (
	DurabilityBestEffort = "best-effort"
	DurabilityStrict     = "strict"
)

// SQL drivers selectable with IDENTITY_STORE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// EnvProduction is the APP_ENV value that turns on production checks.
const EnvProduction = "production"

// StructuredConfig is the top-level configuration of the portal server. It
// is populated by merging environment variables, command-line flags and an
// optional JSON file.
//
// Environment variable names keep the names used by existing deployments
// (ENCRYPTION_KEY, IDENTITY_STORE_PATH, R2_*), so App has no prefix.
type StructuredConfig struct {
	// App holds secrets and the deployment environment.
	App App

	// Storage selects and configures the identity store backend.
	Storage Storage `envPrefix:"IDENTITY_STORE_"`

	// Verification configures the external verification collaborator.
	Verification Verification `envPrefix:"IDENTITY_VERIFICATION_"`

	// Uploads holds the R2 (S3-compatible) object storage settings used to
	// presign ID image uploads.
	Uploads Uploads `envPrefix:"R2_"`

	// Server holds HTTP listener settings.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// Env is the deployment environment. "production" makes ENCRYPTION_KEY
	// and IDENTITY_VERIFICATION_API_BASE_URL mandatory.
	// Env: APP_ENV
	Env string `env:"APP_ENV"`

	// EncryptionKey is the passphrase the SSN/DOB field key is derived from.
	// Env: ENCRYPTION_KEY
	EncryptionKey string `env:"ENCRYPTION_KEY"`

	// AdminPortalKey is the shared staff key accepted by the admin login.
	// Admin routes are closed when it is empty.
	// Env: ADMIN_PORTAL_KEY
	AdminPortalKey string `env:"ADMIN_PORTAL_KEY"`

	// AdminSessionDuration is the lifetime of an admin session token.
	// Env: ADMIN_SESSION_DURATION
	AdminSessionDuration time.Duration `env:"ADMIN_SESSION_DURATION"`
}

// IsProduction reports whether the portal runs in production mode.
func (a App) IsProduction() bool {
	return strings.EqualFold(a.Env, EnvProduction)
}

// Storage configures the identity store.
type Storage struct {
	// Backend is one of memory, file or sql.
	// Env: IDENTITY_STORE_BACKEND
	Backend string `env:"BACKEND"`

	// Path is the JSON file used by the file backend.
	// Env: IDENTITY_STORE_PATH
	Path string `env:"PATH"`

	// Durability is best-effort or strict and applies to the file backend.
	// Env: IDENTITY_STORE_DURABILITY
	Durability string `env:"DURABILITY"`

	// Driver is postgres or sqlite3 and applies to the sql backend.
	// Env: IDENTITY_STORE_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the database connection string for the sql backend.
	// Env: IDENTITY_STORE_DSN
	DSN string `env:"DSN"`
}

// Verification configures the verification collaborator.
type Verification struct {
	// BaseURL of the external verification API.
	// Env: IDENTITY_VERIFICATION_API_BASE_URL
	BaseURL string `env:"API_BASE_URL"`

	// Timeout bounds a single verification call.
	// Env: IDENTITY_VERIFICATION_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`
}

// Uploads holds Cloudflare R2 settings.
type Uploads struct {
	AccountID       string `env:"ACCOUNT_ID"`
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
	BucketName      string `env:"BUCKET_NAME"`
	Endpoint        string `env:"ENDPOINT"`
	PublicBaseURL   string `env:"PUBLIC_BASE_URL"`
}

// ResolvedEndpoint returns the R2 endpoint, derived from the account id when
// not set explicitly, always using https.
func (u Uploads) ResolvedEndpoint() string {
	endpoint := u.Endpoint
	if endpoint == "" && u.AccountID != "" {
		endpoint = "https://" + u.AccountID + ".r2.cloudflarestorage.com"
	}
	if strings.HasPrefix(endpoint, "http://") {
		endpoint = "https://" + strings.TrimPrefix(endpoint, "http://")
	}
	return endpoint
}

// IsConfigured reports whether presigning can work with these settings.
func (u Uploads) IsConfigured() bool {
	return u.AccountID != "" && u.AccessKeyID != "" && u.SecretAccessKey != "" &&
		u.BucketName != "" && u.ResolvedEndpoint() != ""
}

// Missing returns the names of unset R2 variables that the env check reports.
func (u Uploads) Missing() []string {
	missing := make([]string, 0, 5)
	for _, v := range []struct {
		name  string
		value string
	}{
		{"R2_ACCOUNT_ID", u.AccountID},
		{"R2_ACCESS_KEY_ID", u.AccessKeyID},
		{"R2_SECRET_ACCESS_KEY", u.SecretAccessKey},
		{"R2_BUCKET_NAME", u.BucketName},
		{"R2_ENDPOINT", u.Endpoint},
	} {
		if v.value == "" {
			missing = append(missing, v.name)
		}
	}
	return missing
}

// Server holds network and timeout settings for the HTTP listener.
type Server struct {
	// HTTPAddress is the TCP address in "host:port" form.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`

	// AllowedOrigins enables CORS for the listed origins when non-empty.
	// Env: SERVER_ALLOWED_ORIGINS (comma separated)
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	// RateLimit is the per-IP request rate (per second) on registration.
	// Env: SERVER_RATE_LIMIT
	RateLimit float64 `env:"RATE_LIMIT"`

	// RateBurst is the per-IP burst on registration.
	// Env: SERVER_RATE_BURST
	RateBurst int `env:"RATE_BURST"`
}

// defaultConfig holds the values used for every field left empty by all
// sources.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Env:                  "development",
			AdminSessionDuration: 8 * time.Hour,
		},
		Storage: Storage{
			Backend:    BackendMemory,
			Path:       ".data/identity.json",
			Durability: DurabilityBestEffort,
			Driver:     DriverPostgres,
		},
		Verification: Verification{
			Timeout: 5 * time.Second,
		},
		Server: Server{
			HTTPAddress:     ":8080",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimit:       5,
			RateBurst:       10,
		},
	}
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Fields left empty by every source take their defaults.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
