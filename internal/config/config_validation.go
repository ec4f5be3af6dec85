// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
)

// validate checks that the final merged [StructuredConfig] can be used to
// start the server. All problems are reported together.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	switch cfg.Storage.Backend {
	case BackendMemory:
	case BackendFile:
		if cfg.Storage.Path == "" {
			errs = append(errs, fmt.Errorf("%w: file backend needs IDENTITY_STORE_PATH", ErrInvalidStorageConfigs))
		}
		if cfg.Storage.Durability != DurabilityBestEffort && cfg.Storage.Durability != DurabilityStrict {
			errs = append(errs, fmt.Errorf("%w: unknown durability %q", ErrInvalidStorageConfigs, cfg.Storage.Durability))
		}
	case BackendSQL:
		if cfg.Storage.DSN == "" {
			errs = append(errs, fmt.Errorf("%w: sql backend needs IDENTITY_STORE_DSN", ErrInvalidStorageConfigs))
		}
		if cfg.Storage.Driver != DriverPostgres && cfg.Storage.Driver != DriverSQLite {
			errs = append(errs, fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.Driver))
		}
	default:
		errs = append(errs, fmt.Errorf("%w: unknown backend %q", ErrInvalidStorageConfigs, cfg.Storage.Backend))
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		errs = append(errs, ErrInvalidServerConfigs)
	}
	if cfg.Server.RateLimit <= 0 || cfg.Server.RateBurst <= 0 {
		errs = append(errs, fmt.Errorf("%w: rate limit and burst must be positive", ErrInvalidServerConfigs))
	}

	if cfg.App.IsProduction() {
		if cfg.App.EncryptionKey == "" {
			errs = append(errs, fmt.Errorf("%w: ENCRYPTION_KEY", ErrMissingProductionSetting))
		}
		if cfg.Verification.BaseURL == "" {
			errs = append(errs, fmt.Errorf("%w: IDENTITY_VERIFICATION_API_BASE_URL", ErrMissingProductionSetting))
		}
	}

	return errors.Join(errs...)
}
