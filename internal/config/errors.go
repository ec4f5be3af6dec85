package config

import "errors"

// Validation errors returned by [StructuredConfig.validate].
var (
	// ErrInvalidStorageConfigs indicates an unknown store backend or missing
	// backend settings (path, DSN, driver, durability).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates missing listener settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrMissingProductionSetting indicates a variable that production mode
	// requires is empty.
	ErrMissingProductionSetting = errors.New("missing required production setting")
)
