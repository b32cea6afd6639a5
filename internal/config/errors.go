package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidClientConfigs indicates invalid client settings
	// (for example, a missing server URL).
	ErrInvalidClientConfigs = errors.New("invalid client configuration")
	// ErrInvalidServerConfigs indicates invalid server network settings
	// (for example, a missing listen address).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidPartyConfigs indicates invalid party room settings
	// (for example, a minimum member count below 2).
	ErrInvalidPartyConfigs = errors.New("invalid party configuration")
	// ErrInvalidStorageConfigs indicates invalid catalog storage settings.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
)
