package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty database DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates invalid HTTP server settings
	// (for example, missing listen address or request timeout).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, missing token sign key or issuer).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidIndexerConfigs indicates invalid indexer client settings
	// (for example, missing base URL or request timeout).
	ErrInvalidIndexerConfigs = errors.New("invalid indexer configuration")
	// ErrInvalidAuthzConfigs indicates an unknown authorization mode or
	// fga mode selected without OpenFGA connection settings.
	ErrInvalidAuthzConfigs = errors.New("invalid authz configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero sync interval or batch size).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
