// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or one of the sentinel errors
// declared in errors.go otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Indexer.Address == "" || cfg.Indexer.RequestTimeout <= 0 {
		return ErrInvalidIndexerConfigs
	}

	if cfg.Workers.SyncInterval <= 0 || cfg.Workers.SyncBatchSize <= 0 {
		return ErrInvalidWorkerConfigs
	}

	switch cfg.Authz.Mode {
	case AuthzModeOwner:
	case AuthzModeFGA:
		if cfg.Authz.FGA.APIURL == "" {
			return ErrInvalidAuthzConfigs
		}
	default:
		return ErrInvalidAuthzConfigs
	}

	return nil
}
