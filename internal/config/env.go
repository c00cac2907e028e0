// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the process environment through caarlos0/env.
// Variable names come from the `env` tags on [StructuredConfig] and its
// nested groups, composed with each group's `envPrefix` (SERVER_ADDRESS,
// STORAGE_DB_DATABASE_URI, AUTHZ_MODE and so on). A value that is set but
// cannot be converted to the field's type is a parse failure, not a silent
// default.
func parseEnv(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
