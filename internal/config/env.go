// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the client's environment, e.g. ADAPTER_ADDRESS,
// STORAGE_DB_STRATEGY or WORKERS_SYNC_INTERVAL. Unset variables leave their
// fields zero so lower layers show through.
func parseEnv(cfg *StructuredConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting client env configs: %w", err)
	}
	return nil
}
