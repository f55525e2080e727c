// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// ProvisionConfig configures the one-shot tool that applies the backend
// schema, trigger and access policies.
type ProvisionConfig struct {
	// DSN is the connection string of the backend Postgres database.
	DSN string
}

// GetProvisionConfig builds and validates the provisioning view of the
// merged structured configuration.
func GetProvisionConfig() (*ProvisionConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	provisionCfg := &ProvisionConfig{DSN: cfg.Storage.Remote.DSN}
	return provisionCfg, provisionCfg.validate()
}
