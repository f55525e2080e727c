// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"net/url"
	"strings"
)

// validate checks the merged [StructuredConfig] for values that are wrong
// regardless of which binary consumes them. Missing values are checked by
// the per-binary views.
func (cfg *StructuredConfig) validate() error {
	if cfg.Adapter.RequestTimeout < 0 || cfg.Workers.RefreshInterval < 0 {
		return ErrNegativeDuration
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Supabase.URL == "" || cfg.Supabase.AnonKey == "" {
		return ErrInvalidSupabaseConfigs
	}
	if u, err := url.Parse(cfg.Supabase.URL); err != nil || u.Scheme == "" || u.Host == "" {
		return ErrInvalidSupabaseConfigs
	}

	if cfg.Assistant.APIKey == "" || cfg.Assistant.Model == "" {
		return ErrInvalidAssistantConfigs
	}

	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.RefreshInterval == 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ProvisionConfig) validate() error {
	if cfg.DSN == "" {
		return ErrInvalidStorageConfigs
	}
	return nil
}
