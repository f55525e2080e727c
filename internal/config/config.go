// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container for the
// cyber-aware binaries. It is populated by merging command-line flags,
// environment variables, an optional .env file, an optional JSON file and
// built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Supabase holds the hosted backend project coordinates.
	Supabase Supabase `envPrefix:"SUPABASE_"`

	// Assistant holds the generative model credentials and model name.
	Assistant Assistant `envPrefix:"ASSISTANT_"`

	// Storage holds the local session database and the remote Postgres
	// connection used by the provisioning tool.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds outbound request settings shared by all adapters.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds background worker settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Env: CONFIG, flags: -c / -config.
	JSONFilePath string `env:"CONFIG"`

	// DotEnvPath is the optional path to a .env file whose variables are
	// read with the same names as the process environment.
	// Env: DOTENV, flag: -env-file.
	DotEnvPath string `env:"DOTENV"`
}

// Supabase identifies the backend-as-a-service project.
type Supabase struct {
	// URL is the project URL, e.g. "https://xyz.supabase.co".
	// Env: SUPABASE_URL
	URL string `env:"URL"`

	// AnonKey is the publishable (anon) API key. The service-role key must
	// never be configured here because it bypasses row-level security.
	// Env: SUPABASE_ANON_KEY
	AnonKey string `env:"ANON_KEY"`
}

// Assistant configures the generative model.
type Assistant struct {
	// APIKey is the Gemini API key.
	// Env: ASSISTANT_API_KEY
	APIKey string `env:"API_KEY"`

	// Model is the model name used for chat and structured generation.
	// Env: ASSISTANT_MODEL
	Model string `env:"MODEL"`
}

// Storage groups the configuration of every database the binaries open.
type Storage struct {
	// DB is the local SQLite database keeping the persisted session.
	DB DB `envPrefix:"DB_"`

	// Remote is the backend Postgres used only by the provisioning tool.
	Remote DB `envPrefix:"REMOTE_"`
}

// DB holds a single database connection string.
type DB struct {
	// DSN is the data source name.
	// Env: STORAGE_DB_DATABASE_URI / STORAGE_REMOTE_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Adapter holds outbound request settings.
type Adapter struct {
	// RequestTimeout bounds a single call to the backend or the model.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background workers.
type Workers struct {
	// RefreshInterval is how often the session refresher checks whether the
	// access token is about to expire.
	// Env: WORKERS_REFRESH_INTERVAL
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`
}

// GetStructuredConfig loads, merges and validates the configuration from all
// sources. Earlier sources win over later ones for non-zero fields:
//  1. Command-line flags
//  2. Environment variables
//  3. .env file (path resolved from sources 1 and 2)
//  4. JSON file (path resolved from sources 1 to 3)
//  5. Defaults
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder(os.Args[1:]).
		withFlags().
		withEnv().
		withDotEnv().
		withJSON().
		withDefaults().
		build()
}
