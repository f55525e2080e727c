package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidSupabaseConfigs indicates a missing or malformed project URL
	// or a missing anon key.
	ErrInvalidSupabaseConfigs = errors.New("invalid supabase configuration")
	// ErrInvalidAssistantConfigs indicates a missing model API key or name.
	ErrInvalidAssistantConfigs = errors.New("invalid assistant configuration")
	// ErrInvalidAdapterConfigs indicates invalid outbound request settings
	// (for example, zero request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty DSN or unsupported in-memory DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero refresh interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrNegativeDuration indicates a negative timeout or interval.
	ErrNegativeDuration = errors.New("durations must not be negative")
)
