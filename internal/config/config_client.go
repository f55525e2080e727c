package config

import (
	"fmt"
	"time"
)

// ClientSupabase holds the backend project coordinates used by the client.
type ClientSupabase struct {
	// URL is the project URL without a trailing slash.
	URL string
	// AnonKey is the publishable API key sent as "apikey" on every call.
	AnonKey string
}

// ClientAssistant holds generative model settings.
type ClientAssistant struct {
	// APIKey authenticates calls to the model API.
	APIKey string
	// Model is the model name.
	Model string
}

// ClientAdapter holds settings shared by all outbound adapters.
type ClientAdapter struct {
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite file path keeping the persisted session.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// RefreshInterval defines how often the session refresher runs.
	RefreshInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	Supabase  ClientSupabase
	Assistant ClientAssistant
	Adapter   ClientAdapter
	Storage   ClientStorage
	Workers   ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		Supabase: ClientSupabase{
			URL:     cfg.Supabase.URL,
			AnonKey: cfg.Supabase.AnonKey,
		},
		Assistant: ClientAssistant{
			APIKey: cfg.Assistant.APIKey,
			Model:  cfg.Assistant.Model,
		},
		Adapter: ClientAdapter{
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: cfg.Storage.DB.DSN},
		},
		Workers: ClientWorkers{
			RefreshInterval: cfg.Workers.RefreshInterval,
		},
	}
}
