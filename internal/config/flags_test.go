package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestURLValue_Set tests the Set method of URLValue
func TestURLValue_Set(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		expected    string
	}{
		{name: "https project url", input: "https://xyz.supabase.co", expected: "https://xyz.supabase.co"},
		{name: "trailing slash trimmed", input: "https://xyz.supabase.co/", expected: "https://xyz.supabase.co"},
		{name: "local http with port", input: "http://localhost:54321", expected: "http://localhost:54321"},
		{name: "missing scheme", input: "xyz.supabase.co", expectError: true},
		{name: "unsupported scheme", input: "ftp://xyz.supabase.co", expectError: true},
		{name: "missing host", input: "https://", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v URLValue
			err := v.Set(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				assert.Equal(t, "", v.String())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v.String())
		})
	}
}

func TestURLValue_StringNil(t *testing.T) {
	var v *URLValue
	assert.Equal(t, "", v.String())
}

func TestParseFlags(t *testing.T) {
	args := []string{
		"-supabase-url", "https://xyz.supabase.co",
		"-supabase-anon-key", "anon",
		"-assistant-api-key", "key",
		"-assistant-model", "model",
		"-d", "client.db",
		"-remote-dsn", "postgres://localhost/db",
		"-request-timeout", "15s",
		"-refresh-interval", "45s",
		"-config", "/etc/cyber-aware.json",
		"-env-file", ".env.local",
	}

	cfg, err := parseFlags(args)
	require.NoError(t, err)

	assert.Equal(t, "https://xyz.supabase.co", cfg.Supabase.URL)
	assert.Equal(t, "anon", cfg.Supabase.AnonKey)
	assert.Equal(t, "key", cfg.Assistant.APIKey)
	assert.Equal(t, "model", cfg.Assistant.Model)
	assert.Equal(t, "client.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "postgres://localhost/db", cfg.Storage.Remote.DSN)
	assert.Equal(t, 15*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 45*time.Second, cfg.Workers.RefreshInterval)
	assert.Equal(t, "/etc/cyber-aware.json", cfg.JSONFilePath)
	assert.Equal(t, ".env.local", cfg.DotEnvPath)
}

func TestParseFlags_Empty(t *testing.T) {
	cfg, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseFlags_InvalidURL(t *testing.T) {
	_, err := parseFlags([]string{"-supabase-url", "not a url"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error parsing flags")
}

func TestParseFlags_UnknownFlag(t *testing.T) {
	_, err := parseFlags([]string{"-listen", ":8080"})
	require.Error(t, err)
}
