package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder(nil)
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that building with no configs returns a
// zero-value StructuredConfig.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder(nil).build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder(nil)
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_EarlierSourceWins verifies that a non-zero field from an earlier
// config is not overwritten by a later one, while empty fields are filled.
func TestBuild_EarlierSourceWins(t *testing.T) {
	b := newConfigBuilder(nil)
	b.configs = append(b.configs,
		&StructuredConfig{Assistant: Assistant{Model: "from-flags"}},
		&StructuredConfig{Assistant: Assistant{Model: "from-env", APIKey: "env-key"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "from-flags", cfg.Assistant.Model)
	assert.Equal(t, "env-key", cfg.Assistant.APIKey)
}

// TestBuild_RejectsNegativeDuration verifies structured validation.
func TestBuild_RejectsNegativeDuration(t *testing.T) {
	b := newConfigBuilder(nil)
	b.configs = append(b.configs, &StructuredConfig{Adapter: Adapter{RequestTimeout: -time.Second}})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrNegativeDuration)
}

// ── withFlags / withEnv ───────────────────────────────────────────────────────

// TestWithFlags_ReadsArgs verifies that builder args are parsed.
func TestWithFlags_ReadsArgs(t *testing.T) {
	b := newConfigBuilder([]string{"-assistant-model", "flag-model"})
	assert.Same(t, b, b.withFlags())

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "flag-model", b.configs[0].Assistant.Model)
}

// TestWithFlags_SetsErrorOnBadArgs verifies that a parse failure is kept.
func TestWithFlags_SetsErrorOnBadArgs(t *testing.T) {
	b := newConfigBuilder([]string{"-request-timeout", "never"})
	b.withFlags()

	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// TestWithEnv_ReadsEnvVars verifies that environment variables are picked up.
func TestWithEnv_ReadsEnvVars(t *testing.T) {
	setEnvVars(t, map[string]string{
		"SUPABASE_URL":    "https://env.supabase.co",
		"ASSISTANT_MODEL": "env-model",
	})

	b := newConfigBuilder(nil)
	assert.Same(t, b, b.withEnv())

	require.Len(t, b.configs, 1)
	assert.Equal(t, "https://env.supabase.co", b.configs[0].Supabase.URL)
	assert.Equal(t, "env-model", b.configs[0].Assistant.Model)
}

// ── withDotEnv ────────────────────────────────────────────────────────────────

// TestWithDotEnv_NoOp_WhenNoPathSet verifies that nothing is read without a path.
func TestWithDotEnv_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder(nil)
	b.configs = append(b.configs, &StructuredConfig{})
	b.withDotEnv()

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

// TestWithDotEnv_AppendsConfig verifies that a .env file referenced by an
// earlier source is parsed and appended.
func TestWithDotEnv_AppendsConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ASSISTANT_API_KEY=dotenv-key\n"), 0o600))

	b := newConfigBuilder(nil)
	b.configs = append(b.configs, &StructuredConfig{DotEnvPath: path})
	b.withDotEnv()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "dotenv-key", b.configs[1].Assistant.APIKey)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_NoOp_WhenNoPathSet verifies that withJSON does nothing when
// no config has a JSONFilePath.
func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder(nil)
	b.configs = append(b.configs, &StructuredConfig{})
	assert.Same(t, b, b.withJSON())

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

// TestWithJSON_AppendsConfig_WhenValidFile verifies that a valid JSON file is
// parsed and appended.
func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.Assistant.Model = "json-model"
	payload.Supabase.AnonKey = "json-anon"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder(nil)
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-model", b.configs[1].Assistant.Model)
	assert.Equal(t, "json-anon", b.configs[1].Supabase.AnonKey)
}

// TestWithJSON_SetsError_WhenFileNotFound verifies that a missing file path
// sets b.err.
func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder(nil)
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/nonexistent/config.json"})
	b.withJSON()

	assert.Error(t, b.err)
}

// TestWithJSON_UsesHighestPriorityPath verifies that the path from the
// earliest source is used.
func TestWithJSON_UsesHighestPriorityPath(t *testing.T) {
	first := StructuredJSONConfig{}
	first.Assistant.Model = "first"
	second := StructuredJSONConfig{}
	second.Assistant.Model = "second"

	b := newConfigBuilder(nil)
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: writeTempJSONConfig(t, first)},
		&StructuredConfig{JSONFilePath: writeTempJSONConfig(t, second)},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "first", b.configs[2].Assistant.Model)
}

// ── withDefaults ──────────────────────────────────────────────────────────────

// TestWithDefaults_FillOnlyMissingValues verifies that defaults have the
// lowest priority.
func TestWithDefaults_FillOnlyMissingValues(t *testing.T) {
	b := newConfigBuilder(nil)
	b.configs = append(b.configs, &StructuredConfig{Adapter: Adapter{RequestTimeout: 5 * time.Second}})

	cfg, err := b.withDefaults().build()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, defaultModel, cfg.Assistant.Model)
	assert.Equal(t, defaultLocalDSN, cfg.Storage.DB.DSN)
	assert.Equal(t, defaultRefreshInterval, cfg.Workers.RefreshInterval)
}

// ── client / provision views ──────────────────────────────────────────────────

func validStructuredConfig() *StructuredConfig {
	return &StructuredConfig{
		Supabase:  Supabase{URL: "https://xyz.supabase.co", AnonKey: "anon"},
		Assistant: Assistant{APIKey: "key", Model: defaultModel},
		Storage:   Storage{DB: DB{DSN: "client.db"}},
		Adapter:   Adapter{RequestTimeout: time.Second},
		Workers:   Workers{RefreshInterval: time.Minute},
	}
}

func TestClientConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*StructuredConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(*StructuredConfig) {}},
		{name: "missing url", mutate: func(c *StructuredConfig) { c.Supabase.URL = "" }, wantErr: ErrInvalidSupabaseConfigs},
		{name: "relative url", mutate: func(c *StructuredConfig) { c.Supabase.URL = "xyz.supabase.co" }, wantErr: ErrInvalidSupabaseConfigs},
		{name: "missing anon key", mutate: func(c *StructuredConfig) { c.Supabase.AnonKey = "" }, wantErr: ErrInvalidSupabaseConfigs},
		{name: "missing api key", mutate: func(c *StructuredConfig) { c.Assistant.APIKey = "" }, wantErr: ErrInvalidAssistantConfigs},
		{name: "in-memory dsn", mutate: func(c *StructuredConfig) { c.Storage.DB.DSN = ":memory:" }, wantErr: ErrInvalidStorageConfigs},
		{name: "zero timeout", mutate: func(c *StructuredConfig) { c.Adapter.RequestTimeout = 0 }, wantErr: ErrInvalidAdapterConfigs},
		{name: "zero refresh", mutate: func(c *StructuredConfig) { c.Workers.RefreshInterval = 0 }, wantErr: ErrInvalidWorkerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validStructuredConfig()
			tt.mutate(cfg)

			err := newClientConfig(cfg).validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestProvisionConfig_Validate(t *testing.T) {
	assert.ErrorIs(t, (&ProvisionConfig{}).validate(), ErrInvalidStorageConfigs)
	assert.NoError(t, (&ProvisionConfig{DSN: "postgres://localhost/db"}).validate())
}
