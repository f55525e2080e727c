// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestNewLogger_EntryFields(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "provision")

	l.Info().Str("table", "security_updates").Msg("migrated")

	entry := lastEntry(t, &buf)
	assert.Equal(t, "provision", entry["role"])
	assert.Equal(t, "security_updates", entry["table"])
	assert.Equal(t, "migrated", entry["message"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry["func"], "TestNewLogger_EntryFields")
}

func TestNewLogger_GlobalSettings(t *testing.T) {
	require.NotNil(t, NewLogger("provision"))

	assert.Equal(t, "func", zerolog.CallerFieldName)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Error().Msg("dropped")

	assert.Zero(t, buf.Len())
}

func TestGetChildLogger(t *testing.T) {
	var buf bytes.Buffer
	parent := newLogger(&buf, "client")

	child := parent.GetChildLogger()
	require.NotSame(t, parent, child)

	child.Logger = child.With().Str("screen", "setup").Logger()
	child.Info().Msg("child")
	assert.Equal(t, "client", lastEntry(t, &buf)["role"])
	assert.Equal(t, "setup", lastEntry(t, &buf)["screen"])

	parent.Info().Msg("parent")
	assert.NotContains(t, lastEntry(t, &buf), "screen")
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "client")

	FromContext(l.WithContext(context.Background())).Warn().Msg("refresh skipped")

	entry := lastEntry(t, &buf)
	assert.Equal(t, "client", entry["role"])
	assert.Equal(t, "warn", entry["level"])
}

func TestFromContext_WithoutLogger(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}

func TestNewClientLogger_WritesNextToExecutable(t *testing.T) {
	execPath, err := os.Executable()
	require.NoError(t, err)
	logPath := filepath.Join(filepath.Dir(execPath), clientLogFile)

	l := NewClientLogger("client")
	l.Info().Msg("client log line")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Skipf("executable directory is not writable: %v", err)
	}
	assert.Contains(t, string(data), "client log line")
}
