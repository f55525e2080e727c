// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/cyber-aware/models"
	"github.com/stretchr/testify/require"
)

func Test_buildSaveSessionQuery(t *testing.T) {
	now := time.Unix(1_800_000_000, 0)
	session := models.Session{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    time.Unix(1_800_003_600, 0),
		User:         models.Identity{ID: "u-1", Email: "alice@example.com"},
	}

	query, args, err := buildSaveSessionQuery(session, now)
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "insert into sessions")
	require.Contains(t, q, "on conflict(id) do update")
	require.NotContains(t, query, "$1", "sqlite uses ? placeholders")
	require.Equal(t, 7, strings.Count(query, "?"))

	require.Equal(t, []any{
		currentSessionID,
		"access",
		"refresh",
		int64(1_800_003_600),
		"u-1",
		"alice@example.com",
		int64(1_800_000_000),
	}, args)
}

func Test_buildSaveSessionQuery_ZeroExpiry(t *testing.T) {
	_, args, err := buildSaveSessionQuery(models.Session{AccessToken: "a"}, time.Unix(1, 0))
	require.NoError(t, err)
	require.Equal(t, int64(0), args[3])
}

func Test_buildLoadSessionQuery(t *testing.T) {
	query, args, err := buildLoadSessionQuery()
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.True(t, strings.HasPrefix(q, "select access_token, refresh_token, expires_at, user_id, email"))
	require.Contains(t, q, "from sessions")
	require.Contains(t, q, "where id = ?")
	require.Equal(t, []any{currentSessionID}, args)
}

func Test_buildClearSessionQuery(t *testing.T) {
	query, args, err := buildClearSessionQuery()
	require.NoError(t, err)

	require.Equal(t, "DELETE FROM sessions WHERE id = ?", query)
	require.Equal(t, []any{currentSessionID}, args)
}
