// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/cyber-aware/models"
)

const (
	sessionsTable = "sessions"

	// currentSessionID is the primary key of the only row the table holds.
	currentSessionID = 1
)

var sqlite = sq.StatementBuilder.PlaceholderFormat(sq.Question)

var sessionColumns = []string{
	"access_token",
	"refresh_token",
	"expires_at",
	"user_id",
	"email",
}

func buildSaveSessionQuery(session models.Session, now time.Time) (string, []any, error) {
	var expiresAt int64
	if !session.ExpiresAt.IsZero() {
		expiresAt = session.ExpiresAt.Unix()
	}

	return sqlite.
		Insert(sessionsTable).
		Columns("id", "access_token", "refresh_token", "expires_at", "user_id", "email", "updated_at").
		Values(
			currentSessionID,
			session.AccessToken,
			session.RefreshToken,
			expiresAt,
			session.User.ID,
			session.User.Email,
			now.Unix(),
		).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			expires_at = excluded.expires_at,
			user_id = excluded.user_id,
			email = excluded.email,
			updated_at = excluded.updated_at`).
		ToSql()
}

func buildLoadSessionQuery() (string, []any, error) {
	return sqlite.
		Select(sessionColumns...).
		From(sessionsTable).
		Where(sq.Eq{"id": currentSessionID}).
		ToSql()
}

func buildClearSessionQuery() (string, []any, error) {
	return sqlite.
		Delete(sessionsTable).
		Where(sq.Eq{"id": currentSessionID}).
		ToSql()
}
