package store

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/cyber-aware/internal/logger"
	"github.com/MKhiriev/cyber-aware/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbe_Provisioned(t *testing.T) {
	db, fake := newTestRemoteDB(t, http.StatusOK, []any{})
	repo := NewContentRepository(db, logger.Nop())

	require.NoError(t, repo.Probe(context.Background(), ""))

	req := fake.last(t)
	assert.Equal(t, "/rest/v1/users", req.Path)
	assert.Equal(t, []string{"id"}, req.Query["select"])
	assert.Equal(t, []string{"1"}, req.Query["limit"])
	assert.Equal(t, "Bearer "+testAnonKey, req.Authorization, "anonymous probe uses the anon key")
}

func TestProbe_SchemaMissing(t *testing.T) {
	db, _ := newTestRemoteDB(t, http.StatusNotFound,
		postgrestError("42P01", `relation "public.users" does not exist`))
	repo := NewContentRepository(db, logger.Nop())

	assert.ErrorIs(t, repo.Probe(context.Background(), ""), ErrSchemaMissing)
}

func TestListUpdates_NewestFirst(t *testing.T) {
	db, fake := newTestRemoteDB(t, http.StatusOK, []map[string]any{
		{"id": "p1", "title": "Phishing", "summary": "s", "type": "Email Phishing", "severity": "High", "created_at": "2024-03-01T00:00:00+00:00"},
		{"id": "p3", "title": "RaaS", "summary": "s", "type": "Malware & Viruses", "severity": "High", "created_at": "2024-03-10T00:00:00+00:00"},
		{"id": "bad", "title": "Bad", "summary": "s", "type": "Gardening", "severity": "Low", "created_at": "2024-03-11T00:00:00+00:00"},
		{"id": "p2", "title": "Cloud", "summary": "s", "type": "Cloud Security", "severity": "Critical", "created_at": "2024-03-05"},
	})
	repo := NewContentRepository(db, logger.Nop())

	got, err := repo.ListUpdates(context.Background(), "user-token")
	require.NoError(t, err)

	ids := make([]string, 0, len(got))
	for _, u := range got {
		ids = append(ids, u.ID)
	}
	assert.Equal(t, []string{"p3", "p2", "p1"}, ids)
	assert.Equal(t, models.SeverityCritical, got[1].Severity)
	assert.Equal(t, models.CategoryCloud, got[1].Type)

	req := fake.last(t)
	assert.Equal(t, "/rest/v1/security_updates", req.Path)
	require.Len(t, req.Query["order"], 1)
	assert.Contains(t, req.Query["order"][0], "created_at.desc")
}

func TestListUpdates_ReportsSkippedRows(t *testing.T) {
	db, _ := newTestRemoteDB(t, http.StatusOK, []map[string]any{
		{"id": "p1", "title": "Phishing", "summary": "s", "type": "Email Phishing", "severity": "High", "created_at": "2024-03-01T00:00:00+00:00"},
		{"id": "garden", "title": "Bad", "summary": "s", "type": "Gardening", "severity": "Low", "created_at": "2024-03-11T00:00:00+00:00"},
		{"id": "loud", "title": "Bad", "summary": "s", "type": "Cloud Security", "severity": "Deafening", "created_at": "2024-03-11T00:00:00+00:00"},
	})
	repo := NewContentRepository(db, logger.Nop())

	var buf bytes.Buffer
	ctx := zerolog.New(&buf).WithContext(context.Background())

	got, err := repo.ListUpdates(ctx, "user-token")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)

	var warning map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		if entry["level"] == "warn" {
			warning = entry
		}
	}
	require.NotNil(t, warning, "expected a warning about skipped rows")
	assert.EqualValues(t, 2, warning["skipped"])
	assert.EqualValues(t, 1, warning["listed"])
	assert.Equal(t, []any{"garden", "loud"}, warning["update_ids"])
}

func TestListUpdates_NoWarningWhenAllRowsValid(t *testing.T) {
	db, _ := newTestRemoteDB(t, http.StatusOK, []map[string]any{
		{"id": "p1", "title": "Phishing", "summary": "s", "type": "Email Phishing", "severity": "High", "created_at": "2024-03-01T00:00:00+00:00"},
	})
	repo := NewContentRepository(db, logger.Nop())

	var buf bytes.Buffer
	ctx := zerolog.New(&buf).Level(zerolog.WarnLevel).WithContext(context.Background())

	_, err := repo.ListUpdates(ctx, "user-token")
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestCreateUpdate_Success(t *testing.T) {
	db, fake := newTestRemoteDB(t, http.StatusCreated, []map[string]any{{
		"id": "n1", "title": "New", "summary": "Body", "type": "Cloud Security", "severity": "Low",
		"created_by": "admin-1", "created_at": "2026-10-18T10:00:00+00:00",
	}})
	repo := NewContentRepository(db, logger.Nop())

	got, err := repo.CreateUpdate(context.Background(), "admin-token", models.SecurityUpdate{
		Title: "New", Summary: "Body", Type: models.CategoryCloud, Severity: models.SeverityLow, CreatedBy: "admin-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "n1", got.ID)
	assert.Equal(t, "admin-1", got.CreatedBy)

	req := fake.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.JSONEq(t, `{"title":"New","summary":"Body","type":"Cloud Security","severity":"Low","created_by":"admin-1"}`, req.Body)
}

func TestCreateUpdate_AuthorizationDenied(t *testing.T) {
	db, _ := newTestRemoteDB(t, http.StatusForbidden,
		postgrestError("42501", `new row violates row-level security policy for table "security_updates"`))
	repo := NewContentRepository(db, logger.Nop())

	_, err := repo.CreateUpdate(context.Background(), "user-token", models.SecurityUpdate{
		Title: "x", Summary: "y", Type: models.CategoryCloud, Severity: models.SeverityLow,
	})
	assert.ErrorIs(t, err, ErrAuthorizationDenied)
}

func TestUpdateUpdate_Success(t *testing.T) {
	db, fake := newTestRemoteDB(t, http.StatusOK, []map[string]any{{
		"id": "p2", "title": "Edited", "summary": "Body", "type": "Cloud Security", "severity": "High",
		"created_at": "2024-03-05T00:00:00+00:00",
	}})
	repo := NewContentRepository(db, logger.Nop())

	got, err := repo.UpdateUpdate(context.Background(), "admin-token", "p2", models.UpdateFields{
		Title: "Edited", Summary: "Body", Type: models.CategoryCloud, Severity: models.SeverityHigh,
	})
	require.NoError(t, err)
	assert.Equal(t, "Edited", got.Title)

	req := fake.last(t)
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.Equal(t, []string{"eq.p2"}, req.Query["id"])
}

func TestUpdateUpdate_NothingMatched(t *testing.T) {
	db, _ := newTestRemoteDB(t, http.StatusOK, []any{})
	repo := NewContentRepository(db, logger.Nop())

	_, err := repo.UpdateUpdate(context.Background(), "admin-token", "missing", models.UpdateFields{})
	assert.ErrorIs(t, err, ErrUpdateNotFound)
}

func TestDeleteUpdate(t *testing.T) {
	db, fake := newTestRemoteDB(t, http.StatusOK, []map[string]any{{
		"id": "p2", "title": "Cloud", "summary": "s", "type": "Cloud Security", "severity": "Critical",
	}})
	repo := NewContentRepository(db, logger.Nop())

	require.NoError(t, repo.DeleteUpdate(context.Background(), "admin-token", "p2"))

	req := fake.last(t)
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, []string{"eq.p2"}, req.Query["id"])
}

func TestDeleteUpdate_NothingMatched(t *testing.T) {
	db, _ := newTestRemoteDB(t, http.StatusOK, []any{})
	repo := NewContentRepository(db, logger.Nop())

	assert.ErrorIs(t, repo.DeleteUpdate(context.Background(), "user-token", "p2"), ErrUpdateNotFound)
}

func TestInsertChatRecord(t *testing.T) {
	db, fake := newTestRemoteDB(t, http.StatusCreated, nil)
	repo := NewContentRepository(db, logger.Nop())

	err := repo.InsertChatRecord(context.Background(), "user-token", models.ChatHistoryRecord{
		UserID:    "u-1",
		Question:  "What is MFA?",
		Answer:    "A second factor.",
		Timestamp: time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	req := fake.last(t)
	assert.Equal(t, "/rest/v1/chat_history", req.Path)
	assert.JSONEq(t, `{"user_id":"u-1","question":"What is MFA?","answer":"A second factor.","timestamp":"2026-10-18T10:00:00Z"}`, req.Body)
}
