package store

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/cyber-aware/internal/logger"
	"github.com/MKhiriev/cyber-aware/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindProfile_Found(t *testing.T) {
	db, fake := newTestRemoteDB(t, http.StatusOK, []map[string]any{{
		"id":         "u-1",
		"email":      "admin@example.com",
		"role":       "admin",
		"created_at": "2026-10-18T10:00:00+00:00",
	}})
	repo := NewProfileRepository(db, logger.Nop())

	got, err := repo.FindProfile(context.Background(), "user-token", "u-1")
	require.NoError(t, err)

	assert.Equal(t, "u-1", got.ID)
	assert.Equal(t, models.RoleAdmin, got.Role)
	assert.True(t, got.IsAdmin())
	assert.True(t, time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC).Equal(got.CreatedAt))

	req := fake.last(t)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/rest/v1/users", req.Path)
	assert.Equal(t, []string{"eq.u-1"}, req.Query["id"])
	assert.Equal(t, "Bearer user-token", req.Authorization)
}

func TestFindProfile_NotFound(t *testing.T) {
	db, _ := newTestRemoteDB(t, http.StatusOK, []any{})
	repo := NewProfileRepository(db, logger.Nop())

	_, err := repo.FindProfile(context.Background(), "user-token", "u-1")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestFindProfile_UnknownRole(t *testing.T) {
	db, _ := newTestRemoteDB(t, http.StatusOK, []map[string]any{{
		"id": "u-1", "email": "a@example.com", "role": "superuser",
	}})
	repo := NewProfileRepository(db, logger.Nop())

	_, err := repo.FindProfile(context.Background(), "user-token", "u-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown role")
}

func TestFindProfile_SchemaMissing(t *testing.T) {
	db, _ := newTestRemoteDB(t, http.StatusNotFound,
		postgrestError("PGRST205", "Could not find the table 'public.users' in the schema cache"))
	repo := NewProfileRepository(db, logger.Nop())

	_, err := repo.FindProfile(context.Background(), "user-token", "u-1")
	assert.ErrorIs(t, err, ErrSchemaMissing)
}

func TestInsertProfile_Success(t *testing.T) {
	db, fake := newTestRemoteDB(t, http.StatusCreated, []map[string]any{{
		"id":         "u-2",
		"email":      "bob@example.com",
		"role":       "user",
		"created_at": "2026-10-18T10:00:00.123456+00:00",
	}})
	repo := NewProfileRepository(db, logger.Nop())

	got, err := repo.InsertProfile(context.Background(), "user-token", models.UserProfile{
		ID: "u-2", Email: "bob@example.com", Role: models.RoleUser,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, got.Role)

	req := fake.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Contains(t, req.Prefer, "return=representation")
	assert.JSONEq(t, `{"id":"u-2","email":"bob@example.com","role":"user"}`, req.Body)
}

func TestInsertProfile_AlreadyExists(t *testing.T) {
	db, _ := newTestRemoteDB(t, http.StatusConflict,
		postgrestError("23505", `duplicate key value violates unique constraint "users_pkey"`))
	repo := NewProfileRepository(db, logger.Nop())

	_, err := repo.InsertProfile(context.Background(), "user-token", models.UserProfile{ID: "u-2", Role: models.RoleUser})
	assert.ErrorIs(t, err, ErrAlreadyExists)
}
