// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store provides persistence for the cyber-aware client.
//
// Remote repositories talk to the hosted backend tables through PostgREST
// (supabase-go) and always act with the signed-in user's access token, so
// row-level security decides what each call may see or change. The local
// repository keeps the current session in SQLite so it survives restarts.
package store

import (
	"context"

	"github.com/MKhiriev/cyber-aware/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// SessionRepository persists the single current session on this device.
type SessionRepository interface {
	// SaveSession replaces the persisted session.
	SaveSession(ctx context.Context, session models.Session) error
	// LoadSession returns the persisted session or [ErrLocalSessionNotFound].
	LoadSession(ctx context.Context) (models.Session, error)
	// ClearSession removes the persisted session. Clearing an empty store
	// is not an error.
	ClearSession(ctx context.Context) error
}

// ProfileRepository reads and creates rows of the users table.
type ProfileRepository interface {
	// FindProfile returns the profile with the given id or
	// [ErrProfileNotFound].
	FindProfile(ctx context.Context, accessToken, id string) (models.UserProfile, error)
	// InsertProfile creates a profile and returns the stored row.
	// Returns [ErrAlreadyExists] if a row with the same id exists.
	InsertProfile(ctx context.Context, accessToken string, profile models.UserProfile) (models.UserProfile, error)
}

// ContentRepository reads and writes security updates and chat history.
type ContentRepository interface {
	// Probe issues the cheapest possible read against the users table and
	// returns [ErrSchemaMissing] if the backend is not provisioned.
	Probe(ctx context.Context, accessToken string) error

	ListUpdates(ctx context.Context, accessToken string) ([]models.SecurityUpdate, error)
	CreateUpdate(ctx context.Context, accessToken string, update models.SecurityUpdate) (models.SecurityUpdate, error)
	UpdateUpdate(ctx context.Context, accessToken, id string, fields models.UpdateFields) (models.SecurityUpdate, error)
	DeleteUpdate(ctx context.Context, accessToken, id string) error

	InsertChatRecord(ctx context.Context, accessToken string, record models.ChatHistoryRecord) error
}
