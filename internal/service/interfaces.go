// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the business logic of the cyber-aware client.
//
// Services sit between the view-state controller and the adapters/stores.
// They validate input before any network call, translate transport and
// storage failures into the sentinel errors of errors.go, and absorb
// generative failures into fallback values.
package service

import (
	"context"
	"time"

	"github.com/MKhiriev/cyber-aware/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/servicemock/service_mock.go -package=servicemock

// AuthService owns the session of the signed-in identity.
type AuthService interface {
	TokenSource

	// GetSession restores the session persisted on this device. An expired
	// access token is refreshed first. Returns nil without error when there
	// is no session.
	GetSession(ctx context.Context) (*models.Session, error)

	// Subscribe registers a listener for every subsequent session
	// transition. Events are delivered exactly once and in order until
	// [Subscription.Unsubscribe] is called.
	Subscribe() *Subscription

	// SignUp registers a new account. The password policy is checked before
	// any network call. A result without session means the account waits
	// for email verification.
	SignUp(ctx context.Context, email, password string) (models.SignUpResult, error)

	// SignIn exchanges credentials for a session and emits
	// [models.AuthEventSignedIn].
	SignIn(ctx context.Context, email, password string) (*models.Session, error)

	// SignOut revokes the session on the gateway (best effort), clears the
	// persisted copy and emits [models.AuthEventSignedOut].
	SignOut(ctx context.Context) error

	// Refresh exchanges the refresh token for a new session and emits
	// [models.AuthEventTokenRefreshed].
	Refresh(ctx context.Context) error

	// RefreshIfExpiring calls Refresh when the access token expires within d.
	RefreshIfExpiring(ctx context.Context, d time.Duration) error
}

// TokenSource yields the access token remote calls act with. An empty token
// means the anonymous key is used.
type TokenSource interface {
	AccessToken() string
}

// ProfileService resolves the application profile of a signed-in identity.
type ProfileService interface {
	// Resolve returns the profile of identity, creating it with the user
	// role when it does not exist yet. It inserts at most once.
	Resolve(ctx context.Context, identity models.Identity) (models.UserProfile, error)
}

// ContentService reads and writes security updates and chat history.
type ContentService interface {
	// ProbeSchema returns store.ErrSchemaMissing if the backend is not
	// provisioned.
	ProbeSchema(ctx context.Context) error

	// ListUpdates returns every update, newest first.
	ListUpdates(ctx context.Context) ([]models.SecurityUpdate, error)

	CreateUpdate(ctx context.Context, fields models.UpdateFields, authorID string) (models.SecurityUpdate, error)
	UpdateUpdate(ctx context.Context, id string, fields models.UpdateFields) (models.SecurityUpdate, error)
	DeleteUpdate(ctx context.Context, id string) error

	// AppendChatRecord persists one question/answer exchange.
	AppendChatRecord(ctx context.Context, userID, question, answer string) error
}

// ContentServiceWrapper decorates a ContentService with additional
// behaviour such as validation.
type ContentServiceWrapper interface {
	Wrap(ContentService) ContentService
}

// AssistantService produces chat replies and learning material. It never
// returns errors: failures turn into a fallback reply or an empty set.
type AssistantService interface {
	// Chat returns the reply to message given the earlier turns.
	Chat(ctx context.Context, history []models.ChatMessage, message string) string

	// GenerateQuiz returns exactly five validated questions about category,
	// or an empty slice.
	GenerateQuiz(ctx context.Context, category models.Category) []models.QuizQuestion

	// GenerateFlashcards returns exactly five validated flashcards about
	// category, or an empty slice.
	GenerateFlashcards(ctx context.Context, category models.Category) []models.Flashcard
}

// AppInfoService exposes build metadata for the about overlay.
type AppInfoService interface {
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// ClientRefreshJob keeps the session fresh in the background.
type ClientRefreshJob interface {
	// Start launches the refresh loop. Any running loop is stopped first.
	Start(ctx context.Context, interval time.Duration)

	// Stop ends the loop and waits for it to exit.
	Stop()
}
