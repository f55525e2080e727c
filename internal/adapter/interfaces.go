// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer access to the hosted services the
// cyber-aware client depends on.
//
// [AuthAdapter] talks to the Supabase auth gateway (GoTrue) over REST and
// [ModelAdapter] talks to the Gemini generative model. Both decouple the
// service layer from wire formats.
//
// Gateway answers outside 2xx are returned as *[HTTPError] carrying the
// gateway's error code and message; the sentinel values in errors.go match
// the status class so callers can use [errors.Is] (e.g. [ErrUnauthorized]
// for 401, [ErrTooManyRequests] for 429).
package adapter

import (
	"context"

	"github.com/MKhiriev/cyber-aware/models"
	"google.golang.org/genai"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// AuthAdapter is the client side of the auth gateway.
type AuthAdapter interface {
	// SignUp registers a new identity. The returned result carries no
	// session when the project requires email verification first.
	SignUp(ctx context.Context, email, password string) (models.SignUpResult, error)

	// SignInWithPassword exchanges credentials for a session.
	SignInWithPassword(ctx context.Context, email, password string) (*models.Session, error)

	// RefreshSession exchanges a refresh token for a new session. The old
	// refresh token is consumed by the gateway.
	RefreshSession(ctx context.Context, refreshToken string) (*models.Session, error)

	// SignOut revokes the refresh-token family the access token belongs to.
	SignOut(ctx context.Context, accessToken string) error
}

// ChatRequest is one conversational turn sent to the model.
type ChatRequest struct {
	SystemInstruction string
	// History holds the earlier turns, oldest first.
	History []models.ChatMessage
	Message string

	Temperature float32
	TopP        float32
	TopK        float32
}

// StructuredRequest asks the model for JSON matching Schema.
type StructuredRequest struct {
	Prompt string
	Schema *genai.Schema
}

// ModelAdapter is the client side of the generative model.
type ModelAdapter interface {
	// GenerateText returns the model's reply to req.Message.
	GenerateText(ctx context.Context, req ChatRequest) (string, error)

	// GenerateJSON returns the raw JSON text produced for req. The output is
	// untrusted and must be validated by the caller.
	GenerateJSON(ctx context.Context, req StructuredRequest) ([]byte, error)
}
