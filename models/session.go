// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Identity is the authenticated subject issued by the auth gateway.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is the credential bundle issued by the auth gateway on sign-in,
// sign-up (when no verification is pending) or token refresh.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         Identity  `json:"user"`
}

// Valid reports whether the access token is still usable at now.
func (s *Session) Valid(now time.Time) bool {
	if s == nil || s.AccessToken == "" {
		return false
	}
	return s.ExpiresAt.IsZero() || now.Before(s.ExpiresAt)
}

// AuthEventKind enumerates session transitions delivered to subscribers.
type AuthEventKind int

const (
	AuthEventSignedIn AuthEventKind = iota + 1
	AuthEventSignedOut
	AuthEventTokenRefreshed
)

func (k AuthEventKind) String() string {
	switch k {
	case AuthEventSignedIn:
		return "signed_in"
	case AuthEventSignedOut:
		return "signed_out"
	case AuthEventTokenRefreshed:
		return "token_refreshed"
	default:
		return "unknown"
	}
}

// AuthEvent is one session transition. Session is nil for sign-out.
type AuthEvent struct {
	Kind    AuthEventKind
	Session *Session
}

// SignUpResult is the outcome of a successful sign-up. Session is nil when
// the backend requires email verification before the first sign-in.
type SignUpResult struct {
	Identity Identity
	Session  *Session
}

// VerificationPending reports whether the account still has to be confirmed.
func (r SignUpResult) VerificationPending() bool {
	return r.Session == nil
}
