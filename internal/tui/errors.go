// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/cyber-aware/internal/controller"
	"github.com/MKhiriev/cyber-aware/internal/service"
	"github.com/MKhiriev/cyber-aware/internal/store"
)

const (
	msgEmailLimit      = `Supabase Email Limit Reached: To fix this, go to your Supabase Dashboard -> Authentication -> Settings and DISABLE "Confirm email". Then try signing up again.`
	msgWeakPassword    = "Password does not meet the required security protocols."
	msgBadCredentials  = "Invalid email or password."
	msgEmailTaken      = "This email is already registered. Sign in instead."
	msgWriteDenied     = "Access denied: your role is not allowed to change this record."
	msgSessionExpired  = "Your session expired. Please sign in again."
	msgUnavailable     = "Network unavailable or backend unreachable."
	msgUpdateNotFound  = "The update no longer exists. The list was refreshed."
	msgChatUnavailable = "The assistant is available to user accounts only."
)

// humanizeError turns err into the text shown to the visitor.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, service.ErrEmailRateLimited):
		return msgEmailLimit
	case errors.Is(err, service.ErrWeakPassword):
		return msgWeakPassword
	case errors.Is(err, service.ErrInvalidCredentials):
		return msgBadCredentials
	case errors.Is(err, service.ErrEmailAlreadyRegistered):
		return msgEmailTaken
	case errors.Is(err, service.ErrSessionExpired):
		return msgSessionExpired
	case errors.Is(err, store.ErrAuthorizationDenied):
		return msgWriteDenied
	case errors.Is(err, store.ErrUpdateNotFound):
		return msgUpdateNotFound
	case errors.Is(err, controller.ErrChatUnavailable):
		return msgChatUnavailable
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return msgUnavailable
	}

	return err.Error()
}
