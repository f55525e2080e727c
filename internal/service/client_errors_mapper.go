// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/cyber-aware/internal/adapter"
)

// mapAuthError translates a gateway error into an auth business error. The
// gateway code wins; the message is checked for older deployments that only
// send text.
func mapAuthError(err error) error {
	if err == nil {
		return nil
	}

	var httpErr *adapter.HTTPError
	if !errors.As(err, &httpErr) {
		return err
	}

	msg := strings.ToLower(httpErr.Message)

	switch {
	case httpErr.Code == "invalid_credentials",
		httpErr.Code == "invalid_grant",
		strings.Contains(msg, "invalid login credentials"):
		return fmt.Errorf("%w: %v", ErrInvalidCredentials, err)

	case httpErr.Code == "user_already_exists",
		httpErr.Code == "email_exists",
		strings.Contains(msg, "already registered"):
		return fmt.Errorf("%w: %v", ErrEmailAlreadyRegistered, err)

	case httpErr.Code == "over_email_send_rate_limit",
		strings.Contains(msg, "confirmation email"),
		strings.Contains(msg, "rate limit"):
		return fmt.Errorf("%w: %v", ErrEmailRateLimited, err)

	case httpErr.Code == "weak_password":
		return fmt.Errorf("%w: %v", ErrWeakPassword, err)
	}

	return err
}

// refreshRejected reports whether the gateway refused a refresh token, as
// opposed to being unreachable.
func refreshRejected(err error) bool {
	return errors.Is(err, adapter.ErrUnauthorized) ||
		errors.Is(err, adapter.ErrBadRequest) ||
		errors.Is(err, adapter.ErrNoSession)
}
