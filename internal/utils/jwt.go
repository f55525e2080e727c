package utils

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/cyber-aware/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptyToken is returned when there is no token to parse.
var ErrEmptyToken = errors.New("empty token")

// ParseAccessToken decodes the claims of an auth gateway access token
// without verifying its signature.
//
// The signing key never leaves the gateway, so the client cannot verify
// tokens; the claims are only used to restore a persisted session (subject,
// email and expiry). Every request is still authorized server-side.
//
// Returns an error if the token is malformed or carries no subject.
func ParseAccessToken(tokenString string) (models.AccessTokenClaims, error) {
	if tokenString == "" {
		return models.AccessTokenClaims{}, ErrEmptyToken
	}

	var claims models.AccessTokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &claims); err != nil {
		return models.AccessTokenClaims{}, fmt.Errorf("error occurred parsing access token: %w", err)
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return models.AccessTokenClaims{}, fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if sub == "" {
		return models.AccessTokenClaims{}, errors.New("empty subject error")
	}

	return claims, nil
}
