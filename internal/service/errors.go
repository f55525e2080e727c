package service

import (
	"errors"

	"github.com/MKhiriev/cyber-aware/internal/validators"
)

// Auth failures shown next to the login and signup forms.
var (
	ErrInvalidCredentials     = errors.New("invalid login credentials")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrEmailRateLimited       = errors.New("confirmation email limit reached")
	ErrWeakPassword           = validators.ErrWeakPassword
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotSignedIn           = errors.New("not signed in")
	ErrSessionExpired        = errors.New("session expired")
	ErrProfileMismatch       = errors.New("profile does not belong to the session identity")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
