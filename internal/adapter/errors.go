package adapter

import (
	"errors"
	"fmt"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrUnprocessable       = errors.New("unprocessable entity")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")

	ErrEmptyResponse = errors.New("empty model response")
	ErrNoSession     = errors.New("gateway returned no session")
)

// HTTPError is a non-2xx answer of the auth gateway.
//
// Code is the gateway's machine-readable error code (e.g.
// "invalid_credentials", "over_email_send_rate_limit") when it sends one;
// Message is the human-readable text. errors.Is matches the sentinel of
// the status class through Unwrap.
type HTTPError struct {
	StatusCode int
	Code       string
	Message    string

	kind error
}

func (e *HTTPError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("http %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return e.kind
}
