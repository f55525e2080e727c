// Package utils provides general-purpose helper utilities used across the
// client: the resty-based HTTP client, UUID generation and validation, and
// unverified decoding of access token claims.
package utils
