package store

import (
	"fmt"
	"strings"
)

// PostgREST error codes the client reacts to.
const (
	postgrestNoRows        = "PGRST116"
	postgrestTableNotFound = "PGRST205"
	postgrestSchemaCache   = "PGRST202"
	postgrestJWTInvalid    = "PGRST301"
	postgrestJWTExpired    = "PGRST303"
)

// classifyRemoteError wraps err with the store sentinel it corresponds to.
// PostgREST reports failures as "(CODE) message"; the code is either a
// SQLSTATE from Postgres or a PGRST code from PostgREST itself. Errors that
// match nothing are returned wrapped but unclassified.
func classifyRemoteError(err error) error {
	if err == nil {
		return nil
	}

	code, message := splitRemoteError(err.Error())
	if sentinel := remoteSentinel(code, strings.ToLower(message)); sentinel != nil {
		return fmt.Errorf("%w: %v", sentinel, err)
	}

	return fmt.Errorf("remote store: %w", err)
}

func splitRemoteError(raw string) (code, message string) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "(") {
		if end := strings.Index(raw, ")"); end > 0 {
			return raw[1:end], strings.TrimSpace(raw[end+1:])
		}
	}
	return "", raw
}

func remoteSentinel(code, message string) error {
	switch code {
	case postgrestTableNotFound, postgrestSchemaCache:
		return ErrSchemaMissing
	case postgrestNoRows:
		return ErrProfileNotFound
	case postgrestJWTInvalid, postgrestJWTExpired:
		return ErrAuthorizationDenied
	}

	if sentinel := sqlStateError(code); sentinel != nil {
		return sentinel
	}

	switch {
	case strings.Contains(message, "schema cache"),
		strings.Contains(message, "relation") && strings.Contains(message, "does not exist"):
		return ErrSchemaMissing
	case strings.Contains(message, "row-level security"),
		strings.Contains(message, "permission denied"):
		return ErrAuthorizationDenied
	case strings.Contains(message, "duplicate key"):
		return ErrAlreadyExists
	}

	return nil
}
