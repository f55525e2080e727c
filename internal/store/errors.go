package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrSchemaMissing is returned when the backend has not been provisioned:
	// a table the client relies on does not exist.
	ErrSchemaMissing = errors.New("backend schema is missing")

	// ErrProfileNotFound is returned when no profile row exists for the
	// requested identity.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrAlreadyExists is returned when an insert collides with an existing
	// row (unique violation).
	ErrAlreadyExists = errors.New("record already exists")

	// ErrAuthorizationDenied is returned when row-level security or the
	// gateway rejects the caller's token for the operation.
	ErrAuthorizationDenied = errors.New("authorization denied")

	// ErrUpdateNotFound is returned when an update or delete matched no
	// security update visible to the caller.
	ErrUpdateNotFound = errors.New("security update not found")

	// ErrLocalSessionNotFound is returned when no session is persisted
	// locally.
	ErrLocalSessionNotFound = errors.New("local session not found")

	// ErrEmptyRepresentation is returned when the backend accepted a write
	// but returned no row.
	ErrEmptyRepresentation = errors.New("backend returned no row")
)

// Low-level database operation errors of the local store.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing an INSERT or DELETE
	// fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning the session row fails.
	ErrScanningRow = errors.New("failed to scan session row")
)
