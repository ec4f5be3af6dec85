package store

import "errors"

// Sentinel errors returned by store methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrIdentityRequestNotFound is returned by Get when no record has the
	// requested id.
	ErrIdentityRequestNotFound = errors.New("identity request was not found")

	// ErrUnknownBackend is returned by NewIdentityStore for a backend name
	// it does not know.
	ErrUnknownBackend = errors.New("unknown identity store backend")

	// ErrPersisting is returned by the file store in strict mode when the
	// data file cannot be read or written.
	ErrPersisting = errors.New("failed to persist identity requests")
)

// Low-level database operation errors. These are returned (or wrapped) by
// the sql store when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan identity request row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan identity request rows")

	// ErrDecodingRecord is returned when the stored JSON record cannot be
	// decoded or encoded.
	ErrDecodingRecord = errors.New("failed to decode identity request record")
)
