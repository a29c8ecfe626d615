package forwarding

import "errors"

var (
	// ErrNotFound covers both a missing entity and an entity the caller
	// may not see; the two are indistinguishable on purpose.
	ErrNotFound = errors.New("request not found")

	// ErrForbidden is reserved for operations where the caller may know
	// the entity exists but lacks the permission (admin-only paths).
	ErrForbidden = errors.New("forbidden")

	ErrValidation = errors.New("validation failed")

	// ErrConflict signals tracking-code generation exhaustion or a
	// storage-level unique violation.
	ErrConflict = errors.New("conflict")

	// ErrExternal wraps failures of outbound collaborator calls that the
	// caller needs to know about.
	ErrExternal = errors.New("external dependency failed")
)
