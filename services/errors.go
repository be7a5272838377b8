package services

import "errors"

// Sentinel errors for the mutation and review paths. Handlers map these to
// user-facing messages; none of them indicate a programming error.
var (
	// ErrPermissionDenied is returned when the authorization policy rejects
	// an operation. No state has changed when it is returned.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrValidation wraps field validation failures. The wrapped message
	// lists the individual problems.
	ErrValidation = errors.New("validation failed")

	// ErrNoChanges is returned when a proposed update matches the current
	// record exactly. No ledger entry is written.
	ErrNoChanges = errors.New("no changes detected to propose")

	// ErrNotesRequired is returned when a rejection arrives without a reason.
	ErrNotesRequired = errors.New("review notes are required")
)
