package repositories

import "errors"

// Sentinel errors returned by repositories. Callers check them with
// errors.Is; the wrapped message carries the offending id.
var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyDecided is returned by Decide when the change request is no
	// longer pending. Exactly one of two racing reviewers gets this.
	ErrAlreadyDecided = errors.New("change request already decided")
)
