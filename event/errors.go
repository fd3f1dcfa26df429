package event

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrDuplicateEvent is returned when an event id already exists.
	// Expected behavior when the same export is ingested twice.
	ErrDuplicateEvent = errors.New("duplicate event id")

	// ErrNoEvents is returned by range queries against an empty store.
	ErrNoEvents = errors.New("no events recorded")

	// ErrSnapshotNotFound is returned when a snapshot key does not exist.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// DuplicateEventError reports which id collided.
type DuplicateEventError struct {
	ID EventID
}

func (e *DuplicateEventError) Error() string {
	return fmt.Sprintf("duplicate event id %q", string(e.ID))
}

func (e *DuplicateEventError) Unwrap() error { return ErrDuplicateEvent }
