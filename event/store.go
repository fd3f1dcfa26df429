/*
store.go - Persistence interfaces for events and rendered snapshots

PURPOSE:
  Defines the boundary between the domain and the database. Stores are
  APPEND-ONLY for events: there is Append and AppendBatch and nothing that
  mutates or removes. A bad ingest is corrected by re-ingesting under new
  ids, not by editing history.

IDEMPOTENCY:
  Every event carries a stable id. Appending an id that already exists
  fails with ErrDuplicateEvent, so retries and double uploads cannot
  inflate day counts.

ATOMIC BATCHES:
  AppendBatch is all-or-nothing. A 500-line export either lands completely
  or not at all; no partial ingests.

IMPLEMENTATIONS:
  - store/memory.go:      In-memory, for tests and development
  - ../store/sqlite:      SQLite, for production

SEE ALSO:
  - event.go: The Event and Snapshot types
*/
package event

import (
	"context"
	"time"

	"github.com/warp/calendar-heatmap/heatmap"
)

// =============================================================================
// STORE - Append-only event persistence
// =============================================================================

// Store persists events. No Update, no Delete.
type Store interface {
	// Append persists one event. Fails with ErrDuplicateEvent if the id
	// already exists.
	Append(ctx context.Context, ev Event) error

	// AppendBatch persists events atomically: either all land or none do.
	// A duplicate id anywhere in the batch fails the whole batch.
	AppendBatch(ctx context.Context, evs []Event) error

	// CountByDay buckets stored events by calendar day. A zero from or to
	// leaves that side of the range unbounded; bounds are inclusive.
	CountByDay(ctx context.Context, from, to time.Time) (heatmap.DayCount, error)

	// YearBounds returns the first and last calendar year any event falls
	// in. Fails with ErrNoEvents on an empty store.
	YearBounds(ctx context.Context) (minYear, maxYear int, err error)

	// CountEvents returns the total number of stored events.
	CountEvents(ctx context.Context) (int64, error)

	// Exists checks whether an event id is already stored.
	Exists(ctx context.Context, id EventID) (bool, error)
}

// =============================================================================
// SNAPSHOT STORE - Rendered document cache
// =============================================================================

// SnapshotStore persists rendered calendar documents keyed by name.
// Snapshots are a cache, so SaveSnapshot upserts.
type SnapshotStore interface {
	// SaveSnapshot stores or replaces the snapshot under its key.
	SaveSnapshot(ctx context.Context, snap Snapshot) error

	// GetSnapshot loads a snapshot. Fails with ErrSnapshotNotFound when
	// the key does not exist.
	GetSnapshot(ctx context.Context, key string) (*Snapshot, error)

	// ListSnapshots returns metadata for every stored snapshot, ordered
	// by key.
	ListSnapshots(ctx context.Context) ([]SnapshotInfo, error)
}
