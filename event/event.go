/*
Package event defines the activity events the heatmap is built from and
the persistence contracts for storing them.

PURPOSE:
  Everything upstream of the calendar core works in terms of Event: a
  timestamped observation from some source (a security-log export, an ICS
  feed, a JSON upload). Stores persist events append-only and answer the
  two questions the renderer needs: how many events fell on each calendar
  day, and which years the data spans.

KEY CONCEPTS IN THIS FILE (event.go):
  - Event: One timestamped observation with a stable id
  - SourceType: Where an event came from
  - Day(): The calendar-day bucket an event falls into

DESIGN PRINCIPLES:
  1. Append-only: Events are never updated or deleted once recorded
  2. Idempotency: Stable ids make re-ingesting the same export a no-op
     failure instead of silent double counting
  3. No timezone logic: Timestamps are taken as already being in the
     target local calendar

SEE ALSO:
  - store.go:        Persistence interfaces
  - store/memory.go: In-memory implementation
  - ../store/sqlite: Production implementation
*/
package event

import (
	"time"

	"github.com/warp/calendar-heatmap/calendar"
)

// =============================================================================
// SOURCE TYPE - Where events come from
// =============================================================================

// SourceType tags events with their origin. New parsers add a constant
// here; stores treat it as an opaque label.
type SourceType string

const (
	SourceSecurityLog SourceType = "security_log"
	SourceICS         SourceType = "ics"
	SourceJSON        SourceType = "json"
	SourceManual      SourceType = "manual"
	SourceDemo        SourceType = "demo"
)

// =============================================================================
// EVENT - One timestamped observation
// =============================================================================

// EventID uniquely identifies an event. Parsers derive deterministic ids
// from their input so the same export always produces the same ids.
type EventID string

// Event is a single activity observation. At carries at least
// minute granularity; only the calendar day matters for rendering.
type Event struct {
	ID     EventID
	Source SourceType
	At     time.Time
	Detail string
}

// Day returns the calendar day the event falls on.
func (e Event) Day() calendar.Date {
	return calendar.DateOf(e.At)
}

// =============================================================================
// SNAPSHOT - A cached rendered document
// =============================================================================

// Snapshot is a fully rendered calendar document kept alongside the events
// so serving does not re-render on every request.
type Snapshot struct {
	Key        string
	HTML       string
	StartYear  int
	EndYear    int
	EventCount int64
	RenderedAt time.Time
}

// SnapshotInfo is snapshot metadata without the document blob.
type SnapshotInfo struct {
	Key        string
	StartYear  int
	EndYear    int
	EventCount int64
	Bytes      int64
	RenderedAt time.Time
}

// Info returns the snapshot's metadata view.
func (s Snapshot) Info() SnapshotInfo {
	return SnapshotInfo{
		Key:        s.Key,
		StartYear:  s.StartYear,
		EndYear:    s.EndYear,
		EventCount: s.EventCount,
		Bytes:      int64(len(s.HTML)),
		RenderedAt: s.RenderedAt,
	}
}
