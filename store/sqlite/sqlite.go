/*
Package sqlite provides a SQLite-backed implementation of the event storage
interfaces.

PURPOSE:
  Implements event.Store and event.SnapshotStore using SQLite. In production,
  the same patterns apply to PostgreSQL - only minor SQL dialect differences.

INTERFACES IMPLEMENTED:
  event.Store:         Append-only event persistence
  event.SnapshotStore: Rendered document cache

APPEND-ONLY ENFORCEMENT:
  The Store enforces append-only semantics for events:
  - No UPDATE statements on the events table
  - No DELETE statements on the events table
  - A bad ingest is corrected by re-ingesting under new ids, never by editing

KEY TABLES:
  events:    Immutable record of activity observations
  snapshots: Cached rendered calendar documents (upserted by key)

INDEXES:
  - idx_events_at: Day bucketing and year bounds (hot path)

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/heatmap.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - event/store.go:        Interface definitions
  - event/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/calendar-heatmap/calendar"
	"github.com/warp/calendar-heatmap/event"
	"github.com/warp/calendar-heatmap/heatmap"
)

// Store implements event.Store and event.SnapshotStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Events (append-only)
	CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		at TEXT NOT NULL,
		detail TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_at
		ON events(at);

	-- Rendered snapshots (cache, upserted)
	CREATE TABLE IF NOT EXISTS snapshots (
		key TEXT PRIMARY KEY,
		html TEXT NOT NULL,
		start_year INTEGER NOT NULL,
		end_year INTEGER NOT NULL,
		event_count INTEGER NOT NULL,
		rendered_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EVENT STORE (event.Store interface)
// =============================================================================

// Append adds an event to the store.
func (s *Store) Append(ctx context.Context, ev event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.appendEvent(ctx, s.db, ev)
}

func (s *Store) appendEvent(ctx context.Context, db interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}, ev event.Event) error {
	query := `
		INSERT INTO events (id, source, at, detail, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := db.ExecContext(ctx, query,
		string(ev.ID),
		string(ev.Source),
		ev.At.Format(time.RFC3339),
		nullString(ev.Detail),
		time.Now().UTC().Format(time.RFC3339),
	)

	if err != nil {
		if isUniqueConstraintError(err) {
			return &event.DuplicateEventError{ID: ev.ID}
		}
		return fmt.Errorf("failed to append event: %w", err)
	}

	return nil
}

// AppendBatch adds multiple events atomically.
func (s *Store) AppendBatch(ctx context.Context, evs []event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Check for duplicate ids within the batch first
	ids := make(map[event.EventID]bool)
	for _, ev := range evs {
		if ids[ev.ID] {
			return &event.DuplicateEventError{ID: ev.ID}
		}
		ids[ev.ID] = true
	}

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	for _, ev := range evs {
		if err := s.appendEvent(ctx, sqlTx, ev); err != nil {
			return err
		}
	}

	return sqlTx.Commit()
}

// CountByDay buckets stored events by calendar day. Zero bounds are open.
func (s *Store) CountByDay(ctx context.Context, from, to time.Time) (heatmap.DayCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT strftime('%Y-%m-%d', at) AS day, COUNT(*)
		FROM events
	`
	var (
		clauses []string
		args    []any
	)
	if !from.IsZero() {
		clauses = append(clauses, "at >= ?")
		args = append(args, from.Format(time.RFC3339))
	}
	if !to.IsZero() {
		clauses = append(clauses, "at <= ?")
		args = append(args, to.Format(time.RFC3339))
	}
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " GROUP BY day ORDER BY day"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := heatmap.NewDayCount()
	for rows.Next() {
		var (
			day string
			n   int
		)
		if err := rows.Scan(&day, &n); err != nil {
			return nil, err
		}
		t, err := time.Parse("2006-01-02", day)
		if err != nil {
			return nil, fmt.Errorf("malformed day bucket %q: %w", day, err)
		}
		counts[calendar.DateOf(t)] = n
	}

	return counts, rows.Err()
}

// YearBounds returns the first and last year any stored event falls in.
func (s *Store) YearBounds(ctx context.Context) (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT MIN(CAST(strftime('%Y', at) AS INTEGER)),
		       MAX(CAST(strftime('%Y', at) AS INTEGER))
		FROM events
	`

	var minYear, maxYear sql.NullInt64
	if err := s.db.QueryRowContext(ctx, query).Scan(&minYear, &maxYear); err != nil {
		return 0, 0, err
	}
	if !minYear.Valid || !maxYear.Valid {
		return 0, 0, event.ErrNoEvents
	}

	return int(minYear.Int64), int(maxYear.Int64), nil
}

// CountEvents returns the total number of stored events.
func (s *Store) CountEvents(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM events").Scan(&count)
	return count, err
}

// Exists checks if an event id is already stored.
func (s *Store) Exists(ctx context.Context, id event.EventID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM events WHERE id = ?",
		string(id),
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// =============================================================================
// SNAPSHOT STORE (event.SnapshotStore interface)
// =============================================================================

// SaveSnapshot stores or replaces a rendered snapshot.
func (s *Store) SaveSnapshot(ctx context.Context, snap event.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO snapshots (key, html, start_year, end_year, event_count, rendered_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			html = excluded.html,
			start_year = excluded.start_year,
			end_year = excluded.end_year,
			event_count = excluded.event_count,
			rendered_at = excluded.rendered_at
	`

	_, err := s.db.ExecContext(ctx, query,
		snap.Key,
		snap.HTML,
		snap.StartYear,
		snap.EndYear,
		snap.EventCount,
		snap.RenderedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// GetSnapshot retrieves a snapshot by key.
func (s *Store) GetSnapshot(ctx context.Context, key string) (*event.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		snap       event.Snapshot
		renderedAt string
	)

	err := s.db.QueryRowContext(ctx,
		"SELECT key, html, start_year, end_year, event_count, rendered_at FROM snapshots WHERE key = ?",
		key,
	).Scan(&snap.Key, &snap.HTML, &snap.StartYear, &snap.EndYear, &snap.EventCount, &renderedAt)

	if err == sql.ErrNoRows {
		return nil, event.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, err
	}

	snap.RenderedAt, _ = time.Parse(time.RFC3339, renderedAt)
	return &snap, nil
}

// ListSnapshots returns metadata for all snapshots, ordered by key.
func (s *Store) ListSnapshots(ctx context.Context) ([]event.SnapshotInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT key, start_year, end_year, event_count, length(html), rendered_at
		FROM snapshots
		ORDER BY key
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []event.SnapshotInfo
	for rows.Next() {
		var (
			info       event.SnapshotInfo
			renderedAt string
		)
		if err := rows.Scan(&info.Key, &info.StartYear, &info.EndYear, &info.EventCount, &info.Bytes, &renderedAt); err != nil {
			return nil, err
		}
		info.RenderedAt, _ = time.Parse(time.RFC3339, renderedAt)
		infos = append(infos, info)
	}

	return infos, rows.Err()
}

// Helper functions

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func isUniqueConstraintError(err error) bool {
	return err != nil && (contains(err.Error(), "UNIQUE constraint failed") ||
		contains(err.Error(), "duplicate key"))
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
