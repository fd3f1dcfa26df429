// Package store provides event.Store implementations.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/warp/calendar-heatmap/event"
	"github.com/warp/calendar-heatmap/heatmap"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	events    []event.Event // ordered by At
	ids       map[event.EventID]bool
	snapshots map[string]event.Snapshot
}

func NewMemory() *Memory {
	return &Memory{
		ids:       make(map[event.EventID]bool),
		snapshots: make(map[string]event.Snapshot),
	}
}

// Append adds a single event. Append-only.
func (m *Memory) Append(_ context.Context, ev event.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ids[ev.ID] {
		return &event.DuplicateEventError{ID: ev.ID}
	}
	m.insertLocked(ev)
	return nil
}

// AppendBatch adds events atomically: ids are checked up front, including
// collisions inside the batch itself, before anything is written.
func (m *Memory) AppendBatch(_ context.Context, evs []event.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[event.EventID]bool, len(evs))
	for _, ev := range evs {
		if m.ids[ev.ID] || seen[ev.ID] {
			return &event.DuplicateEventError{ID: ev.ID}
		}
		seen[ev.ID] = true
	}
	for _, ev := range evs {
		m.insertLocked(ev)
	}
	return nil
}

func (m *Memory) insertLocked(ev event.Event) {
	// Binary search for insertion point keeps events ordered by At.
	i := sort.Search(len(m.events), func(i int) bool {
		return m.events[i].At.After(ev.At)
	})
	m.events = append(m.events, event.Event{})
	copy(m.events[i+1:], m.events[i:])
	m.events[i] = ev
	m.ids[ev.ID] = true
}

func (m *Memory) CountByDay(_ context.Context, from, to time.Time) (heatmap.DayCount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := heatmap.NewDayCount()
	for _, ev := range m.events {
		if !from.IsZero() && ev.At.Before(from) {
			continue
		}
		if !to.IsZero() && ev.At.After(to) {
			continue
		}
		counts.Add(ev.Day())
	}
	return counts, nil
}

func (m *Memory) YearBounds(_ context.Context) (int, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.events) == 0 {
		return 0, 0, event.ErrNoEvents
	}
	return m.events[0].At.Year(), m.events[len(m.events)-1].At.Year(), nil
}

func (m *Memory) CountEvents(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.events)), nil
}

func (m *Memory) Exists(_ context.Context, id event.EventID) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ids[id], nil
}

// =============================================================================
// SNAPSHOTS
// =============================================================================

func (m *Memory) SaveSnapshot(_ context.Context, snap event.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[snap.Key] = snap
	return nil
}

func (m *Memory) GetSnapshot(_ context.Context, key string) (*event.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap, ok := m.snapshots[key]
	if !ok {
		return nil, event.ErrSnapshotNotFound
	}
	return &snap, nil
}

func (m *Memory) ListSnapshots(_ context.Context) ([]event.SnapshotInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	infos := make([]event.SnapshotInfo, 0, len(m.snapshots))
	for _, snap := range m.snapshots {
		infos = append(infos, snap.Info())
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}
