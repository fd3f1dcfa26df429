/*
scheduler.go - Automated snapshot refresh

PURPOSE:
  Re-renders the cached overview on a cron schedule so page views stay
  cheap even when ingestion happens out of band (scripted uploads, cron
  jobs pushing exports).

DESIGN:
  - Runs a background goroutine sleeping until the next cron tick
  - Refreshes immediately on start when no snapshot exists yet
  - Skips quietly when the store is empty

CONFIGURATION:
  - Schedule: standard cron expression (default "0 3 * * *", 03:00 daily)

USAGE:
  scheduler, err := NewSnapshotScheduler(handler, api.DefaultSchedule)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: RefreshSnapshot (the work being scheduled)
  - cmd/server/main.go: Where the schedule is configured
*/
package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorhill/cronexpr"

	"github.com/warp/calendar-heatmap/event"
)

// DefaultSchedule refreshes at 03:00 every day.
const DefaultSchedule = "0 3 * * *"

// SnapshotScheduler re-renders the overview snapshot on a cron schedule.
type SnapshotScheduler struct {
	Handler *Handler

	expr    *cronexpr.Expression
	stop    chan bool
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
}

// NewSnapshotScheduler creates a new scheduler. An empty schedule selects
// DefaultSchedule.
func NewSnapshotScheduler(h *Handler, schedule string) (*SnapshotScheduler, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}

	expr, err := cronexpr.Parse(schedule)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}

	return &SnapshotScheduler{
		Handler: h,
		expr:    expr,
		stop:    make(chan bool),
	}, nil
}

// Start begins the scheduler.
func (ss *SnapshotScheduler) Start() {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if ss.started {
		return
	}
	ss.started = true

	ss.wg.Add(1)
	go ss.run()

	log.Printf("[Scheduler] Started, next refresh at %v", ss.expr.Next(time.Now()))
}

// Stop stops the scheduler.
func (ss *SnapshotScheduler) Stop() {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if ss.started {
		close(ss.stop)
		ss.wg.Wait()
		log.Println("[Scheduler] Stopped")
	}
}

func (ss *SnapshotScheduler) run() {
	defer ss.wg.Done()

	// Render once at start when nothing is cached yet
	ss.refreshIfMissing()

	for {
		next := ss.expr.Next(time.Now())
		if next.IsZero() {
			log.Println("[Scheduler] Schedule has no future runs, stopping")
			return
		}

		timer := time.NewTimer(time.Until(next))
		select {
		case <-timer.C:
			ss.refresh()
		case <-ss.stop:
			timer.Stop()
			return
		}
	}
}

func (ss *SnapshotScheduler) refreshIfMissing() {
	ctx := context.Background()

	_, err := ss.Handler.Snapshots.GetSnapshot(ctx, ss.Handler.SnapshotKey)
	if err == nil {
		return
	}
	if !errors.Is(err, event.ErrSnapshotNotFound) {
		log.Printf("[Scheduler] Error checking snapshot: %v", err)
		return
	}

	ss.refresh()
}

func (ss *SnapshotScheduler) refresh() {
	ctx := context.Background()

	snap, err := ss.Handler.RefreshSnapshot(ctx)
	if errors.Is(err, event.ErrNoEvents) {
		log.Println("[Scheduler] No events yet, nothing to render")
		return
	}
	if err != nil {
		log.Printf("[Scheduler] Error refreshing snapshot: %v", err)
		return
	}

	log.Printf("[Scheduler] Refreshed %q: years %d-%d, %d events, %d bytes",
		snap.Key, snap.StartYear, snap.EndYear, snap.EventCount, len(snap.HTML))
}

// RunNow triggers an immediate refresh (for testing/admin).
func (ss *SnapshotScheduler) RunNow() {
	ss.refresh()
}

// NextRunTime returns when the next scheduled refresh will occur.
func (ss *SnapshotScheduler) NextRunTime() time.Time {
	return ss.expr.Next(time.Now())
}
