/*
demo.go - Demo dataset loaders for testing and demonstrations

PURPOSE:
  Provides pre-built datasets that populate the store with synthetic
  activity so the rendered calendar has something to show. Each dataset
  is deterministic: fixed seed, fixed year range, stable event ids.

AVAILABLE DATASETS:
  commuter: Weekday-heavy activity across 2023-2024
  burst:    Quiet background with three heavy fortnights

HOW LOADING WORKS:
  The store is append-only, so a dataset loads exactly once; loading it
  again collides on the stable ids and returns 409. There is no reset.

USAGE VIA API:
  POST /api/demo/load
  {"demo_id": "commuter"}

SEE ALSO:
  - handlers.go: ingestResponse, error mapping
  - event/store.go: Append-only semantics
*/
package api

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/warp/calendar-heatmap/calendar"
	"github.com/warp/calendar-heatmap/event"
)

// =============================================================================
// DATASET DEFINITIONS
// =============================================================================

var demos = []DemoDTO{
	{
		ID:          "commuter",
		Name:        "Commuter",
		Description: "Weekday-heavy logons across 2023-2024",
	},
	{
		ID:          "burst",
		Name:        "Burst",
		Description: "Quiet background with three heavy fortnights",
	},
}

// =============================================================================
// DEMO HANDLERS
// =============================================================================

// ListDemos returns the available demo datasets.
func (h *Handler) ListDemos(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, demos)
}

// LoadDemo populates the store with the selected dataset.
func (h *Handler) LoadDemo(w http.ResponseWriter, r *http.Request) {
	var req LoadDemoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	evs, err := DemoEvents(req.DemoID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unknown demo dataset", err)
		return
	}

	if err := h.Events.AppendBatch(r.Context(), evs); err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, ingestResponse(evs, event.SourceDemo))
}

// DemoEvents generates the named dataset. The server's -demo flag and the
// load endpoint share this.
func DemoEvents(id string) ([]event.Event, error) {
	switch id {
	case "commuter":
		return commuterDemo(), nil
	case "burst":
		return burstDemo(), nil
	default:
		return nil, fmt.Errorf("unknown demo %q", id)
	}
}

// =============================================================================
// DATASET GENERATORS
// =============================================================================

// commuterDemo spreads one to three logons over most weekdays of
// 2023-2024 with the occasional weekend appearance.
func commuterDemo() []event.Event {
	r := rand.New(rand.NewSource(20230101))

	var evs []event.Event
	start := calendar.MustDate(2023, 1, 1)
	end := calendar.MustDate(2024, 12, 31)

	for d := start; !end.Before(d); d = d.Next() {
		var n int
		if d.Weekday() < 5 {
			if r.Intn(10) > 0 {
				n = 1 + r.Intn(3)
			}
		} else if r.Intn(5) == 0 {
			n = 1
		}

		evs = appendDemoEvents(evs, "commuter", d, n, r)
	}

	return evs
}

// burstDemo keeps a sparse background and overlays three two-week
// stretches of heavy activity, exercising the whole color ramp.
func burstDemo() []event.Event {
	r := rand.New(rand.NewSource(20230202))

	bursts := []calendar.Date{
		calendar.MustDate(2023, 3, 6),
		calendar.MustDate(2023, 11, 13),
		calendar.MustDate(2024, 6, 3),
	}

	inBurst := func(d calendar.Date) bool {
		for _, b := range bursts {
			for i, cur := 0, b; i < 14; i, cur = i+1, cur.Next() {
				if cur == d {
					return true
				}
			}
		}
		return false
	}

	var evs []event.Event
	start := calendar.MustDate(2023, 1, 1)
	end := calendar.MustDate(2024, 12, 31)

	for d := start; !end.Before(d); d = d.Next() {
		var n int
		if inBurst(d) {
			n = 4 + r.Intn(4)
		} else if r.Intn(7) == 0 {
			n = 1 + r.Intn(2)
		}

		evs = appendDemoEvents(evs, "burst", d, n, r)
	}

	return evs
}

func appendDemoEvents(evs []event.Event, name string, d calendar.Date, n int, r *rand.Rand) []event.Event {
	for i := 0; i < n; i++ {
		at := time.Date(d.Year, time.Month(d.Month), d.Day, 8+r.Intn(12), r.Intn(60), 0, 0, time.UTC)
		evs = append(evs, event.Event{
			ID:     event.EventID(fmt.Sprintf("demo-%s-%05d", name, len(evs))),
			Source: event.SourceDemo,
			At:     at,
			Detail: fmt.Sprintf("%s demo", name),
		})
	}
	return evs
}
