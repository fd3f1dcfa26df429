package ingest

import (
	"github.com/warp/calendar-heatmap/event"
	"github.com/warp/calendar-heatmap/heatmap"
)

// Bucket counts events per calendar day.
func Bucket(evs []event.Event) heatmap.DayCount {
	counts := heatmap.NewDayCount()
	for _, ev := range evs {
		counts.Add(ev.Day())
	}
	return counts
}

// YearSpan returns the first and last year the events touch. Fails with
// event.ErrNoEvents on an empty batch.
func YearSpan(evs []event.Event) (int, int, error) {
	if len(evs) == 0 {
		return 0, 0, event.ErrNoEvents
	}

	minYear := evs[0].At.Year()
	maxYear := minYear
	for _, ev := range evs[1:] {
		y := ev.At.Year()
		if y < minYear {
			minYear = y
		}
		if y > maxYear {
			maxYear = y
		}
	}

	return minYear, maxYear, nil
}
