/*
Package stats summarizes day-bucketed activity.

PURPOSE:
  Turns a heatmap.DayCount into the aggregate numbers the API and CLI
  report next to the rendered calendar: totals, the busiest day, and
  per-weekday distribution.

KEY DECISIONS:
  1. Precision: Uses decimal.Decimal for averages to avoid floating-point
     noise in API responses
  2. Ties: When several days share the maximum count, the earliest one is
     reported as busiest
  3. Empty data: Summarize of an empty DayCount returns the zero Summary
     rather than an error; callers render "no data" from it
*/
package stats

import (
	"github.com/shopspring/decimal"

	"github.com/warp/calendar-heatmap/calendar"
	"github.com/warp/calendar-heatmap/heatmap"
)

// Summary aggregates a day-count table.
type Summary struct {
	// TotalEvents is the sum over all days.
	TotalEvents int

	// ActiveDays is the number of days with at least one event.
	ActiveDays int

	// MaxPerDay is the highest single-day count.
	MaxPerDay int

	// BusiestDay is the earliest day reaching MaxPerDay. Zero value when
	// there is no data.
	BusiestDay calendar.Date

	// MeanPerActiveDay is TotalEvents / ActiveDays rounded to two places.
	MeanPerActiveDay decimal.Decimal

	// PerWeekday sums counts by true weekday, 0=Monday .. 6=Sunday.
	PerWeekday [7]int
}

// Summarize aggregates counts. An empty table yields the zero Summary.
func Summarize(counts heatmap.DayCount) Summary {
	var s Summary
	if len(counts) == 0 {
		s.MeanPerActiveDay = decimal.Zero
		return s
	}

	for _, day := range counts.Days() {
		n := counts.Get(day)

		s.TotalEvents += n
		s.ActiveDays++
		s.PerWeekday[day.Weekday()] += n

		if n > s.MaxPerDay {
			s.MaxPerDay = n
			s.BusiestDay = day
		}
	}

	s.MeanPerActiveDay = decimal.NewFromInt(int64(s.TotalEvents)).
		Div(decimal.NewFromInt(int64(s.ActiveDays))).
		Round(2)

	return s
}
