/*
Package heatmap maps per-day activity counts to a density color scale.

PURPOSE:
  Takes a bucketing of events by calendar day and produces one stylesheet
  rule per active day, tinting that day's cell with a grayscale intensity
  proportional to how busy the day was. The scale is normalized against the
  busiest day in the dataset, not an absolute ceiling, so the darkest tier
  always marks the true maximum.

KEY CONCEPTS:
  - DayCount: counting map from calendar date to occurrences
  - Mapper:   count-to-intensity scale with a tunable darkest value
  - Rule:     one per-day stylesheet rule (#_yyyyMMdd -> background color)

SCALE:
  step  = darkest / maxCount        (integer division)
  value = 255 - step*count          (clamped to 0..255)

  More events means a smaller value means a darker cell, and the constant
  143 keeps even the darkest cell distinct from pure black text.

SEE ALSO:
  - calendar/: Date type the buckets are keyed by
  - render/:   Splices the emitted rules into the page shell
*/
package heatmap

import (
	"sort"

	"github.com/warp/calendar-heatmap/calendar"
)

// =============================================================================
// DAY COUNT - Counting map with a zero default
// =============================================================================

// DayCount buckets events by calendar day. Lookups of absent days return
// zero; Add increments through the same default.
type DayCount map[calendar.Date]int

// NewDayCount returns an empty counting map.
func NewDayCount() DayCount {
	return make(DayCount)
}

// Get returns the count for the day, zero when absent.
func (dc DayCount) Get(d calendar.Date) int {
	return dc[d]
}

// Add increments the day's count by one.
func (dc DayCount) Add(d calendar.Date) {
	dc[d]++
}

// Total returns the sum of all counts.
func (dc DayCount) Total() int {
	total := 0
	for _, n := range dc {
		total += n
	}
	return total
}

// Max returns the highest count in the map, zero when empty.
func (dc DayCount) Max() int {
	max := 0
	for _, n := range dc {
		if n > max {
			max = n
		}
	}
	return max
}

// Days returns the bucketed days in ascending calendar order.
func (dc DayCount) Days() []calendar.Date {
	days := make([]calendar.Date, 0, len(dc))
	for d := range dc {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}
