/*
Package calendar provides the week-aligned calendar grid engine.

PURPOSE:
  This package contains the date arithmetic and grid construction that turn a
  (year, month) pair into a correctly shaped week-aligned day matrix under a
  configurable first-day-of-week convention. It is the foundation the heatmap
  and render packages build on.

KEY CONCEPTS IN THIS FILE (calendar.go):
  - Date: A valid Gregorian (year, month, day) triple
  - DayCell: A grid slot, either a day number or a placeholder
  - MonthGrid/YearGrid: Week-aligned matrices ready for rendering

DESIGN PRINCIPLES:
  1. Purity: Every operation is a deterministic function of its inputs
  2. Fail fast: Invalid months and dates surface as errors, never clamped
  3. Modular arithmetic: Week alignment is derived from the offset between a
     month's first weekday and the configured first-of-week, so no
     month/year boundary needs special casing

USAGE:
  eng := calendar.NewEngine()
  eng.SetFirstWeekday(calendar.Sunday)
  grid, err := eng.MonthGrid(2024, 2)

SEE ALSO:
  - datemath.go: Leap years, month lengths, weekday computation
  - engine.go: Week-aligned sequences and grids
  - locale.go: Month and weekday name tables
*/
package calendar

import (
	"fmt"
	"time"
)

// =============================================================================
// WEEKDAYS - 0 = Monday ... 6 = Sunday
// =============================================================================

const (
	Monday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// Representable year range. Grid iteration stops at the upper bound instead
// of walking past it.
const (
	MinYear = 1
	MaxYear = 9999
)

// =============================================================================
// DATE - Valid Gregorian (year, month, day) triple
// =============================================================================

// Date is an immutable calendar date. The zero value is not a valid date;
// construct one with NewDate or obtain them from the Engine, which only
// produces valid dates.
type Date struct {
	Year  int
	Month int
	Day   int
}

// NewDate validates the triple and returns the date. Out-of-range triples
// fail with ErrInvalidDate; there is no clamping.
func NewDate(year, month, day int) (Date, error) {
	d := Date{Year: year, Month: month, Day: day}
	if !d.valid() {
		return Date{}, &DateError{Year: year, Month: month, Day: day}
	}
	return d, nil
}

// MustDate is NewDate for dates known to be valid, typically in tests.
func MustDate(year, month, day int) Date {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) valid() bool {
	if d.Year < MinYear || d.Year > MaxYear {
		return false
	}
	if d.Month < 1 || d.Month > 12 {
		return false
	}
	n, err := DaysInMonth(d.Year, d.Month)
	if err != nil {
		return false
	}
	return d.Day >= 1 && d.Day <= n
}

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// DateOf buckets any instant to its calendar day.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// Weekday returns the day of week, 0=Monday.
func (d Date) Weekday() int {
	return (int(d.Time().Weekday()) + 6) % 7
}

// AddDays returns the date n calendar days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// Next returns the following calendar day.
func (d Date) Next() Date { return d.AddDays(1) }

// Before reports whether d precedes other in calendar order.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// ID returns the zero-padded day identifier used to join day cells with
// their stylesheet rules. The leading underscore keeps it a valid CSS
// identifier; id selectors cannot start with a digit.
func (d Date) ID() string {
	return fmt.Sprintf("_%04d%02d%02d", d.Year, d.Month, d.Day)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// =============================================================================
// GRID TYPES - Week-aligned matrices
// =============================================================================

// DayCell is one grid slot. Day is 0 for placeholder slots padding a week
// out to 7 entries with days that belong to an adjacent month. Weekday is
// the true day of week of the slot (0=Monday), which under first-weekday f
// at column position p is always (f+p) mod 7.
type DayCell struct {
	Day     int
	Weekday int
}

// MonthGrid is one month as complete weeks. Weeks holds 4 to 6 rows of
// exactly 7 cells each.
type MonthGrid struct {
	Year  int
	Month int
	Weeks [][]DayCell
}

// YearGrid is twelve MonthGrids chunked into rows for layout.
type YearGrid struct {
	Year int
	Rows [][]MonthGrid
}
