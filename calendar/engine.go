/*
engine.go - Week-aligned day sequences and grids

PURPOSE:
  The Engine owns the single piece of configuration in the core, the first
  day of the displayed week, and derives every grid shape from it. Leading
  and trailing padding are pure modular arithmetic over the offset between a
  month's first weekday and the configured first-of-week, so the same
  formulas handle a month starting on any weekday under any first-weekday
  convention.

TERMINATION:
  MonthDates walks day by day and stops the first time it reaches a date
  whose weekday equals the first weekday and whose month is not the
  requested one, so it always covers a whole number of weeks. An explicit
  guard stops the walk at the last representable date (MaxYear-12-31)
  instead of relying on arithmetic to fail past it.

SEE ALSO:
  - datemath.go: MonthRange and friends
  - calendar.go: DayCell, MonthGrid, YearGrid
*/
package calendar

// DefaultMonthsPerRow is the year layout width used when callers pass no
// explicit preference.
const DefaultMonthsPerRow = 3

// Engine produces week-aligned day sequences for months and years. One
// Engine carries one first-weekday setting; configure it before use and
// use independent instances for independent configurations. Concurrent
// mutation is not synchronized.
type Engine struct {
	firstWeekday int
}

// NewEngine returns an Engine with Monday as the first weekday.
func NewEngine() *Engine {
	return &Engine{firstWeekday: Monday}
}

// NewEngineWithFirstWeekday returns an Engine starting weeks on the given
// day. Any integer is accepted; it is normalized on read.
func NewEngineWithFirstWeekday(firstWeekday int) *Engine {
	return &Engine{firstWeekday: firstWeekday}
}

// SetFirstWeekday stores the first day of the week. Any integer is
// accepted, including negatives; normalization happens on every read.
func (e *Engine) SetFirstWeekday(weekday int) {
	e.firstWeekday = weekday
}

// FirstWeekday returns the configured first day of the week, normalized
// to 0..6.
func (e *Engine) FirstWeekday() int {
	return mod7(e.firstWeekday)
}

// WeekdaySequence returns the seven weekday numbers in display order,
// starting with the configured first weekday. It defines column order for
// rendered headers.
func (e *Engine) WeekdaySequence() [7]int {
	fw := e.FirstWeekday()
	var seq [7]int
	for i := range seq {
		seq[i] = (fw + i) % 7
	}
	return seq
}

// MonthDates returns every date of the month's week-aligned span, one
// whole week at a time: it starts far enough before the 1st that the first
// date falls on the first weekday, and ends with the last date of the week
// containing the month's final day. Dates outside the requested month
// belong to the adjacent months. Each call computes a fresh slice.
func (e *Engine) MonthDates(year, month int) ([]Date, error) {
	if month < 1 || month > 12 {
		return nil, &MonthError{Month: month}
	}
	first, err := NewDate(year, month, 1)
	if err != nil {
		return nil, err
	}

	fw := e.FirstWeekday()
	d := first.AddDays(-mod7(first.Weekday() - fw))
	last := Date{Year: MaxYear, Month: 12, Day: 31}

	var dates []Date
	for {
		dates = append(dates, d)
		if d == last {
			break
		}
		d = d.Next()
		if d.Month != month && d.Weekday() == fw {
			break
		}
	}
	return dates, nil
}

// MonthDayNumbers returns the month's week-aligned span as DayCells: zero
// day numbers pad the leading and trailing slots that belong to adjacent
// months. Padding counts are (monthFirstWeekday - firstWeekday) mod 7 in
// front and (firstWeekday - monthFirstWeekday - dayCount) mod 7 behind.
func (e *Engine) MonthDayNumbers(year, month int) ([]DayCell, error) {
	monthFirst, days, err := MonthRange(year, month)
	if err != nil {
		return nil, err
	}

	fw := e.FirstWeekday()
	before := mod7(monthFirst - fw)
	after := mod7(fw - monthFirst - days)

	cells := make([]DayCell, before+days+after)
	for i := range cells {
		cells[i].Weekday = (fw + i) % 7
	}
	for day := 1; day <= days; day++ {
		cells[before+day-1].Day = day
	}
	return cells, nil
}

// MonthGrid returns the month as rows of exactly seven DayCells.
func (e *Engine) MonthGrid(year, month int) (MonthGrid, error) {
	cells, err := e.MonthDayNumbers(year, month)
	if err != nil {
		return MonthGrid{}, err
	}
	return MonthGrid{Year: year, Month: month, Weeks: chunk(cells, 7)}, nil
}

// MonthDateGrid is the date-yielding variant of MonthGrid: rows of exactly
// seven Dates.
func (e *Engine) MonthDateGrid(year, month int) ([][]Date, error) {
	dates, err := e.MonthDates(year, month)
	if err != nil {
		return nil, err
	}
	return chunk(dates, 7), nil
}

// YearGrid returns all twelve MonthGrids chunked into layout rows of
// monthsPerRow. Values below 1 are clamped up to 1.
func (e *Engine) YearGrid(year, monthsPerRow int) (YearGrid, error) {
	if monthsPerRow < 1 {
		monthsPerRow = 1
	}
	months := make([]MonthGrid, 0, 12)
	for m := 1; m <= 12; m++ {
		g, err := e.MonthGrid(year, m)
		if err != nil {
			return YearGrid{}, err
		}
		months = append(months, g)
	}
	return YearGrid{Year: year, Rows: chunk(months, monthsPerRow)}, nil
}

// mod7 is the non-negative remainder mod 7, also for negative n.
func mod7(n int) int {
	return ((n % 7) + 7) % 7
}

func chunk[T any](items []T, size int) [][]T {
	var rows [][]T
	for i := 0; i < len(items); i += size {
		end := i + size
		if end > len(items) {
			end = len(items)
		}
		rows = append(rows, items[i:end:end])
	}
	return rows
}
