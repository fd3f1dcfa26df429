package calendar_test

import (
	"errors"
	"testing"

	"github.com/warp/calendar-heatmap/calendar"
)

// =============================================================================
// FIRST WEEKDAY CONFIGURATION
// =============================================================================

func TestFirstWeekday_NormalizedOnRead(t *testing.T) {
	// GIVEN: Any integer, including negatives, passed to the setter
	// THEN: Reads are wrapped into 0..6
	eng := calendar.NewEngine()
	cases := []struct {
		set  int
		want int
	}{
		{0, 0}, {6, 6}, {7, 0}, {13, 6}, {-1, 6}, {-7, 0}, {-13, 1},
	}
	for _, c := range cases {
		eng.SetFirstWeekday(c.set)
		if got := eng.FirstWeekday(); got != c.want {
			t.Errorf("SetFirstWeekday(%d): FirstWeekday() = %d, want %d", c.set, got, c.want)
		}
	}
}

func TestWeekdaySequence_RotatesWithFirstWeekday(t *testing.T) {
	// GIVEN: Monday-first and Sunday-first conventions
	// THEN: The sequence rotates by one position, same membership
	eng := calendar.NewEngine()
	if got := eng.WeekdaySequence(); got != [7]int{0, 1, 2, 3, 4, 5, 6} {
		t.Errorf("WeekdaySequence() = %v under Monday-first", got)
	}

	eng.SetFirstWeekday(calendar.Sunday)
	if got := eng.WeekdaySequence(); got != [7]int{6, 0, 1, 2, 3, 4, 5} {
		t.Errorf("WeekdaySequence() = %v under Sunday-first", got)
	}
}

// =============================================================================
// MONTH DATE SEQUENCES
// =============================================================================

func TestMonthDates_WholeWeeksCoverMonth(t *testing.T) {
	// GIVEN: A spread of months under every first-weekday convention
	// THEN: The span is whole weeks and contains each month day exactly once
	months := []struct{ y, m int }{
		{2024, 2}, {2023, 2}, {2024, 1}, {2024, 12}, {2015, 1}, {1900, 2}, {2000, 2},
	}
	for fw := 0; fw < 7; fw++ {
		eng := calendar.NewEngineWithFirstWeekday(fw)
		for _, c := range months {
			dates, err := eng.MonthDates(c.y, c.m)
			if err != nil {
				t.Fatalf("MonthDates(%d, %d) fw=%d: %v", c.y, c.m, fw, err)
			}
			if len(dates)%7 != 0 {
				t.Fatalf("MonthDates(%d, %d) fw=%d: length %d not divisible by 7", c.y, c.m, fw, len(dates))
			}
			if dates[0].Weekday() != fw {
				t.Errorf("MonthDates(%d, %d) fw=%d: starts on weekday %d", c.y, c.m, fw, dates[0].Weekday())
			}

			days, err := calendar.DaysInMonth(c.y, c.m)
			if err != nil {
				t.Fatalf("DaysInMonth: %v", err)
			}
			seen := make(map[int]int)
			for _, d := range dates {
				if d.Year == c.y && d.Month == c.m {
					seen[d.Day]++
				}
			}
			if len(seen) != days {
				t.Fatalf("MonthDates(%d, %d) fw=%d: %d distinct month days, want %d", c.y, c.m, fw, len(seen), days)
			}
			for day, n := range seen {
				if n != 1 {
					t.Errorf("MonthDates(%d, %d) fw=%d: day %d appears %d times", c.y, c.m, fw, day, n)
				}
			}
		}
	}
}

func TestMonthDates_ConsecutiveDays(t *testing.T) {
	eng := calendar.NewEngine()
	dates, err := eng.MonthDates(2024, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(dates); i++ {
		if dates[i] != dates[i-1].Next() {
			t.Fatalf("dates[%d] = %v does not follow %v", i, dates[i], dates[i-1])
		}
	}
}

func TestMonthDates_FebruaryLeapSpan(t *testing.T) {
	// GIVEN: February 2024 starts on a Thursday under Monday-first
	// THEN: The span runs Jan 29 through Mar 3, five whole weeks
	eng := calendar.NewEngine()
	dates, err := eng.MonthDates(2024, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dates) != 35 {
		t.Fatalf("len = %d, want 35", len(dates))
	}
	if dates[0] != calendar.MustDate(2024, 1, 29) {
		t.Errorf("first = %v, want 2024-01-29", dates[0])
	}
	if dates[len(dates)-1] != calendar.MustDate(2024, 3, 3) {
		t.Errorf("last = %v, want 2024-03-03", dates[len(dates)-1])
	}
}

func TestMonthDates_FirstWeekdayKeepsMonthDaysFixed(t *testing.T) {
	// GIVEN: The same month under rotated first-weekday conventions
	// THEN: Only the grouping changes; the requested month's dates are the
	// same fixed set (padding dates necessarily differ with alignment)
	collect := func(fw int) map[calendar.Date]bool {
		eng := calendar.NewEngineWithFirstWeekday(fw)
		dates, err := eng.MonthDates(2024, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		set := make(map[calendar.Date]bool)
		for _, d := range dates {
			if d.Month == 2 {
				set[d] = true
			}
		}
		return set
	}

	monday := collect(calendar.Monday)
	sunday := collect(calendar.Sunday)
	if len(monday) != 29 || len(sunday) != 29 {
		t.Fatalf("month-day sets sized %d and %d, want 29", len(monday), len(sunday))
	}
	for d := range monday {
		if !sunday[d] {
			t.Errorf("date %v missing under Sunday-first", d)
		}
	}
}

func TestMonthDates_InvalidMonth(t *testing.T) {
	eng := calendar.NewEngine()
	_, err := eng.MonthDates(2024, 13)
	if !errors.Is(err, calendar.ErrInvalidMonth) {
		t.Fatalf("want ErrInvalidMonth, got %v", err)
	}
}

func TestMonthDates_StopsAtRepresentableBoundary(t *testing.T) {
	// GIVEN: The final representable month
	// WHEN: The walk reaches 9999-12-31
	// THEN: It terminates there instead of advancing past it
	eng := calendar.NewEngine()
	dates, err := eng.MonthDates(9999, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := dates[len(dates)-1]
	if last != calendar.MustDate(9999, 12, 31) {
		t.Errorf("last = %v, want 9999-12-31", last)
	}
}

// =============================================================================
// DAY NUMBER SEQUENCES AND GRIDS
// =============================================================================

func TestMonthDayNumbers_PaddingFormulas(t *testing.T) {
	// GIVEN: February 2024 (first weekday Thursday, 29 days), Monday-first
	// THEN: daysBefore = (3-0) mod 7 = 3, daysAfter = (0-3-29) mod 7 = 3
	eng := calendar.NewEngine()
	cells, err := eng.MonthDayNumbers(2024, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cells) != 35 {
		t.Fatalf("len = %d, want 35", len(cells))
	}
	for i := 0; i < 3; i++ {
		if cells[i].Day != 0 {
			t.Errorf("cells[%d].Day = %d, want placeholder 0", i, cells[i].Day)
		}
	}
	for i := 32; i < 35; i++ {
		if cells[i].Day != 0 {
			t.Errorf("cells[%d].Day = %d, want placeholder 0", i, cells[i].Day)
		}
	}
	if cells[3].Day != 1 || cells[3].Weekday != calendar.Thursday {
		t.Errorf("cells[3] = %+v, want day 1 on Thursday", cells[3])
	}
	if cells[31].Day != 29 {
		t.Errorf("cells[31] = %+v, want day 29", cells[31])
	}
}

func TestMonthDayNumbers_WeekdayIsTrueWeekday(t *testing.T) {
	// GIVEN: Sunday-first convention
	// THEN: Cell weekdays are (firstWeekday + position) mod 7, the slot's
	// real day of week, not the column position
	eng := calendar.NewEngineWithFirstWeekday(calendar.Sunday)
	cells, err := eng.MonthDayNumbers(2024, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, cell := range cells {
		want := (calendar.Sunday + i) % 7
		if cell.Weekday != want {
			t.Fatalf("cells[%d].Weekday = %d, want %d", i, cell.Weekday, want)
		}
	}
	// Feb 1 2024 is a Thursday; under Sunday-first it sits at position 4.
	if cells[4].Day != 1 || cells[4].Weekday != calendar.Thursday {
		t.Errorf("cells[4] = %+v, want day 1 on Thursday", cells[4])
	}
}

func TestMonthGrid_February2024_FiveWeeks(t *testing.T) {
	eng := calendar.NewEngine()
	grid, err := eng.MonthGrid(2024, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(grid.Weeks) != 5 {
		t.Fatalf("weeks = %d, want 5", len(grid.Weeks))
	}
	for i, week := range grid.Weeks {
		if len(week) != 7 {
			t.Errorf("week %d has %d cells, want 7", i, len(week))
		}
	}
	if grid.Year != 2024 || grid.Month != 2 {
		t.Errorf("grid labeled (%d, %d), want (2024, 2)", grid.Year, grid.Month)
	}
}

func TestMonthGrid_RowCountStaysInRange(t *testing.T) {
	// GIVEN: All months of several years under all conventions
	// THEN: Grids have 4 to 6 week rows of exactly 7 cells
	for fw := 0; fw < 7; fw++ {
		eng := calendar.NewEngineWithFirstWeekday(fw)
		for _, y := range []int{1999, 2015, 2024} {
			for m := 1; m <= 12; m++ {
				grid, err := eng.MonthGrid(y, m)
				if err != nil {
					t.Fatalf("MonthGrid(%d, %d): %v", y, m, err)
				}
				if len(grid.Weeks) < 4 || len(grid.Weeks) > 6 {
					t.Errorf("MonthGrid(%d, %d) fw=%d: %d weeks", y, m, fw, len(grid.Weeks))
				}
				for _, w := range grid.Weeks {
					if len(w) != 7 {
						t.Fatalf("MonthGrid(%d, %d) fw=%d: week of %d cells", y, m, fw, len(w))
					}
				}
			}
		}
	}
}

func TestYearGrid_ChunksMonthsPerRow(t *testing.T) {
	eng := calendar.NewEngine()

	grid, err := eng.YearGrid(2024, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(grid.Rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(grid.Rows))
	}
	month := 1
	for _, row := range grid.Rows {
		if len(row) != 3 {
			t.Errorf("row of %d months, want 3", len(row))
		}
		for _, mg := range row {
			if mg.Month != month || mg.Year != 2024 {
				t.Errorf("grid (%d, %d) out of order, want month %d", mg.Year, mg.Month, month)
			}
			month++
		}
	}

	// Uneven chunking leaves a short final row.
	grid, err = eng.YearGrid(2024, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(grid.Rows) != 3 || len(grid.Rows[2]) != 2 {
		t.Fatalf("rows = %d with tail %d, want 3 rows with tail 2", len(grid.Rows), len(grid.Rows[len(grid.Rows)-1]))
	}
}

func TestYearGrid_ClampsWidthToOne(t *testing.T) {
	// WHEN: monthsPerRow is below 1
	// THEN: It is clamped up to 1, one month per row
	eng := calendar.NewEngine()
	for _, width := range []int{0, -3} {
		grid, err := eng.YearGrid(2024, width)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(grid.Rows) != 12 {
			t.Fatalf("YearGrid(2024, %d): rows = %d, want 12", width, len(grid.Rows))
		}
	}
}

// =============================================================================
// LOCALE TABLES
// =============================================================================

func TestLocale_MonthNumber(t *testing.T) {
	if m, ok := calendar.German.MonthNumber("März"); !ok || m != 3 {
		t.Errorf("German MonthNumber(März) = (%d, %v), want (3, true)", m, ok)
	}
	if m, ok := calendar.English.MonthNumber("December"); !ok || m != 12 {
		t.Errorf("English MonthNumber(December) = (%d, %v), want (12, true)", m, ok)
	}
	if _, ok := calendar.English.MonthNumber("Brumaire"); ok {
		t.Error("MonthNumber accepted an unknown month name")
	}
}

func TestLocaleByCode_FallsBackToEnglish(t *testing.T) {
	loc, ok := calendar.LocaleByCode("fr")
	if ok {
		t.Error("LocaleByCode(fr) reported ok for an unknown code")
	}
	if loc.Code != "en" {
		t.Errorf("fallback locale = %q, want en", loc.Code)
	}
}
