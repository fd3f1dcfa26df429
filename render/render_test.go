package render_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/calendar-heatmap/calendar"
	"github.com/warp/calendar-heatmap/render"
)

// =============================================================================
// DAY AND WEEK MARKUP
// =============================================================================

func TestFormatDay_PlaceholderAndRealDay(t *testing.T) {
	r := render.New(calendar.NewEngine())

	// GIVEN: A placeholder cell
	// THEN: An empty day cell with no id, nothing to style
	got := r.FormatDay(calendar.DayCell{Day: 0, Weekday: calendar.Monday}, 2024, 2)
	assert.Equal(t, `<td class="day">&nbsp;</td>`, got)

	// GIVEN: February 1st 2024, a Thursday
	// THEN: The cell carries its weekday class and its stylesheet-target id
	got = r.FormatDay(calendar.DayCell{Day: 1, Weekday: calendar.Thursday}, 2024, 2)
	assert.Equal(t, `<td class="day thu" id="_20240201">1</td>`, got)
}

func TestFormatWeekHeader_FollowsWeekdaySequence(t *testing.T) {
	eng := calendar.NewEngine()
	r := render.New(eng)

	want := `<tr><th class="mon">Mon</th><th class="tue">Tue</th><th class="wed">Wed</th>` +
		`<th class="thu">Thu</th><th class="fri">Fri</th><th class="sat">Sat</th><th class="sun">Sun</th></tr>`
	assert.Equal(t, want, r.FormatWeekHeader())

	// Sunday-first rotates the header by one position.
	eng.SetFirstWeekday(calendar.Sunday)
	header := r.FormatWeekHeader()
	assert.True(t, strings.HasPrefix(header, `<tr><th class="sun">Sun</th><th class="mon">Mon</th>`), header)
}

func TestFormatWeekHeader_GermanLocale(t *testing.T) {
	r := render.New(calendar.NewEngine())
	r.SetLocale(calendar.German)
	assert.Contains(t, r.FormatWeekHeader(), `<th class="mon">Mo</th>`)
	assert.Contains(t, r.FormatWeekHeader(), `<th class="sun">So</th>`)
}

// =============================================================================
// MONTH MARKUP
// =============================================================================

func TestFormatMonth_February2024(t *testing.T) {
	r := render.New(calendar.NewEngine())
	got, err := r.FormatMonth(2024, 2, true)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	// table open, name row, weekday header, 5 week rows, table close
	require.Len(t, lines, 9)
	assert.Equal(t, `<table class="month" id="202402">`, lines[0])
	assert.Equal(t, `<tr><th colspan="7" class="month">February 2024</th></tr>`, lines[1])
	assert.Equal(t,
		`<tr><td class="day">&nbsp;</td><td class="day">&nbsp;</td><td class="day">&nbsp;</td>`+
			`<td class="day thu" id="_20240201">1</td><td class="day fri" id="_20240202">2</td>`+
			`<td class="day sat" id="_20240203">3</td><td class="day sun" id="_20240204">4</td></tr>`,
		lines[3])
	assert.Equal(t, `</table>`, lines[8])

	// Every February day id appears exactly once.
	for day := 1; day <= 29; day++ {
		id := fmt.Sprintf(`id="_202402%02d"`, day)
		assert.Equal(t, 1, strings.Count(got, id), "id for day %d", day)
	}
}

func TestFormatMonth_WithoutYearOmitsIt(t *testing.T) {
	r := render.New(calendar.NewEngine())
	got, err := r.FormatMonth(2024, 2, false)
	require.NoError(t, err)
	assert.Contains(t, got, `<tr><th colspan="7" class="month">February</th></tr>`)
	assert.NotContains(t, got, "February 2024")
}

func TestFormatMonth_InvalidMonth(t *testing.T) {
	r := render.New(calendar.NewEngine())
	_, err := r.FormatMonth(2024, 13, true)
	assert.True(t, errors.Is(err, calendar.ErrInvalidMonth), "got %v", err)
}

// =============================================================================
// YEAR AND PAGE MARKUP
// =============================================================================

func TestFormatYear_LayoutRows(t *testing.T) {
	r := render.New(calendar.NewEngine())
	got, err := r.FormatYear(2024, 3)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "<table class=\"year\" id=\"2024\">\n"), got[:40])
	assert.Contains(t, got, `<tr><th colspan="3" class="year">2024</th></tr>`)
	assert.Equal(t, 12, strings.Count(got, `<table class="month"`))
	for m := 1; m <= 12; m++ {
		assert.Contains(t, got, fmt.Sprintf(`id="2024%02d"`, m))
	}
	// Month tables inside a year omit the year from their name rows.
	assert.Contains(t, got, `<tr><th colspan="7" class="month">January</th></tr>`)
	assert.NotContains(t, got, "January 2024")
}

func TestFormatYear_ClampsWidth(t *testing.T) {
	r := render.New(calendar.NewEngine())
	got, err := r.FormatYear(2024, 0)
	require.NoError(t, err)
	assert.Contains(t, got, `<tr><th colspan="1" class="year">2024</th></tr>`)
}

func TestFormatPage_SplicesContentAndStyle(t *testing.T) {
	r := render.New(calendar.NewEngine())
	style := "#_20150109 { background-color: #707070; }"

	page, err := r.FormatPage(2015, 2016, style)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	assert.Contains(t, page, "<title>Activity calendar</title>")
	assert.Contains(t, page, style)
	assert.NotContains(t, page, "{{CONTENT}}")
	assert.NotContains(t, page, "{{STYLE}}")
	assert.Contains(t, page, `id="2015"`)
	assert.Contains(t, page, `id="2016"`)
	assert.Equal(t, 1, strings.Count(page, "<hr />"), "two years joined by one divider")
}

func TestFormatPage_Deterministic(t *testing.T) {
	// GIVEN: Identical inputs
	// THEN: Byte-identical output on every call
	r := render.New(calendar.NewEngine())
	first, err := r.FormatPage(2015, 2015, "#_20150109 { background-color: #707070; }")
	require.NoError(t, err)
	second, err := r.FormatPage(2015, 2015, "#_20150109 { background-color: #707070; }")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFormatPage_CustomShellTitle(t *testing.T) {
	r := render.New(calendar.NewEngine())
	r.SetShell(render.NewShell("Logon overview"))
	page, err := r.FormatPage(2015, 2015, "")
	require.NoError(t, err)
	assert.Contains(t, page, "<title>Logon overview</title>")
}

func TestShell_ReplacesBothPoints(t *testing.T) {
	s := render.NewShell("T")
	out := s.Render("BODY-MARKER", "STYLE-MARKER")
	assert.Contains(t, out, "BODY-MARKER")
	assert.Contains(t, out, "STYLE-MARKER")
	assert.NotContains(t, out, "{{")
}
