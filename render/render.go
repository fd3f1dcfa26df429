/*
Package render turns week-aligned calendar grids into HTML.

PURPOSE:
  Pure in-memory string composition from grid structures: day cells inside
  week rows inside month tables inside year tables inside a page shell. No
  network, no filesystem. The density stylesheet from the heatmap package
  is spliced in verbatim; day cells carry ids the rules target.

MARKUP SHAPE:
  - placeholder day:  <td class="day">&nbsp;</td>
  - day:              <td class="day thu" id="_20240201">1</td>
  - month:            <table class="month" id="202402"> name row, weekday
                      header row, week rows </table>
  - year:             <table class="year" id="2024"> with months in rows of
                      monthsPerRow
  - page:             years joined by <hr /> inside the shell

USAGE:
  r := render.New(calendar.NewEngine())
  page, err := r.FormatPage(2015, 2016, stylesheet)

SEE ALSO:
  - shell.go:    The page template
  - calendar/:   Grid construction
  - heatmap/:    Stylesheet rules the day ids pair with
*/
package render

import (
	"fmt"
	"strings"

	"github.com/warp/calendar-heatmap/calendar"
)

// CSS classes for the day cells, indexed by true weekday (0=Monday). Style
// hooks, not labels; display names come from the locale.
var cssClasses = [7]string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// Renderer composes calendar markup. Configure once, then render; the
// same inputs always produce byte-identical output.
type Renderer struct {
	engine       *calendar.Engine
	locale       calendar.Locale
	shell        Shell
	monthsPerRow int
}

// New returns a Renderer over the given engine with the English locale,
// the default shell and three months per layout row.
func New(engine *calendar.Engine) *Renderer {
	return &Renderer{
		engine:       engine,
		locale:       calendar.English,
		shell:        DefaultShell,
		monthsPerRow: calendar.DefaultMonthsPerRow,
	}
}

// SetLocale swaps the name tables used for month names and weekday
// abbreviations.
func (r *Renderer) SetLocale(locale calendar.Locale) { r.locale = locale }

// SetShell swaps the page template FormatPage wraps documents in.
func (r *Renderer) SetShell(shell Shell) { r.shell = shell }

// SetMonthsPerRow sets the year layout width used by FormatPage. Values
// below 1 are clamped up to 1.
func (r *Renderer) SetMonthsPerRow(n int) {
	if n < 1 {
		n = 1
	}
	r.monthsPerRow = n
}

// =============================================================================
// DAY AND WEEK FORMATTING
// =============================================================================

// FormatDay renders one grid cell. Placeholder cells render empty;
// real days carry their weekday class and the id their stylesheet rule
// targets.
func (r *Renderer) FormatDay(cell calendar.DayCell, year, month int) string {
	if cell.Day == 0 {
		return `<td class="day">&nbsp;</td>` // day outside the month
	}
	id := calendar.Date{Year: year, Month: month, Day: cell.Day}.ID()
	return fmt.Sprintf(`<td class="day %s" id="%s">%d</td>`, cssClasses[cell.Weekday], id, cell.Day)
}

// FormatWeek renders one week row of exactly seven cells.
func (r *Renderer) FormatWeek(week []calendar.DayCell, year, month int) string {
	var b strings.Builder
	b.WriteString("<tr>")
	for _, cell := range week {
		b.WriteString(r.FormatDay(cell, year, month))
	}
	b.WriteString("</tr>")
	return b.String()
}

// FormatWeekHeader renders the abbreviated weekday names in display order.
func (r *Renderer) FormatWeekHeader() string {
	var b strings.Builder
	b.WriteString("<tr>")
	for _, wd := range r.engine.WeekdaySequence() {
		fmt.Fprintf(&b, `<th class="%s">%s</th>`, cssClasses[wd], r.locale.DayAbbrs[wd])
	}
	b.WriteString("</tr>")
	return b.String()
}

// =============================================================================
// MONTH, YEAR AND PAGE FORMATTING
// =============================================================================

// FormatMonth renders one month table. Fails with ErrInvalidMonth for a
// month outside 1..12.
func (r *Renderer) FormatMonth(year, month int, withYear bool) (string, error) {
	grid, err := r.engine.MonthGrid(year, month)
	if err != nil {
		return "", err
	}
	return r.formatMonthGrid(grid, withYear), nil
}

func (r *Renderer) formatMonthGrid(grid calendar.MonthGrid, withYear bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<table class=\"month\" id=\"%04d%02d\">\n", grid.Year, grid.Month)
	b.WriteString(r.formatMonthName(grid.Year, grid.Month, withYear))
	b.WriteString("\n")
	b.WriteString(r.FormatWeekHeader())
	b.WriteString("\n")
	for _, week := range grid.Weeks {
		b.WriteString(r.FormatWeek(week, grid.Year, grid.Month))
		b.WriteString("\n")
	}
	b.WriteString("</table>\n")
	return b.String()
}

func (r *Renderer) formatMonthName(year, month int, withYear bool) string {
	name := r.locale.MonthNames[month]
	if withYear {
		name = fmt.Sprintf("%s %d", name, year)
	}
	return fmt.Sprintf(`<tr><th colspan="7" class="month">%s</th></tr>`, name)
}

// FormatYear renders the year as a table of month tables arranged into
// rows of monthsPerRow (clamped up to 1).
func (r *Renderer) FormatYear(year, monthsPerRow int) (string, error) {
	if monthsPerRow < 1 {
		monthsPerRow = 1
	}
	grid, err := r.engine.YearGrid(year, monthsPerRow)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<table class=\"year\" id=\"%d\">\n", year)
	fmt.Fprintf(&b, `<tr><th colspan="%d" class="year">%d</th></tr>`, monthsPerRow, year)
	for _, row := range grid.Rows {
		b.WriteString("<tr>")
		for _, mg := range row {
			b.WriteString("<td>")
			b.WriteString(r.formatMonthGrid(mg, false))
			b.WriteString("</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</table>")
	return b.String(), nil
}

// FormatPage renders the full document: every year from startYear through
// endYear inclusive, separated by a horizontal rule, wrapped in the shell
// with the stylesheet text spliced in verbatim. An inverted range renders
// an empty body.
func (r *Renderer) FormatPage(startYear, endYear int, style string) (string, error) {
	var years []string
	for year := startYear; year <= endYear; year++ {
		y, err := r.FormatYear(year, r.monthsPerRow)
		if err != nil {
			return "", err
		}
		years = append(years, y)
	}
	return r.shell.Render(strings.Join(years, "<hr />\n"), style), nil
}
