/*
datemath.go - Pure Gregorian date arithmetic

PURPOSE:
  Stateless building blocks under the grid engine: leap year test, month
  lengths, weekday of a date, and the closed-form leap-day count. No
  iteration over years or days happens anywhere in this file.

SEE ALSO:
  - engine.go: Composes these into week-aligned sequences
*/
package calendar

// Days per month, February in non-leap years. Index 0 unused.
var monthDays = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in the given month, 29 for
// February in leap years. Fails with ErrInvalidMonth for month outside
// 1..12.
func DaysInMonth(year, month int) (int, error) {
	if month < 1 || month > 12 {
		return 0, &MonthError{Month: month}
	}
	n := monthDays[month]
	if month == 2 && IsLeapYear(year) {
		n++
	}
	return n, nil
}

// WeekdayOf returns the day of week (0=Monday..6=Sunday) for the given
// date. Fails with ErrInvalidDate when the triple is not a real date.
func WeekdayOf(year, month, day int) (int, error) {
	d, err := NewDate(year, month, day)
	if err != nil {
		return 0, err
	}
	return d.Weekday(), nil
}

// MonthRange returns the weekday of the first day of the month and the
// number of days in the month. Fails with ErrInvalidMonth like DaysInMonth.
func MonthRange(year, month int) (firstWeekday, days int, err error) {
	days, err = DaysInMonth(year, month)
	if err != nil {
		return 0, 0, err
	}
	firstWeekday, err = WeekdayOf(year, month, 1)
	if err != nil {
		return 0, 0, err
	}
	return firstWeekday, days, nil
}

// LeapDaysBetween counts leap years in the half-open range [year1, year2)
// in closed form. Assumes year1 <= year2; the result is meaningless
// otherwise.
func LeapDaysBetween(year1, year2 int) int {
	year1--
	year2--
	return (year2/4 - year1/4) - (year2/100 - year1/100) + (year2/400 - year1/400)
}
