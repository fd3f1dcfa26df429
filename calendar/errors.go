/*
errors.go - Error types for the calendar core

PURPOSE:
  All calendar error types in one place. There are exactly two failure
  kinds: a month argument outside 1..12, and a (year, month, day) triple
  that is not a real Gregorian date. Nothing here retries or recovers;
  every error surfaces to the caller immediately.

USAGE:
  Callers branch with errors.Is:

    if errors.Is(err, calendar.ErrInvalidMonth) {
        // bad month argument
    }

SEE ALSO:
  - datemath.go: Returns these errors
  - engine.go: Propagates them unchanged
*/
package calendar

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidMonth is returned by every entry point taking a month
	// argument when the month falls outside 1..12.
	ErrInvalidMonth = errors.New("invalid month")

	// ErrInvalidDate is returned when a (year, month, day) triple does not
	// name a real calendar date.
	ErrInvalidDate = errors.New("invalid date")
)

// =============================================================================
// STRUCTURED ERRORS - Carry the offending values
// =============================================================================

// MonthError reports a month argument outside 1..12.
type MonthError struct {
	Month int
}

func (e *MonthError) Error() string {
	return fmt.Sprintf("bad month number %d; must be between 1 and 12", e.Month)
}

func (e *MonthError) Unwrap() error { return ErrInvalidMonth }

// DateError reports a triple that is not a real calendar date.
type DateError struct {
	Year  int
	Month int
	Day   int
}

func (e *DateError) Error() string {
	return fmt.Sprintf("invalid date %04d-%02d-%02d", e.Year, e.Month, e.Day)
}

func (e *DateError) Unwrap() error { return ErrInvalidDate }
