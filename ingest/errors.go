package ingest

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

// ErrMalformedExport is returned when a source document does not have the
// expected overall structure.
var ErrMalformedExport = errors.New("malformed export document")

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ParseError reports the entry that could not be parsed. Line is 1-based:
// it counts entries for HTML and ICS sources and lines for JSON input.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("entry %d: %s", e.Line, e.Reason)
}

func (e *ParseError) Unwrap() error { return ErrMalformedExport }
