/*
scale.go - Linear count-to-intensity mapping and stylesheet rules

SEE ALSO:
  - heatmap.go: DayCount input
*/
package heatmap

import (
	"errors"
	"fmt"
	"strings"
)

// Darkest is the default intensity span below white. 255-143 = 112 keeps
// the busiest day clearly lighter than black text. Tunable per Mapper, not
// a load-bearing invariant.
const Darkest = 143

// ErrNoCounts is returned when a scale is requested for an empty DayCount;
// an empty dataset has no maximum to normalize against.
var ErrNoCounts = errors.New("no day counts to scale")

// =============================================================================
// RULE - One per-day stylesheet rule
// =============================================================================

// Rule pairs a day identifier with its grayscale intensity in 0..255.
type Rule struct {
	ID    string
	Value int
}

// Color renders the intensity as a two-hex-digit pair repeated for R, G
// and B.
func (r Rule) Color() string {
	return strings.Repeat(fmt.Sprintf("%02x", r.Value), 3)
}

func (r Rule) String() string {
	return fmt.Sprintf("#%s { background-color: #%s; }", r.ID, r.Color())
}

// =============================================================================
// MAPPER - Normalized density scale
// =============================================================================

// Mapper converts day counts to stylesheet rules. The zero value is not
// usable; construct with NewMapper.
type Mapper struct {
	darkest int
}

// NewMapper returns a Mapper with the default darkest intensity span.
func NewMapper() *Mapper {
	return &Mapper{darkest: Darkest}
}

// NewMapperWithDarkest tunes the intensity span. Values outside 1..255
// fall back to the default.
func NewMapperWithDarkest(darkest int) *Mapper {
	if darkest < 1 || darkest > 255 {
		darkest = Darkest
	}
	return &Mapper{darkest: darkest}
}

// Rules maps every bucketed day to a Rule, normalized against the busiest
// day: step = darkest/maxCount, value = 255 - step*count. Values are
// clamped to 0..255; the default constant already guarantees the range for
// any count >= 1. Counts must be non-empty, otherwise ErrNoCounts.
// Rules come back in ascending date order so output is deterministic.
func (m *Mapper) Rules(counts DayCount) ([]Rule, error) {
	max := counts.Max()
	if max == 0 {
		return nil, ErrNoCounts
	}

	step := m.darkest / max
	rules := make([]Rule, 0, len(counts))
	for _, day := range counts.Days() {
		value := 255 - step*counts.Get(day)
		if value < 0 {
			value = 0
		}
		if value > 255 {
			value = 255
		}
		rules = append(rules, Rule{ID: day.ID(), Value: value})
	}
	return rules, nil
}

// Stylesheet renders rules as one rule per line, ready to splice into the
// page shell.
func Stylesheet(rules []Rule) string {
	lines := make([]string, len(rules))
	for i, r := range rules {
		lines[i] = r.String()
	}
	return strings.Join(lines, "\n")
}
