/*
Package profile provides YAML to renderer configuration conversion.

PURPOSE:
  Converts YAML render profiles into configured calendar, heatmap and
  render objects. This enables calendar customization without code
  changes - a profile file decides locale, week layout and coloring.

YAML SCHEMA:
  name: logons
  title: Logon overview
  locale: de
  first_weekday: 0
  months_per_row: 3
  darkest: 143

DEFAULTS:
  title:          "Activity overview"
  locale:         "en"
  first_weekday:  0 (Monday)
  months_per_row: 3
  darkest:        143

USAGE:
  prof, err := profile.Load("profiles/logons.yml")
  if err != nil {
      log.Fatal(err)
  }

  renderer := prof.Renderer()
  page, err := renderer.FormatPage(2014, 2016, style)

SEE ALSO:
  - calendar/engine.go: The engine a profile configures
  - render/render.go:   The renderer a profile configures
*/
package profile

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/warp/calendar-heatmap/calendar"
	"github.com/warp/calendar-heatmap/heatmap"
	"github.com/warp/calendar-heatmap/render"
)

// ErrInvalidProfile is returned when a profile fails validation.
var ErrInvalidProfile = errors.New("invalid profile")

// =============================================================================
// YAML SCHEMA TYPES
// =============================================================================

// ProfileYAML is the YAML representation of a render profile.
type ProfileYAML struct {
	Name         string `yaml:"name,omitempty"`
	Title        string `yaml:"title,omitempty"`
	Locale       string `yaml:"locale,omitempty"`
	FirstWeekday int    `yaml:"first_weekday,omitempty"`
	MonthsPerRow int    `yaml:"months_per_row,omitempty"`
	Darkest      int    `yaml:"darkest,omitempty"`
}

// =============================================================================
// PROFILE
// =============================================================================

// Profile is a validated render configuration.
type Profile struct {
	Name         string
	Title        string
	LocaleCode   string
	FirstWeekday int
	MonthsPerRow int
	Darkest      int
}

// Default returns the built-in profile: English, Monday-first, three
// months per row.
func Default() *Profile {
	return &Profile{
		Name:         "default",
		Title:        "Activity overview",
		LocaleCode:   "en",
		FirstWeekday: 0,
		MonthsPerRow: calendar.DefaultMonthsPerRow,
		Darkest:      heatmap.Darkest,
	}
}

// Parse reads a YAML profile, fills defaults and validates.
func Parse(data []byte) (*Profile, error) {
	var py ProfileYAML
	if err := yaml.Unmarshal(data, &py); err != nil {
		return nil, fmt.Errorf("failed to parse profile YAML: %w", err)
	}

	return FromYAML(py)
}

// Load reads a profile file. An empty path returns the default profile.
func Load(path string) (*Profile, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}

	return Parse(data)
}

// FromYAML converts ProfileYAML to a validated Profile.
func FromYAML(py ProfileYAML) (*Profile, error) {
	p := Default()

	if py.Name != "" {
		p.Name = py.Name
	}
	if py.Title != "" {
		p.Title = py.Title
	}
	if py.Locale != "" {
		loc, ok := calendar.LocaleByCode(py.Locale)
		if !ok {
			return nil, fmt.Errorf("%w: unknown locale %q", ErrInvalidProfile, py.Locale)
		}
		p.LocaleCode = loc.Code
	}

	// 0 means Monday, so the zero value needs no special casing. Any
	// integer is accepted; the engine normalizes modulo 7.
	p.FirstWeekday = py.FirstWeekday

	if py.MonthsPerRow != 0 {
		if py.MonthsPerRow < 1 || py.MonthsPerRow > 12 {
			return nil, fmt.Errorf("%w: months_per_row %d out of range 1..12", ErrInvalidProfile, py.MonthsPerRow)
		}
		p.MonthsPerRow = py.MonthsPerRow
	}

	if py.Darkest != 0 {
		if py.Darkest < 1 || py.Darkest > 255 {
			return nil, fmt.Errorf("%w: darkest %d out of range 1..255", ErrInvalidProfile, py.Darkest)
		}
		p.Darkest = py.Darkest
	}

	return p, nil
}

// ToYAML converts a Profile back to its YAML representation.
func (p *Profile) ToYAML() ProfileYAML {
	return ProfileYAML{
		Name:         p.Name,
		Title:        p.Title,
		Locale:       p.LocaleCode,
		FirstWeekday: p.FirstWeekday,
		MonthsPerRow: p.MonthsPerRow,
		Darkest:      p.Darkest,
	}
}

// =============================================================================
// BUILDERS
// =============================================================================

// Engine builds the calendar engine the profile describes.
func (p *Profile) Engine() *calendar.Engine {
	return calendar.NewEngineWithFirstWeekday(p.FirstWeekday)
}

// Locale resolves the profile's locale.
func (p *Profile) Locale() calendar.Locale {
	loc, _ := calendar.LocaleByCode(p.LocaleCode)
	return loc
}

// Mapper builds the density color mapper the profile describes.
func (p *Profile) Mapper() *heatmap.Mapper {
	return heatmap.NewMapperWithDarkest(p.Darkest)
}

// Shell builds the page shell carrying the profile's title.
func (p *Profile) Shell() render.Shell {
	return render.NewShell(p.Title)
}

// Renderer builds a fully configured renderer.
func (p *Profile) Renderer() *render.Renderer {
	r := render.New(p.Engine())
	r.SetLocale(p.Locale())
	r.SetShell(p.Shell())
	r.SetMonthsPerRow(p.MonthsPerRow)
	return r
}
