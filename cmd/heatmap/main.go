/*
main.go - One-shot heatmap renderer

PURPOSE:
  Turns an activity export into a static HTML calendar without running
  the server: parse, bucket per day, color by density, write the page.

COMMAND-LINE FLAGS:
  -in       Input file ("-" or empty: stdin)
  -out      Output HTML file (default: logons.html)
  -format   Input format: security-log, ics or jsonl (default: security-log)
  -profile  Render profile YAML (default: built-in)
  -locale   Month-name locale override (security-log parsing and headers)
  -title    Page title override
  -year     Render a single year instead of the whole span

EXAMPLES:
  # Render a downloaded account-activity export
  ./heatmap -in export.html -out logons.html -locale de

  # Render one year from a calendar feed
  ./heatmap -in feed.ics -format ics -year 2024 -out 2024.html

  # Pipe JSON lines through
  cat events.jsonl | ./heatmap -format jsonl -out activity.html

SEE ALSO:
  - ingest/: Format parsers
  - render/: HTML generation
  - cmd/server/main.go: The long-running variant
*/
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/warp/calendar-heatmap/calendar"
	"github.com/warp/calendar-heatmap/event"
	"github.com/warp/calendar-heatmap/heatmap"
	"github.com/warp/calendar-heatmap/ingest"
	"github.com/warp/calendar-heatmap/profile"
)

func main() {
	in := flag.String("in", "", `input file ("-" or empty: stdin)`)
	out := flag.String("out", "logons.html", "output HTML file")
	format := flag.String("format", "security-log", "input format: security-log, ics or jsonl")
	profilePath := flag.String("profile", "", "render profile YAML (empty: built-in default)")
	localeCode := flag.String("locale", "", "month-name locale override")
	title := flag.String("title", "", "page title override")
	year := flag.Int("year", 0, "render a single year instead of the whole span")
	flag.Parse()

	prof, err := profile.Load(*profilePath)
	if err != nil {
		log.Fatalf("Failed to load profile: %v", err)
	}
	// The classic export carries German month names
	if *localeCode == "" && *profilePath == "" && *format == "security-log" {
		*localeCode = "de"
	}
	if *localeCode != "" {
		if _, ok := calendar.LocaleByCode(*localeCode); !ok {
			log.Fatalf("Unknown locale %q", *localeCode)
		}
		prof.LocaleCode = *localeCode
	}
	if *title != "" {
		prof.Title = *title
	}

	evs, err := parseInput(*in, *format, prof.Locale())
	if err != nil {
		log.Fatalf("Failed to parse input: %v", err)
	}
	if len(evs) == 0 {
		log.Fatal("Input contains no entries")
	}

	counts := ingest.Bucket(evs)
	startYear, endYear, err := ingest.YearSpan(evs)
	if err != nil {
		log.Fatalf("Failed to determine year span: %v", err)
	}

	if *year != 0 {
		counts = filterYear(counts, *year)
		if len(counts) == 0 {
			log.Fatalf("No entries in %d", *year)
		}
		startYear, endYear = *year, *year
	}

	rules, err := prof.Mapper().Rules(counts)
	if err != nil {
		log.Fatalf("Failed to build density scale: %v", err)
	}

	page, err := prof.Renderer().FormatPage(startYear, endYear, heatmap.Stylesheet(rules))
	if err != nil {
		log.Fatalf("Failed to render calendar: %v", err)
	}

	if err := os.WriteFile(*out, []byte(page), 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}

	log.Printf("Wrote %s: %d events on %d days, years %d-%d",
		*out, counts.Total(), len(counts), startYear, endYear)
}

// parseInput reads the whole input and dispatches to the format parser.
func parseInput(path, format string, loc calendar.Locale) ([]event.Event, error) {
	var r io.Reader = os.Stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	switch format {
	case "security-log":
		return ingest.ParseSecurityLog(r, loc)
	case "ics":
		return ingest.ParseICS(r)
	case "jsonl":
		return ingest.ParseJSONLines(r)
	default:
		return nil, fmt.Errorf("unknown format %q (want security-log, ics or jsonl)", format)
	}
}

// filterYear keeps only the buckets that fall into the given year.
func filterYear(counts heatmap.DayCount, year int) heatmap.DayCount {
	filtered := heatmap.NewDayCount()
	for _, day := range counts.Days() {
		if day.Year == year {
			filtered[day] = counts.Get(day)
		}
	}
	return filtered
}
