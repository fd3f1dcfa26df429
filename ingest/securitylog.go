/*
Package ingest turns raw activity exports into events.

PURPOSE:
  Each parser reads one source format and produces []event.Event with
  deterministic ids, so the same file ingested twice is caught by the
  store's duplicate detection instead of silently double counting.

SUPPORTED FORMATS:
  security-log: Account-activity HTML export (localized timestamps)
  ics:          iCalendar feeds (VEVENT start times)
  json:         One JSON object per line {"at": RFC3339, "detail": ...}

KEY DECISIONS:
  1. Deterministic ids: Derived from entry position and content via
     SHA-1 UUIDs. Random ids would defeat idempotent re-ingestion.
  2. Strict parsing: A malformed entry fails the whole parse with a
     ParseError naming the entry. Partial ingests are worse than loud
     failures.
  3. No timezone handling: Export timestamps are wall-clock local times
     and are taken as-is.

SEE ALSO:
  - event/event.go: The Event type parsers produce
  - bucket.go:      Day bucketing for parsed batches
*/
package ingest

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/warp/calendar-heatmap/calendar"
	"github.com/warp/calendar-heatmap/event"
)

var securityLogNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("ingest/security-log"))

// =============================================================================
// SECURITY LOG - Account-activity HTML export
// =============================================================================

// ParseSecurityLog reads an account-activity HTML export. The document
// carries two lists under the contents division; the second one holds the
// session entries, one timestamp per entry:
//
//	<li><p>Donnerstag, 15. Januar 2015 um 22:30<br/>...</p></li>
//
// Month names are resolved against the given locale.
func ParseSecurityLog(r io.Reader, loc calendar.Locale) ([]event.Event, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedExport, err)
	}

	list, err := sessionList(doc)
	if err != nil {
		return nil, err
	}

	var evs []event.Event
	entry := 0
	for li := list.FirstChild; li != nil; li = li.NextSibling {
		if !isElement(li, "li") {
			continue
		}
		for p := li.FirstChild; p != nil; p = p.NextSibling {
			if !isElement(p, "p") {
				continue
			}
			entry++

			raw := leadingText(p)
			if raw == "" {
				return nil, &ParseError{Line: entry, Reason: "entry has no leading text"}
			}

			at, err := parseTimestamp(raw, loc)
			if err != nil {
				return nil, &ParseError{Line: entry, Reason: err.Error()}
			}

			evs = append(evs, event.Event{
				ID:     securityLogID(entry, raw),
				Source: event.SourceSecurityLog,
				At:     at,
				Detail: raw,
			})
		}
	}

	return evs, nil
}

// sessionList locates the second list under the contents division. The
// first list holds active sessions, the second the historical logons.
func sessionList(doc *html.Node) (*html.Node, error) {
	body := findFirst(doc, "body")
	if body == nil {
		return nil, fmt.Errorf("%w: no body element", ErrMalformedExport)
	}

	var contents *html.Node
	for n := body.FirstChild; n != nil; n = n.NextSibling {
		if isElement(n, "div") && attr(n, "class") == "contents" {
			contents = n
			break
		}
	}
	if contents == nil {
		return nil, fmt.Errorf("%w: no contents division", ErrMalformedExport)
	}

	var lists []*html.Node
	for n := contents.FirstChild; n != nil; n = n.NextSibling {
		if isElement(n, "ul") {
			lists = append(lists, n)
		}
	}
	if len(lists) < 2 {
		return nil, fmt.Errorf("%w: expected two session lists, found %d", ErrMalformedExport, len(lists))
	}

	return lists[1], nil
}

// parseTimestamp reads entries like "Donnerstag, 15. Januar 2015 um 22:30".
// The weekday name is decoration; day, month name, year and clock carry
// the information.
func parseTimestamp(s string, loc calendar.Locale) (time.Time, error) {
	fields := strings.Fields(s)
	if len(fields) < 6 {
		return time.Time{}, fmt.Errorf("expected 6 fields, found %d", len(fields))
	}

	day, err := strconv.Atoi(strings.TrimSuffix(fields[1], "."))
	if err != nil {
		return time.Time{}, fmt.Errorf("bad day number %q", fields[1])
	}

	month, ok := loc.MonthNumber(fields[2])
	if !ok {
		return time.Time{}, fmt.Errorf("unknown month name %q", fields[2])
	}

	year, err := strconv.Atoi(fields[3])
	if err != nil {
		return time.Time{}, fmt.Errorf("bad year %q", fields[3])
	}

	if _, err := calendar.NewDate(year, month, day); err != nil {
		return time.Time{}, err
	}

	hour, minute, err := parseClock(fields[5])
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC), nil
}

func parseClock(s string) (int, int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("bad clock %q", s)
	}

	hour, err1 := strconv.Atoi(parts[0])
	minute, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("bad clock %q", s)
	}

	return hour, minute, nil
}

// securityLogID derives a stable id from the entry position and text, so
// re-ingesting the same export yields the same ids while two logons in
// the same minute stay distinct events.
func securityLogID(entry int, raw string) event.EventID {
	id := uuid.NewSHA1(securityLogNamespace, []byte(fmt.Sprintf("%d|%s", entry, raw)))
	return event.EventID(id.String())
}

// =============================================================================
// HTML TRAVERSAL HELPERS
// =============================================================================

func isElement(n *html.Node, tag string) bool {
	return n.Type == html.ElementNode && n.Data == tag
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func findFirst(n *html.Node, tag string) *html.Node {
	if isElement(n, tag) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// leadingText returns the text directly inside an element up to its first
// child element. The exports break entries with <br/> tags; the timestamp
// is always the text before the first break.
func leadingText(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.TextNode {
			break
		}
		sb.WriteString(c.Data)
	}
	return strings.TrimSpace(sb.String())
}
