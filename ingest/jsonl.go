package ingest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/warp/calendar-heatmap/event"
)

var jsonNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("ingest/json"))

// jsonEvent is the wire form of one uploaded event.
type jsonEvent struct {
	ID     string `json:"id,omitempty"`
	At     string `json:"at"`
	Detail string `json:"detail,omitempty"`
}

// ParseJSONLines reads one JSON object per line, e.g.
//
//	{"at": "2015-01-15T22:30:00Z", "detail": "logon"}
//
// Blank lines are skipped. Ids are optional; omitted ids are derived from
// the line position and content.
func ParseJSONLines(r io.Reader) ([]event.Event, error) {
	scanner := bufio.NewScanner(r)

	var evs []event.Event
	line := 0
	for scanner.Scan() {
		line++

		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}

		var je jsonEvent
		if err := json.Unmarshal([]byte(raw), &je); err != nil {
			return nil, &ParseError{Line: line, Reason: err.Error()}
		}

		at, err := time.Parse(time.RFC3339, je.At)
		if err != nil {
			return nil, &ParseError{Line: line, Reason: fmt.Sprintf("bad timestamp %q", je.At)}
		}

		id := je.ID
		if id == "" {
			id = uuid.NewSHA1(jsonNamespace, []byte(fmt.Sprintf("%d|%s", line, raw))).String()
		}

		evs = append(evs, event.Event{
			ID:     event.EventID(id),
			Source: event.SourceJSON,
			At:     at,
			Detail: je.Detail,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return evs, nil
}
