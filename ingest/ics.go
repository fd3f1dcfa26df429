package ingest

import (
	"fmt"
	"io"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/warp/calendar-heatmap/event"
)

var icsNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("ingest/ics"))

// ParseICS reads VEVENT entries from an iCalendar document. The event UID
// becomes the event id; events without one get a deterministic id derived
// from their position, start time and summary.
func ParseICS(r io.Reader) ([]event.Event, error) {
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedExport, err)
	}

	var evs []event.Event
	for i, ve := range cal.Events() {
		at, err := ve.GetStartAt()
		if err != nil {
			at, err = ve.GetAllDayStartAt()
		}
		if err != nil {
			return nil, &ParseError{Line: i + 1, Reason: "event has no readable start time"}
		}

		var detail string
		if prop := ve.GetProperty(ics.ComponentPropertySummary); prop != nil {
			detail = prop.Value
		}

		var id string
		if prop := ve.GetProperty(ics.ComponentPropertyUniqueId); prop != nil {
			id = prop.Value
		}
		if id == "" {
			seed := fmt.Sprintf("%d|%s|%s", i+1, at.Format(time.RFC3339), detail)
			id = uuid.NewSHA1(icsNamespace, []byte(seed)).String()
		}

		evs = append(evs, event.Event{
			ID:     event.EventID(id),
			Source: event.SourceICS,
			At:     at,
			Detail: detail,
		})
	}

	return evs, nil
}
