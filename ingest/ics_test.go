package ingest_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/calendar-heatmap/event"
	"github.com/warp/calendar-heatmap/ingest"
)

func icsDocument(lines ...string) string {
	all := append([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//warp//calendar-heatmap//EN",
	}, lines...)
	all = append(all, "END:VCALENDAR")
	return strings.Join(all, "\r\n") + "\r\n"
}

func TestParseICS_ReadsEvents(t *testing.T) {
	doc := icsDocument(
		"BEGIN:VEVENT",
		"UID:standup-2024-02-01",
		"DTSTART:20240201T090000Z",
		"SUMMARY:Standup",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:standup-2024-02-02",
		"DTSTART:20240202T090000Z",
		"SUMMARY:Standup",
		"END:VEVENT",
	)

	evs, err := ingest.ParseICS(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, evs, 2)

	assert.Equal(t, event.EventID("standup-2024-02-01"), evs[0].ID)
	assert.True(t, evs[0].At.Equal(time.Date(2024, time.February, 1, 9, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Standup", evs[0].Detail)
	assert.Equal(t, event.SourceICS, evs[0].Source)
}

func TestParseICS_AllDayEvent(t *testing.T) {
	doc := icsDocument(
		"BEGIN:VEVENT",
		"UID:offsite",
		"DTSTART;VALUE=DATE:20240315",
		"SUMMARY:Offsite",
		"END:VEVENT",
	)

	evs, err := ingest.ParseICS(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, evs, 1)

	assert.Equal(t, 2024, evs[0].At.Year())
	assert.Equal(t, time.March, evs[0].At.Month())
	assert.Equal(t, 15, evs[0].At.Day())
}

func TestParseICS_MissingUIDGetsDeterministicID(t *testing.T) {
	doc := icsDocument(
		"BEGIN:VEVENT",
		"DTSTART:20240201T090000Z",
		"SUMMARY:No id",
		"END:VEVENT",
	)

	first, err := ingest.ParseICS(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, first, 1)
	require.NotEmpty(t, first[0].ID)

	second, err := ingest.ParseICS(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, first[0].ID, second[0].ID)
}

func TestParseICS_Garbage(t *testing.T) {
	_, err := ingest.ParseICS(strings.NewReader("not a calendar"))
	assert.ErrorIs(t, err, ingest.ErrMalformedExport)
}
