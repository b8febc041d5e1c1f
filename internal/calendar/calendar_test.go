package calendar

import (
	"bytes"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	t.Parallel()

	myt := time.FixedZone("MYT", 8*60*60)
	start := time.Date(2024, time.October, 7, 8, 0, 0, 0, myt)

	t.Run("writes one event per occurrence", func(t *testing.T) {
		t.Parallel()

		doc := Document{
			Name:     "Timetable A21EC0001",
			Timezone: "Asia/Kuala_Lumpur",
			Stamp:    start,
			Events: []Event{
				{
					UID:         EventUID("SECJ3104-01-1-2", start),
					Summary:     "SECJ3104 - Application Development",
					Location:    "BK1",
					Description: "Section 01",
					Start:       start,
					End:         start.Add(time.Hour),
				},
				{
					UID:     EventUID("SECJ3104-01-1-2", start.AddDate(0, 0, 7)),
					Summary: "SECJ3104 - Application Development",
					Start:   start.AddDate(0, 0, 7),
					End:     start.AddDate(0, 0, 7).Add(time.Hour),
				},
			},
		}

		data, err := Encode(doc)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "BEGIN:VCALENDAR"))
		assert.Contains(t, string(data), "X-WR-CALNAME:Timetable A21EC0001")

		cal, err := ics.ParseCalendar(bytes.NewReader(data))
		require.NoError(t, err)
		events := cal.Events()
		require.Len(t, events, 2)

		first := events[0]
		assert.Equal(t, "SECJ3104-01-1-2-20241007@ttms", first.Id())
		assert.Equal(t, "SECJ3104 - Application Development", first.GetProperty(ics.ComponentPropertySummary).Value)
		assert.Equal(t, "BK1", first.GetProperty(ics.ComponentPropertyLocation).Value)
		// Times are written in UTC.
		assert.Equal(t, "20241007T000000Z", first.GetProperty(ics.ComponentPropertyDtStart).Value)
		assert.Equal(t, "20241007T010000Z", first.GetProperty(ics.ComponentPropertyDtEnd).Value)

		assert.Nil(t, events[1].GetProperty(ics.ComponentPropertyLocation))
	})

	t.Run("encodes an empty calendar", func(t *testing.T) {
		t.Parallel()

		data, err := Encode(Document{Stamp: start})
		require.NoError(t, err)

		cal, err := ics.ParseCalendar(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Empty(t, cal.Events())
	})

	t.Run("rejects invalid events", func(t *testing.T) {
		t.Parallel()

		_, err := Encode(Document{Events: []Event{{Summary: "x", Start: start, End: start.Add(time.Hour)}}})
		assert.ErrorContains(t, err, "no uid")

		dup := Event{UID: "a", Start: start, End: start.Add(time.Hour)}
		_, err = Encode(Document{Events: []Event{dup, dup}})
		assert.ErrorContains(t, err, "duplicate")

		_, err = Encode(Document{Events: []Event{{UID: "b", Start: start, End: start}}})
		assert.ErrorContains(t, err, "ends before")
	})
}

func TestEventUID(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, time.March, 3, 14, 0, 0, 0, time.UTC)
	assert.Equal(t, "SCSJ2013-02-1-8-20250303@ttms", EventUID("SCSJ2013-02-1-8", day))
}
