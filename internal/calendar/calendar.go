// Package calendar renders expanded class occurrences as an iCalendar document.
package calendar

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
)

// ContentType is the media type of an encoded document.
const ContentType = "text/calendar; charset=utf-8"

const productID = "-//UTM//TTMS Timetable//EN"

// Event is one dated class meeting.
type Event struct {
	UID         string
	Summary     string
	Location    string
	Description string
	Start       time.Time
	End         time.Time
}

// Document is a named set of events.
type Document struct {
	Name     string
	Timezone string
	Stamp    time.Time
	Events   []Event
}

// Encode serialises doc as an iCalendar (RFC 5545) document.
func Encode(doc Document) ([]byte, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	if doc.Name != "" {
		cal.SetXWRCalName(doc.Name)
	}
	if doc.Timezone != "" {
		cal.SetXWRTimezone(doc.Timezone)
	}

	stamp := doc.Stamp
	if stamp.IsZero() {
		stamp = time.Now()
	}

	seen := make(map[string]struct{}, len(doc.Events))
	for _, e := range doc.Events {
		uid := strings.TrimSpace(e.UID)
		if uid == "" {
			return nil, fmt.Errorf("calendar: event %q has no uid", e.Summary)
		}
		if _, dup := seen[uid]; dup {
			return nil, fmt.Errorf("calendar: duplicate event uid %q", uid)
		}
		seen[uid] = struct{}{}
		if !e.End.After(e.Start) {
			return nil, fmt.Errorf("calendar: event %q ends before it starts", uid)
		}

		event := cal.AddEvent(uid)
		event.SetDtStampTime(stamp)
		event.SetStartAt(e.Start)
		event.SetEndAt(e.End)
		event.SetSummary(e.Summary)
		if e.Location != "" {
			event.SetLocation(e.Location)
		}
		if e.Description != "" {
			event.SetDescription(e.Description)
		}
	}

	return []byte(cal.Serialize()), nil
}

// EventUID derives a stable identifier for the meeting of classID on the date of start.
func EventUID(classID string, start time.Time) string {
	return fmt.Sprintf("%s-%s@ttms", classID, start.Format("20060102"))
}
