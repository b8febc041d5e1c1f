package application

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aree6/SECJ3104-TTMS/internal/logging"
	"github.com/aree6/SECJ3104-TTMS/internal/persistence"
	"github.com/aree6/SECJ3104-TTMS/internal/recurrence"
)

func TestCalendarService(t *testing.T) {
	t.Parallel()

	myt := time.FixedZone("MYT", 8*60*60)
	// Two teaching weeks: Monday 7 Oct to Friday 18 Oct 2024.
	startsOn := time.Date(2024, time.October, 7, 0, 0, 0, 0, time.UTC)
	endsOn := time.Date(2024, time.October, 18, 0, 0, 0, 0, time.UTC)
	sessions := &sessionRepoStub{sessions: []persistence.AcademicSession{
		{Session: "2024/2025", Semester: 1, StartsOn: &startsOn, EndsOn: &endsOn},
		{Session: "2024/2025", Semester: 2},
	}}
	stamp := time.Date(2024, time.October, 1, 9, 0, 0, 0, myt)

	newService := func(students *studentRepoStub, lecturers *lecturerRepoStub) *CalendarService {
		return NewCalendarServiceWithLogger(students, lecturers, sessions, recurrence.NewEngine(myt), func() time.Time { return stamp }, logging.Discard())
	}

	t.Run("student export repeats each class weekly", func(t *testing.T) {
		t.Parallel()

		students := newStudentRepo()
		students.rows = []persistence.TimetableRow{
			row("SECJ3104", "01", 1, 2), // Monday 08:00
			row("SECJ3203", "02", 3, 6), // Wednesday 12:00
		}
		svc := newService(students, newLecturerRepo())

		doc, err := svc.ExportStudentTimetable(context.Background(), "A21EC0001", term)
		require.NoError(t, err)

		cal, err := ics.ParseCalendar(bytes.NewReader(doc))
		require.NoError(t, err)
		events := cal.Events()
		require.Len(t, events, 4)

		first := events[0]
		assert.Equal(t, "SECJ3104-01-1-2-20241007@ttms", first.Id())
		assert.Equal(t, "SECJ3104 - Course SECJ3104", first.GetProperty(ics.ComponentPropertySummary).Value)
		assert.Equal(t, "BK1", first.GetProperty(ics.ComponentPropertyLocation).Value)
		// 08:00 MYT is midnight UTC.
		assert.Equal(t, "20241007T000000Z", first.GetProperty(ics.ComponentPropertyDtStart).Value)
		assert.Equal(t, "20241009T040000Z", events[1].GetProperty(ics.ComponentPropertyDtStart).Value)
		assert.Equal(t, "SECJ3104-01-1-2-20241014@ttms", events[2].Id())
	})

	t.Run("lecturer export", func(t *testing.T) {
		t.Parallel()

		lecturers := newLecturerRepo()
		lecturers.rows = []persistence.TimetableRow{row("SECJ3104", "01", 5, 1)}
		svc := newService(newStudentRepo(), lecturers)

		doc, err := svc.ExportLecturerTimetable(context.Background(), 1001, term)
		require.NoError(t, err)

		cal, err := ics.ParseCalendar(bytes.NewReader(doc))
		require.NoError(t, err)
		assert.Len(t, cal.Events(), 2)
	})

	t.Run("session without teaching dates", func(t *testing.T) {
		t.Parallel()

		svc := newService(newStudentRepo(), newLecturerRepo())
		_, err := svc.ExportStudentTimetable(context.Background(), "A21EC0001", Term{Session: "2024/2025", Semester: 2})
		requireFailure(t, err, http.StatusUnprocessableEntity, "Academic session has no teaching dates.")
	})

	t.Run("unknown session and subject", func(t *testing.T) {
		t.Parallel()

		svc := newService(newStudentRepo(), newLecturerRepo())
		_, err := svc.ExportStudentTimetable(context.Background(), "A21EC0001", Term{Session: "2030/2031", Semester: 1})
		requireFailure(t, err, http.StatusNotFound, "Academic session not found")

		_, err = svc.ExportStudentTimetable(context.Background(), "Z99", term)
		requireFailure(t, err, http.StatusNotFound, "Student not found")

		_, err = svc.ExportLecturerTimetable(context.Background(), 9, term)
		requireFailure(t, err, http.StatusNotFound, "Lecturer not found")
	})
}
