package application

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aree6/SECJ3104-TTMS/internal/logging"
	"github.com/aree6/SECJ3104-TTMS/internal/persistence"
	"github.com/aree6/SECJ3104-TTMS/internal/scheduler"
)

var term = Term{Session: "2024/2025", Semester: 1}

func newStudentRepo() *studentRepoStub {
	return &studentRepoStub{
		students: map[string]persistence.Student{
			"A21EC0001": {MatricNo: "A21EC0001", Name: "Nur Aisyah", CourseCode: "SECJH"},
		},
	}
}

func requireFailure(t *testing.T, err error, status int, message string) {
	t.Helper()
	var failure *Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, status, failure.Status)
	assert.Equal(t, message, failure.Message)
}

func TestStudentService_GetStudent(t *testing.T) {
	t.Parallel()

	t.Run("returns the student without the password hash", func(t *testing.T) {
		t.Parallel()

		repo := newStudentRepo()
		svc := NewStudentServiceWithLogger(repo, logging.Discard())

		student, err := svc.GetStudent(context.Background(), " A21EC0001 ")
		require.NoError(t, err)
		assert.Equal(t, Student{MatricNo: "A21EC0001", Name: "Nur Aisyah", CourseCode: "SECJH"}, student)
	})

	t.Run("unknown student is a 404", func(t *testing.T) {
		t.Parallel()

		svc := NewStudentServiceWithLogger(newStudentRepo(), logging.Discard())
		_, err := svc.GetStudent(context.Background(), "B00000000")
		requireFailure(t, err, http.StatusNotFound, "Student not found")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing matric number", func(t *testing.T) {
		t.Parallel()

		svc := NewStudentServiceWithLogger(newStudentRepo(), logging.Discard())
		_, err := svc.GetStudent(context.Background(), "  ")
		requireFailure(t, err, http.StatusBadRequest, "Matric number is required.")
	})

	t.Run("nil service", func(t *testing.T) {
		t.Parallel()

		var svc *StudentService
		_, err := svc.GetStudent(context.Background(), "A21EC0001")
		assert.EqualError(t, err, "StudentService is nil")
	})
}

func TestStudentService_GetTimetable(t *testing.T) {
	t.Parallel()

	t.Run("resolves slot clock times and scopes the query to the term", func(t *testing.T) {
		t.Parallel()

		repo := newStudentRepo()
		repo.rows = []persistence.TimetableRow{row("SECJ3104", "01", 1, 2), row("SECJ3203", "02", 3, 5)}
		svc := NewStudentServiceWithLogger(repo, logging.Discard())

		entries, err := svc.GetTimetable(context.Background(), "A21EC0001", term)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		assert.Equal(t, scheduler.Monday, entries[0].Day)
		assert.Equal(t, scheduler.Clock(8, 0), entries[0].Start)
		assert.Equal(t, scheduler.Clock(9, 0), entries[0].End)
		assert.Equal(t, scheduler.Clock(11, 0), entries[1].Start)

		require.Len(t, repo.timetableCalls, 1)
		assert.Equal(t, timetableCall{subject: "A21EC0001", session: "2024/2025", semester: 1}, repo.timetableCalls[0])
	})

	t.Run("validates the term before touching storage", func(t *testing.T) {
		t.Parallel()

		cases := []struct {
			term    Term
			message string
		}{
			{Term{Semester: 1}, "Academic session is required."},
			{Term{Session: "2024-2025", Semester: 1}, "Invalid session format. Expected format: YYYY/YYYY."},
			{Term{Session: "2024/2025"}, "Semester is required."},
			{Term{Session: "2024/2025", Semester: 4}, "Invalid semester format. Expected format: 1, 2, or 3."},
		}
		for _, tc := range cases {
			repo := newStudentRepo()
			svc := NewStudentServiceWithLogger(repo, logging.Discard())

			_, err := svc.GetTimetable(context.Background(), "A21EC0001", tc.term)
			requireFailure(t, err, http.StatusBadRequest, tc.message)
			assert.Empty(t, repo.timetableCalls)
		}
	})

	t.Run("unknown slot code is an internal error", func(t *testing.T) {
		t.Parallel()

		repo := newStudentRepo()
		repo.rows = []persistence.TimetableRow{row("SECJ3104", "01", 1, 13)}
		svc := NewStudentServiceWithLogger(repo, logging.Discard())

		_, err := svc.GetTimetable(context.Background(), "A21EC0001", term)
		requireFailure(t, err, http.StatusInternalServerError, "Internal server error")
		assert.ErrorIs(t, err, scheduler.ErrUnknownSlotCode)
	})

	t.Run("storage failure is an opaque internal error", func(t *testing.T) {
		t.Parallel()

		repo := newStudentRepo()
		repo.rowsErr = errors.New("database is locked")
		svc := NewStudentServiceWithLogger(repo, logging.Discard())

		_, err := svc.GetTimetable(context.Background(), "A21EC0001", term)
		requireFailure(t, err, http.StatusInternalServerError, "Internal server error")
	})

	t.Run("unknown student is a 404", func(t *testing.T) {
		t.Parallel()

		svc := NewStudentServiceWithLogger(newStudentRepo(), logging.Discard())
		_, err := svc.GetTimetable(context.Background(), "Z99", term)
		requireFailure(t, err, http.StatusNotFound, "Student not found")
	})
}

func TestStudentService_GetTimetableView(t *testing.T) {
	t.Parallel()

	t.Run("marks clashes and gaps", func(t *testing.T) {
		t.Parallel()

		repo := newStudentRepo()
		repo.rows = []persistence.TimetableRow{
			row("SECJ3104", "01", 1, 2), // 08:00-09:00
			row("SECJ3203", "01", 1, 2), // clashes
			row("SECJ3303", "01", 1, 5), // 11:00-12:00
			row("SECJ3483", "01", 1, 8), // 14:00-15:00, straddles lunch
		}
		svc := NewStudentServiceWithLogger(repo, logging.Discard())

		view, err := svc.GetTimetableView(context.Background(), "A21EC0001", term)
		require.NoError(t, err)
		require.Len(t, view, 5)

		monday := view[0]
		require.Equal(t, scheduler.Monday, monday.Day)
		require.Len(t, monday.Entries, 4)
		assert.True(t, monday.Entries[0].IsClash)
		assert.True(t, monday.Entries[1].IsClash)
		assert.False(t, monday.Entries[2].IsClash)

		require.NotNil(t, monday.Entries[2].Gap)
		assert.Equal(t, scheduler.GapPlain, monday.Entries[2].Gap.Type)

		gap := monday.Entries[3].Gap
		require.NotNil(t, gap)
		assert.Equal(t, scheduler.GapAfterLunch, gap.Type)
		assert.Equal(t, "1 hr lunch break + 1 hr gap", gap.Label(scheduler.AudienceStudent))

		for _, day := range view[1:] {
			assert.Empty(t, day.Entries)
		}
	})

	t.Run("row without venue is malformed", func(t *testing.T) {
		t.Parallel()

		repo := newStudentRepo()
		bad := row("SECJ3104", "01", 1, 2)
		bad.VenueCode, bad.VenueShortName = nil, nil
		repo.rows = []persistence.TimetableRow{bad}
		svc := NewStudentServiceWithLogger(repo, logging.Discard())

		_, err := svc.GetTimetableView(context.Background(), "A21EC0001", term)
		requireFailure(t, err, http.StatusInternalServerError, "Internal server error")
		assert.ErrorIs(t, err, scheduler.ErrMalformedRow)
	})
}

func TestStudentService_Search(t *testing.T) {
	t.Parallel()

	t.Run("passes pagination through and trims the query", func(t *testing.T) {
		t.Parallel()

		repo := newStudentRepo()
		repo.hits = []persistence.StudentSearchEntry{{MatricNo: "A21EC0001", Name: "Nur Aisyah", CourseCode: "SECJH"}}
		svc := NewStudentServiceWithLogger(repo, logging.Discard())

		got, err := svc.Search(context.Background(), SearchParams{Term: term, Query: "  aisyah ", Limit: 5, Offset: 10})
		require.NoError(t, err)
		assert.Equal(t, []Student{{MatricNo: "A21EC0001", Name: "Nur Aisyah", CourseCode: "SECJH"}}, got)
		assert.Equal(t, "aisyah", repo.searchQuery)
		assert.Equal(t, 5, repo.searchLimit)
		assert.Equal(t, 10, repo.searchOffset)
	})

	t.Run("no hits is an empty list", func(t *testing.T) {
		t.Parallel()

		svc := NewStudentServiceWithLogger(newStudentRepo(), logging.Discard())
		got, err := svc.Search(context.Background(), SearchParams{Term: term, Query: "nobody", Limit: DefaultSearchLimit})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("validation precedence", func(t *testing.T) {
		t.Parallel()

		svc := NewStudentServiceWithLogger(newStudentRepo(), logging.Discard())
		cases := []struct {
			params  SearchParams
			message string
		}{
			{SearchParams{Query: "", Limit: -1}, "Academic session is required."},
			{SearchParams{Term: term, Query: " ", Limit: -1}, "Query is required"},
			{SearchParams{Term: term, Query: "a", Limit: -1, Offset: -1}, "Invalid limit"},
			{SearchParams{Term: term, Query: "a", Offset: -1}, "Invalid offset"},
		}
		for _, tc := range cases {
			_, err := svc.Search(context.Background(), tc.params)
			requireFailure(t, err, http.StatusBadRequest, tc.message)
		}
	})
}
