package application

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aree6/SECJ3104-TTMS/internal/logging"
)

func catalogDocument() CatalogDocument {
	venue := "N28-BK1"
	lecturer := int64(1001)
	return CatalogDocument{
		Sessions:  []CatalogSession{{Session: "2024/2025", Semester: 1, StartsOn: "2024-10-07", EndsOn: "2025-02-14"}},
		Courses:   []CatalogCourse{{Code: "SECJ3104", Name: "Application Development", Credit: 4}},
		Venues:    []CatalogVenue{{Code: venue, ShortName: "BK1", Name: "Bilik Kuliah 1", Capacity: 60}},
		Lecturers: []CatalogLecturer{{WorkerNo: lecturer, Name: "Dr. Aminah", Password: "lecturer-pass"}},
		Students:  []CatalogStudent{{MatricNo: "A21EC0001", Name: "Nur Aisyah", CourseCode: "SECJH", Password: "student-pass"}},
		Sections: []CatalogSection{
			{CourseCode: "SECJ3104", Section: "01", Session: "2024/2025", Semester: 1, LecturerNo: &lecturer},
		},
		Schedules: []CatalogSchedule{
			{CourseCode: "SECJ3104", Section: "01", Session: "2024/2025", Semester: 1, Day: 1, Time: 2, VenueCode: &venue},
			{CourseCode: "SECJ3104", Section: "01", Session: "2024/2025", Semester: 1, Day: 1, Time: 3, VenueCode: &venue},
		},
		Registrations: []CatalogRegistration{
			{MatricNo: "A21EC0001", CourseCode: "SECJ3104", Section: "01", Session: "2024/2025", Semester: 1},
		},
	}
}

func TestCatalogService_Import(t *testing.T) {
	t.Parallel()

	t.Run("hashes passwords and stores everything", func(t *testing.T) {
		t.Parallel()

		repo := &catalogRepoStub{}
		svc := NewCatalogServiceWithLogger(repo, testHashParams, logging.Discard())

		summary, err := svc.Import(context.Background(), catalogDocument())
		require.NoError(t, err)
		assert.Equal(t, ImportSummary{
			Sessions: 1, Courses: 1, Venues: 1, Lecturers: 1, Students: 1,
			Sections: 1, Schedules: 2, Registrations: 1,
		}, summary)

		require.NotNil(t, repo.imported)
		stored := repo.imported
		require.NotNil(t, stored.Sessions[0].StartsOn)
		assert.Equal(t, time.Date(2024, time.October, 7, 0, 0, 0, 0, time.UTC), *stored.Sessions[0].StartsOn)
		assert.NoError(t, VerifyPassword(stored.Students[0].PasswordHash, "student-pass"))
		assert.NoError(t, VerifyPassword(stored.Lecturers[0].PasswordHash, "lecturer-pass"))
		assert.Equal(t, "N28-BK1", *stored.Schedules[1].VenueCode)
	})

	t.Run("rejects invalid rows before writing", func(t *testing.T) {
		t.Parallel()

		cases := map[string]struct {
			mutate  func(*CatalogDocument)
			message string
		}{
			"bad session format": {
				mutate:  func(d *CatalogDocument) { d.Sessions[0].Session = "2024" },
				message: "Invalid session format. Expected format: YYYY/YYYY.",
			},
			"bad date": {
				mutate:  func(d *CatalogDocument) { d.Sessions[0].StartsOn = "07/10/2024" },
				message: `sessions[0]: invalid starts_on "07/10/2024"`,
			},
			"dates reversed": {
				mutate:  func(d *CatalogDocument) { d.Sessions[0].EndsOn = "2024-01-01" },
				message: "sessions[0]: ends before it starts",
			},
			"bad day": {
				mutate:  func(d *CatalogDocument) { d.Schedules[1].Day = 9 },
				message: "schedules[1]: invalid day 9",
			},
			"bad slot": {
				mutate:  func(d *CatalogDocument) { d.Schedules[0].Time = 99 },
				message: "schedules[0]: invalid time slot 99",
			},
		}

		for name, tc := range cases {
			tc := tc
			t.Run(name, func(t *testing.T) {
				t.Parallel()

				repo := &catalogRepoStub{}
				svc := NewCatalogServiceWithLogger(repo, testHashParams, logging.Discard())
				doc := catalogDocument()
				tc.mutate(&doc)

				_, err := svc.Import(context.Background(), doc)
				requireFailure(t, err, http.StatusBadRequest, tc.message)
				assert.Nil(t, repo.imported)
			})
		}
	})

	t.Run("storage failure", func(t *testing.T) {
		t.Parallel()

		repo := &catalogRepoStub{err: errors.New("constraint failed")}
		svc := NewCatalogServiceWithLogger(repo, testHashParams, logging.Discard())
		_, err := svc.Import(context.Background(), catalogDocument())
		requireFailure(t, err, http.StatusInternalServerError, "Internal server error")
	})
}
