package application

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/aree6/SECJ3104-TTMS/internal/persistence"
)

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

// row builds a timetable row in venue BK1 taught by lecturer 1001.
func row(course, section string, day, slot int) persistence.TimetableRow {
	return persistence.TimetableRow{
		CourseCode:     course,
		CourseName:     "Course " + course,
		Section:        section,
		Day:            day,
		Time:           slot,
		VenueCode:      strPtr("BK1"),
		VenueShortName: strPtr("BK1"),
		LecturerNo:     int64Ptr(1001),
		LecturerName:   strPtr("Dr. Aminah"),
	}
}

type timetableCall struct {
	subject  string
	session  string
	semester int
}

type studentRepoStub struct {
	students  map[string]persistence.Student
	getErr    error
	rows      []persistence.TimetableRow
	rowsErr   error
	hits      []persistence.StudentSearchEntry
	searchErr error

	timetableCalls []timetableCall
	searchQuery    string
	searchLimit    int
	searchOffset   int
}

func (r *studentRepoStub) GetByMatricNo(ctx context.Context, matricNo string) (persistence.Student, error) {
	if r.getErr != nil {
		return persistence.Student{}, r.getErr
	}
	student, ok := r.students[matricNo]
	if !ok {
		return persistence.Student{}, persistence.ErrNotFound
	}
	return student, nil
}

func (r *studentRepoStub) GetTimetable(ctx context.Context, matricNo, session string, semester int) ([]persistence.TimetableRow, error) {
	r.timetableCalls = append(r.timetableCalls, timetableCall{subject: matricNo, session: session, semester: semester})
	if r.rowsErr != nil {
		return nil, r.rowsErr
	}
	return r.rows, nil
}

func (r *studentRepoStub) Search(ctx context.Context, session string, semester int, query string, limit, offset int) ([]persistence.StudentSearchEntry, error) {
	r.searchQuery, r.searchLimit, r.searchOffset = query, limit, offset
	if r.searchErr != nil {
		return nil, r.searchErr
	}
	return r.hits, nil
}

type lecturerRepoStub struct {
	lecturers map[int64]persistence.Lecturer
	getErr    error
	rows      []persistence.TimetableRow
	rowsErr   error
	hits      []persistence.Lecturer
	searchErr error
}

func (r *lecturerRepoStub) GetByWorkerNo(ctx context.Context, workerNo int64) (persistence.Lecturer, error) {
	if r.getErr != nil {
		return persistence.Lecturer{}, r.getErr
	}
	lecturer, ok := r.lecturers[workerNo]
	if !ok {
		return persistence.Lecturer{}, persistence.ErrNotFound
	}
	return lecturer, nil
}

func (r *lecturerRepoStub) GetTimetable(ctx context.Context, workerNo int64, session string, semester int) ([]persistence.TimetableRow, error) {
	if r.rowsErr != nil {
		return nil, r.rowsErr
	}
	return r.rows, nil
}

func (r *lecturerRepoStub) Search(ctx context.Context, session string, semester int, query string, limit, offset int) ([]persistence.Lecturer, error) {
	if r.searchErr != nil {
		return nil, r.searchErr
	}
	return r.hits, nil
}

type venueRepoStub struct {
	venues  map[string]persistence.Venue
	rows    []persistence.TimetableRow
	rowsErr error
}

func (r *venueRepoStub) GetByCode(ctx context.Context, code string) (persistence.Venue, error) {
	venue, ok := r.venues[code]
	if !ok {
		return persistence.Venue{}, persistence.ErrNotFound
	}
	return venue, nil
}

func (r *venueRepoStub) GetTimetable(ctx context.Context, code, session string, semester int) ([]persistence.TimetableRow, error) {
	if r.rowsErr != nil {
		return nil, r.rowsErr
	}
	return r.rows, nil
}

type sessionRepoStub struct {
	sessions []persistence.AcademicSession
	listErr  error
}

func (r *sessionRepoStub) ListSessions(ctx context.Context) ([]persistence.AcademicSession, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.sessions, nil
}

func (r *sessionRepoStub) GetSession(ctx context.Context, session string, semester int) (persistence.AcademicSession, error) {
	for _, s := range r.sessions {
		if s.Session == session && s.Semester == semester {
			return s, nil
		}
	}
	return persistence.AcademicSession{}, persistence.ErrNotFound
}

type courseRepoStub struct {
	schedules []persistence.SectionSchedule
	err       error
}

func (r *courseRepoStub) GetByCode(ctx context.Context, code string) (persistence.Course, error) {
	return persistence.Course{}, persistence.ErrNotFound
}

func (r *courseRepoStub) GetSchedulesForAnalytics(ctx context.Context, session string, semester int) ([]persistence.SectionSchedule, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.schedules, nil
}

// authSessionRepoStub keeps login sessions in memory.
type authSessionRepoStub struct {
	mu       sync.Mutex
	byToken  map[string]persistence.AuthSession
	getCalls int

	createErr error
	deleteErr error

	deleteCalls []time.Time
}

func newAuthSessionRepoStub() *authSessionRepoStub {
	return &authSessionRepoStub{byToken: make(map[string]persistence.AuthSession)}
}

func (s *authSessionRepoStub) CreateSession(ctx context.Context, session persistence.AuthSession) (persistence.AuthSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return persistence.AuthSession{}, s.createErr
	}
	s.byToken[session.Token] = session
	return session, nil
}

func (s *authSessionRepoStub) GetSession(ctx context.Context, token string) (persistence.AuthSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getCalls++
	session, ok := s.byToken[strings.TrimSpace(token)]
	if !ok {
		return persistence.AuthSession{}, persistence.ErrNotFound
	}
	return session, nil
}

func (s *authSessionRepoStub) RevokeSession(ctx context.Context, token string, revokedAt time.Time) (persistence.AuthSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.byToken[token]
	if !ok {
		return persistence.AuthSession{}, persistence.ErrNotFound
	}
	session.RevokedAt = &revokedAt
	s.byToken[token] = session
	return session, nil
}

func (s *authSessionRepoStub) DeleteExpiredSessions(ctx context.Context, reference time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return 0, s.deleteErr
	}
	s.deleteCalls = append(s.deleteCalls, reference)
	var deleted int64
	for token, session := range s.byToken {
		if !session.ExpiresAt.After(reference) {
			delete(s.byToken, token)
			deleted++
		}
	}
	return deleted, nil
}

type catalogRepoStub struct {
	imported *persistence.Catalog
	err      error
}

func (r *catalogRepoStub) Import(ctx context.Context, catalog persistence.Catalog) error {
	if r.err != nil {
		return r.err
	}
	r.imported = &catalog
	return nil
}
