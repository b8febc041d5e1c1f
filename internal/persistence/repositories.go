package persistence

import (
	"context"
	"time"
)

// StudentRepository reads students and their timetables.
type StudentRepository interface {
	GetByMatricNo(ctx context.Context, matricNo string) (Student, error)
	// GetTimetable returns the rows for every section the student is registered in
	// for exactly the given session and semester, ordered by day, slot, course and section.
	GetTimetable(ctx context.Context, matricNo, session string, semester int) ([]TimetableRow, error)
	// Search matches name or matric number case-insensitively among students
	// registered in the given session and semester.
	Search(ctx context.Context, session string, semester int, query string, limit, offset int) ([]StudentSearchEntry, error)
}

// LecturerRepository reads lecturers and their timetables.
type LecturerRepository interface {
	GetByWorkerNo(ctx context.Context, workerNo int64) (Lecturer, error)
	GetTimetable(ctx context.Context, workerNo int64, session string, semester int) ([]TimetableRow, error)
	// Search matches name or worker number among lecturers teaching in the given
	// session and semester.
	Search(ctx context.Context, session string, semester int, query string, limit, offset int) ([]Lecturer, error)
}

// VenueRepository reads venues and what is scheduled in them.
type VenueRepository interface {
	GetByCode(ctx context.Context, code string) (Venue, error)
	GetTimetable(ctx context.Context, code, session string, semester int) ([]TimetableRow, error)
}

// CourseRepository reads the course catalogue.
type CourseRepository interface {
	GetByCode(ctx context.Context, code string) (Course, error)
	GetSchedulesForAnalytics(ctx context.Context, session string, semester int) ([]SectionSchedule, error)
}

// AcademicSessionRepository lists academic sessions.
type AcademicSessionRepository interface {
	ListSessions(ctx context.Context) ([]AcademicSession, error)
	GetSession(ctx context.Context, session string, semester int) (AcademicSession, error)
}

// AuthSessionRepository stores login session state.
type AuthSessionRepository interface {
	CreateSession(ctx context.Context, session AuthSession) (AuthSession, error)
	GetSession(ctx context.Context, token string) (AuthSession, error)
	RevokeSession(ctx context.Context, token string, revokedAt time.Time) (AuthSession, error)
	DeleteExpiredSessions(ctx context.Context, reference time.Time) (int64, error)
}

// CatalogRepository loads bulk catalogue data.
type CatalogRepository interface {
	Import(ctx context.Context, catalog Catalog) error
}
