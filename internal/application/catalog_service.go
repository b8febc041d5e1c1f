package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aree6/SECJ3104-TTMS/internal/persistence"
	"github.com/aree6/SECJ3104-TTMS/internal/scheduler"
)

// CatalogDocument is the JSON form of a bulk import. Passwords are plain text
// and hashed on import.
type CatalogDocument struct {
	Sessions      []CatalogSession      `json:"sessions"`
	Courses       []CatalogCourse       `json:"courses"`
	Venues        []CatalogVenue        `json:"venues"`
	Lecturers     []CatalogLecturer     `json:"lecturers"`
	Students      []CatalogStudent      `json:"students"`
	Sections      []CatalogSection      `json:"sections"`
	Schedules     []CatalogSchedule     `json:"schedules"`
	Registrations []CatalogRegistration `json:"registrations"`
}

type CatalogSession struct {
	Session  string `json:"session"`
	Semester int    `json:"semester"`
	StartsOn string `json:"starts_on,omitempty"`
	EndsOn   string `json:"ends_on,omitempty"`
}

type CatalogCourse struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Credit int    `json:"credit"`
}

type CatalogVenue struct {
	Code      string `json:"code"`
	ShortName string `json:"short_name"`
	Name      string `json:"name"`
	Capacity  int    `json:"capacity"`
}

type CatalogLecturer struct {
	WorkerNo int64  `json:"worker_no"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type CatalogStudent struct {
	MatricNo   string `json:"matric_no"`
	Name       string `json:"name"`
	CourseCode string `json:"course_code"`
	Password   string `json:"password"`
}

type CatalogSection struct {
	CourseCode string `json:"course_code"`
	Section    string `json:"section"`
	Session    string `json:"session"`
	Semester   int    `json:"semester"`
	LecturerNo *int64 `json:"lecturer_no,omitempty"`
}

// CatalogSchedule places a section on a weekday (1 = Monday) and slot code.
type CatalogSchedule struct {
	CourseCode string  `json:"course_code"`
	Section    string  `json:"section"`
	Session    string  `json:"session"`
	Semester   int     `json:"semester"`
	Day        int     `json:"day"`
	Time       int     `json:"time"`
	VenueCode  *string `json:"venue_code,omitempty"`
}

type CatalogRegistration struct {
	MatricNo   string `json:"matric_no"`
	CourseCode string `json:"course_code"`
	Section    string `json:"section"`
	Session    string `json:"session"`
	Semester   int    `json:"semester"`
}

// ImportSummary counts what an import wrote.
type ImportSummary struct {
	Sessions      int
	Courses       int
	Venues        int
	Lecturers     int
	Students      int
	Sections      int
	Schedules     int
	Registrations int
}

// CatalogService loads reference and timetable data in bulk.
type CatalogService struct {
	catalog persistence.CatalogRepository
	params  Argon2idParams
	logger  *slog.Logger
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(catalog persistence.CatalogRepository, params Argon2idParams) *CatalogService {
	return NewCatalogServiceWithLogger(catalog, params, nil)
}

// NewCatalogServiceWithLogger constructs a CatalogService with a specified logger.
func NewCatalogServiceWithLogger(catalog persistence.CatalogRepository, params Argon2idParams, logger *slog.Logger) *CatalogService {
	return &CatalogService{catalog: catalog, params: params, logger: defaultLogger(logger)}
}

func (s *CatalogService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "CatalogService", operation, attrs...)
}

// Import validates doc, hashes its passwords and stores it atomically.
func (s *CatalogService) Import(ctx context.Context, doc CatalogDocument) (summary ImportSummary, err error) {
	if s == nil {
		err = fmt.Errorf("CatalogService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Import")
	defer func() {
		err = fail(err, "")
		if err != nil {
			logger.ErrorContext(ctx, "catalog import failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With(
			"sessions", summary.Sessions,
			"sections", summary.Sections,
			"schedules", summary.Schedules,
			"registrations", summary.Registrations,
		).InfoContext(ctx, "catalog imported")
	}()

	var catalog persistence.Catalog
	if catalog, err = s.convert(doc); err != nil {
		return
	}
	if err = s.catalog.Import(ctx, catalog); err != nil {
		return
	}

	summary = ImportSummary{
		Sessions:      len(catalog.Sessions),
		Courses:       len(catalog.Courses),
		Venues:        len(catalog.Venues),
		Lecturers:     len(catalog.Lecturers),
		Students:      len(catalog.Students),
		Sections:      len(catalog.Sections),
		Schedules:     len(catalog.Schedules),
		Registrations: len(catalog.Registrations),
	}
	return
}

func (s *CatalogService) convert(doc CatalogDocument) (persistence.Catalog, error) {
	var catalog persistence.Catalog

	for i, in := range doc.Sessions {
		term := Term{Session: in.Session, Semester: in.Semester}
		if err := validateTerm(term); err != nil {
			return catalog, fmt.Errorf("sessions[%d]: %w", i, err)
		}
		startsOn, err := parseImportDate(in.StartsOn)
		if err != nil {
			return catalog, NewValidationError("starts_on", fmt.Sprintf("sessions[%d]: invalid starts_on %q", i, in.StartsOn))
		}
		endsOn, err := parseImportDate(in.EndsOn)
		if err != nil {
			return catalog, NewValidationError("ends_on", fmt.Sprintf("sessions[%d]: invalid ends_on %q", i, in.EndsOn))
		}
		if startsOn != nil && endsOn != nil && endsOn.Before(*startsOn) {
			return catalog, NewValidationError("ends_on", fmt.Sprintf("sessions[%d]: ends before it starts", i))
		}
		catalog.Sessions = append(catalog.Sessions, persistence.AcademicSession{
			Session: in.Session, Semester: in.Semester, StartsOn: startsOn, EndsOn: endsOn,
		})
	}
	for _, in := range doc.Courses {
		catalog.Courses = append(catalog.Courses, persistence.Course{Code: in.Code, Name: in.Name, Credit: in.Credit})
	}
	for _, in := range doc.Venues {
		catalog.Venues = append(catalog.Venues, persistence.Venue{Code: in.Code, ShortName: in.ShortName, Name: in.Name, Capacity: in.Capacity})
	}
	for _, in := range doc.Lecturers {
		hash, err := CreatePasswordHash(in.Password, s.params)
		if err != nil {
			return catalog, fmt.Errorf("hash password of lecturer %d: %w", in.WorkerNo, err)
		}
		catalog.Lecturers = append(catalog.Lecturers, persistence.Lecturer{WorkerNo: in.WorkerNo, Name: in.Name, PasswordHash: hash})
	}
	for _, in := range doc.Students {
		hash, err := CreatePasswordHash(in.Password, s.params)
		if err != nil {
			return catalog, fmt.Errorf("hash password of student %s: %w", in.MatricNo, err)
		}
		catalog.Students = append(catalog.Students, persistence.Student{MatricNo: in.MatricNo, Name: in.Name, CourseCode: in.CourseCode, PasswordHash: hash})
	}
	for _, in := range doc.Sections {
		catalog.Sections = append(catalog.Sections, persistence.CourseSection{
			CourseCode: in.CourseCode, Section: in.Section, Session: in.Session, Semester: in.Semester, LecturerNo: in.LecturerNo,
		})
	}
	for i, in := range doc.Schedules {
		if !scheduler.Weekday(in.Day).Valid() {
			return catalog, NewValidationError("day", fmt.Sprintf("schedules[%d]: invalid day %d", i, in.Day))
		}
		if _, err := scheduler.ResolveSlot(scheduler.SlotCode(in.Time)); err != nil {
			return catalog, NewValidationError("time", fmt.Sprintf("schedules[%d]: invalid time slot %d", i, in.Time))
		}
		catalog.Schedules = append(catalog.Schedules, persistence.ScheduleSlot{
			CourseCode: in.CourseCode, Section: in.Section, Session: in.Session, Semester: in.Semester,
			Day: in.Day, Time: in.Time, VenueCode: in.VenueCode,
		})
	}
	for _, in := range doc.Registrations {
		catalog.Registrations = append(catalog.Registrations, persistence.Registration{
			MatricNo: in.MatricNo, CourseCode: in.CourseCode, Section: in.Section, Session: in.Session, Semester: in.Semester,
		})
	}
	return catalog, nil
}

func parseImportDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
