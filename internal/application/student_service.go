package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aree6/SECJ3104-TTMS/internal/persistence"
	"github.com/aree6/SECJ3104-TTMS/internal/scheduler"
)

const studentNotFound = "Student not found"

// StudentService serves student lookups and timetables.
type StudentService struct {
	students persistence.StudentRepository
	lunch    scheduler.LunchWindow
	logger   *slog.Logger
}

// NewStudentService constructs a StudentService.
func NewStudentService(students persistence.StudentRepository) *StudentService {
	return NewStudentServiceWithLogger(students, nil)
}

// NewStudentServiceWithLogger constructs a StudentService with a specified logger.
func NewStudentServiceWithLogger(students persistence.StudentRepository, logger *slog.Logger) *StudentService {
	return &StudentService{
		students: students,
		lunch:    scheduler.DefaultLunchWindow,
		logger:   defaultLogger(logger),
	}
}

func (s *StudentService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "StudentService", operation, attrs...)
}

// GetStudent returns the student with the given matric number.
func (s *StudentService) GetStudent(ctx context.Context, matricNo string) (student Student, err error) {
	if s == nil {
		err = fmt.Errorf("StudentService is nil")
		return
	}

	matricNo = strings.TrimSpace(matricNo)
	logger := s.loggerWith(ctx, "GetStudent", "matric_no", matricNo)
	defer func() {
		err = fail(err, studentNotFound)
		if err != nil {
			logger.ErrorContext(ctx, "failed to get student", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "student retrieved")
	}()

	if matricNo == "" {
		err = NewValidationError("matric_no", "Matric number is required.")
		return
	}

	var record persistence.Student
	record, err = s.students.GetByMatricNo(ctx, matricNo)
	if err != nil {
		err = mapRepoError(err)
		return
	}
	student = Student{MatricNo: record.MatricNo, Name: record.Name, CourseCode: record.CourseCode}
	return
}

// GetTimetable returns the student's registered slots for the term.
func (s *StudentService) GetTimetable(ctx context.Context, matricNo string, term Term) (entries []TimetableEntry, err error) {
	if s == nil {
		err = fmt.Errorf("StudentService is nil")
		return
	}

	matricNo = strings.TrimSpace(matricNo)
	logger := s.loggerWith(ctx, "GetTimetable",
		"matric_no", matricNo,
		"session", term.Session,
		"semester", term.Semester,
	)
	defer func() {
		err = fail(err, studentNotFound)
		if err != nil {
			logger.ErrorContext(ctx, "failed to get student timetable", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(entries)).InfoContext(ctx, "student timetable retrieved")
	}()

	var rows []persistence.TimetableRow
	if rows, err = s.timetableRows(ctx, matricNo, term); err != nil {
		return
	}
	entries, err = timetableEntries(rows)
	return
}

// GetTimetableView returns the student's week with clashes and gaps marked.
func (s *StudentService) GetTimetableView(ctx context.Context, matricNo string, term Term) (view []scheduler.DayView, err error) {
	if s == nil {
		err = fmt.Errorf("StudentService is nil")
		return
	}

	matricNo = strings.TrimSpace(matricNo)
	logger := s.loggerWith(ctx, "GetTimetableView",
		"matric_no", matricNo,
		"session", term.Session,
		"semester", term.Semester,
	)
	defer func() {
		err = fail(err, studentNotFound)
		if err != nil {
			logger.ErrorContext(ctx, "failed to build student timetable view", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("days", len(view)).InfoContext(ctx, "student timetable view built")
	}()

	var rows []persistence.TimetableRow
	if rows, err = s.timetableRows(ctx, matricNo, term); err != nil {
		return
	}
	view, err = buildView(rows, s.lunch)
	return
}

// Search finds students active in the term by name or matric number.
func (s *StudentService) Search(ctx context.Context, params SearchParams) (students []Student, err error) {
	if s == nil {
		err = fmt.Errorf("StudentService is nil")
		return
	}

	params.Query = strings.TrimSpace(params.Query)
	logger := s.loggerWith(ctx, "Search",
		"session", params.Term.Session,
		"semester", params.Term.Semester,
		"limit", params.Limit,
		"offset", params.Offset,
	)
	defer func() {
		err = fail(err, "")
		if err != nil {
			logger.ErrorContext(ctx, "student search failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(students)).InfoContext(ctx, "students searched")
	}()

	if err = validateSearch(params); err != nil {
		return
	}

	var hits []persistence.StudentSearchEntry
	hits, err = s.students.Search(ctx, params.Term.Session, params.Term.Semester, params.Query, params.Limit, params.Offset)
	if err != nil {
		return
	}

	students = make([]Student, len(hits))
	for i, hit := range hits {
		students[i] = Student{MatricNo: hit.MatricNo, Name: hit.Name, CourseCode: hit.CourseCode}
	}
	return
}

func (s *StudentService) timetableRows(ctx context.Context, matricNo string, term Term) ([]persistence.TimetableRow, error) {
	if err := validateTerm(term); err != nil {
		return nil, err
	}
	if matricNo == "" {
		return nil, NewValidationError("matric_no", "Matric number is required.")
	}
	if _, err := s.students.GetByMatricNo(ctx, matricNo); err != nil {
		return nil, mapRepoError(err)
	}
	return s.students.GetTimetable(ctx, matricNo, term.Session, term.Semester)
}
