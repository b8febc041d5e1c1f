package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aree6/SECJ3104-TTMS/internal/calendar"
	"github.com/aree6/SECJ3104-TTMS/internal/persistence"
	"github.com/aree6/SECJ3104-TTMS/internal/recurrence"
	"github.com/aree6/SECJ3104-TTMS/internal/scheduler"
)

// CalendarService exports weekly timetables as dated iCalendar events covering
// the teaching dates of a session.
type CalendarService struct {
	students  persistence.StudentRepository
	lecturers persistence.LecturerRepository
	sessions  persistence.AcademicSessionRepository
	engine    *recurrence.Engine
	now       func() time.Time
	logger    *slog.Logger
}

// NewCalendarService constructs a CalendarService.
func NewCalendarService(students persistence.StudentRepository, lecturers persistence.LecturerRepository, sessions persistence.AcademicSessionRepository, engine *recurrence.Engine, now func() time.Time) *CalendarService {
	return NewCalendarServiceWithLogger(students, lecturers, sessions, engine, now, nil)
}

// NewCalendarServiceWithLogger constructs a CalendarService with a specified logger.
func NewCalendarServiceWithLogger(students persistence.StudentRepository, lecturers persistence.LecturerRepository, sessions persistence.AcademicSessionRepository, engine *recurrence.Engine, now func() time.Time, logger *slog.Logger) *CalendarService {
	if engine == nil {
		engine = recurrence.NewEngine(nil)
	}
	if now == nil {
		now = time.Now
	}
	return &CalendarService{
		students:  students,
		lecturers: lecturers,
		sessions:  sessions,
		engine:    engine,
		now:       now,
		logger:    defaultLogger(logger),
	}
}

func (s *CalendarService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "CalendarService", operation, attrs...)
}

// ExportStudentTimetable renders the student's classes for the term as an
// iCalendar document.
func (s *CalendarService) ExportStudentTimetable(ctx context.Context, matricNo string, term Term) (doc []byte, err error) {
	if s == nil {
		err = fmt.Errorf("CalendarService is nil")
		return
	}

	matricNo = strings.TrimSpace(matricNo)
	logger := s.loggerWith(ctx, "ExportStudentTimetable",
		"matric_no", matricNo,
		"session", term.Session,
		"semester", term.Semester,
	)
	defer func() {
		err = fail(err, studentNotFound)
		if err != nil {
			logger.ErrorContext(ctx, "failed to export student timetable", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("bytes", len(doc)).InfoContext(ctx, "student timetable exported")
	}()

	if err = validateTerm(term); err != nil {
		return
	}
	if matricNo == "" {
		err = NewValidationError("matric_no", "Matric number is required.")
		return
	}

	var session persistence.AcademicSession
	if session, err = s.teachingSession(ctx, term); err != nil {
		return
	}
	if _, err = s.students.GetByMatricNo(ctx, matricNo); err != nil {
		err = mapRepoError(err)
		return
	}

	var rows []persistence.TimetableRow
	if rows, err = s.students.GetTimetable(ctx, matricNo, term.Session, term.Semester); err != nil {
		return
	}
	doc, err = s.render(fmt.Sprintf("Timetable %s %s-%d", matricNo, term.Session, term.Semester), session, rows)
	return
}

// ExportLecturerTimetable renders the lecturer's classes for the term as an
// iCalendar document.
func (s *CalendarService) ExportLecturerTimetable(ctx context.Context, workerNo int64, term Term) (doc []byte, err error) {
	if s == nil {
		err = fmt.Errorf("CalendarService is nil")
		return
	}

	logger := s.loggerWith(ctx, "ExportLecturerTimetable",
		"worker_no", workerNo,
		"session", term.Session,
		"semester", term.Semester,
	)
	defer func() {
		err = fail(err, lecturerNotFound)
		if err != nil {
			logger.ErrorContext(ctx, "failed to export lecturer timetable", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("bytes", len(doc)).InfoContext(ctx, "lecturer timetable exported")
	}()

	if err = validateTerm(term); err != nil {
		return
	}
	if workerNo <= 0 {
		err = NewValidationError("worker_no", "Invalid worker number.")
		return
	}

	var session persistence.AcademicSession
	if session, err = s.teachingSession(ctx, term); err != nil {
		return
	}
	if _, err = s.lecturers.GetByWorkerNo(ctx, workerNo); err != nil {
		err = mapRepoError(err)
		return
	}

	var rows []persistence.TimetableRow
	if rows, err = s.lecturers.GetTimetable(ctx, workerNo, term.Session, term.Semester); err != nil {
		return
	}
	doc, err = s.render(fmt.Sprintf("Teaching timetable %d %s-%d", workerNo, term.Session, term.Semester), session, rows)
	return
}

// teachingSession loads the session and requires it to carry teaching dates.
func (s *CalendarService) teachingSession(ctx context.Context, term Term) (persistence.AcademicSession, error) {
	session, err := lookupSession(ctx, s.sessions, term)
	if err != nil {
		if failure := AsFailure(err, sessionNotFound); failure.Status == http.StatusNotFound {
			return persistence.AcademicSession{}, failure
		}
		return persistence.AcademicSession{}, err
	}
	if session.StartsOn == nil || session.EndsOn == nil {
		return persistence.AcademicSession{}, &Failure{
			Status:  http.StatusUnprocessableEntity,
			Message: "Academic session has no teaching dates.",
		}
	}
	return session, nil
}

func (s *CalendarService) render(name string, session persistence.AcademicSession, rows []persistence.TimetableRow) ([]byte, error) {
	days, err := normalizeRows(rows)
	if err != nil {
		return nil, err
	}

	loc := s.engine.Location()
	classes := make(map[string]scheduler.ClassItem)
	meetings := make([]recurrence.Meeting, 0, len(rows))
	for _, day := range scheduler.AllWeekdays {
		for _, class := range days[day] {
			classes[class.ID] = class
			meetings = append(meetings, recurrence.Meeting{
				Rule: recurrence.Rule{
					ID:        class.ID,
					ClassID:   class.ID,
					Frequency: recurrence.FrequencyWeekly,
					Weekdays:  []time.Weekday{stdWeekday(class.Day)},
					StartsOn:  *session.StartsOn,
					EndsOn:    session.EndsOn,
				},
				Start: recurrence.At(*session.StartsOn, minutes(class.Start), loc),
				End:   recurrence.At(*session.StartsOn, minutes(class.End), loc),
			})
		}
	}

	occurrences, err := s.engine.Expand(meetings, recurrence.GenerateOptions{})
	if err != nil {
		return nil, fmt.Errorf("expand timetable: %w", err)
	}

	events := make([]calendar.Event, 0, len(occurrences))
	for _, occ := range occurrences {
		class := classes[occ.ClassID]
		description := "Section " + class.Section
		if class.Lecturer != nil && class.Lecturer.Name != "" {
			description += "\nLecturer: " + class.Lecturer.Name
		}
		events = append(events, calendar.Event{
			UID:         calendar.EventUID(occ.ClassID, occ.Start),
			Summary:     class.Course,
			Location:    class.Venue,
			Description: description,
			Start:       occ.Start,
			End:         occ.End,
		})
	}

	return calendar.Encode(calendar.Document{
		Name:     name,
		Timezone: loc.String(),
		Stamp:    s.now(),
		Events:   events,
	})
}

func stdWeekday(day scheduler.Weekday) time.Weekday {
	return time.Weekday(int(day) % 7)
}

func minutes(c scheduler.ClockTime) time.Duration {
	return time.Duration(c) * time.Minute
}
