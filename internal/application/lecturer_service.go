package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aree6/SECJ3104-TTMS/internal/persistence"
	"github.com/aree6/SECJ3104-TTMS/internal/scheduler"
)

const lecturerNotFound = "Lecturer not found"

// LecturerService serves lecturer lookups, timetables and clash reports.
type LecturerService struct {
	lecturers persistence.LecturerRepository
	lunch     scheduler.LunchWindow
	logger    *slog.Logger
}

// NewLecturerService constructs a LecturerService.
func NewLecturerService(lecturers persistence.LecturerRepository) *LecturerService {
	return NewLecturerServiceWithLogger(lecturers, nil)
}

// NewLecturerServiceWithLogger constructs a LecturerService with a specified logger.
func NewLecturerServiceWithLogger(lecturers persistence.LecturerRepository, logger *slog.Logger) *LecturerService {
	return &LecturerService{
		lecturers: lecturers,
		lunch:     scheduler.DefaultLunchWindow,
		logger:    defaultLogger(logger),
	}
}

func (s *LecturerService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "LecturerService", operation, attrs...)
}

// GetLecturer returns the lecturer with the given worker number.
func (s *LecturerService) GetLecturer(ctx context.Context, workerNo int64) (lecturer Lecturer, err error) {
	if s == nil {
		err = fmt.Errorf("LecturerService is nil")
		return
	}

	logger := s.loggerWith(ctx, "GetLecturer", "worker_no", workerNo)
	defer func() {
		err = fail(err, lecturerNotFound)
		if err != nil {
			logger.ErrorContext(ctx, "failed to get lecturer", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "lecturer retrieved")
	}()

	var record persistence.Lecturer
	if record, err = s.lookup(ctx, workerNo); err != nil {
		return
	}
	lecturer = Lecturer{WorkerNo: record.WorkerNo, Name: record.Name}
	return
}

// GetTimetable returns the slots of every section the lecturer teaches in the term.
func (s *LecturerService) GetTimetable(ctx context.Context, workerNo int64, term Term) (entries []TimetableEntry, err error) {
	if s == nil {
		err = fmt.Errorf("LecturerService is nil")
		return
	}

	logger := s.loggerWith(ctx, "GetTimetable",
		"worker_no", workerNo,
		"session", term.Session,
		"semester", term.Semester,
	)
	defer func() {
		err = fail(err, lecturerNotFound)
		if err != nil {
			logger.ErrorContext(ctx, "failed to get lecturer timetable", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(entries)).InfoContext(ctx, "lecturer timetable retrieved")
	}()

	var rows []persistence.TimetableRow
	if rows, err = s.timetableRows(ctx, workerNo, term); err != nil {
		return
	}
	entries, err = timetableEntries(rows)
	return
}

// GetTimetableView returns the lecturer's week with clashes and free time marked.
func (s *LecturerService) GetTimetableView(ctx context.Context, workerNo int64, term Term) (view []scheduler.DayView, err error) {
	if s == nil {
		err = fmt.Errorf("LecturerService is nil")
		return
	}

	logger := s.loggerWith(ctx, "GetTimetableView",
		"worker_no", workerNo,
		"session", term.Session,
		"semester", term.Semester,
	)
	defer func() {
		err = fail(err, lecturerNotFound)
		if err != nil {
			logger.ErrorContext(ctx, "failed to build lecturer timetable view", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("days", len(view)).InfoContext(ctx, "lecturer timetable view built")
	}()

	var rows []persistence.TimetableRow
	if rows, err = s.timetableRows(ctx, workerNo, term); err != nil {
		return
	}
	view, err = buildView(rows, s.lunch)
	return
}

// GetClashes lists the pairs of the lecturer's own classes that overlap,
// ordered by weekday.
func (s *LecturerService) GetClashes(ctx context.Context, workerNo int64, term Term) (pairs []scheduler.ClashPair, err error) {
	if s == nil {
		err = fmt.Errorf("LecturerService is nil")
		return
	}

	logger := s.loggerWith(ctx, "GetClashes",
		"worker_no", workerNo,
		"session", term.Session,
		"semester", term.Semester,
	)
	defer func() {
		err = fail(err, lecturerNotFound)
		if err != nil {
			logger.ErrorContext(ctx, "failed to detect lecturer clashes", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("clash_count", len(pairs)).InfoContext(ctx, "lecturer clashes detected")
	}()

	var rows []persistence.TimetableRow
	if rows, err = s.timetableRows(ctx, workerNo, term); err != nil {
		return
	}
	var days map[scheduler.Weekday][]scheduler.ClassItem
	if days, err = normalizeRows(rows); err != nil {
		return
	}

	pairs = make([]scheduler.ClashPair, 0)
	for _, day := range scheduler.AllWeekdays {
		pairs = append(pairs, scheduler.DetectClashes(days[day])...)
	}
	return
}

// Search finds lecturers teaching in the term by name or worker number.
func (s *LecturerService) Search(ctx context.Context, params SearchParams) (lecturers []Lecturer, err error) {
	if s == nil {
		err = fmt.Errorf("LecturerService is nil")
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
			logger.ErrorContext(ctx, "lecturer search failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(lecturers)).InfoContext(ctx, "lecturers searched")
	}()

	if err = validateSearch(params); err != nil {
		return
	}

	var hits []persistence.Lecturer
	hits, err = s.lecturers.Search(ctx, params.Term.Session, params.Term.Semester, params.Query, params.Limit, params.Offset)
	if err != nil {
		return
	}

	lecturers = make([]Lecturer, len(hits))
	for i, hit := range hits {
		lecturers[i] = Lecturer{WorkerNo: hit.WorkerNo, Name: hit.Name}
	}
	return
}

func (s *LecturerService) lookup(ctx context.Context, workerNo int64) (persistence.Lecturer, error) {
	if workerNo <= 0 {
		return persistence.Lecturer{}, NewValidationError("worker_no", "Invalid worker number.")
	}
	record, err := s.lecturers.GetByWorkerNo(ctx, workerNo)
	if err != nil {
		return persistence.Lecturer{}, mapRepoError(err)
	}
	return record, nil
}

func (s *LecturerService) timetableRows(ctx context.Context, workerNo int64, term Term) ([]persistence.TimetableRow, error) {
	if err := validateTerm(term); err != nil {
		return nil, err
	}
	if _, err := s.lookup(ctx, workerNo); err != nil {
		return nil, err
	}
	return s.lecturers.GetTimetable(ctx, workerNo, term.Session, term.Semester)
}
