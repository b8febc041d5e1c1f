package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/aree6/SECJ3104-TTMS/internal/persistence"
)

// LecturerRepository implements persistence.LecturerRepository.
type LecturerRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

var _ persistence.LecturerRepository = (*LecturerRepository)(nil)

// NewLecturerRepository creates a new lecturer repository
func NewLecturerRepository(pool *ConnectionPool) *LecturerRepository {
	return &LecturerRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// GetByWorkerNo retrieves a lecturer by worker number.
func (r *LecturerRepository) GetByWorkerNo(ctx context.Context, workerNo int64) (persistence.Lecturer, error) {
	const query = `
		SELECT worker_no, name, password_hash
		FROM lecturers
		WHERE worker_no = ?`

	var lecturer persistence.Lecturer
	err := r.helper.QueryRow(ctx, query, workerNo).Scan(&lecturer.WorkerNo, &lecturer.Name, &lecturer.PasswordHash)
	if err != nil {
		if err = r.mapper.MapError(err); errors.Is(err, persistence.ErrNotFound) {
			return persistence.Lecturer{}, err
		}
		return persistence.Lecturer{}, fmt.Errorf("failed to get lecturer %d: %w", workerNo, err)
	}
	return lecturer, nil
}

// GetTimetable returns the schedule rows of every section the lecturer teaches
// in the given session and semester.
func (r *LecturerRepository) GetTimetable(ctx context.Context, workerNo int64, session string, semester int) ([]persistence.TimetableRow, error) {
	query := `
		SELECT ` + timetableColumns + `
		FROM course_sections cs` + timetableJoins + `
		WHERE cs.lecturer_no = ? AND cs.session = ? AND cs.semester = ?` + timetableOrder

	rows, err := r.helper.Query(ctx, query, workerNo, session, semester)
	if err != nil {
		return nil, fmt.Errorf("failed to query lecturer timetable: %w", r.mapper.MapError(err))
	}
	return collectTimetable(rows, r.mapper)
}

// Search finds lecturers teaching in the session whose name or worker number
// contains query, ignoring case.
func (r *LecturerRepository) Search(ctx context.Context, session string, semester int, query string, limit, offset int) ([]persistence.Lecturer, error) {
	const statement = `
		SELECT l.worker_no, l.name
		FROM lecturers l
		WHERE EXISTS (
			SELECT 1 FROM course_sections cs
			WHERE cs.lecturer_no = l.worker_no AND cs.session = ? AND cs.semester = ?
		)
		AND (LOWER(l.name) LIKE ? ESCAPE '\' OR CAST(l.worker_no AS TEXT) LIKE ? ESCAPE '\')
		ORDER BY l.name, l.worker_no
		LIMIT ? OFFSET ?`

	pattern := likePattern(query)
	rows, err := r.helper.Query(ctx, statement, session, semester, pattern, pattern, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to search lecturers: %w", r.mapper.MapError(err))
	}
	defer rows.Close()

	lecturers := make([]persistence.Lecturer, 0)
	for rows.Next() {
		var lecturer persistence.Lecturer
		if err := rows.Scan(&lecturer.WorkerNo, &lecturer.Name); err != nil {
			return nil, fmt.Errorf("failed to scan lecturer: %w", r.mapper.MapError(err))
		}
		lecturers = append(lecturers, lecturer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lecturers: %w", r.mapper.MapError(err))
	}
	return lecturers, nil
}
