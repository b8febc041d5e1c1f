package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/aree6/SECJ3104-TTMS/internal/persistence"
)

// CourseRepository implements persistence.CourseRepository.
type CourseRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

var _ persistence.CourseRepository = (*CourseRepository)(nil)

// NewCourseRepository creates a new course repository
func NewCourseRepository(pool *ConnectionPool) *CourseRepository {
	return &CourseRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// GetByCode retrieves a course by code.
func (r *CourseRepository) GetByCode(ctx context.Context, code string) (persistence.Course, error) {
	const query = `SELECT code, name, credit FROM courses WHERE code = ?`

	var course persistence.Course
	err := r.helper.QueryRow(ctx, query, code).Scan(&course.Code, &course.Name, &course.Credit)
	if err != nil {
		if err = r.mapper.MapError(err); errors.Is(err, persistence.ErrNotFound) {
			return persistence.Course{}, err
		}
		return persistence.Course{}, fmt.Errorf("failed to get course %s: %w", code, err)
	}
	return course, nil
}

// GetSchedulesForAnalytics returns every scheduled slot of the session with the
// number of students registered in its section.
func (r *CourseRepository) GetSchedulesForAnalytics(ctx context.Context, session string, semester int) ([]persistence.SectionSchedule, error) {
	query := `
		SELECT ` + timetableColumns + `,
			(SELECT COUNT(*) FROM student_registrations reg
				WHERE reg.course_code = cs.course_code AND reg.section = cs.section
				AND reg.session = cs.session AND reg.semester = cs.semester)
		FROM course_sections cs` + timetableJoins + `
		WHERE cs.session = ? AND cs.semester = ?` + timetableOrder

	rows, err := r.helper.Query(ctx, query, session, semester)
	if err != nil {
		return nil, fmt.Errorf("failed to query analytics schedules: %w", r.mapper.MapError(err))
	}
	defer rows.Close()

	schedules := make([]persistence.SectionSchedule, 0)
	for rows.Next() {
		var count int
		row, err := scanTimetableRow(rows, &count)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analytics schedule: %w", r.mapper.MapError(err))
		}
		schedules = append(schedules, persistence.SectionSchedule{TimetableRow: row, StudentCount: count})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate analytics schedules: %w", r.mapper.MapError(err))
	}
	return schedules, nil
}
