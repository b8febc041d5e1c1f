package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aree6/SECJ3104-TTMS/internal/persistence"
)

// StudentRepository implements persistence.StudentRepository.
type StudentRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

var _ persistence.StudentRepository = (*StudentRepository)(nil)

// NewStudentRepository creates a new student repository
func NewStudentRepository(pool *ConnectionPool) *StudentRepository {
	return &StudentRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// GetByMatricNo retrieves a student by matric number.
func (r *StudentRepository) GetByMatricNo(ctx context.Context, matricNo string) (persistence.Student, error) {
	matricNo = strings.TrimSpace(matricNo)
	if matricNo == "" {
		return persistence.Student{}, persistence.ErrNotFound
	}

	const query = `
		SELECT matric_no, name, course_code, password_hash
		FROM students
		WHERE matric_no = ?`

	var student persistence.Student
	err := r.helper.QueryRow(ctx, query, matricNo).Scan(
		&student.MatricNo,
		&student.Name,
		&student.CourseCode,
		&student.PasswordHash,
	)
	if err != nil {
		if err = r.mapper.MapError(err); errors.Is(err, persistence.ErrNotFound) {
			return persistence.Student{}, err
		}
		return persistence.Student{}, fmt.Errorf("failed to get student %s: %w", matricNo, err)
	}
	return student, nil
}

// GetTimetable returns the schedule rows of every section the student registered
// for in the given session and semester.
func (r *StudentRepository) GetTimetable(ctx context.Context, matricNo, session string, semester int) ([]persistence.TimetableRow, error) {
	query := `
		SELECT ` + timetableColumns + `
		FROM student_registrations reg
		JOIN course_sections cs
			ON cs.course_code = reg.course_code AND cs.section = reg.section
			AND cs.session = reg.session AND cs.semester = reg.semester` + timetableJoins + `
		WHERE reg.matric_no = ? AND reg.session = ? AND reg.semester = ?` + timetableOrder

	rows, err := r.helper.Query(ctx, query, matricNo, session, semester)
	if err != nil {
		return nil, fmt.Errorf("failed to query student timetable: %w", r.mapper.MapError(err))
	}
	return collectTimetable(rows, r.mapper)
}

// Search finds students registered in the session whose name or matric number
// contains query, ignoring case.
func (r *StudentRepository) Search(ctx context.Context, session string, semester int, query string, limit, offset int) ([]persistence.StudentSearchEntry, error) {
	const statement = `
		SELECT st.matric_no, st.name, st.course_code
		FROM students st
		WHERE EXISTS (
			SELECT 1 FROM student_registrations reg
			WHERE reg.matric_no = st.matric_no AND reg.session = ? AND reg.semester = ?
		)
		AND (LOWER(st.name) LIKE ? ESCAPE '\' OR LOWER(st.matric_no) LIKE ? ESCAPE '\')
		ORDER BY st.name, st.matric_no
		LIMIT ? OFFSET ?`

	pattern := likePattern(query)
	rows, err := r.helper.Query(ctx, statement, session, semester, pattern, pattern, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to search students: %w", r.mapper.MapError(err))
	}
	defer rows.Close()

	entries := make([]persistence.StudentSearchEntry, 0)
	for rows.Next() {
		var entry persistence.StudentSearchEntry
		if err := rows.Scan(&entry.MatricNo, &entry.Name, &entry.CourseCode); err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", r.mapper.MapError(err))
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate students: %w", r.mapper.MapError(err))
	}
	return entries, nil
}
