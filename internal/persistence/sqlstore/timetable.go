package sqlstore

import (
	"database/sql"
	"fmt"

	"github.com/aree6/SECJ3104-TTMS/internal/persistence"
)

// timetableColumns selects the joined row shape read by scanTimetableRow. Every
// timetable query joins schedules (s) to their section (cs) and course (c) and
// left joins the venue (v) and lecturer (l).
const timetableColumns = `
	c.code, c.name, cs.section, s.day, s.time,
	v.code, v.short_name, l.worker_no, l.name`

const timetableJoins = `
	JOIN course_section_schedules s
		ON s.course_code = cs.course_code AND s.section = cs.section
		AND s.session = cs.session AND s.semester = cs.semester
	JOIN courses c ON c.code = cs.course_code
	LEFT JOIN venues v ON v.code = s.venue_code
	LEFT JOIN lecturers l ON l.worker_no = cs.lecturer_no`

const timetableOrder = `
	ORDER BY s.day, s.time, c.code, cs.section`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTimetableRow(scanner rowScanner, extra ...any) (persistence.TimetableRow, error) {
	var (
		row            persistence.TimetableRow
		venueCode      sql.NullString
		venueShortName sql.NullString
		lecturerNo     sql.NullInt64
		lecturerName   sql.NullString
	)
	dest := []any{
		&row.CourseCode,
		&row.CourseName,
		&row.Section,
		&row.Day,
		&row.Time,
		&venueCode,
		&venueShortName,
		&lecturerNo,
		&lecturerName,
	}
	if err := scanner.Scan(append(dest, extra...)...); err != nil {
		return persistence.TimetableRow{}, err
	}
	row.VenueCode = stringPtr(venueCode)
	row.VenueShortName = stringPtr(venueShortName)
	row.LecturerNo = int64Ptr(lecturerNo)
	row.LecturerName = stringPtr(lecturerName)
	return row, nil
}

func collectTimetable(rows *sql.Rows, mapper *ErrorMapper) ([]persistence.TimetableRow, error) {
	defer rows.Close()

	result := make([]persistence.TimetableRow, 0)
	for rows.Next() {
		row, err := scanTimetableRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan timetable row: %w", mapper.MapError(err))
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate timetable rows: %w", mapper.MapError(err))
	}
	return result, nil
}
