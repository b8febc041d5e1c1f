package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aree6/SECJ3104-TTMS/internal/persistence"
)

// CatalogRepository implements persistence.CatalogRepository.
type CatalogRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

var _ persistence.CatalogRepository = (*CatalogRepository)(nil)

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(pool *ConnectionPool) *CatalogRepository {
	return &CatalogRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// Import inserts the whole catalog in one transaction, parents before children.
// Any failure leaves the database unchanged.
func (r *CatalogRepository) Import(ctx context.Context, catalog persistence.Catalog) error {
	err := r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		exec := func(what, query string, args ...any) error {
			if _, err := r.helper.ExecTx(ctx, tx, query, args...); err != nil {
				return fmt.Errorf("failed to insert %s: %w", what, r.mapper.MapError(err))
			}
			return nil
		}

		for _, s := range catalog.Sessions {
			if err := exec("session "+s.Session,
				`INSERT INTO academic_sessions (session, semester, start_date, end_date) VALUES (?, ?, ?, ?)`,
				s.Session, s.Semester, nullDate(s.StartsOn), nullDate(s.EndsOn)); err != nil {
				return err
			}
		}
		for _, c := range catalog.Courses {
			if err := exec("course "+c.Code,
				`INSERT INTO courses (code, name, credit) VALUES (?, ?, ?)`,
				c.Code, c.Name, c.Credit); err != nil {
				return err
			}
		}
		for _, v := range catalog.Venues {
			if err := exec("venue "+v.Code,
				`INSERT INTO venues (code, short_name, name, capacity) VALUES (?, ?, ?, ?)`,
				v.Code, v.ShortName, v.Name, v.Capacity); err != nil {
				return err
			}
		}
		for _, l := range catalog.Lecturers {
			if err := exec(fmt.Sprintf("lecturer %d", l.WorkerNo),
				`INSERT INTO lecturers (worker_no, name, password_hash) VALUES (?, ?, ?)`,
				l.WorkerNo, l.Name, l.PasswordHash); err != nil {
				return err
			}
		}
		for _, s := range catalog.Students {
			if err := exec("student "+s.MatricNo,
				`INSERT INTO students (matric_no, name, course_code, password_hash) VALUES (?, ?, ?, ?)`,
				s.MatricNo, s.Name, s.CourseCode, s.PasswordHash); err != nil {
				return err
			}
		}
		for _, cs := range catalog.Sections {
			if err := exec("section "+cs.CourseCode+"/"+cs.Section,
				`INSERT INTO course_sections (course_code, section, session, semester, lecturer_no) VALUES (?, ?, ?, ?, ?)`,
				cs.CourseCode, cs.Section, cs.Session, cs.Semester, nullInt64(cs.LecturerNo)); err != nil {
				return err
			}
		}
		for _, s := range catalog.Schedules {
			if err := exec("schedule "+s.CourseCode+"/"+s.Section,
				`INSERT INTO course_section_schedules (course_code, section, session, semester, day, time, venue_code) VALUES (?, ?, ?, ?, ?, ?, ?)`,
				s.CourseCode, s.Section, s.Session, s.Semester, s.Day, s.Time, nullString(s.VenueCode)); err != nil {
				return err
			}
		}
		for _, reg := range catalog.Registrations {
			if err := exec("registration "+reg.MatricNo+"/"+reg.CourseCode,
				`INSERT INTO student_registrations (matric_no, course_code, section, session, semester) VALUES (?, ?, ?, ?, ?)`,
				reg.MatricNo, reg.CourseCode, reg.Section, reg.Session, reg.Semester); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("catalog import: %w", err)
	}
	return nil
}
