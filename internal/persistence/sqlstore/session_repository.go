package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aree6/SECJ3104-TTMS/internal/persistence"
)

const dateLayout = "2006-01-02"

// AcademicSessionRepository implements persistence.AcademicSessionRepository.
type AcademicSessionRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

var _ persistence.AcademicSessionRepository = (*AcademicSessionRepository)(nil)

// NewAcademicSessionRepository creates a new academic session repository
func NewAcademicSessionRepository(pool *ConnectionPool) *AcademicSessionRepository {
	return &AcademicSessionRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// ListSessions returns every academic session, newest first.
func (r *AcademicSessionRepository) ListSessions(ctx context.Context) ([]persistence.AcademicSession, error) {
	const query = `
		SELECT session, semester, start_date, end_date
		FROM academic_sessions
		ORDER BY session DESC, semester DESC`

	rows, err := r.helper.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", r.mapper.MapError(err))
	}
	defer rows.Close()

	sessions := make([]persistence.AcademicSession, 0)
	for rows.Next() {
		session, err := scanAcademicSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", r.mapper.MapError(err))
	}
	return sessions, nil
}

// GetSession retrieves one academic session.
func (r *AcademicSessionRepository) GetSession(ctx context.Context, session string, semester int) (persistence.AcademicSession, error) {
	const query = `
		SELECT session, semester, start_date, end_date
		FROM academic_sessions
		WHERE session = ? AND semester = ?`

	result, err := scanAcademicSession(r.helper.QueryRow(ctx, query, session, semester))
	if err != nil {
		if err = r.mapper.MapError(err); errors.Is(err, persistence.ErrNotFound) {
			return persistence.AcademicSession{}, err
		}
		return persistence.AcademicSession{}, fmt.Errorf("failed to get session %s/%d: %w", session, semester, err)
	}
	return result, nil
}

func scanAcademicSession(scanner rowScanner) (persistence.AcademicSession, error) {
	var (
		session    persistence.AcademicSession
		start, end sql.NullString
	)
	if err := scanner.Scan(&session.Session, &session.Semester, &start, &end); err != nil {
		return persistence.AcademicSession{}, err
	}
	var err error
	if session.StartsOn, err = parseDatePtr(start); err != nil {
		return persistence.AcademicSession{}, fmt.Errorf("failed to parse start_date: %w", err)
	}
	if session.EndsOn, err = parseDatePtr(end); err != nil {
		return persistence.AcademicSession{}, fmt.Errorf("failed to parse end_date: %w", err)
	}
	return session, nil
}

func parseDatePtr(value sql.NullString) (*time.Time, error) {
	if !value.Valid || strings.TrimSpace(value.String) == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, value.String)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func nullDate(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(dateLayout), Valid: true}
}
