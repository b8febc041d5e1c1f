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

// AuthSessionRepository implements persistence.AuthSessionRepository.
type AuthSessionRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

var _ persistence.AuthSessionRepository = (*AuthSessionRepository)(nil)

// NewAuthSessionRepository creates a new login session repository
func NewAuthSessionRepository(pool *ConnectionPool) *AuthSessionRepository {
	return &AuthSessionRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// CreateSession stores a new session token.
func (r *AuthSessionRepository) CreateSession(ctx context.Context, session persistence.AuthSession) (persistence.AuthSession, error) {
	session.Token = strings.TrimSpace(session.Token)
	if session.ID == "" || session.SubjectID == "" || session.Token == "" || session.Role == "" {
		return persistence.AuthSession{}, persistence.ErrConstraintViolation
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	session.CreatedAt = session.CreatedAt.UTC().Truncate(time.Second)
	session.ExpiresAt = session.ExpiresAt.UTC().Truncate(time.Second)

	const query = `
		INSERT INTO user_sessions (id, token, subject_id, role, expires_at, created_at, revoked_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.helper.Exec(ctx, query,
		session.ID,
		session.Token,
		session.SubjectID,
		session.Role,
		formatTime(session.ExpiresAt),
		formatTime(session.CreatedAt),
		nullTime(session.RevokedAt),
	)
	if err != nil {
		return persistence.AuthSession{}, fmt.Errorf("failed to create session: %w", r.mapper.MapError(err))
	}
	return session, nil
}

// GetSession retrieves a session by its token value.
func (r *AuthSessionRepository) GetSession(ctx context.Context, token string) (persistence.AuthSession, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return persistence.AuthSession{}, persistence.ErrNotFound
	}

	const query = `
		SELECT id, token, subject_id, role, expires_at, created_at, revoked_at
		FROM user_sessions
		WHERE token = ?`

	var (
		session              persistence.AuthSession
		expiresAt, createdAt string
		revokedAt            sql.NullString
	)
	err := r.helper.QueryRow(ctx, query, token).Scan(
		&session.ID,
		&session.Token,
		&session.SubjectID,
		&session.Role,
		&expiresAt,
		&createdAt,
		&revokedAt,
	)
	if err != nil {
		if err = r.mapper.MapError(err); errors.Is(err, persistence.ErrNotFound) {
			return persistence.AuthSession{}, err
		}
		return persistence.AuthSession{}, fmt.Errorf("failed to get session: %w", err)
	}

	if session.ExpiresAt, err = time.Parse(timeLayout, expiresAt); err != nil {
		return persistence.AuthSession{}, fmt.Errorf("failed to parse expires_at: %w", err)
	}
	if session.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return persistence.AuthSession{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if session.RevokedAt, err = parseTimePtr(revokedAt); err != nil {
		return persistence.AuthSession{}, fmt.Errorf("failed to parse revoked_at: %w", err)
	}
	return session, nil
}

// RevokeSession marks the session revoked and returns its new state.
func (r *AuthSessionRepository) RevokeSession(ctx context.Context, token string, revokedAt time.Time) (persistence.AuthSession, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return persistence.AuthSession{}, persistence.ErrNotFound
	}

	const query = `UPDATE user_sessions SET revoked_at = ? WHERE token = ?`
	result, err := r.helper.Exec(ctx, query, formatTime(revokedAt), token)
	if err != nil {
		return persistence.AuthSession{}, fmt.Errorf("failed to revoke session: %w", r.mapper.MapError(err))
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return persistence.AuthSession{}, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.AuthSession{}, persistence.ErrNotFound
	}
	return r.GetSession(ctx, token)
}

// DeleteExpiredSessions removes sessions that expired at or before reference.
func (r *AuthSessionRepository) DeleteExpiredSessions(ctx context.Context, reference time.Time) (int64, error) {
	const query = `DELETE FROM user_sessions WHERE expires_at <= ?`
	result, err := r.helper.Exec(ctx, query, formatTime(reference))
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", r.mapper.MapError(err))
	}
	return result.RowsAffected()
}
