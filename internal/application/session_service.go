package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aree6/SECJ3104-TTMS/internal/persistence"
)

const sessionNotFound = "Academic session not found"

// SessionService lists academic sessions.
type SessionService struct {
	sessions persistence.AcademicSessionRepository
	logger   *slog.Logger
}

// NewSessionService constructs a SessionService.
func NewSessionService(sessions persistence.AcademicSessionRepository) *SessionService {
	return NewSessionServiceWithLogger(sessions, nil)
}

// NewSessionServiceWithLogger constructs a SessionService with a specified logger.
func NewSessionServiceWithLogger(sessions persistence.AcademicSessionRepository, logger *slog.Logger) *SessionService {
	return &SessionService{sessions: sessions, logger: defaultLogger(logger)}
}

func (s *SessionService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "SessionService", operation, attrs...)
}

// ListSessions returns every academic session, newest first.
func (s *SessionService) ListSessions(ctx context.Context) (sessions []AcademicSession, err error) {
	if s == nil {
		err = fmt.Errorf("SessionService is nil")
		return
	}

	logger := s.loggerWith(ctx, "ListSessions")
	defer func() {
		err = fail(err, "")
		if err != nil {
			logger.ErrorContext(ctx, "failed to list sessions", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(sessions)).InfoContext(ctx, "sessions listed")
	}()

	var records []persistence.AcademicSession
	if records, err = s.sessions.ListSessions(ctx); err != nil {
		return
	}
	sessions = make([]AcademicSession, len(records))
	for i, record := range records {
		sessions[i] = toAcademicSession(record)
	}
	return
}

// GetSession returns one academic session.
func (s *SessionService) GetSession(ctx context.Context, term Term) (session AcademicSession, err error) {
	if s == nil {
		err = fmt.Errorf("SessionService is nil")
		return
	}

	logger := s.loggerWith(ctx, "GetSession", "session", term.Session, "semester", term.Semester)
	defer func() {
		err = fail(err, sessionNotFound)
		if err != nil {
			logger.ErrorContext(ctx, "failed to get session", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "session retrieved")
	}()

	var record persistence.AcademicSession
	if record, err = lookupSession(ctx, s.sessions, term); err != nil {
		return
	}
	session = toAcademicSession(record)
	return
}

func lookupSession(ctx context.Context, sessions persistence.AcademicSessionRepository, term Term) (persistence.AcademicSession, error) {
	if err := validateTerm(term); err != nil {
		return persistence.AcademicSession{}, err
	}
	record, err := sessions.GetSession(ctx, term.Session, term.Semester)
	if err != nil {
		return persistence.AcademicSession{}, mapRepoError(err)
	}
	return record, nil
}
