package application

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/aree6/SECJ3104-TTMS/internal/persistence"
)

// StudentCredentials looks up students by matric number.
type StudentCredentials interface {
	GetByMatricNo(ctx context.Context, matricNo string) (persistence.Student, error)
}

// LecturerCredentials looks up lecturers by worker number.
type LecturerCredentials interface {
	GetByWorkerNo(ctx context.Context, workerNo int64) (persistence.Lecturer, error)
}

// PasswordVerifier compares a stored hash with a candidate password.
type PasswordVerifier func(hashedPassword, password string) error

// AuthOptions tunes an AuthService. Zero values select defaults.
type AuthOptions struct {
	Verify         PasswordVerifier
	TokenGenerator func() string
	IDGenerator    func() string
	Now            func() time.Time
	SessionTTL     time.Duration
	// CacheSize bounds the number of validated sessions kept in memory.
	CacheSize int
	// CacheTTL bounds how long a validated session is trusted without
	// rereading it from the store.
	CacheTTL time.Duration
}

const (
	defaultSessionTTL = 24 * time.Hour
	defaultCacheSize  = 1024
	defaultCacheTTL   = 5 * time.Minute
)

type cachedPrincipal struct {
	principal Principal
	expiresAt time.Time
}

// AuthService handles login, session validation and logout.
type AuthService struct {
	students       StudentCredentials
	lecturers      LecturerCredentials
	sessions       persistence.AuthSessionRepository
	verifyPassword PasswordVerifier
	tokenGenerator func() string
	idGenerator    func() string
	now            func() time.Time
	sessionTTL     time.Duration
	cache          *expirable.LRU[string, cachedPrincipal]
	logger         *slog.Logger
}

// NewAuthService constructs an AuthService with the provided dependencies.
func NewAuthService(students StudentCredentials, lecturers LecturerCredentials, sessions persistence.AuthSessionRepository, opts AuthOptions) *AuthService {
	return NewAuthServiceWithLogger(students, lecturers, sessions, opts, nil)
}

// NewAuthServiceWithLogger constructs an AuthService with a specified logger.
func NewAuthServiceWithLogger(students StudentCredentials, lecturers LecturerCredentials, sessions persistence.AuthSessionRepository, opts AuthOptions, logger *slog.Logger) *AuthService {
	if opts.Verify == nil {
		opts.Verify = VerifyPassword
	}
	if opts.TokenGenerator == nil {
		opts.TokenGenerator = RandomToken
	}
	if opts.IDGenerator == nil {
		opts.IDGenerator = uuid.NewString
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = defaultSessionTTL
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = defaultCacheSize
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = defaultCacheTTL
	}
	return &AuthService{
		students:       students,
		lecturers:      lecturers,
		sessions:       sessions,
		verifyPassword: opts.Verify,
		tokenGenerator: opts.TokenGenerator,
		idGenerator:    opts.IDGenerator,
		now:            opts.Now,
		sessionTTL:     opts.SessionTTL,
		cache:          expirable.NewLRU[string, cachedPrincipal](opts.CacheSize, nil, opts.CacheTTL),
		logger:         defaultLogger(logger),
	}
}

// RandomToken returns 32 random bytes hex encoded.
func RandomToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return uuid.NewString()
	}
	return hex.EncodeToString(buf)
}

func (s *AuthService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AuthService", operation, attrs...)
}

// Login checks a student's matric number or a lecturer's worker number against
// the stored password hash and opens a login session.
func (s *AuthService) Login(ctx context.Context, params LoginParams) (result LoginResult, err error) {
	if s == nil {
		err = fmt.Errorf("AuthService is nil")
		return
	}
	if s.sessions == nil {
		err = fmt.Errorf("session repository not configured")
		return
	}

	identifier := strings.TrimSpace(params.Identifier)
	logger := s.loggerWith(ctx, "Login", "role", params.Role, "identifier", identifier)
	defer func() {
		err = fail(err, "")
		if err != nil {
			logger.ErrorContext(ctx, "login failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("subject_id", result.Principal.SubjectID).InfoContext(ctx, "login succeeded")
	}()

	if !params.Role.Valid() {
		err = NewValidationError("role", "Invalid role.")
		return
	}
	if identifier == "" || params.Password == "" {
		err = ErrInvalidCredentials
		return
	}

	var (
		principal Principal
		hash      string
	)
	principal, hash, err = s.credentials(ctx, params.Role, identifier)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			err = ErrInvalidCredentials
		}
		return
	}
	if err = s.verifyPassword(hash, params.Password); err != nil {
		err = ErrInvalidCredentials
		return
	}

	now := s.now()
	if _, err = s.sessions.DeleteExpiredSessions(ctx, now); err != nil {
		return
	}

	var session persistence.AuthSession
	session, err = s.sessions.CreateSession(ctx, persistence.AuthSession{
		ID:        s.idGenerator(),
		Token:     s.tokenGenerator(),
		SubjectID: principal.SubjectID,
		Role:      string(principal.Role),
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	})
	if err != nil {
		return
	}

	s.cache.Add(session.Token, cachedPrincipal{principal: principal, expiresAt: session.ExpiresAt})
	result = LoginResult{Principal: principal, Token: session.Token, ExpiresAt: session.ExpiresAt}
	return
}

// ValidateSession resolves a session token to its principal.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (principal Principal, err error) {
	if s == nil {
		err = fmt.Errorf("AuthService is nil")
		return
	}
	if s.sessions == nil {
		err = fmt.Errorf("session repository not configured")
		return
	}

	trimmed := strings.TrimSpace(token)
	logger := s.loggerWith(ctx, "ValidateSession", "token_provided", trimmed != "")
	cached := false
	defer func() {
		err = fail(err, "")
		if err != nil {
			logger.ErrorContext(ctx, "session validation failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("subject_id", principal.SubjectID, "cached", cached).DebugContext(ctx, "session validated")
	}()

	if trimmed == "" {
		err = ErrUnauthorized
		return
	}

	now := s.now()
	if entry, ok := s.cache.Get(trimmed); ok {
		if entry.expiresAt.After(now) {
			cached = true
			principal = entry.principal
			return
		}
		s.cache.Remove(trimmed)
	}

	var session persistence.AuthSession
	session, err = s.sessions.GetSession(ctx, trimmed)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			err = ErrUnauthorized
		}
		return
	}
	if session.RevokedAt != nil && !session.RevokedAt.IsZero() {
		err = ErrSessionRevoked
		return
	}
	if !session.ExpiresAt.After(now) {
		err = ErrSessionExpired
		return
	}

	principal, _, err = s.credentials(ctx, Role(session.Role), session.SubjectID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			err = ErrUnauthorized
		}
		return
	}

	s.cache.Add(trimmed, cachedPrincipal{principal: principal, expiresAt: session.ExpiresAt})
	return
}

// Logout revokes the session and drops it from the cache.
func (s *AuthService) Logout(ctx context.Context, token string) (err error) {
	if s == nil {
		return fmt.Errorf("AuthService is nil")
	}
	if s.sessions == nil {
		return fmt.Errorf("session repository not configured")
	}

	trimmed := strings.TrimSpace(token)
	logger := s.loggerWith(ctx, "Logout", "token_provided", trimmed != "")
	defer func() {
		err = fail(err, "")
		if err != nil {
			logger.ErrorContext(ctx, "logout failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "session revoked")
	}()

	if trimmed == "" {
		return ErrUnauthorized
	}
	s.cache.Remove(trimmed)

	if _, err = s.sessions.RevokeSession(ctx, trimmed, s.now()); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			err = ErrUnauthorized
		}
		return err
	}
	return nil
}

// Authorize fails with ErrForbidden unless the principal holds one of roles.
func Authorize(principal Principal, roles ...Role) error {
	if principal.HasRole(roles...) {
		return nil
	}
	return fail(ErrForbidden, "")
}

func (s *AuthService) credentials(ctx context.Context, role Role, identifier string) (Principal, string, error) {
	switch role {
	case RoleStudent:
		if s.students == nil {
			return Principal{}, "", fmt.Errorf("student credential store not configured")
		}
		student, err := s.students.GetByMatricNo(ctx, identifier)
		if err != nil {
			return Principal{}, "", mapRepoError(err)
		}
		return Principal{SubjectID: student.MatricNo, Role: RoleStudent, Name: student.Name}, student.PasswordHash, nil
	case RoleLecturer:
		if s.lecturers == nil {
			return Principal{}, "", fmt.Errorf("lecturer credential store not configured")
		}
		workerNo, err := strconv.ParseInt(identifier, 10, 64)
		if err != nil {
			return Principal{}, "", ErrNotFound
		}
		lecturer, err := s.lecturers.GetByWorkerNo(ctx, workerNo)
		if err != nil {
			return Principal{}, "", mapRepoError(err)
		}
		return Principal{
			SubjectID: strconv.FormatInt(lecturer.WorkerNo, 10),
			Role:      RoleLecturer,
			Name:      lecturer.Name,
		}, lecturer.PasswordHash, nil
	}
	return Principal{}, "", ErrUnauthorized
}
