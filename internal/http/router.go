package http

import (
	"log/slog"
	"net/http"

	"github.com/aree6/SECJ3104-TTMS/internal/application"
)

// RouterConfig carries the handlers mounted by NewRouter. Nil handlers leave
// their routes unregistered.
type RouterConfig struct {
	Auth      *AuthHandler
	Sessions  *SessionHandler
	Students  *StudentHandler
	Lecturers *LecturerHandler
	Venues    *VenueHandler
	Analytics *AnalyticsHandler
	Validator SessionValidator
	Logger    *slog.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	logger := defaultLogger(cfg.Logger)
	mux := http.NewServeMux()

	authenticated := func(h http.HandlerFunc, roles ...application.Role) http.Handler {
		stages := []Middleware{RequireSession(cfg.Validator, logger)}
		if len(roles) > 0 {
			stages = append(stages, RequireRoles(logger, roles...))
		}
		return Chain(h, stages...)
	}

	if cfg.Auth != nil {
		mux.HandleFunc("POST /auth/login", cfg.Auth.Login)
		mux.Handle("POST /auth/logout", authenticated(cfg.Auth.Logout))
	}

	if cfg.Sessions != nil {
		mux.Handle("GET /sessions", authenticated(cfg.Sessions.List))
	}

	if cfg.Students != nil {
		mux.Handle("GET /students/timetable", authenticated(cfg.Students.Timetable))
		mux.Handle("GET /students/timetable/view", authenticated(cfg.Students.TimetableView))
		mux.Handle("GET /students/timetable/calendar", authenticated(cfg.Students.Calendar))
		mux.Handle("GET /students/search", authenticated(cfg.Students.Search))
	}

	if cfg.Lecturers != nil {
		mux.Handle("GET /lecturers/timetable", authenticated(cfg.Lecturers.Timetable))
		mux.Handle("GET /lecturers/timetable/view", authenticated(cfg.Lecturers.TimetableView))
		mux.Handle("GET /lecturers/timetable/calendar", authenticated(cfg.Lecturers.Calendar))
		mux.Handle("GET /lecturers/clashes", authenticated(cfg.Lecturers.Clashes, application.RoleLecturer))
		mux.Handle("GET /lecturers/search", authenticated(cfg.Lecturers.Search))
	}

	if cfg.Venues != nil {
		mux.Handle("GET /venues/{code}", authenticated(cfg.Venues.Get))
		mux.Handle("GET /venues/{code}/timetable", authenticated(cfg.Venues.TimetableView))
	}

	if cfg.Analytics != nil {
		mux.Handle("GET /analytics", authenticated(cfg.Analytics.Get, application.RoleLecturer))
	}

	// The request logger sits outside Recover so a recovered panic is logged
	// with its request id and recorded as a 500.
	return Chain(mux, RequestLogger(logger), Recover(logger))
}
