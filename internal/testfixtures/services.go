package testfixtures

import (
	"log/slog"
	"time"

	"github.com/aree6/SECJ3104-TTMS/internal/application"
	"github.com/aree6/SECJ3104-TTMS/internal/logging"
	"github.com/aree6/SECJ3104-TTMS/internal/persistence/sqlstore"
	"github.com/aree6/SECJ3104-TTMS/internal/recurrence"
)

// ServiceFactory assists tests with constructing application services using
// deterministic identifiers and clocks.
type ServiceFactory struct {
	Clock       *Clock
	IDGenerator *IDGenerator
	Tokens      *IDGenerator
	Logger      *slog.Logger
	SessionTTL  time.Duration
}

// ServiceFactoryOption configures a ServiceFactory instance.
type ServiceFactoryOption func(*ServiceFactory)

// NewServiceFactory constructs a ServiceFactory with defaults.
func NewServiceFactory(opts ...ServiceFactoryOption) *ServiceFactory {
	factory := &ServiceFactory{
		Clock:       NewClock(time.Time{}),
		IDGenerator: NewIDGenerator("session"),
		Tokens:      NewIDGenerator("token"),
		Logger:      logging.Discard(),
		SessionTTL:  8 * time.Hour,
	}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = NewClock(time.Time{})
	}
	if factory.IDGenerator == nil {
		factory.IDGenerator = NewIDGenerator("session")
	}
	if factory.Tokens == nil {
		factory.Tokens = NewIDGenerator("token")
	}
	return factory
}

// WithClock overrides the clock used by the factory.
func WithClock(clock *Clock) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Clock = clock
	}
}

// WithLogger overrides the logger handed to every service.
func WithLogger(logger *slog.Logger) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Logger = logger
	}
}

// Services is every application service wired to one store.
type Services struct {
	Students  *application.StudentService
	Lecturers *application.LecturerService
	Venues    *application.VenueService
	Sessions  *application.SessionService
	Analytics *application.AnalyticsService
	Calendar  *application.CalendarService
	Auth      *application.AuthService
	Catalog   *application.CatalogService
}

// NewServices builds the services over store.
func (f *ServiceFactory) NewServices(store *sqlstore.Store) Services {
	now := f.Clock.NowFunc()
	return Services{
		Students:  application.NewStudentServiceWithLogger(store.Students, f.Logger),
		Lecturers: application.NewLecturerServiceWithLogger(store.Lecturers, f.Logger),
		Venues:    application.NewVenueServiceWithLogger(store.Venues, f.Logger),
		Sessions:  application.NewSessionServiceWithLogger(store.Sessions, f.Logger),
		Analytics: application.NewAnalyticsServiceWithLogger(store.Sessions, store.Courses, f.Logger),
		Calendar: application.NewCalendarServiceWithLogger(
			store.Students, store.Lecturers, store.Sessions,
			recurrence.NewEngine(Location), now, f.Logger,
		),
		Auth: application.NewAuthServiceWithLogger(store.Students, store.Lecturers, store.AuthSessions, application.AuthOptions{
			TokenGenerator: f.Tokens.NextFunc(),
			IDGenerator:    f.IDGenerator.NextFunc(),
			Now:            now,
			SessionTTL:     f.SessionTTL,
		}, f.Logger),
		Catalog: application.NewCatalogServiceWithLogger(store.Catalog, HashParams, f.Logger),
	}
}
