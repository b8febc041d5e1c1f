package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/aree6/SECJ3104-TTMS/internal/application"
	"github.com/aree6/SECJ3104-TTMS/internal/config"
	httptransport "github.com/aree6/SECJ3104-TTMS/internal/http"
	"github.com/aree6/SECJ3104-TTMS/internal/logging"
	"github.com/aree6/SECJ3104-TTMS/internal/persistence/sqlstore"
	"github.com/aree6/SECJ3104-TTMS/internal/recurrence"
)

const usage = `usage:
  ttms [serve]               run the HTTP API
  ttms import <catalog.json> load reference and timetable data`

var errUsage = errors.New(usage)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "ttms:", err)
		os.Exit(1)
	}
}

type command struct {
	name string
	path string
}

func parseArgs(args []string) (command, error) {
	switch {
	case len(args) == 0:
		return command{name: "serve"}, nil
	case args[0] == "serve" && len(args) == 1:
		return command{name: "serve"}, nil
	case args[0] == "import" && len(args) == 2:
		return command{name: "import", path: args[1]}, nil
	}
	return command{}, errUsage
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	cmd, err := parseArgs(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	logger := logging.New(stdout, cfg.LogLevel, cfg.LogFormat)

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	switch cmd.name {
	case "import":
		summary, err := importCatalog(ctx, store, cmd.path, application.DefaultArgon2idParams, logger)
		if err != nil {
			return err
		}
		logger.InfoContext(ctx, "catalog imported",
			"sessions", summary.Sessions,
			"courses", summary.Courses,
			"venues", summary.Venues,
			"lecturers", summary.Lecturers,
			"students", summary.Students,
			"sections", summary.Sections,
			"schedules", summary.Schedules,
			"registrations", summary.Registrations,
		)
		return nil
	default:
		return serve(ctx, cfg, store, logger)
	}
}

func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (*sqlstore.Store, error) {
	store, err := sqlstore.Open(ctx, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logger.Error("failed to open storage", "driver", cfg.DBDriver, "error", err)
		return nil, fmt.Errorf("open storage: %w", err)
	}
	if err := store.Migrate(ctx, logger); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		_ = store.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	return store, nil
}

func importCatalog(ctx context.Context, store *sqlstore.Store, path string, params application.Argon2idParams, logger *slog.Logger) (application.ImportSummary, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return application.ImportSummary{}, fmt.Errorf("read catalog: %w", err)
	}
	var doc application.CatalogDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return application.ImportSummary{}, fmt.Errorf("decode catalog %s: %w", path, err)
	}

	svc := application.NewCatalogServiceWithLogger(store.Catalog, params, logger)
	return svc.Import(ctx, doc)
}

// newHandler wires every service over store and returns the routed API.
func newHandler(cfg config.Config, store *sqlstore.Store, now func() time.Time, logger *slog.Logger) http.Handler {
	students := application.NewStudentServiceWithLogger(store.Students, logger)
	lecturers := application.NewLecturerServiceWithLogger(store.Lecturers, logger)
	venues := application.NewVenueServiceWithLogger(store.Venues, logger)
	sessions := application.NewSessionServiceWithLogger(store.Sessions, logger)
	analytics := application.NewAnalyticsServiceWithLogger(store.Sessions, store.Courses, logger)
	calendar := application.NewCalendarServiceWithLogger(
		store.Students, store.Lecturers, store.Sessions,
		recurrence.NewEngine(cfg.Location), now, logger,
	)
	auth := application.NewAuthServiceWithLogger(store.Students, store.Lecturers, store.AuthSessions, application.AuthOptions{
		Now:        now,
		SessionTTL: cfg.SessionTTL,
		CacheSize:  cfg.SessionCacheSize,
	}, logger)

	return httptransport.NewRouter(httptransport.RouterConfig{
		Auth:      httptransport.NewAuthHandler(auth, logger),
		Sessions:  httptransport.NewSessionHandler(sessions, logger),
		Students:  httptransport.NewStudentHandler(students, calendar, logger),
		Lecturers: httptransport.NewLecturerHandler(lecturers, calendar, logger),
		Venues:    httptransport.NewVenueHandler(venues, logger),
		Analytics: httptransport.NewAnalyticsHandler(analytics, logger),
		Validator: auth,
		Logger:    logger,
	})
}

func serve(ctx context.Context, cfg config.Config, store *sqlstore.Store, logger *slog.Logger) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           newHandler(cfg, store, time.Now, logger),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("timetable API listening", "addr", server.Addr, "driver", cfg.DBDriver, "timezone", cfg.Location.String())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		return err
	}
	<-shutdownDone
	logger.Info("server stopped")
	return nil
}
