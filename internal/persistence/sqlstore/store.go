// Package sqlstore implements the persistence repositories on database/sql for
// SQLite and PostgreSQL.
package sqlstore

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/aree6/SECJ3104-TTMS/internal/persistence/sqlstore/migration"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrations returns the embedded schema migrations.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		panic(fmt.Sprintf("sqlstore: embedded migrations: %v", err))
	}
	return sub
}

// Store bundles every repository sharing one connection pool.
type Store struct {
	pool *ConnectionPool

	Students     *StudentRepository
	Lecturers    *LecturerRepository
	Venues       *VenueRepository
	Courses      *CourseRepository
	Sessions     *AcademicSessionRepository
	AuthSessions *AuthSessionRepository
	Catalog      *CatalogRepository
}

// Open connects to the database described by driver and dsn.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	dialect, err := ParseDialect(driver)
	if err != nil {
		return nil, err
	}
	pool, err := OpenConnectionPool(ctx, dialect, dsn)
	if err != nil {
		return nil, err
	}
	return New(pool), nil
}

// New builds the repositories over an existing pool.
func New(pool *ConnectionPool) *Store {
	return &Store{
		pool:         pool,
		Students:     NewStudentRepository(pool),
		Lecturers:    NewLecturerRepository(pool),
		Venues:       NewVenueRepository(pool),
		Courses:      NewCourseRepository(pool),
		Sessions:     NewAcademicSessionRepository(pool),
		AuthSessions: NewAuthSessionRepository(pool),
		Catalog:      NewCatalogRepository(pool),
	}
}

// Pool exposes the underlying connection pool.
func (s *Store) Pool() *ConnectionPool {
	return s.pool
}

// Migrate applies any pending embedded migrations.
func (s *Store) Migrate(ctx context.Context, logger *slog.Logger) error {
	manager := migration.NewManager(
		migration.NewScanner(Migrations()),
		migration.NewExecutor(s.pool.DB(), s.pool.Dialect().Rebind),
		logger,
	)
	return manager.RunMigrations(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.pool.Close()
}
