package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aree6/SECJ3104-TTMS/internal/application"
	"github.com/aree6/SECJ3104-TTMS/internal/logging"
	"github.com/aree6/SECJ3104-TTMS/internal/persistence/sqlstore"
)

// SQLiteHarness provides repository access backed by a temporary SQLite
// database for integration-style tests.
type SQLiteHarness struct {
	Store *sqlstore.Store
	DSN   string

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// NewSQLiteHarness opens a migrated, empty database in a temporary directory.
// Close is registered with tb.Cleanup.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "ttms.db")
	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	ctx := context.Background()
	store, err := sqlstore.Open(ctx, "sqlite", dsn)
	if err != nil {
		tb.Fatalf("failed to open storage: %v", err)
	}
	if err := store.Migrate(ctx, logging.Discard()); err != nil {
		_ = store.Close()
		tb.Fatalf("failed to migrate storage: %v", err)
	}

	harness := &SQLiteHarness{
		Store: store,
		DSN:   dsn,
		cleanup: func() {
			_ = store.Close()
		},
	}
	tb.Cleanup(harness.Close)
	return harness
}

// NewSeededSQLiteHarness is NewSQLiteHarness loaded with Document.
func NewSeededSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	harness := NewSQLiteHarness(tb)
	harness.Seed(tb, Document())
	return harness
}

// Seed imports doc through the catalog service so passwords are hashed the
// same way production imports hash them.
func (h *SQLiteHarness) Seed(tb testing.TB, doc application.CatalogDocument) {
	tb.Helper()

	svc := application.NewCatalogServiceWithLogger(h.Store.Catalog, HashParams, logging.Discard())
	if _, err := svc.Import(context.Background(), doc); err != nil {
		tb.Fatalf("failed to seed catalog: %v", err)
	}
}
