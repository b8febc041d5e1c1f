// Package migration applies versioned SQL schema migrations.
//
// Migration files live in an fs.FS (normally embedded into the binary) and are
// named {version}_{description}.sql, e.g. "001_initial_schema.sql". Applied
// versions are tracked in a schema_migrations table together with the checksum
// of the file that was run, so an edited migration is detected on the next start.
//
// Example usage:
//
//	manager := migration.NewManager(migration.NewScanner(files), migration.NewExecutor(db, rebind), logger)
//	if err := manager.RunMigrations(ctx); err != nil {
//		return err
//	}
package migration
