package migration

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanner_ScanMigrations(t *testing.T) {
	t.Parallel()

	t.Run("orders by numeric version and reads descriptions", func(t *testing.T) {
		t.Parallel()

		files := fstest.MapFS{
			"010_add_index.sql":      {Data: []byte("CREATE INDEX idx_a ON a(id);")},
			"002_second.sql":         {Data: []byte("-- Description: Adds table b\nCREATE TABLE b (id INTEGER);")},
			"001_initial_schema.sql": {Data: []byte("CREATE TABLE a (id INTEGER);")},
			"README.md":              {Data: []byte("not a migration")},
		}

		migrations, err := NewScanner(files).ScanMigrations()
		require.NoError(t, err)
		require.Len(t, migrations, 3)

		assert.Equal(t, "001", migrations[0].Version)
		assert.Equal(t, "initial schema", migrations[0].Description)
		assert.Equal(t, "Adds table b", migrations[1].Description)
		assert.Equal(t, "010", migrations[2].Version)
		assert.Len(t, migrations[0].Checksum, 64)
		assert.NotEqual(t, migrations[0].Checksum, migrations[1].Checksum)
	})

	t.Run("rejects badly named files", func(t *testing.T) {
		t.Parallel()

		files := fstest.MapFS{"initial.sql": {Data: []byte("CREATE TABLE a (id INTEGER);")}}
		_, err := NewScanner(files).ScanMigrations()
		assert.ErrorIs(t, err, ErrInvalidMigrationFile)
	})

	t.Run("rejects duplicate versions", func(t *testing.T) {
		t.Parallel()

		files := fstest.MapFS{
			"001_a.sql":  {Data: []byte("CREATE TABLE a (id INTEGER);")},
			"0001_b.sql": {Data: []byte("CREATE TABLE b (id INTEGER);")},
		}
		_, err := NewScanner(files).ScanMigrations()
		assert.ErrorIs(t, err, ErrDuplicateVersion)
	})

	t.Run("rejects comment-only and unbalanced files", func(t *testing.T) {
		t.Parallel()

		_, err := NewScanner(fstest.MapFS{"001_empty.sql": {Data: []byte("-- nothing here\n")}}).ScanMigrations()
		assert.ErrorIs(t, err, ErrInvalidMigrationFile)

		_, err = NewScanner(fstest.MapFS{"001_broken.sql": {Data: []byte("CREATE TABLE a (id INTEGER;")}}).ScanMigrations()
		assert.ErrorIs(t, err, ErrInvalidMigrationFile)
	})
}

func TestSplitStatements(t *testing.T) {
	t.Parallel()

	statements := splitStatements("-- header\nCREATE TABLE a (id INTEGER); -- trailing\n\nCREATE INDEX i ON a(id);\n")
	assert.Equal(t, []string{"CREATE TABLE a (id INTEGER)", "CREATE INDEX i ON a(id)"}, statements)
}
