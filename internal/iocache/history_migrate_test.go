package iocache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/siteagent/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateHistory_NoneBackend(t *testing.T) {
	err := MigrateHistory(schema.NoneBackend, "", -1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "migrations are not supported for NoneBackend")
}

func TestMigrateHistory_LevelDBBackend(t *testing.T) {
	err := MigrateHistory(schema.LevelDBBackend, "", -1)
	assert.Error(t, err)
}

func TestMigrateHistory_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_migration.db")

	// Run migration to latest version
	err := MigrateHistory(schema.SQLiteBackend, dbPath, -1)
	require.NoError(t, err)

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)

	// Run migration again (should be a no-op)
	assert.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, -1))

	// Run migration to a specific version (version 1)
	assert.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, 1))

	// Rollback to version 0
	assert.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, 0))

	// Migrate back up to version 1
	assert.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, 1))
}

func TestMigrationsEmbedded(t *testing.T) {
	for _, backend := range []schema.DatabaseBackend{schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend} {
		entries, err := migrationsFS.ReadDir("migrations/" + string(backend))
		require.NoError(t, err, backend)
		assert.Len(t, entries, 2, "up and down migration for %s", backend)
	}
}
