package migrations

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", name).Scan(&count)
	require.NoError(t, err)
	return count == 1
}

func TestMigrationRunner_EnsureMigrationTable(t *testing.T) {
	db := setupTestDB(t)
	runner := NewMigrationRunner(db, DialectSQLite)

	require.NoError(t, runner.EnsureMigrationTable(context.Background()))
	require.NoError(t, runner.EnsureMigrationTable(context.Background()), "idempotent")
	assert.True(t, tableExists(t, db, "schema_migrations"))
}

func TestMigrationRunner_UnsupportedDialect(t *testing.T) {
	runner := NewMigrationRunner(setupTestDB(t), Dialect("oracle"))
	assert.Error(t, runner.EnsureMigrationTable(context.Background()))

	_, err := ForDialect(Dialect("oracle"))
	assert.Error(t, err)
}

func TestMigrationRunner_ApplyMigrations(t *testing.T) {
	db := setupTestDB(t)
	runner := NewMigrationRunner(db, DialectSQLite)
	ctx := context.Background()

	available, err := ForDialect(DialectSQLite)
	require.NoError(t, err)

	count, err := runner.ApplyMigrations(ctx, available)
	require.NoError(t, err)
	assert.Equal(t, len(available), count)
	assert.True(t, tableExists(t, db, "dispatches"))

	count, err = runner.ApplyMigrations(ctx, available)
	require.NoError(t, err)
	assert.Zero(t, count, "second run applies nothing")

	status, err := runner.GetMigrationStatus(ctx, available)
	require.NoError(t, err)
	require.Len(t, status, len(available))
	for _, s := range status {
		assert.True(t, s.Applied, s.Version)
	}
}

func TestMigrationRunner_AppliesInVersionOrder(t *testing.T) {
	db := setupTestDB(t)
	runner := NewMigrationRunner(db, DialectSQLite)
	ctx := context.Background()

	outOfOrder := []Migration{
		{Version: "002", Description: "add column", UpSQL: "ALTER TABLE items ADD COLUMN name TEXT"},
		{Version: "001", Description: "create table", UpSQL: "CREATE TABLE items (id INTEGER PRIMARY KEY)"},
	}

	count, err := runner.ApplyMigrations(ctx, outOfOrder)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, "002", outOfOrder[0].Version, "caller slice is not reordered")
}

func TestMigrationRunner_FailedMigrationRollsBack(t *testing.T) {
	db := setupTestDB(t)
	runner := NewMigrationRunner(db, DialectSQLite)
	ctx := context.Background()

	count, err := runner.ApplyMigrations(ctx, []Migration{
		{Version: "001", Description: "ok", UpSQL: "CREATE TABLE a (id INTEGER)"},
		{Version: "002", Description: "broken", UpSQL: "CREATE TABLE"},
	})
	require.Error(t, err)
	assert.Equal(t, 1, count)

	applied, err := runner.GetAppliedMigrations(ctx)
	require.NoError(t, err)
	assert.True(t, applied["001"])
	assert.False(t, applied["002"])
}

func TestBuiltInMigrationsMatchAcrossDialects(t *testing.T) {
	lite := GetSQLiteMigrations()
	pg := GetPostgresMigrations()
	require.Equal(t, len(lite), len(pg))
	for i := range lite {
		assert.Equal(t, lite[i].Version, pg[i].Version)
		assert.Equal(t, lite[i].Description, pg[i].Description)
	}
}
