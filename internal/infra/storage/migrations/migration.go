package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"
)

// Dialect names the SQL flavour a runner talks to
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Migration is one versioned schema change
type Migration struct {
	// Version orders migrations lexically ("001", "002", ...)
	Version     string
	Description string
	UpSQL       string
	DownSQL     string
}

// MigrationStatus reports whether a known migration has been applied
type MigrationStatus struct {
	Version     string
	Description string
	Applied     bool
}

// MigrationRunner applies migrations and records them in schema_migrations
type MigrationRunner struct {
	db      *sql.DB
	dialect Dialect
}

// NewMigrationRunner creates a new migration runner
func NewMigrationRunner(db *sql.DB, dialect Dialect) *MigrationRunner {
	return &MigrationRunner{
		db:      db,
		dialect: dialect,
	}
}

// ForDialect returns the built-in migrations of dialect
func ForDialect(dialect Dialect) ([]Migration, error) {
	switch dialect {
	case DialectSQLite:
		return GetSQLiteMigrations(), nil
	case DialectPostgres:
		return GetPostgresMigrations(), nil
	default:
		return nil, fmt.Errorf("unsupported dialect: %s", dialect)
	}
}

// EnsureMigrationTable creates the tracking table if needed
func (r *MigrationRunner) EnsureMigrationTable(ctx context.Context) error {
	var appliedAt string
	switch r.dialect {
	case DialectSQLite:
		appliedAt = "DATETIME"
	case DialectPostgres:
		appliedAt = "TIMESTAMP WITH TIME ZONE"
	default:
		return fmt.Errorf("unsupported dialect: %s", r.dialect)
	}

	createSQL := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at %s NOT NULL
		)`, appliedAt)

	if _, err := r.db.ExecContext(ctx, createSQL); err != nil {
		return fmt.Errorf("failed to create migration table: %w", err)
	}
	return nil
}

// GetAppliedMigrations returns the set of applied versions
func (r *MigrationRunner) GetAppliedMigrations(ctx context.Context) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

// ApplyMigration runs one migration and records it in the same transaction
func (r *MigrationRunner) ApplyMigration(ctx context.Context, migration Migration) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, migration.UpSQL); err != nil {
		return fmt.Errorf("failed to execute migration %s: %w", migration.Version, err)
	}

	recordSQL := "INSERT INTO schema_migrations (version, description, applied_at) VALUES (?, ?, ?)"
	if r.dialect == DialectPostgres {
		recordSQL = "INSERT INTO schema_migrations (version, description, applied_at) VALUES ($1, $2, $3)"
	}
	if _, err := tx.ExecContext(ctx, recordSQL, migration.Version, migration.Description, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", migration.Version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %s: %w", migration.Version, err)
	}
	return nil
}

// ApplyMigrations applies every pending migration in version order and
// returns how many ran
func (r *MigrationRunner) ApplyMigrations(ctx context.Context, migrations []Migration) (int, error) {
	if err := r.EnsureMigrationTable(ctx); err != nil {
		return 0, err
	}

	applied, err := r.GetAppliedMigrations(ctx)
	if err != nil {
		return 0, err
	}

	pending := sortedCopy(migrations)
	count := 0
	for _, migration := range pending {
		if applied[migration.Version] {
			continue
		}
		if err := r.ApplyMigration(ctx, migration); err != nil {
			return count, fmt.Errorf("migration %s failed: %w", migration.Version, err)
		}
		count++
	}
	return count, nil
}

// GetMigrationStatus reports every known migration and whether it ran
func (r *MigrationRunner) GetMigrationStatus(ctx context.Context, available []Migration) ([]MigrationStatus, error) {
	if err := r.EnsureMigrationTable(ctx); err != nil {
		return nil, err
	}

	applied, err := r.GetAppliedMigrations(ctx)
	if err != nil {
		return nil, err
	}

	status := make([]MigrationStatus, 0, len(available))
	for _, m := range sortedCopy(available) {
		status = append(status, MigrationStatus{
			Version:     m.Version,
			Description: m.Description,
			Applied:     applied[m.Version],
		})
	}
	return status, nil
}

func sortedCopy(migrations []Migration) []Migration {
	out := append([]Migration(nil), migrations...)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Version < out[j].Version
	})
	return out
}
