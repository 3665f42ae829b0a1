package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	domain "github.com/inference-gateway/gridpick/internal/domain"
	migrations "github.com/inference-gateway/gridpick/internal/infra/storage/migrations"
)

// sqlJournal is the dispatch table shared by the SQLite and Postgres backends
type sqlJournal struct {
	db      *sql.DB
	dialect migrations.Dialect
}

func (j *sqlJournal) migrate(ctx context.Context) error {
	available, err := migrations.ForDialect(j.dialect)
	if err != nil {
		return err
	}
	runner := migrations.NewMigrationRunner(j.db, j.dialect)
	if _, err := runner.ApplyMigrations(ctx, available); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// MigrationStatus reports every known migration and whether it is applied
func (j *sqlJournal) MigrationStatus(ctx context.Context) ([]migrations.MigrationStatus, error) {
	available, err := migrations.ForDialect(j.dialect)
	if err != nil {
		return nil, err
	}
	return migrations.NewMigrationRunner(j.db, j.dialect).GetMigrationStatus(ctx, available)
}

// bind rewrites ? placeholders into $n for Postgres
func (j *sqlJournal) bind(query string) string {
	if j.dialect != migrations.DialectPostgres {
		return query
	}
	out := make([]byte, 0, len(query)+8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			out = append(out, fmt.Sprintf("$%d", n)...)
			continue
		}
		out = append(out, query[i])
	}
	return string(out)
}

// Record inserts a dispatch row
func (j *sqlJournal) Record(ctx context.Context, r domain.DispatchRecord) error {
	query := j.bind(`
		INSERT INTO dispatches (id, activation_id, display_id, cell_index, x, y, button, success, error, duration_ns, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := j.db.ExecContext(ctx, query,
		r.ID, r.ActivationID, r.DisplayID, r.CellIndex, r.Point.X, r.Point.Y,
		r.Button, r.Success, r.Error, int64(r.Duration), r.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert dispatch %s: %w", r.ID, err)
	}
	return nil
}

// List returns dispatches newest first
func (j *sqlJournal) List(ctx context.Context, limit, offset int) ([]domain.DispatchRecord, error) {
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT id, activation_id, display_id, cell_index, x, y, button, success, error, duration_ns, created_at
		FROM dispatches
		ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	} else if offset > 0 {
		if j.dialect == migrations.DialectPostgres {
			query += " OFFSET ?"
		} else {
			query += " LIMIT -1 OFFSET ?"
		}
		args = append(args, offset)
	}

	rows, err := j.db.QueryContext(ctx, j.bind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query dispatches: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []domain.DispatchRecord
	for rows.Next() {
		var (
			r        domain.DispatchRecord
			duration int64
			created  any
		)
		if err := rows.Scan(&r.ID, &r.ActivationID, &r.DisplayID, &r.CellIndex, &r.Point.X, &r.Point.Y,
			&r.Button, &r.Success, &r.Error, &duration, &created); err != nil {
			return nil, fmt.Errorf("failed to scan dispatch: %w", err)
		}
		r.Duration = time.Duration(duration)
		if r.CreatedAt, err = scanTime(created); err != nil {
			return nil, fmt.Errorf("dispatch %s: %w", r.ID, err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Close closes the database handle
func (j *sqlJournal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

// Health pings the database
func (j *sqlJournal) Health(ctx context.Context) error {
	if j.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	return j.db.PingContext(ctx)
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05",
}

// scanTime accepts the shapes drivers return for a timestamp column
func scanTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		return parseTime(t)
	case []byte:
		return parseTime(string(t))
	case nil:
		return time.Time{}, nil
	default:
		return time.Time{}, fmt.Errorf("unsupported timestamp type %T", v)
	}
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable timestamp %q", s)
}
