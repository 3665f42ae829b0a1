package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	migrations "github.com/inference-gateway/gridpick/internal/infra/storage/migrations"
	_ "modernc.org/sqlite"
)

// SQLiteStorage journals dispatches in a SQLite database
type SQLiteStorage struct {
	sqlJournal
	path string
}

var _ DispatchJournal = (*SQLiteStorage)(nil)

// NewSQLiteStorage opens (or creates) the database and applies migrations
func NewSQLiteStorage(config SQLiteConfig) (*SQLiteStorage, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("sqlite storage path is empty")
	}

	dir := filepath.Dir(config.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", config.Path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(30000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	storage := &SQLiteStorage{
		sqlJournal: sqlJournal{db: db, dialect: migrations.DialectSQLite},
		path:       config.Path,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := storage.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return storage, nil
}

// Path returns the database file location
func (s *SQLiteStorage) Path() string {
	return s.path
}
