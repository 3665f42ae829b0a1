package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	migrations "github.com/inference-gateway/gridpick/internal/infra/storage/migrations"
	_ "github.com/lib/pq"
)

// PostgresStorage journals dispatches in PostgreSQL
type PostgresStorage struct {
	sqlJournal
}

var _ DispatchJournal = (*PostgresStorage)(nil)

// NewPostgresStorage connects, verifies the server and applies migrations
func NewPostgresStorage(config PostgresConfig) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", config.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("PostgreSQL connection test failed: %w\n\n"+
			"Failed to connect to PostgreSQL. Verify:\n"+
			"  - PostgreSQL server is running at %s:%d\n"+
			"  - Database '%s' exists\n"+
			"  - User '%s' has proper permissions", err, config.Host, config.Port, config.Database, config.Username)
	}

	storage := &PostgresStorage{
		sqlJournal: sqlJournal{db: db, dialect: migrations.DialectPostgres},
	}

	if err := storage.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return storage, nil
}
