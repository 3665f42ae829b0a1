package storage

import (
	"context"
	"fmt"

	domain "github.com/inference-gateway/gridpick/internal/domain"
	migrations "github.com/inference-gateway/gridpick/internal/infra/storage/migrations"
)

// DispatchJournal is the storage contract every backend satisfies
type DispatchJournal = domain.DispatchJournal

// Migrator is implemented by the relational backends
type Migrator interface {
	MigrationStatus(ctx context.Context) ([]migrations.MigrationStatus, error)
}

// StorageConfig contains configuration for storage backends
type StorageConfig struct {
	// Type specifies the storage backend type (memory, jsonl, sqlite, postgres, redis)
	Type string `json:"type" yaml:"type" mapstructure:"type"`

	JSONL    JSONLConfig    `json:"jsonl,omitempty" yaml:"jsonl,omitempty" mapstructure:"jsonl"`
	SQLite   SQLiteConfig   `json:"sqlite,omitempty" yaml:"sqlite,omitempty" mapstructure:"sqlite"`
	Postgres PostgresConfig `json:"postgres,omitempty" yaml:"postgres,omitempty" mapstructure:"postgres"`
	Redis    RedisConfig    `json:"redis,omitempty" yaml:"redis,omitempty" mapstructure:"redis"`
}

// JSONLConfig contains JSONL-specific configuration
type JSONLConfig struct {
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// SQLiteConfig contains SQLite-specific configuration
type SQLiteConfig struct {
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// PostgresConfig contains Postgres-specific configuration
type PostgresConfig struct {
	Host     string `json:"host" yaml:"host" mapstructure:"host"`
	Port     int    `json:"port" yaml:"port" mapstructure:"port"`
	Database string `json:"database" yaml:"database" mapstructure:"database"`
	Username string `json:"username" yaml:"username" mapstructure:"username"`
	Password string `json:"password" yaml:"password" mapstructure:"password"`
	SSLMode  string `json:"ssl_mode" yaml:"ssl_mode" mapstructure:"ssl_mode"`
}

// DSN returns the lib/pq connection string
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.Database, c.SSLMode)
}

// RedisConfig contains Redis-specific configuration
type RedisConfig struct {
	Host     string `json:"host" yaml:"host" mapstructure:"host"`
	Port     int    `json:"port" yaml:"port" mapstructure:"port"`
	Database int    `json:"database" yaml:"database" mapstructure:"database"`
	Password string `json:"password,omitempty" yaml:"password,omitempty" mapstructure:"password"`
	Username string `json:"username,omitempty" yaml:"username,omitempty" mapstructure:"username"`
	// TTL in seconds, 0 means no expiration
	TTL int `json:"ttl,omitempty" yaml:"ttl,omitempty" mapstructure:"ttl"`
	// MaxEntries trims the journal to the newest N dispatches, 0 keeps everything
	MaxEntries int `json:"max_entries,omitempty" yaml:"max_entries,omitempty" mapstructure:"max_entries"`
}

// page clamps limit/offset against n records. limit <= 0 means no limit.
func page(n, limit, offset int) (start, end int) {
	if offset < 0 {
		offset = 0
	}
	if offset >= n {
		return n, n
	}
	end = n
	if limit > 0 && offset+limit < n {
		end = offset + limit
	}
	return offset, end
}
