package migrations

// GetSQLiteMigrations returns all SQLite migrations in order
func GetSQLiteMigrations() []Migration {
	return []Migration{
		{
			Version:     "001",
			Description: "Initial schema - dispatches table",
			UpSQL: `
				CREATE TABLE IF NOT EXISTS dispatches (
					id TEXT PRIMARY KEY,
					activation_id TEXT NOT NULL,
					display_id INTEGER NOT NULL,
					cell_index INTEGER NOT NULL,
					x INTEGER NOT NULL,
					y INTEGER NOT NULL,
					button TEXT NOT NULL,
					success BOOLEAN NOT NULL,
					error TEXT NOT NULL DEFAULT '',
					duration_ns INTEGER NOT NULL DEFAULT 0,
					created_at DATETIME NOT NULL
				);

				CREATE INDEX IF NOT EXISTS idx_dispatches_created_at ON dispatches(created_at DESC);
			`,
			DownSQL: `
				DROP INDEX IF EXISTS idx_dispatches_created_at;
				DROP TABLE IF EXISTS dispatches;
			`,
		},
		{
			Version:     "002",
			Description: "Index dispatches by activation",
			UpSQL:       `CREATE INDEX IF NOT EXISTS idx_dispatches_activation ON dispatches(activation_id);`,
			DownSQL:     `DROP INDEX IF EXISTS idx_dispatches_activation;`,
		},
	}
}
