package migrations

// GetPostgresMigrations returns all PostgreSQL migrations in order
func GetPostgresMigrations() []Migration {
	return []Migration{
		{
			Version:     "001",
			Description: "Initial schema - dispatches table",
			UpSQL: `
				CREATE TABLE IF NOT EXISTS dispatches (
					id VARCHAR(64) PRIMARY KEY,
					activation_id VARCHAR(64) NOT NULL,
					display_id INTEGER NOT NULL,
					cell_index INTEGER NOT NULL,
					x INTEGER NOT NULL,
					y INTEGER NOT NULL,
					button VARCHAR(16) NOT NULL,
					success BOOLEAN NOT NULL,
					error TEXT NOT NULL DEFAULT '',
					duration_ns BIGINT NOT NULL DEFAULT 0,
					created_at TIMESTAMP WITH TIME ZONE NOT NULL
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
