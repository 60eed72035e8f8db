package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// migrations are applied in order; the index+1 is the schema version
var migrations = []string{
	// 1: tickets table with per-column successor/predecessor links
	`
	CREATE TABLE IF NOT EXISTS tickets (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		status TEXT NOT NULL CHECK(status IN ('to-do', 'to-test', 'done')),
		next_id TEXT,
		prev_id TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tickets_status ON tickets(status);

	-- A ticket can be the successor (or predecessor) of at most one other ticket
	CREATE UNIQUE INDEX IF NOT EXISTS idx_tickets_next_unique ON tickets(next_id) WHERE next_id IS NOT NULL;
	CREATE UNIQUE INDEX IF NOT EXISTS idx_tickets_prev_unique ON tickets(prev_id) WHERE prev_id IS NOT NULL;
	`,
	// 2: title search
	`CREATE INDEX IF NOT EXISTS idx_tickets_title ON tickets(title COLLATE NOCASE);`,
}

// Migrate brings the schema up to the latest version.
// It is safe to call on every startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	var current int
	err := db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&current)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for i := current; i < len(migrations); i++ {
		version := i + 1
		err := withTx(ctx, db, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, migrations[i]); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (?)`, version)
			return err
		})
		if err != nil {
			return fmt.Errorf("migration %d failed: %w", version, err)
		}
		slog.Info("applied migration", "version", version)
	}

	return nil
}
