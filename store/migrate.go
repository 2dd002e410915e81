// SPDX-License-Identifier: MIT

package store

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is the latest schema version supported by the migrator.
const SchemaVersion = 1

// Migrate ensures the schema exists and is upgraded to SchemaVersion.
func Migrate(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("migrate: db is nil")
	}

	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER PRIMARY KEY);`)
	if err != nil {
		return fmt.Errorf("migrate: create schema_migrations: %w", err)
	}

	var current int
	err = db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations;`).Scan(&current)
	if err != nil {
		return fmt.Errorf("migrate: read current version: %w", err)
	}
	if current >= SchemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("migrate: begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			source TEXT NOT NULL,
			points INTEGER NOT NULL,
			slots INTEGER NOT NULL,
			slot_order TEXT NOT NULL,
			verdict TEXT NOT NULL,
			nodes INTEGER NOT NULL,
			dead_ends INTEGER NOT NULL,
			solutions INTEGER NOT NULL,
			stopped INTEGER NOT NULL,
			elapsed_ns INTEGER NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("migrate: create runs table: %w", err)
	}

	_, err = tx.Exec(`
		CREATE TABLE IF NOT EXISTS solutions (
			run_id TEXT NOT NULL,
			idx INTEGER NOT NULL,
			choices TEXT NOT NULL,
			earliest TEXT NOT NULL,
			PRIMARY KEY (run_id, idx),
			FOREIGN KEY(run_id) REFERENCES runs(id)
		);
	`)
	if err != nil {
		return fmt.Errorf("migrate: create solutions table: %w", err)
	}

	_, err = tx.Exec(`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);`)
	if err != nil {
		return fmt.Errorf("migrate: create idx_runs_created_at: %w", err)
	}

	_, err = tx.Exec(`INSERT INTO schema_migrations(version) VALUES (?);`, SchemaVersion)
	if err != nil {
		return fmt.Errorf("migrate: record schema version: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("migrate: commit transaction: %w", err)
	}

	return nil
}
