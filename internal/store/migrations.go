package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means a fresh database.
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// migrateV1 creates all initial tables and indexes.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id    TEXT NOT NULL UNIQUE,
			taken_at  TEXT NOT NULL,
			command   TEXT NOT NULL,
			version   TEXT NOT NULL,
			source    TEXT NOT NULL,
			first_day TEXT,
			last_day  TEXT,
			events    INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS snapshot_metrics (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			snapshot_id  INTEGER NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
			metric_name  TEXT NOT NULL,
			metric_value REAL NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS category_totals (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			snapshot_id INTEGER NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
			category    TEXT NOT NULL,
			hours       REAL NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS death_loops (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			snapshot_id INTEGER NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
			app_a       TEXT NOT NULL,
			app_b       TEXT NOT NULL,
			count       INTEGER NOT NULL,
			ai_switches INTEGER NOT NULL,
			verdict     TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_metrics_snapshot ON snapshot_metrics(snapshot_id)`,
		`CREATE INDEX IF NOT EXISTS idx_categories_snapshot ON category_totals(snapshot_id)`,
		`CREATE INDEX IF NOT EXISTS idx_loops_snapshot ON death_loops(snapshot_id)`,
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}

	return tx.Commit()
}
