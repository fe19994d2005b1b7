package cache

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is the current cache schema version.
const SchemaVersion = 1

// CreateSchema creates the cache schema if it doesn't exist.
func CreateSchema(db *sql.DB) error {
	if err := createSchemaVersionTable(db); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}
	if err := createProgramsTable(db); err != nil {
		return fmt.Errorf("creating programs table: %w", err)
	}
	return nil
}

func createSchemaVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Insert version if table is empty
	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&count)
	if err != nil {
		return err
	}

	if count == 0 {
		_, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", SchemaVersion)
		return err
	}

	return nil
}

func createProgramsTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS programs (
			blob_id TEXT NOT NULL,
			patterns_hash TEXT NOT NULL,
			source TEXT,
			program_json TEXT NOT NULL,
			diagnostics_json TEXT,
			parsed_at TEXT NOT NULL,
			PRIMARY KEY (blob_id, patterns_hash)
		)
	`)
	return err
}
