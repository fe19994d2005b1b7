package cache

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/resast/resast/pkg/types"
)

// SQLiteStore implements Store using SQLite (pure Go driver, no CGO).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a SQLite-based cache at the given path.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := CreateSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Get retrieves a cached entry, if present.
func (s *SQLiteStore) Get(blobID types.BlobID, patternsHash string) (*Entry, bool, error) {
	row := s.db.QueryRow(`
		SELECT source, program_json, diagnostics_json, parsed_at
		FROM programs WHERE blob_id = ? AND patterns_hash = ?
	`, blobID.Hex(), patternsHash)

	var source sql.NullString
	var programJSON string
	var diagnosticsJSON sql.NullString
	var parsedAt string

	err := row.Scan(&source, &programJSON, &diagnosticsJSON, &parsedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("querying cache: %w", err)
	}

	e := &Entry{
		BlobID:       blobID,
		PatternsHash: patternsHash,
		Source:       source.String,
		Program:      []byte(programJSON),
	}
	if diagnosticsJSON.Valid {
		e.Diagnostics = []byte(diagnosticsJSON.String)
	}
	if t, err := time.Parse(time.RFC3339Nano, parsedAt); err == nil {
		e.ParsedAt = t
	}

	return e, true, nil
}

// Put stores an entry, replacing any previous one for the same key.
func (s *SQLiteStore) Put(e *Entry) error {
	var diagnostics interface{}
	if e.Diagnostics != nil {
		diagnostics = string(e.Diagnostics)
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO programs (blob_id, patterns_hash, source, program_json, diagnostics_json, parsed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		e.BlobID.Hex(),
		e.PatternsHash,
		e.Source,
		string(e.Program),
		diagnostics,
		e.ParsedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting cache entry: %w", err)
	}
	return nil
}

// Count returns the number of cached entries.
func (s *SQLiteStore) Count() (int64, error) {
	var count int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM programs").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting cache entries: %w", err)
	}
	return count, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
