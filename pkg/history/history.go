// Package history persists a record of completed trims in a local
// SQLite database. History is an optional convenience: callers treat
// write failures as non-fatal.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Record is one completed trim.
type Record struct {
	ID          string
	Input       string
	Output      string
	Start       string // as given on the command line, empty when absent
	End         string
	Quality     int
	Height      int // 0 when the source resolution was kept
	OutputBytes int64
	CreatedAt   time.Time
}

// Store wraps the trims database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path. Parent directories are
// created as needed and the schema is migrated in place.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open history database: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate applies the schema. Safe to run repeatedly.
func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS trims (
			id           TEXT PRIMARY KEY,
			input        TEXT NOT NULL,
			output       TEXT NOT NULL,
			start_time   TEXT NOT NULL DEFAULT '',
			end_time     TEXT NOT NULL DEFAULT '',
			quality      INTEGER NOT NULL,
			height       INTEGER NOT NULL DEFAULT 0,
			output_bytes INTEGER NOT NULL DEFAULT 0,
			created_at   TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("migrate history database: %w", err)
	}
	return nil
}

// Add inserts a record, filling in the ID and creation time when the
// caller left them empty, and returns the stored record.
func (s *Store) Add(r Record) (Record, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO trims (id, input, output, start_time, end_time, quality, height, output_bytes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Input, r.Output, r.Start, r.End, r.Quality, r.Height, r.OutputBytes,
		r.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return Record{}, fmt.Errorf("record trim: %w", err)
	}
	return r, nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(limit int) ([]Record, error) {
	rows, err := s.db.Query(`
		SELECT id, input, output, start_time, end_time, quality, height, output_bytes, created_at
		FROM trims
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list trims: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var createdAt string
		if err := rows.Scan(&r.ID, &r.Input, &r.Output, &r.Start, &r.End,
			&r.Quality, &r.Height, &r.OutputBytes, &createdAt); err != nil {
			return nil, fmt.Errorf("scan trim: %w", err)
		}
		if r.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("scan trim: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trims: %w", err)
	}

	return records, nil
}
