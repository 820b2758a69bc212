// Package store holds extracted document text for the lifetime of the
// process, keyed by a generated opaque identifier.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by Get for identifiers that were never issued or
// that belong to a previous process. Absence is a normal outcome, not a
// fault.
var ErrNotFound = errors.New("document not found")

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id         TEXT PRIMARY KEY,
	filename   TEXT NOT NULL,
	text       TEXT NOT NULL,
	created_at TEXT NOT NULL
)`

// Document is an uploaded document's extracted text. Records are immutable
// once inserted; there is no update or delete path.
type Document struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is a process-lifetime session store backed by an in-memory SQLite
// database. SQLite serializes access, so concurrent request handlers can
// share one Store safely. Nothing is persisted: the mapping dies with the
// process, and no size bound or eviction is applied.
type Store struct {
	db *sql.DB
}

// Open creates the in-memory database and its schema.
func Open() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// A single connection keeps every statement on the same in-memory
	// database and avoids "database is locked" errors.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put inserts a document under a fresh identifier and returns it. The
// filename must be non-empty; text may be empty (a scanned PDF with no text
// layer extracts to nothing).
func (s *Store) Put(filename, text string) (string, error) {
	if filename == "" {
		return "", errors.New("filename must not be empty")
	}

	id := uuid.New().String()
	_, err := s.db.Exec(
		`INSERT INTO documents (id, filename, text, created_at) VALUES (?, ?, ?, ?)`,
		id, filename, text, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("inserting document: %w", err)
	}
	return id, nil
}

// Get looks up a document by identifier.
func (s *Store) Get(id string) (Document, error) {
	var d Document
	var createdAt string
	err := s.db.QueryRow(
		`SELECT id, filename, text, created_at FROM documents WHERE id = ?`, id,
	).Scan(&d.ID, &d.Filename, &d.Text, &createdAt)
	if err == sql.ErrNoRows {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, err
	}
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return Document{}, fmt.Errorf("parsing created_at: %w", err)
	}
	d.CreatedAt = t
	return d, nil
}

// List returns all stored documents in upload order.
func (s *Store) List() ([]Document, error) {
	rows, err := s.db.Query(`SELECT id, filename, text, created_at FROM documents ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var d Document
		var createdAt string
		if err := rows.Scan(&d.ID, &d.Filename, &d.Text, &createdAt); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		d.CreatedAt = t
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// Count returns the number of stored documents.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM documents`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
