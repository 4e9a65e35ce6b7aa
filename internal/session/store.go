// Copyright © 2025 Texelnav contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/session/store.go
// Summary: SQLite-backed reading state: last scroll offset per document
//          and per-section visit counts.

// Package session persists reading state between runs so a reopened
// document lands where the reader left it.
package session

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS documents (
    path TEXT PRIMARY KEY,
    title TEXT NOT NULL DEFAULT '',
    scroll_offset REAL NOT NULL DEFAULT 0,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS section_visits (
    doc_path TEXT NOT NULL,
    section_id TEXT NOT NULL,
    visits INTEGER NOT NULL DEFAULT 0,
    last_seen INTEGER NOT NULL,
    PRIMARY KEY (doc_path, section_id)
);

CREATE INDEX IF NOT EXISTS idx_visits_doc ON section_visits(doc_path);
`

type pendingSave struct {
	title  string
	offset float64
}

// Store keeps per-document reading state in a small SQLite database.
// Offset saves are debounced so a long scroll doesn't hammer the disk;
// visit counts are written through immediately.
type Store struct {
	db *sql.DB

	mu       sync.Mutex
	pending  map[string]pendingSave
	debounce time.Duration
	timer    *time.Timer
	closed   bool
}

// DefaultPath returns the session database location under the user
// config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "texelnav", "session.db"), nil
}

// Open creates or opens the session database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create session dir: %w", err)
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open session db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to session db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create session schema: %w", err)
	}
	if err := checkSchemaVersion(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:       db,
		pending:  make(map[string]pendingSave),
		debounce: 2 * time.Second,
	}, nil
}

func checkSchemaVersion(db *sql.DB) error {
	var version int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err == sql.ErrNoRows {
		version = 0
	} else if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	switch version {
	case 0:
		if _, err := db.Exec("INSERT OR REPLACE INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("failed to set schema version: %w", err)
		}
		return nil
	case schemaVersion:
		return nil
	default:
		return fmt.Errorf("unsupported session schema version %d", version)
	}
}

// LastOffset returns the stored scroll offset for a document. Pending
// unflushed saves win over what is on disk.
func (s *Store) LastOffset(path string) (float64, bool, error) {
	s.mu.Lock()
	if p, ok := s.pending[path]; ok {
		s.mu.Unlock()
		return p.offset, true, nil
	}
	s.mu.Unlock()

	var offset float64
	err := s.db.QueryRow("SELECT scroll_offset FROM documents WHERE path = ?", path).Scan(&offset)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read offset: %w", err)
	}
	return offset, true, nil
}

// SaveOffset records the current offset for a document. The write is
// debounced; Flush or Close forces it out.
func (s *Store) SaveOffset(path, title string, offset float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.pending[path] = pendingSave{title: title, offset: offset}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() { s.Flush() })
}

// Flush writes all pending offset saves.
func (s *Store) Flush() error {
	s.mu.Lock()
	pending := s.pending
	s.pending = make(map[string]pendingSave)
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	now := time.Now().UnixNano()
	for path, p := range pending {
		_, err := s.db.Exec(`
INSERT INTO documents (path, title, scroll_offset, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(path) DO UPDATE SET
    title = excluded.title,
    scroll_offset = excluded.scroll_offset,
    updated_at = excluded.updated_at`,
			path, p.title, p.offset, now)
		if err != nil {
			return fmt.Errorf("failed to save offset for %s: %w", path, err)
		}
	}
	return nil
}

// RecordVisit bumps the visit counter for a section.
func (s *Store) RecordVisit(path string, sectionID string) error {
	_, err := s.db.Exec(`
INSERT INTO section_visits (doc_path, section_id, visits, last_seen)
VALUES (?, ?, 1, ?)
ON CONFLICT(doc_path, section_id) DO UPDATE SET
    visits = visits + 1,
    last_seen = excluded.last_seen`,
		path, sectionID, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to record visit: %w", err)
	}
	return nil
}

// Visits returns the visit count per section for a document.
func (s *Store) Visits(path string) (map[string]int, error) {
	rows, err := s.db.Query("SELECT section_id, visits FROM section_visits WHERE doc_path = ?", path)
	if err != nil {
		return nil, fmt.Errorf("failed to read visits: %w", err)
	}
	defer rows.Close()

	visits := make(map[string]int)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("failed to scan visit row: %w", err)
		}
		visits[id] = n
	}
	return visits, rows.Err()
}

// Close flushes pending writes and closes the database. Idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	flushErr := s.Flush()
	if err := s.db.Close(); err != nil {
		return err
	}
	return flushErr
}
