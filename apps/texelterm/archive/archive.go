// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/texelterm/archive/archive.go
// Summary: SQLite archive for lines evicted from terminal scrollback.
//
// Lines dropped by the scrollback limit are written here so they stay
// searchable after they leave memory:
//   - one transaction per eviction batch
//   - substring search, newest first

package archive

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/framegrace/texelsession/apps/texelterm/engine"
	"github.com/rs/zerolog/log"

	_ "modernc.org/sqlite"
)

// ErrClosed is returned after Close.
var ErrClosed = errors.New("archive: closed")

// Result is one archived line matching a search.
type Result struct {
	ID         int64
	ArchivedAt time.Time
	Content    string
}

// Archive stores evicted lines in SQLite. It implements engine.EvictionSink.
type Archive struct {
	mu     sync.Mutex
	db     *sql.DB
	now    func() time.Time
	closed bool
}

var _ engine.EvictionSink = (*Archive)(nil)

// Current schema version - increment this when schema changes require a rebuild
const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS lines (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    archived_at INTEGER NOT NULL,      -- UnixNano
    content TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_lines_archived_at ON lines(archived_at);
`

// Open opens or creates an archive database. Use ":memory:" for a
// process-local archive.
func Open(path string) (*Archive, error) {
	if path == "" {
		return nil, fmt.Errorf("archive: empty path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("archive: create dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("archive: open %s: %w", path, err)
	}
	// A single connection keeps :memory: databases shared and serialises writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("archive: create schema: %w", err)
	}
	if _, err := db.Exec(`INSERT OR IGNORE INTO schema_version(version) VALUES (?)`, schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("archive: record schema version: %w", err)
	}

	log.Debug().Str("path", path).Msg("archive: opened")
	return &Archive{db: db, now: time.Now}, nil
}

// ArchiveLines stores lines in one transaction, oldest first.
func (a *Archive) ArchiveLines(lines []engine.Line) error {
	if len(lines) == 0 {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return ErrClosed
	}

	tx, err := a.db.Begin()
	if err != nil {
		return fmt.Errorf("archive: begin: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO lines(archived_at, content) VALUES (?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("archive: prepare: %w", err)
	}
	defer stmt.Close()

	ts := a.now().UnixNano()
	for _, line := range lines {
		if _, err := stmt.Exec(ts, lineText(line)); err != nil {
			tx.Rollback()
			return fmt.Errorf("archive: insert: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("archive: commit: %w", err)
	}
	return nil
}

// lineText strips trailing blanks for storage.
func lineText(line engine.Line) string {
	return strings.TrimRight(line.String(), " \t")
}

// Search returns up to limit lines containing query, newest first.
func (a *Archive) Search(query string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 100
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil, ErrClosed
	}

	rows, err := a.db.Query(
		`SELECT id, archived_at, content FROM lines
		 WHERE instr(content, ?) > 0
		 ORDER BY id DESC LIMIT ?`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("archive: search: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var ts int64
		if err := rows.Scan(&r.ID, &ts, &r.Content); err != nil {
			return nil, fmt.Errorf("archive: scan: %w", err)
		}
		r.ArchivedAt = time.Unix(0, ts)
		results = append(results, r)
	}
	return results, rows.Err()
}

// Count returns the number of archived lines.
func (a *Archive) Count() (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return 0, ErrClosed
	}
	var n int
	if err := a.db.QueryRow(`SELECT COUNT(*) FROM lines`).Scan(&n); err != nil {
		return 0, fmt.Errorf("archive: count: %w", err)
	}
	return n, nil
}

// Close closes the database. Further calls return nil.
func (a *Archive) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil
	}
	a.closed = true
	return a.db.Close()
}
