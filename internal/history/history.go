// Package history remembers which batch files were already appended to which
// log, so rerunning a batch does not duplicate workouts.
package history

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DB is the local SQLite history at dir/history.db.
type DB struct {
	db *sql.DB
}

// Record is one processed batch run.
type Record struct {
	Source      string
	Output      string
	Hash        string
	Appended    int
	Failed      int
	ProcessedAt time.Time
}

// Open opens (or creates) the history database in dir.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history dir %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "history.db"))
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS processed_files (
		source       TEXT NOT NULL,
		output       TEXT NOT NULL,
		hash         TEXT NOT NULL,
		appended     INTEGER NOT NULL,
		failed       INTEGER NOT NULL,
		processed_at TIMESTAMP NOT NULL,
		PRIMARY KEY (source, output)
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history table: %w", err)
	}

	return &DB{db: db}, nil
}

// IsProcessed reports whether source with this hash was already appended to output.
func (h *DB) IsProcessed(source, output, hash string) (bool, error) {
	var count int
	err := h.db.QueryRow(
		`SELECT COUNT(*) FROM processed_files WHERE source = ? AND output = ? AND hash = ?`,
		source, output, hash,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("querying history: %w", err)
	}
	return count > 0, nil
}

// MarkProcessed records a batch run, replacing any earlier run of the same
// source into the same output.
func (h *DB) MarkProcessed(r Record) error {
	if r.ProcessedAt.IsZero() {
		r.ProcessedAt = time.Now()
	}
	_, err := h.db.Exec(
		`INSERT OR REPLACE INTO processed_files (source, output, hash, appended, failed, processed_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.Source, r.Output, r.Hash, r.Appended, r.Failed, r.ProcessedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("recording history: %w", err)
	}
	return nil
}

// Forget drops the record for source into output so it can be appended again.
func (h *DB) Forget(source, output string) error {
	_, err := h.db.Exec(`DELETE FROM processed_files WHERE source = ? AND output = ?`, source, output)
	if err != nil {
		return fmt.Errorf("deleting history: %w", err)
	}
	return nil
}

// Recent returns the latest runs, newest first.
func (h *DB) Recent(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := h.db.Query(
		`SELECT source, output, hash, appended, failed, processed_at
		 FROM processed_files ORDER BY processed_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Source, &r.Output, &r.Hash, &r.Appended, &r.Failed, &r.ProcessedAt); err != nil {
			return nil, fmt.Errorf("scanning history: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close closes the history database.
func (h *DB) Close() error {
	return h.db.Close()
}

// HashFile computes the SHA-256 hash of a file.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	sum := sha256.New()
	if _, err := io.Copy(sum, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(sum.Sum(nil)), nil
}
