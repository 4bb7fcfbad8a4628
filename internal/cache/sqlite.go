// Package cache stores readiness reports in a local SQLite database so they
// survive restarts. It only stores and loads; reuse policy lives in the
// readiness package.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/claude/fittrack/internal/models"
	"github.com/claude/fittrack/internal/readiness"

	_ "modernc.org/sqlite"
)

// SQLite is a readiness.Cache backed by a SQLite file.
type SQLite struct {
	db *sql.DB
}

var _ readiness.Cache = (*SQLite)(nil)

// Open opens (or creates) the cache database at path.
func Open(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}
	// SQLite allows one writer; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS readiness_reports (
		user_id     INTEGER NOT NULL,
		muscle      TEXT NOT NULL,
		fingerprint TEXT NOT NULL,
		report      TEXT NOT NULL,
		stored_at   TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, muscle)
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache table: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Load returns the cached report for a muscle, or nil if there is none.
func (c *SQLite) Load(ctx context.Context, userID int, muscle models.Muscle) (*readiness.Cached, error) {
	var fp, raw string
	err := c.db.QueryRowContext(ctx,
		`SELECT fingerprint, report FROM readiness_reports WHERE user_id = ? AND muscle = ?`,
		userID, string(muscle),
	).Scan(&fp, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading cached report: %w", err)
	}

	var r readiness.Report
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return nil, fmt.Errorf("decoding cached report: %w", err)
	}
	return &readiness.Cached{Report: r, Fingerprint: fp}, nil
}

// Store replaces the cached report for the report's muscle.
func (c *SQLite) Store(ctx context.Context, userID int, e readiness.Cached) error {
	raw, err := json.Marshal(e.Report)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO readiness_reports (user_id, muscle, fingerprint, report) VALUES (?, ?, ?, ?)`,
		userID, string(e.Report.Muscle), e.Fingerprint, string(raw),
	)
	if err != nil {
		return fmt.Errorf("storing report: %w", err)
	}
	return nil
}

// Invalidate drops every cached report of a user.
func (c *SQLite) Invalidate(ctx context.Context, userID int) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM readiness_reports WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("invalidating reports: %w", err)
	}
	return nil
}

// Close closes the cache database.
func (c *SQLite) Close() error {
	return c.db.Close()
}
