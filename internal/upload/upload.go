package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/claude/fittrack/internal/ingest"
	"github.com/claude/fittrack/internal/ingest/alpha"
)

// Stats tracks upload progress.
type Stats struct {
	FilesTotal    int
	FilesUploaded int
	FilesSkipped  int
	FilesErrored  int

	SessionsSent     int
	WorkoutsReplaced int64

	UnmappedExercises []string
}

// Sender delivers one Alpha CSV export. *Client implements it.
type Sender interface {
	SendAlphaCSV(ctx context.Context, body io.Reader) (*ingest.Result, error)
}

// Uploader walks a directory of Alpha Progression exports and sends every
// new or changed CSV to the server.
type Uploader struct {
	sender Sender
	state  *StateDB
	dir    string
	dryRun bool
	log    *slog.Logger
	stats  Stats
}

// New creates a new Uploader. sender may be nil in dry-run mode.
func New(sender Sender, state *StateDB, dir string, dryRun bool, log *slog.Logger) *Uploader {
	return &Uploader{
		sender: sender,
		state:  state,
		dir:    dir,
		dryRun: dryRun,
		log:    log,
	}
}

// Run uploads every pending export in name order. Per-file failures are
// counted and logged; only a failure to list the directory aborts the run.
func (u *Uploader) Run(ctx context.Context) (*Stats, error) {
	files, err := filepath.Glob(filepath.Join(u.dir, "*.csv"))
	if err != nil {
		return &u.stats, fmt.Errorf("listing exports: %w", err)
	}
	sort.Strings(files)

	unmapped := map[string]bool{}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return &u.stats, err
		}
		u.stats.FilesTotal++

		rel, _ := filepath.Rel(u.dir, f)
		hash, err := HashFile(f)
		if err != nil {
			u.log.Warn("hash failed", "file", f, "error", err)
			u.stats.FilesErrored++
			continue
		}

		uploaded, err := u.state.IsUploaded(rel, hash)
		if err != nil {
			u.log.Warn("state check failed", "file", f, "error", err)
			u.stats.FilesErrored++
			continue
		}
		if uploaded {
			u.stats.FilesSkipped++
			continue
		}

		data, err := os.ReadFile(f)
		if err != nil {
			u.log.Warn("read failed", "file", f, "error", err)
			u.stats.FilesErrored++
			continue
		}

		if u.dryRun {
			sessions, err := alpha.Parse(bytes.NewReader(data))
			if err != nil {
				u.log.Warn("parse failed", "file", f, "error", err)
				u.stats.FilesErrored++
				continue
			}
			u.log.Info("would upload", "file", rel, "sessions", len(sessions))
			u.stats.SessionsSent += len(sessions)
			continue
		}

		res, err := u.sender.SendAlphaCSV(ctx, bytes.NewReader(data))
		if err != nil {
			u.log.Warn("upload failed", "file", f, "error", err)
			u.stats.FilesErrored++
			continue
		}

		if err := u.state.MarkUploaded(rel, hash, res.SessionsReceived); err != nil {
			u.log.Warn("state update failed", "file", f, "error", err)
		}
		u.stats.FilesUploaded++
		u.stats.SessionsSent += res.SessionsReceived
		u.stats.WorkoutsReplaced += res.WorkoutsReplaced
		for _, name := range res.UnmappedExercises {
			if !unmapped[name] {
				unmapped[name] = true
				u.stats.UnmappedExercises = append(u.stats.UnmappedExercises, name)
			}
		}
		u.log.Info("uploaded", "file", rel, "sessions", res.SessionsReceived)
	}

	return &u.stats, nil
}
