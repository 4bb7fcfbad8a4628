package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/claude/fittrack/internal/models"
	"github.com/claude/fittrack/internal/storage"
	"github.com/google/uuid"
)

// TestAlphaImportRecordsLog verifies a successful import leaves a success
// entry with the importer's counts.
func TestAlphaImportRecordsLog(t *testing.T) {
	env := newTestEnv()
	if rec := env.do(http.MethodPost, "/api/v1/workouts/alpha", "csv-body", true); rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	if len(env.store.imports) != 1 {
		t.Fatalf("import logs = %d, want 1", len(env.store.imports))
	}
	l := env.store.imports[0]
	if l.Source != "alpha" || l.Status != "success" || l.SessionsReceived != 1 {
		t.Errorf("log = %+v", l)
	}
	if l.UserID != 1 {
		t.Errorf("UserID = %d, want 1", l.UserID)
	}
	if l.DurationMs == nil {
		t.Error("DurationMs not set")
	}
}

// TestAlphaImportFailureRecordsLog verifies a failed import is logged with
// its error and returns 400.
func TestAlphaImportFailureRecordsLog(t *testing.T) {
	env := newTestEnv()
	env.alpha.err = errors.New("exercise without session")

	if rec := env.do(http.MethodPost, "/api/v1/workouts/alpha", "bad", true); rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if len(env.store.imports) != 1 {
		t.Fatalf("import logs = %d, want 1", len(env.store.imports))
	}
	l := env.store.imports[0]
	if l.Status != "error" || l.ErrorMessage == nil || *l.ErrorMessage != "exercise without session" {
		t.Errorf("log = %+v", l)
	}
	if env.ready.invalidated != 0 {
		t.Error("cache invalidated after a failed import")
	}
}

// TestImportLogsEndpoint verifies logs are listed newest first and an empty
// history encodes as [].
func TestImportLogsEndpoint(t *testing.T) {
	env := newTestEnv()
	rec := env.do(http.MethodGet, "/api/v1/imports", "", false)
	if body := rec.Body.String(); body != "[]\n" {
		t.Errorf("empty body = %q, want []", body)
	}

	env.store.imports = []storage.ImportLog{
		{UserID: 1, Source: "alpha", SessionsReceived: 1},
		{UserID: 1, Source: "alpha", SessionsReceived: 2},
		{UserID: 7, Source: "alpha", SessionsReceived: 9},
	}
	rec = env.do(http.MethodGet, "/api/v1/imports?limit=5", "", false)
	var logs []storage.ImportLog
	if err := json.NewDecoder(rec.Body).Decode(&logs); err != nil {
		t.Fatal(err)
	}
	if len(logs) != 2 || logs[0].SessionsReceived != 2 {
		t.Errorf("logs = %+v", logs)
	}
}

// TestStatsEndpoint verifies stats are scoped to the caller.
func TestStatsEndpoint(t *testing.T) {
	env := newTestEnv()
	env.store.workouts[uuid.New()] = models.Workout{UserID: 1, Name: "Push"}
	env.store.workouts[uuid.New()] = models.Workout{UserID: 2, Name: "Pull"}

	rec := env.do(http.MethodGet, "/api/v1/stats", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var stats storage.DataStats
	if err := json.NewDecoder(rec.Body).Decode(&stats); err != nil {
		t.Fatal(err)
	}
	if stats.TotalWorkouts != 1 {
		t.Errorf("TotalWorkouts = %d, want 1", stats.TotalWorkouts)
	}
}

// TestTrainingSummaryDefaults verifies the default bucket is week and the
// default range reaches back six months.
func TestTrainingSummaryDefaults(t *testing.T) {
	env := newTestEnv()
	rec := env.do(http.MethodGet, "/api/v1/training/summary?end=2026-07-01T00:00:00Z", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Errorf("body = %q, want []", body)
	}
	if env.store.bucket != "week" {
		t.Errorf("bucket = %q, want week", env.store.bucket)
	}
	if got := env.store.span[0].Format("2006-01-02"); got != "2026-01-01" {
		t.Errorf("start = %s, want 2026-01-01", got)
	}
}

// TestTrainingSummaryBadBucket verifies unknown buckets are rejected.
func TestTrainingSummaryBadBucket(t *testing.T) {
	rec := newTestEnv().do(http.MethodGet, "/api/v1/training/summary?bucket=year", "", false)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
