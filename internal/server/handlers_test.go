package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/claude/fittrack/internal/ingest"
	"github.com/claude/fittrack/internal/models"
	"github.com/claude/fittrack/internal/readiness"
	"github.com/claude/fittrack/internal/storage"
	"github.com/google/uuid"
)

const testKey = "test-key"

type fakeStore struct {
	workouts map[uuid.UUID]models.Workout
	statuses []models.MuscleStatus
	users    map[string]int
	limit    int
	imports  []storage.ImportLog
	bucket   string
	span     [2]time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{workouts: map[uuid.UUID]models.Workout{}, users: map[string]int{}}
}

func (f *fakeStore) GetOrCreateUser(_ context.Context, login, _ string) (int, error) {
	if id, ok := f.users[login]; ok {
		return id, nil
	}
	f.users[login] = len(f.users) + 2
	return f.users[login], nil
}

func (f *fakeStore) InsertWorkout(_ context.Context, w models.Workout) (bool, error) {
	if _, ok := f.workouts[w.ID]; ok {
		return false, nil
	}
	f.workouts[w.ID] = w
	return true, nil
}

func (f *fakeStore) DeleteWorkout(_ context.Context, id uuid.UUID, userID int) error {
	w, ok := f.workouts[id]
	if !ok || w.UserID != userID {
		return storage.ErrNotFound
	}
	delete(f.workouts, id)
	return nil
}

func (f *fakeStore) GetWorkout(_ context.Context, id uuid.UUID, userID int) (*models.Workout, error) {
	w, ok := f.workouts[id]
	if !ok || w.UserID != userID {
		return nil, storage.ErrNotFound
	}
	return &w, nil
}

func (f *fakeStore) QueryWorkouts(_ context.Context, start, end time.Time, userID int) ([]models.Workout, error) {
	var out []models.Workout
	for _, w := range f.workouts {
		if w.UserID == userID && !w.StartTime.Before(start) && w.StartTime.Before(end) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeStore) RecentWorkouts(_ context.Context, _ int, _ models.Muscle, limit int) ([]models.Workout, error) {
	f.limit = limit
	return nil, nil
}

func (f *fakeStore) ListMuscleStatuses(context.Context, int) ([]models.MuscleStatus, error) {
	return f.statuses, nil
}

func (f *fakeStore) UpsertMuscleStatus(_ context.Context, s models.MuscleStatus) error {
	f.statuses = append(f.statuses, s)
	return nil
}

func (f *fakeStore) InsertImportLog(_ context.Context, l storage.ImportLog) (int64, error) {
	f.imports = append(f.imports, l)
	return int64(len(f.imports)), nil
}

func (f *fakeStore) QueryImportLogs(_ context.Context, userID, limit int) ([]storage.ImportLog, error) {
	var out []storage.ImportLog
	for i := len(f.imports) - 1; i >= 0 && len(out) < limit; i-- {
		if f.imports[i].UserID == userID {
			out = append(out, f.imports[i])
		}
	}
	return out, nil
}

func (f *fakeStore) GetDataStats(_ context.Context, userID int) (*storage.DataStats, error) {
	stats := &storage.DataStats{}
	for _, w := range f.workouts {
		if w.UserID == userID {
			stats.TotalWorkouts++
		}
	}
	stats.MusclesTracked = int64(len(f.statuses))
	return stats, nil
}

func (f *fakeStore) GetTrainingSummary(_ context.Context, start, end time.Time, bucket string, _ int) ([]storage.TrainingSummaryPeriod, error) {
	f.bucket = bucket
	f.span = [2]time.Time{start, end}
	return nil, nil
}

type fakeReadiness struct {
	reports     map[models.Muscle]readiness.Report
	invalidated int
}

func (f *fakeReadiness) Report(_ context.Context, _ int, m models.Muscle) (*readiness.Report, error) {
	r, ok := f.reports[m]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &r, nil
}

func (f *fakeReadiness) ReportAll(context.Context, int) ([]readiness.Report, error) {
	var out []readiness.Report
	for _, m := range models.AllMuscles {
		if r, ok := f.reports[m]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReadiness) Invalidate(context.Context, int) error {
	f.invalidated++
	return nil
}

type fakeImporter struct {
	body string
	err  error
}

func (f *fakeImporter) Ingest(_ context.Context, r io.Reader, _ int) (*ingest.Result, error) {
	b, _ := io.ReadAll(r)
	f.body = string(b)
	if f.err != nil {
		return nil, f.err
	}
	return &ingest.Result{SessionsReceived: 1, WorkoutsInserted: 1}, nil
}

type testEnv struct {
	srv   *Server
	store *fakeStore
	ready *fakeReadiness
	alpha *fakeImporter
}

func newTestEnv() *testEnv {
	env := &testEnv{
		store: newFakeStore(),
		ready: &fakeReadiness{reports: map[models.Muscle]readiness.Report{}},
		alpha: &fakeImporter{},
	}
	env.srv = New(env.store, env.ready, env.alpha, nil, testKey, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return env
}

func (e *testEnv) do(method, path, body string, authed bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if authed {
		req.Header.Set("X-API-Key", testKey)
	}
	rec := httptest.NewRecorder()
	e.srv.ServeHTTP(rec, req)
	return rec
}

const benchWorkout = `{
	"name": "Push",
	"start_time": "2026-03-01T10:00:00Z",
	"exercises": [{
		"name": "Bench Press",
		"tracking_type": "weight_reps",
		"sets": [
			{"reps": 5, "weight_kg": 100, "completed": true},
			{"reps": 5, "weight_kg": 100, "completed": false}
		]
	}]
}`

// TestCreateWorkout verifies a posted workout gets an ID, the caller's user,
// numbered sets and muscles inferred from the exercise name.
func TestCreateWorkout(t *testing.T) {
	env := newTestEnv()
	rec := env.do(http.MethodPost, "/api/v1/workouts", benchWorkout, true)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body)
	}

	var got models.Workout
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.ID == uuid.Nil {
		t.Error("workout ID not assigned")
	}
	if got.UserID != localUserID || got.Source != "api" {
		t.Errorf("user/source = %d/%q", got.UserID, got.Source)
	}
	ex := got.Exercises[0]
	if !ex.Targets(models.Chest) {
		t.Errorf("muscles = %v, want chest inferred", ex.Muscles)
	}
	if ex.Number != 1 || ex.Sets[1].Number != 2 {
		t.Errorf("numbering = exercise %d, set %d", ex.Number, ex.Sets[1].Number)
	}
	if len(env.store.workouts) != 1 {
		t.Errorf("stored = %d, want 1", len(env.store.workouts))
	}
}

// TestCreateWorkoutRequiresKey verifies writes are rejected without a valid key.
func TestCreateWorkoutRequiresKey(t *testing.T) {
	env := newTestEnv()
	if rec := env.do(http.MethodPost, "/api/v1/workouts", benchWorkout, false); rec.Code != http.StatusUnauthorized {
		t.Errorf("no key: status = %d, want 401", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/workouts", strings.NewReader(benchWorkout))
	req.Header.Set("X-API-Key", "wrong")
	rec := httptest.NewRecorder()
	env.srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("wrong key: status = %d, want 403", rec.Code)
	}
}

// TestCreateWorkoutRejectsUnknownTracking verifies an unrecognized tracking
// type is a 400 instead of a silently zero-volume workout.
func TestCreateWorkoutRejectsUnknownTracking(t *testing.T) {
	env := newTestEnv()
	body := strings.Replace(benchWorkout, "weight_reps", "laps", 1)
	rec := env.do(http.MethodPost, "/api/v1/workouts", body, true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "unknown tracking type") {
		t.Errorf("body = %s", rec.Body)
	}
}

// TestCreateWorkoutRejectsUnknownMuscle verifies explicit muscles are checked.
func TestCreateWorkoutRejectsUnknownMuscle(t *testing.T) {
	env := newTestEnv()
	body := strings.Replace(benchWorkout, `"tracking_type"`, `"muscles": ["wings"], "tracking_type"`, 1)
	if rec := env.do(http.MethodPost, "/api/v1/workouts", body, true); rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestCreateWorkoutDuplicate verifies posting the same ID twice conflicts.
func TestCreateWorkoutDuplicate(t *testing.T) {
	env := newTestEnv()
	body := strings.Replace(benchWorkout, `"name": "Push"`, `"id": "6f1c3c2e-2a8e-4d55-9a43-0c4d3b0e9a11", "name": "Push"`, 1)
	if rec := env.do(http.MethodPost, "/api/v1/workouts", body, true); rec.Code != http.StatusCreated {
		t.Fatalf("first: status = %d", rec.Code)
	}
	if rec := env.do(http.MethodPost, "/api/v1/workouts", body, true); rec.Code != http.StatusConflict {
		t.Errorf("second: status = %d, want 409", rec.Code)
	}
	if env.ready.invalidated != 1 {
		t.Errorf("invalidated = %d, want 1 (conflict must not invalidate)", env.ready.invalidated)
	}
}

// TestGetAndDeleteWorkout verifies lookup, deletion and the 404 afterwards.
func TestGetAndDeleteWorkout(t *testing.T) {
	env := newTestEnv()
	id := uuid.New()
	env.store.workouts[id] = models.Workout{ID: id, UserID: localUserID, Name: "Legs"}

	if rec := env.do(http.MethodGet, "/api/v1/workouts/"+id.String(), "", false); rec.Code != http.StatusOK {
		t.Fatalf("get: status = %d", rec.Code)
	}
	if rec := env.do(http.MethodGet, "/api/v1/workouts/not-a-uuid", "", false); rec.Code != http.StatusBadRequest {
		t.Errorf("bad id: status = %d, want 400", rec.Code)
	}
	if rec := env.do(http.MethodDelete, "/api/v1/workouts/"+id.String(), "", true); rec.Code != http.StatusNoContent {
		t.Fatalf("delete: status = %d", rec.Code)
	}
	if rec := env.do(http.MethodGet, "/api/v1/workouts/"+id.String(), "", false); rec.Code != http.StatusNotFound {
		t.Errorf("get after delete: status = %d, want 404", rec.Code)
	}
	if rec := env.do(http.MethodDelete, "/api/v1/workouts/"+id.String(), "", true); rec.Code != http.StatusNotFound {
		t.Errorf("second delete: status = %d, want 404", rec.Code)
	}
	if env.ready.invalidated != 1 {
		t.Errorf("invalidated = %d, want 1", env.ready.invalidated)
	}
}

// TestQueryWorkoutsEmptyIsArray verifies an empty range encodes as [].
func TestQueryWorkoutsEmptyIsArray(t *testing.T) {
	env := newTestEnv()
	rec := env.do(http.MethodGet, "/api/v1/workouts?start=2026-01-01&end=2026-01-02", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body = %s, want []", got)
	}
}

// TestRecentWorkoutsLimit verifies the default and capped limits.
func TestRecentWorkoutsLimit(t *testing.T) {
	env := newTestEnv()
	env.do(http.MethodGet, "/api/v1/workouts/recent?muscle=chest", "", false)
	if env.store.limit != defaultRecentLimit {
		t.Errorf("default limit = %d, want %d", env.store.limit, defaultRecentLimit)
	}
	env.do(http.MethodGet, "/api/v1/workouts/recent?limit=5000", "", false)
	if env.store.limit != maxRecentLimit {
		t.Errorf("capped limit = %d, want %d", env.store.limit, maxRecentLimit)
	}
	if rec := env.do(http.MethodGet, "/api/v1/workouts/recent?limit=-1", "", false); rec.Code != http.StatusBadRequest {
		t.Errorf("negative limit: status = %d, want 400", rec.Code)
	}
}

// TestAlphaImportInvalidatesCache verifies the CSV body reaches the importer
// and cached reports are dropped afterwards.
func TestAlphaImportInvalidatesCache(t *testing.T) {
	env := newTestEnv()
	rec := env.do(http.MethodPost, "/api/v1/workouts/alpha", "csv-body", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if env.alpha.body != "csv-body" {
		t.Errorf("importer got %q", env.alpha.body)
	}
	if env.ready.invalidated != 1 {
		t.Errorf("invalidated = %d, want 1", env.ready.invalidated)
	}
}

// TestHandleMe verifies /api/v1/me reports the local user outside a tailnet.
func TestHandleMe(t *testing.T) {
	rec := newTestEnv().do(http.MethodGet, "/api/v1/me", "", false)
	var info UserInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if info != localUser {
		t.Errorf("me = %+v, want %+v", info, localUser)
	}
}

// TestHealthz verifies the health endpoint needs no identity or key.
func TestHealthz(t *testing.T) {
	if rec := newTestEnv().do(http.MethodGet, "/healthz", "", false); rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

// TestParseTimeRange verifies defaults and the whole-day end for dates.
func TestParseTimeRange(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?start=2026-01-01&end=2026-01-31", nil)
	start, end, err := parseTimeRange(req)
	if err != nil {
		t.Fatal(err)
	}
	if !start.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", start)
	}
	if !end.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end = %v, want end of Jan 31", end)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	start, end, err = parseTimeRange(req)
	if err != nil {
		t.Fatal(err)
	}
	if h := end.Sub(start).Hours(); h < 167 || h > 169 {
		t.Errorf("default range = %v hours, want ~168", h)
	}

	req = httptest.NewRequest(http.MethodGet, "/?start=soon", nil)
	if _, _, err := parseTimeRange(req); err == nil {
		t.Error("expected error for bad start")
	}
}

// TestCreateWorkoutRejectsDuplicateNumbers verifies colliding exercise or set
// numbers are a 400 instead of a storage failure.
func TestCreateWorkoutRejectsDuplicateNumbers(t *testing.T) {
	bodies := map[string]string{
		"explicit exercises": `{"name": "Push", "start_time": "2026-03-01T10:00:00Z", "exercises": [
			{"number": 1, "name": "Bench Press", "tracking_type": "weight_reps"},
			{"number": 1, "name": "Dips", "tracking_type": "reps_only"}]}`,
		"implicit after explicit": `{"name": "Push", "start_time": "2026-03-01T10:00:00Z", "exercises": [
			{"number": 2, "name": "Bench Press", "tracking_type": "weight_reps"},
			{"name": "Dips", "tracking_type": "reps_only"}]}`,
		"sets": `{"name": "Push", "start_time": "2026-03-01T10:00:00Z", "exercises": [
			{"name": "Bench Press", "tracking_type": "weight_reps", "sets": [
				{"number": 1, "reps": 5, "weight_kg": 100, "completed": true},
				{"number": 1, "reps": 5, "weight_kg": 100, "completed": true}]}]}`,
	}
	for name, body := range bodies {
		env := newTestEnv()
		rec := env.do(http.MethodPost, "/api/v1/workouts", body, true)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", name, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "duplicate") {
			t.Errorf("%s: body = %s", name, rec.Body)
		}
		if len(env.store.workouts) != 0 {
			t.Errorf("%s: workout stored", name)
		}
	}
}
