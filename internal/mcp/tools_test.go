package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/claude/fittrack/internal/models"
	"github.com/claude/fittrack/internal/readiness"
	"github.com/claude/fittrack/internal/storage"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

type fakeDS struct {
	reports  []readiness.Report
	statuses []models.MuscleStatus
	workouts []models.Workout // newest first
	limit    int
	bucket   string
	start    time.Time
}

func (f *fakeDS) ReadinessReport(_ context.Context, _ int, m models.Muscle) (*readiness.Report, error) {
	for _, r := range f.reports {
		if r.Muscle == m {
			return &r, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeDS) ReadinessReports(context.Context, int) ([]readiness.Report, error) {
	return f.reports, nil
}

func (f *fakeDS) ListMuscleStatuses(context.Context, int) ([]models.MuscleStatus, error) {
	return f.statuses, nil
}

func (f *fakeDS) QueryWorkouts(_ context.Context, start, end time.Time, _ int) ([]models.Workout, error) {
	var out []models.Workout
	for _, w := range f.workouts {
		if !w.StartTime.Before(start) && w.StartTime.Before(end) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeDS) RecentWorkouts(_ context.Context, _ int, m models.Muscle, limit int) ([]models.Workout, error) {
	f.limit = limit
	var out []models.Workout
	for _, w := range f.workouts {
		if w.Targets(m) && len(out) < limit {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeDS) TrainingSummary(_ context.Context, start, _ time.Time, bucket string, _ int) ([]storage.TrainingSummaryPeriod, error) {
	f.bucket = bucket
	f.start = start
	return []storage.TrainingSummaryPeriod{{Period: "2026-03-02", Sessions: 2, WorkingSets: 20}}, nil
}

func newHandlers(ds DataSource) *handlers {
	return &handlers{ds: ds, historySize: 10, log: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func call(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) != 1 {
		t.Fatalf("content items = %d, want 1", len(res.Content))
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content = %T, want TextContent", res.Content[0])
	}
	return tc.Text
}

func lift(daysAgo int, volume int, m models.Muscle) models.Workout {
	return models.Workout{
		ID:        uuid.New(),
		Name:      "Session",
		StartTime: time.Now().AddDate(0, 0, -daysAgo),
		Exercises: []models.Exercise{{
			Number:       1,
			Name:         "Lift",
			TrackingType: models.TrackingWeightReps,
			Muscles:      []models.Muscle{m},
			Sets:         []models.Set{{Number: 1, Reps: 1, WeightKg: float64(volume), Completed: true}},
		}},
	}
}

// TestGetMuscleReadinessSingle verifies a named muscle returns that report
// and an unknown muscle is a tool error, not a Go error.
func TestGetMuscleReadinessSingle(t *testing.T) {
	ds := &fakeDS{reports: []readiness.Report{
		{Muscle: models.Chest, State: readiness.StatePrimed, PRProbability: 86},
		{Muscle: models.Quads, State: readiness.StateRecovering},
	}}
	h := newHandlers(ds)

	res, err := h.getMuscleReadiness(context.Background(), call(map[string]any{"muscle": "Chest"}))
	if err != nil {
		t.Fatal(err)
	}
	var r readiness.Report
	if err := json.Unmarshal([]byte(resultText(t, res)), &r); err != nil {
		t.Fatal(err)
	}
	if r.Muscle != models.Chest || r.PRProbability != 86 {
		t.Errorf("report = %+v", r)
	}

	res, err = h.getMuscleReadiness(context.Background(), call(map[string]any{"muscle": "wings"}))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Error("unknown muscle did not produce a tool error")
	}

	res, _ = h.getMuscleReadiness(context.Background(), call(map[string]any{"muscle": "calves"}))
	if !res.IsError || !strings.Contains(resultText(t, res), "no status") {
		t.Errorf("missing status result = %+v", res)
	}
}

// TestGetMuscleReadinessAll verifies omitting muscle lists every report.
func TestGetMuscleReadinessAll(t *testing.T) {
	ds := &fakeDS{reports: []readiness.Report{{Muscle: models.Chest}, {Muscle: models.Quads}}}
	res, err := newHandlers(ds).getMuscleReadiness(context.Background(), call(nil))
	if err != nil {
		t.Fatal(err)
	}
	var reports []readiness.Report
	if err := json.Unmarshal([]byte(resultText(t, res)), &reports); err != nil {
		t.Fatal(err)
	}
	if len(reports) != 2 {
		t.Errorf("reports = %d, want 2", len(reports))
	}
}

// TestGetWorkoutsFiltersMuscle verifies the muscle filter and the per-workout
// volume.
func TestGetWorkoutsFiltersMuscle(t *testing.T) {
	ds := &fakeDS{workouts: []models.Workout{
		lift(1, 500, models.Chest),
		lift(2, 900, models.Quads),
		lift(3, 400, models.Chest),
	}}
	res, err := newHandlers(ds).getWorkouts(context.Background(), call(map[string]any{"muscle": "chest"}))
	if err != nil {
		t.Fatal(err)
	}
	var got []workoutSummary
	if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("workouts = %d, want 2", len(got))
	}
	if got[0].Volume != 500 || got[1].Volume != 400 {
		t.Errorf("volumes = %v, %v; want 500, 400", got[0].Volume, got[1].Volume)
	}

	res, _ = newHandlers(ds).getWorkouts(context.Background(), call(map[string]any{"start": "yesterday"}))
	if !res.IsError {
		t.Error("bad date did not produce a tool error")
	}
}

// TestPredictVolume verifies history is reported oldest first and the
// prediction matches the weighted average with the overload bonus:
// (1000*1 + 1200*2) / 3 = 1133.33, rising, so *1.05 = 1190.
func TestPredictVolume(t *testing.T) {
	ds := &fakeDS{workouts: []models.Workout{
		lift(1, 1200, models.Chest),
		lift(4, 1000, models.Chest),
	}}
	res, err := newHandlers(ds).predictVolume(context.Background(), call(map[string]any{"muscle": "chest"}))
	if err != nil {
		t.Fatal(err)
	}
	var p volumePrediction
	if err := json.Unmarshal([]byte(resultText(t, res)), &p); err != nil {
		t.Fatal(err)
	}
	if p.PredictedVolume != 1190 {
		t.Errorf("predicted = %v, want 1190", p.PredictedVolume)
	}
	if len(p.History) != 2 || p.History[0] != 1000 || p.History[1] != 1200 {
		t.Errorf("history = %v, want [1000 1200]", p.History)
	}
	if ds.limit != 10 {
		t.Errorf("limit = %d, want server default 10", ds.limit)
	}

	if _, err := newHandlers(ds).predictVolume(context.Background(), call(map[string]any{"muscle": "chest", "history": float64(3)})); err != nil {
		t.Fatal(err)
	}
	if ds.limit != 3 {
		t.Errorf("limit = %d, want 3", ds.limit)
	}

	res, _ = newHandlers(ds).predictVolume(context.Background(), call(nil))
	if !res.IsError {
		t.Error("missing muscle did not produce a tool error")
	}
}

// TestMuscleCatalogResource verifies the catalog lists every muscle.
func TestMuscleCatalogResource(t *testing.T) {
	var req mcp.ReadResourceRequest
	req.Params.URI = "fittrack://muscles"
	contents, err := newHandlers(&fakeDS{}).muscleCatalog(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	text := contents[0].(mcp.TextResourceContents).Text
	var catalog []catalogEntry
	if err := json.Unmarshal([]byte(text), &catalog); err != nil {
		t.Fatal(err)
	}
	if len(catalog) != len(models.AllMuscles) {
		t.Fatalf("catalog = %d entries, want %d", len(catalog), len(models.AllMuscles))
	}
	if catalog[2].Label != "Upper Back" {
		t.Errorf("catalog[2].Label = %q, want Upper Back", catalog[2].Label)
	}
}

// TestDefaultTimeRange verifies time range defaults (last 7 days) and parsing.
func TestDefaultTimeRange(t *testing.T) {
	start, end, err := defaultTimeRange("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h := end.Sub(start).Hours(); h < 167 || h > 169 {
		t.Errorf("default range = %.0f hours, want ~168", h)
	}

	start, end, err = defaultTimeRange("2024-01-01", "2024-06-15T10:30:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Day() != 1 || start.Month() != 1 {
		t.Errorf("start = %v, want 2024-01-01", start)
	}
	if end.Hour() != 10 || end.Minute() != 30 {
		t.Errorf("end = %v, want 10:30", end)
	}

	if _, _, err = defaultTimeRange("not-a-date", ""); err == nil {
		t.Error("expected error for invalid date")
	}
}

// TestGetTrainingSummary verifies the tool defaults to weekly buckets over the
// last six months.
func TestGetTrainingSummary(t *testing.T) {
	ds := &fakeDS{}
	res, err := newHandlers(ds).getTrainingSummary(context.Background(), call(map[string]any{"end": "2026-07-01"}))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(t, res))
	}
	if ds.bucket != "week" {
		t.Errorf("bucket = %q, want week", ds.bucket)
	}
	if got := ds.start.Format("2006-01-02"); got != "2026-01-01" {
		t.Errorf("start = %s, want 2026-01-01", got)
	}
	var summary []storage.TrainingSummaryPeriod
	if err := json.Unmarshal([]byte(resultText(t, res)), &summary); err != nil {
		t.Fatal(err)
	}
	if len(summary) != 1 || summary[0].WorkingSets != 20 {
		t.Errorf("summary = %+v", summary)
	}
}

// TestGetTrainingSummaryBadBucket verifies unknown buckets are a tool error.
func TestGetTrainingSummaryBadBucket(t *testing.T) {
	res, err := newHandlers(&fakeDS{}).getTrainingSummary(context.Background(), call(map[string]any{"bucket": "day"}))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Error("expected tool error for bucket=day")
	}
}
