package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/claude/fittrack/internal/models"
	"github.com/claude/fittrack/internal/recovery"
	"github.com/claude/fittrack/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

// defaultTimeRange returns start/end defaulting to the last 7 days.
func defaultTimeRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -7)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// --- Tool definitions ---

var toolGetMuscleReadiness = mcp.NewTool("get_muscle_readiness",
	mcp.WithDescription("Readiness report per muscle: recovery percentage, fatigue, supercompensation (0-10), predicted next-session volume and PR probability (0-100). State is recovering, ready or primed."),
	mcp.WithString("muscle", mcp.Description("Muscle group (e.g. chest, upper_back, quads). Omit for every muscle with a recorded status.")),
	mcp.WithReadOnlyHintAnnotation(true),
)

var toolGetMuscleStatuses = mcp.NewTool("get_muscle_statuses",
	mcp.WithDescription("Raw stored muscle statuses: workload score, recovery percentage, last worked time, recommended rest days and weekly training frequency."),
	mcp.WithReadOnlyHintAnnotation(true),
)

var toolGetWorkouts = mcp.NewTool("get_workouts",
	mcp.WithDescription("Logged workouts with exercises, targeted muscles and sets. Each workout includes its total training volume."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 7 days ago.")),
	mcp.WithString("end", mcp.Description("End date (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
	mcp.WithString("muscle", mcp.Description("Only workouts that train this muscle group.")),
	mcp.WithReadOnlyHintAnnotation(true),
)

var toolPredictVolume = mcp.NewTool("predict_volume",
	mcp.WithDescription("Predict the next session's training volume for a muscle from recent workouts (recency-weighted average with a progressive overload bonus when the trend is rising)."),
	mcp.WithString("muscle", mcp.Required(), mcp.Description("Muscle group (e.g. chest, hamstrings)")),
	mcp.WithNumber("history", mcp.Description("How many recent workouts to use. Defaults to the server setting."), mcp.Min(1), mcp.Max(100)),
	mcp.WithReadOnlyHintAnnotation(true),
)

var toolGetTrainingSummary = mcp.NewTool("get_training_summary",
	mcp.WithDescription("Weekly or monthly strength volume: sessions, completed sets, reps, tonnage and completed sets per muscle for each period, newest first."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 6 months ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
	mcp.WithString("bucket", mcp.Description("Aggregation period. Defaults to 'week'."), mcp.Enum("week", "month")),
	mcp.WithReadOnlyHintAnnotation(true),
)

// workoutSummary is a workout plus its computed volume.
type workoutSummary struct {
	models.Workout
	Volume float64 `json:"volume"`
}

type volumePrediction struct {
	Muscle          models.Muscle `json:"muscle"`
	PredictedVolume float64       `json:"predicted_volume"`
	History         []float64     `json:"history"` // oldest first
}

// --- Tool handlers ---

func (h *handlers) getMuscleReadiness(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	name := req.GetString("muscle", "")
	if name == "" {
		reports, err := h.ds.ReadinessReports(ctx, uid)
		if err != nil {
			h.log.Error("mcp get_muscle_readiness", "error", err)
			return mcp.NewToolResultError("query failed: " + err.Error()), nil
		}
		return jsonResult(reports)
	}

	muscle, err := models.ParseMuscle(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	report, err := h.ds.ReadinessReport(ctx, uid, muscle)
	if errors.Is(err, storage.ErrNotFound) {
		return mcp.NewToolResultError("no status recorded for " + string(muscle)), nil
	}
	if err != nil {
		h.log.Error("mcp get_muscle_readiness", "muscle", muscle, "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(report)
}

func (h *handlers) getMuscleStatuses(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	statuses, err := h.ds.ListMuscleStatuses(ctx, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp get_muscle_statuses", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(statuses)
}

func (h *handlers) getWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	var muscle models.Muscle
	if name := req.GetString("muscle", ""); name != "" {
		if muscle, err = models.ParseMuscle(name); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	workouts, err := h.ds.QueryWorkouts(ctx, start, end, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp get_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	out := []workoutSummary{}
	for _, w := range workouts {
		if muscle != "" && !w.Targets(muscle) {
			continue
		}
		out = append(out, workoutSummary{Workout: w, Volume: recovery.WorkoutVolume(w)})
	}
	return jsonResult(out)
}

func (h *handlers) predictVolume(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("muscle")
	if err != nil {
		return mcp.NewToolResultError("muscle parameter is required"), nil
	}
	muscle, err := models.ParseMuscle(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	limit := req.GetInt("history", h.historySize)
	if limit < 1 {
		return mcp.NewToolResultError("history must be at least 1"), nil
	}

	recent, err := h.ds.RecentWorkouts(ctx, UserIDFromContext(ctx), muscle, limit)
	if err != nil {
		h.log.Error("mcp predict_volume", "muscle", muscle, "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	history := make([]float64, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		history = append(history, recovery.MuscleVolume(recent[i], muscle))
	}
	return jsonResult(volumePrediction{
		Muscle:          muscle,
		PredictedVolume: recovery.PredictVolume(recent, muscle),
		History:         history,
	})
}

func (h *handlers) getTrainingSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}
	if req.GetString("start", "") == "" {
		start = end.AddDate(0, -6, 0)
	}

	bucket := req.GetString("bucket", "week")
	if bucket != "week" && bucket != "month" {
		return mcp.NewToolResultError("bucket must be week or month"), nil
	}

	summary, err := h.ds.TrainingSummary(ctx, start, end, bucket, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp get_training_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if summary == nil {
		summary = []storage.TrainingSummaryPeriod{}
	}
	return jsonResult(summary)
}

func jsonResult[T any](v T) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
