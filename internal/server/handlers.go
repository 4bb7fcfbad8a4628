package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/claude/fittrack/internal/ingest/alpha"
	"github.com/claude/fittrack/internal/models"
	"github.com/claude/fittrack/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	defaultRecentLimit = 10
	maxRecentLimit     = 100
)

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userInfoFromContext(r))
}

func (s *Server) handleCreateWorkout(w http.ResponseWriter, r *http.Request) {
	var wk models.Workout
	if err := json.NewDecoder(r.Body).Decode(&wk); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := normalizeWorkout(&wk); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if wk.ID == uuid.Nil {
		wk.ID = uuid.New()
	}
	wk.UserID = userIDFromContext(r)

	inserted, err := s.db.InsertWorkout(r.Context(), wk)
	if err != nil {
		s.log.Error("insert workout", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !inserted {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "workout " + wk.ID.String() + " already exists"})
		return
	}
	s.invalidate(r, wk.UserID)
	writeJSON(w, http.StatusCreated, wk)
}

func (s *Server) handleAlphaImport(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)
	start := time.Now()
	result, err := s.alpha.Ingest(r.Context(), r.Body, uid)
	s.logImport(uid, alpha.Source, result, err, int(time.Since(start).Milliseconds()))
	if err != nil {
		s.log.Error("alpha import error", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	s.invalidate(r, uid)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleQueryWorkouts(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseTimeRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	workouts, err := s.db.QueryWorkouts(r.Context(), start, end, userIDFromContext(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, nonNil(workouts))
}

func (s *Server) handleRecentWorkouts(w http.ResponseWriter, r *http.Request) {
	var muscle models.Muscle
	if m := r.URL.Query().Get("muscle"); m != "" {
		parsed, err := models.ParseMuscle(m)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		muscle = parsed
	}

	limit := defaultRecentLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		limit = min(parsed, maxRecentLimit)
	}

	workouts, err := s.db.RecentWorkouts(r.Context(), userIDFromContext(r), muscle, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, nonNil(workouts))
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	workoutID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout ID"})
		return
	}

	wk, err := s.db.GetWorkout(r.Context(), workoutID, userIDFromContext(r))
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, wk)
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	workoutID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout ID"})
		return
	}

	uid := userIDFromContext(r)
	err = s.db.DeleteWorkout(r.Context(), workoutID, uid)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	s.invalidate(r, uid)
	w.WriteHeader(http.StatusNoContent)
}

// invalidate drops the user's cached reports after a write. Failures are
// logged only; fingerprints already keep stale entries from being served.
func (s *Server) invalidate(r *http.Request, uid int) {
	if err := s.readiness.Invalidate(r.Context(), uid); err != nil {
		s.log.Warn("cache invalidation failed", "path", r.URL.Path, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// nonNil keeps empty results encoding as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// parseTimeRange reads start/end as RFC 3339 or YYYY-MM-DD. Without start
// the range is the last 7 days. A date-only end covers that whole day.
func parseTimeRange(r *http.Request) (start, end time.Time, err error) {
	return parseTimeRangeFrom(r, func(end time.Time) time.Time { return end.AddDate(0, 0, -7) })
}

// parseTimeRangeFrom reads start/end query params. end defaults to now and a
// date-only end includes that whole day; a missing start comes from
// defaultStart(end).
func parseTimeRangeFrom(r *http.Request, defaultStart func(end time.Time) time.Time) (start, end time.Time, err error) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	end = time.Now()
	if endStr != "" {
		var dateOnly bool
		end, dateOnly, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		if dateOnly {
			end = end.Add(24 * time.Hour)
		}
	}

	if startStr == "" {
		return defaultStart(end), end, nil
	}
	start, _, err = parseFlexTime(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func parseFlexTime(s string) (t time.Time, dateOnly bool, err error) {
	if t, err = time.Parse(time.RFC3339, s); err == nil {
		return t, false, nil
	}
	if t, err = time.Parse(time.DateOnly, s); err == nil {
		return t, true, nil
	}
	return time.Time{}, false, err
}
