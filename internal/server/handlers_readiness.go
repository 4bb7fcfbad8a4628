package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/claude/fittrack/internal/models"
	"github.com/claude/fittrack/internal/recovery"
	"github.com/claude/fittrack/internal/storage"
	"github.com/go-chi/chi/v5"
)

// statusRequest is the body of PUT /api/v1/muscles/{muscle}. Omitted rest
// days fall back to the muscle's default.
type statusRequest struct {
	WorkloadScore       float64   `json:"workload_score"`
	RecoveryPercentage  int       `json:"recovery_percentage"`
	LastWorked          time.Time `json:"last_worked"`
	RecommendedRestDays *float64  `json:"recommended_rest_days"`
	TrainingFrequency   float64   `json:"training_frequency"`
}

type volumeRequest struct {
	TrackingType models.TrackingType `json:"tracking_type"`
	Sets         []models.Set        `json:"sets"`
}

func (s *Server) handleListMuscles(w http.ResponseWriter, r *http.Request) {
	statuses, err := s.db.ListMuscleStatuses(r.Context(), userIDFromContext(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, nonNil(statuses))
}

func (s *Server) handlePutMuscle(w http.ResponseWriter, r *http.Request) {
	muscle, err := models.ParseMuscle(chi.URLParam(r, "muscle"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	st := models.MuscleStatus{
		UserID:              userIDFromContext(r),
		Muscle:              muscle,
		WorkloadScore:       req.WorkloadScore,
		RecoveryPercentage:  req.RecoveryPercentage,
		LastWorked:          req.LastWorked,
		RecommendedRestDays: models.DefaultRestDays[muscle],
		TrainingFrequency:   req.TrainingFrequency,
	}
	if req.RecommendedRestDays != nil {
		st.RecommendedRestDays = *req.RecommendedRestDays
	}
	if err := validateStatus(st, time.Now()); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := s.db.UpsertMuscleStatus(r.Context(), st); err != nil {
		s.log.Error("upsert muscle status", "muscle", muscle, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	s.invalidate(r, st.UserID)
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleReadinessAll(w http.ResponseWriter, r *http.Request) {
	reports, err := s.readiness.ReportAll(r.Context(), userIDFromContext(r))
	if err != nil {
		s.log.Error("readiness report", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, nonNil(reports))
}

func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	muscle, err := models.ParseMuscle(chi.URLParam(r, "muscle"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	report, err := s.readiness.Report(r.Context(), userIDFromContext(r), muscle)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no status recorded for " + string(muscle)})
		return
	}
	if err != nil {
		s.log.Error("readiness report", "muscle", muscle, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleVolume(w http.ResponseWriter, r *http.Request) {
	var req volumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	t, err := recovery.TrackingFor(req.TrackingType)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"volume": recovery.ComputeVolume(req.Sets, t)})
}
