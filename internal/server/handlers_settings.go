package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/claude/fittrack/internal/ingest"
	"github.com/claude/fittrack/internal/storage"
)

const importLogTimeout = 5 * time.Second

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.GetDataStats(r.Context(), userIDFromContext(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleImportLogs(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	logs, err := s.db.QueryImportLogs(r.Context(), userIDFromContext(r), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, nonNil(logs))
}

func (s *Server) handleTrainingSummary(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseTimeRangeFrom(r, func(end time.Time) time.Time { return end.AddDate(0, -6, 0) })
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	bucket := r.URL.Query().Get("bucket")
	switch bucket {
	case "":
		bucket = "week"
	case "week", "month", "1 week", "1 month":
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bucket must be week or month"})
		return
	}

	summary, err := s.db.GetTrainingSummary(r.Context(), start, end, bucket, userIDFromContext(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, nonNil(summary))
}

// logImport records an import's outcome. result may be nil when the import
// failed before producing counts.
func (s *Server) logImport(uid int, source string, result *ingest.Result, importErr error, durationMs int) {
	entry := storage.ImportLog{
		UserID:     uid,
		Source:     source,
		Status:     "success",
		DurationMs: &durationMs,
	}
	if importErr != nil {
		entry.Status = "error"
		msg := importErr.Error()
		entry.ErrorMessage = &msg
	}
	if result != nil {
		entry.SessionsReceived = result.SessionsReceived
		entry.WorkoutsInserted = result.WorkoutsInserted
		entry.WorkoutsReplaced = result.WorkoutsReplaced
		entry.SetsReceived = result.SetsReceived
		entry.WarmupSets = result.WarmupSets
		entry.UnmappedExercises = result.UnmappedExercises
	}

	ctx, cancel := context.WithTimeout(context.Background(), importLogTimeout)
	defer cancel()

	if _, err := s.db.InsertImportLog(ctx, entry); err != nil {
		s.log.Error("failed to log import", "source", source, "error", err)
	}
}
