package alpha

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/claude/fittrack/internal/ingest"
	"github.com/claude/fittrack/internal/models"
	"github.com/google/uuid"
)

// Source tags workouts created from Alpha Progression exports.
const Source = "alpha"

// workoutNamespace seeds the deterministic workout IDs, so importing the
// same export twice yields the same IDs.
var workoutNamespace = uuid.MustParse("5f0c1b9e-7a43-4e0b-9d0c-3c2a8f6e1d47")

// Store is what the provider writes to. *storage.DB satisfies it.
type Store interface {
	DeleteWorkoutsBySource(ctx context.Context, source string, start, end time.Time, userID int) (int64, error)
	InsertWorkout(ctx context.Context, w models.Workout) (bool, error)
}

// Provider imports Alpha Progression CSV exports as workouts.
type Provider struct {
	db  Store
	log *slog.Logger
}

// NewProvider creates a new Alpha Progression ingest provider.
func NewProvider(db Store, log *slog.Logger) *Provider {
	return &Provider{db: db, log: log}
}

// Ingest parses a CSV export and stores every session as a workout. A
// session that was imported before is replaced.
func (p *Provider) Ingest(ctx context.Context, r io.Reader, userID int) (*ingest.Result, error) {
	sessions, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}

	result := &ingest.Result{SessionsReceived: len(sessions)}
	for _, s := range sessions {
		w := ToWorkout(s, userID)
		for _, ex := range w.Exercises {
			result.SetsReceived += len(ex.Sets)
			for _, set := range ex.Sets {
				if !set.Completed {
					result.WarmupSets++
				}
			}
			if len(ex.Muscles) == 0 && !slices.Contains(result.UnmappedExercises, ex.Name) {
				result.UnmappedExercises = append(result.UnmappedExercises, ex.Name)
			}
		}

		// Sessions are keyed by start minute.
		n, err := p.db.DeleteWorkoutsBySource(ctx, Source, s.Date, s.Date.Add(time.Minute), userID)
		if err != nil {
			return nil, fmt.Errorf("replacing session %s: %w", s.Date.Format("2006-01-02 15:04"), err)
		}
		result.WorkoutsReplaced += n

		inserted, err := p.db.InsertWorkout(ctx, w)
		if err != nil {
			return nil, fmt.Errorf("inserting session %s: %w", s.Date.Format("2006-01-02 15:04"), err)
		}
		if inserted {
			result.WorkoutsInserted++
		}
	}

	if len(result.UnmappedExercises) > 0 {
		p.log.Warn("alpha import: exercises without muscle mapping",
			"user_id", userID, "exercises", result.UnmappedExercises)
	}
	p.log.Info("alpha import complete",
		"user_id", userID,
		"sessions", result.SessionsReceived,
		"inserted", result.WorkoutsInserted,
		"replaced", result.WorkoutsReplaced,
	)
	return result, nil
}

// ToWorkout converts a parsed session into a weight_reps workout. Warmups are
// kept but marked incomplete so they never count as training volume. Working
// sets are renumbered after the warmups.
func ToWorkout(s Session, userID int) models.Workout {
	w := models.Workout{
		ID:        uuid.NewSHA1(workoutNamespace, []byte(strconv.Itoa(userID)+"|"+s.Date.Format(time.RFC3339)+"|"+s.Name)),
		UserID:    userID,
		Name:      s.Name,
		StartTime: s.Date,
		Source:    Source,
	}
	if s.Duration > 0 {
		end := s.Date.Add(s.Duration)
		w.EndTime = &end
	}

	for _, ae := range s.Exercises {
		ex := models.Exercise{
			Number:       ae.Number,
			Name:         ae.Name,
			Equipment:    ae.Equipment,
			TrackingType: models.TrackingWeightReps,
			Muscles:      models.MusclesForExercise(ae.Name),
		}
		for i, as := range ae.Sets {
			ex.Sets = append(ex.Sets, models.Set{
				Number:    i + 1,
				Reps:      as.Reps,
				WeightKg:  as.WeightKg,
				RIR:       as.RIR,
				Completed: !as.IsWarmup,
			})
		}
		w.Exercises = append(w.Exercises, ex)
	}
	return w
}
