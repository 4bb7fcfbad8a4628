package recovery

import (
	"time"

	"github.com/claude/fittrack/internal/models"
)

// liftWorkout builds a workout with one completed weight_reps set of the given
// volume (reps × 1kg) on each muscle. Workouts are spaced a day apart by index.
func liftWorkout(day int, volume int, muscles ...models.Muscle) models.Workout {
	return models.Workout{
		Name:      "session",
		StartTime: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC).AddDate(0, 0, day),
		Exercises: []models.Exercise{{
			Name:         "lift",
			TrackingType: models.TrackingWeightReps,
			Muscles:      muscles,
			Sets:         []models.Set{{Number: 1, Reps: volume, WeightKg: 1, Completed: true}},
		}},
	}
}

// newestFirst reverses a chronological slice into storage order.
func newestFirst(ws ...models.Workout) []models.Workout {
	out := make([]models.Workout, len(ws))
	for i, w := range ws {
		out[len(ws)-1-i] = w
	}
	return out
}
