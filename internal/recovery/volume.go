package recovery

import "github.com/claude/fittrack/internal/models"

// ComputeVolume sums the training volume of the completed sets of one
// exercise. Incomplete sets never contribute. A nil tracking yields 0.
func ComputeVolume(sets []models.Set, t Tracking) float64 {
	if t == nil {
		return 0
	}
	var total float64
	for _, s := range sets {
		if !s.Completed {
			continue
		}
		total += t.setVolume(s)
	}
	return total
}

// ExerciseVolume is ComputeVolume for a stored exercise. An unrecognized
// tracking type counts as 0.
func ExerciseVolume(e models.Exercise) float64 {
	t, err := TrackingFor(e.TrackingType)
	if err != nil {
		return 0
	}
	return ComputeVolume(e.Sets, t)
}

// MuscleVolume sums the volume of every exercise in w that targets m.
func MuscleVolume(w models.Workout, m models.Muscle) float64 {
	var total float64
	for _, e := range w.Exercises {
		if e.Targets(m) {
			total += ExerciseVolume(e)
		}
	}
	return total
}

// WorkoutVolume sums the volume of every exercise in w.
func WorkoutVolume(w models.Workout) float64 {
	var total float64
	for _, e := range w.Exercises {
		total += ExerciseVolume(e)
	}
	return total
}
