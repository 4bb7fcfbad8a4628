package server

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/claude/fittrack/internal/models"
	"github.com/claude/fittrack/internal/recovery"
)

// clockSkew is how far in the future a last_worked timestamp may lie.
const clockSkew = 5 * time.Minute

// normalizeWorkout checks a submitted workout and canonicalises its muscle
// names. Exercises without muscles get them from the exercise name.
func normalizeWorkout(w *models.Workout) error {
	if w.Name == "" {
		return errors.New("workout name is required")
	}
	if w.StartTime.IsZero() {
		return errors.New("start_time is required")
	}
	if w.EndTime != nil && w.EndTime.Before(w.StartTime) {
		return errors.New("end_time is before start_time")
	}
	if w.Source == "" {
		w.Source = "api"
	}

	exerciseNumbers := make(map[int]bool, len(w.Exercises))
	for i := range w.Exercises {
		ex := &w.Exercises[i]
		if _, err := recovery.TrackingFor(ex.TrackingType); err != nil {
			return fmt.Errorf("exercise %q: %w", ex.Name, err)
		}
		if ex.Number == 0 {
			ex.Number = i + 1
		}
		if ex.Number < 0 {
			return fmt.Errorf("exercise %q: number %d is negative", ex.Name, ex.Number)
		}
		if exerciseNumbers[ex.Number] {
			return fmt.Errorf("exercise %q: duplicate exercise number %d", ex.Name, ex.Number)
		}
		exerciseNumbers[ex.Number] = true

		if len(ex.Muscles) == 0 {
			ex.Muscles = models.MusclesForExercise(ex.Name)
		}
		for j, m := range ex.Muscles {
			parsed, err := models.ParseMuscle(string(m))
			if err != nil {
				return fmt.Errorf("exercise %q: %w", ex.Name, err)
			}
			ex.Muscles[j] = parsed
		}

		setNumbers := make(map[int]bool, len(ex.Sets))
		for j := range ex.Sets {
			set := &ex.Sets[j]
			if set.Number == 0 {
				set.Number = j + 1
			}
			if set.Number < 0 || setNumbers[set.Number] {
				return fmt.Errorf("exercise %q: invalid or duplicate set number %d", ex.Name, set.Number)
			}
			setNumbers[set.Number] = true
			if err := validateSet(*set); err != nil {
				return fmt.Errorf("exercise %q set %d: %w", ex.Name, set.Number, err)
			}
		}
	}
	return nil
}

func validateSet(s models.Set) error {
	if s.Reps < 0 {
		return fmt.Errorf("reps=%d is negative", s.Reps)
	}
	for name, v := range map[string]float64{
		"weight_kg":    s.WeightKg,
		"distance":     s.Distance,
		"duration_sec": s.DurationSec,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%s=%v is not a non-negative number", name, v)
		}
	}
	switch s.DistanceUnit {
	case "", models.UnitKilometers, models.UnitMiles, models.UnitMeters, "mile", "miles", "meter", "meters":
	default:
		return fmt.Errorf("unknown distance unit %q", s.DistanceUnit)
	}
	return nil
}

// validateStatus enforces the ranges the recovery model assumes but does not
// check itself.
func validateStatus(s models.MuscleStatus, now time.Time) error {
	var errs []error
	nonNegative := func(name string, v float64) {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			errs = append(errs, fmt.Errorf("%s=%v must be a non-negative number", name, v))
		}
	}
	nonNegative("workload_score", s.WorkloadScore)
	if s.WorkloadScore > models.MaxWorkloadScore {
		errs = append(errs, fmt.Errorf("workload_score=%v exceeds %v", s.WorkloadScore, models.MaxWorkloadScore))
	}
	nonNegative("recommended_rest_days", s.RecommendedRestDays)
	nonNegative("training_frequency", s.TrainingFrequency)
	if s.RecoveryPercentage < 0 || s.RecoveryPercentage > 100 {
		errs = append(errs, fmt.Errorf("recovery_percentage=%d must be within 0..100", s.RecoveryPercentage))
	}
	if s.LastWorked.After(now.Add(clockSkew)) {
		errs = append(errs, fmt.Errorf("last_worked %s is in the future", s.LastWorked.Format(time.RFC3339)))
	}
	return errors.Join(errs...)
}
