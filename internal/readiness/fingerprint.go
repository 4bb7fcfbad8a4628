package readiness

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/claude/fittrack/internal/models"
)

// Fingerprint hashes the inputs of a report. Two calls with the same status
// and the same workouts produce the same fingerprint; any edit to either
// changes it.
func Fingerprint(status models.MuscleStatus, recent []models.Workout) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%d|%g|%d|%s|%g|%g|%s\n",
		status.Muscle, status.UserID, status.WorkloadScore, status.RecoveryPercentage,
		status.LastWorked.UTC().Format(time.RFC3339Nano),
		status.RecommendedRestDays, status.TrainingFrequency,
		status.UpdatedAt.UTC().Format(time.RFC3339Nano))
	for _, w := range recent {
		writeWorkout(h, w)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeWorkout(h io.Writer, w models.Workout) {
	fmt.Fprintf(h, "w|%s|%s\n", w.ID, w.StartTime.UTC().Format(time.RFC3339Nano))
	for _, e := range w.Exercises {
		fmt.Fprintf(h, "e|%d|%s|%v\n", e.Number, e.TrackingType, e.Muscles)
		for _, s := range e.Sets {
			fmt.Fprintf(h, "s|%d|%d|%g|%g|%s|%g|%t\n",
				s.Number, s.Reps, s.WeightKg, s.Distance, s.DistanceUnit, s.DurationSec, s.Completed)
		}
	}
}
