package readiness

import (
	"time"

	"github.com/claude/fittrack/internal/models"
)

// Report states, in the order a muscle passes through them after a session.
const (
	StateRecovering = "recovering"
	StateReady      = "ready"
	StatePrimed     = "primed"
)

// Report is the UI-facing readiness summary of one muscle.
type Report struct {
	Muscle                models.Muscle `json:"muscle"`
	State                 string        `json:"state"`
	RecoveryPercentage    int           `json:"recovery_percentage"`
	HoursSinceLastWorkout float64       `json:"hours_since_last_workout"`
	Fatigue               int           `json:"fatigue"`
	Supercompensation     int           `json:"supercompensation"`
	PredictedVolume       float64       `json:"predicted_volume"`
	PRProbability         int           `json:"pr_probability"`
	WorkoutsConsidered    int           `json:"workouts_considered"`
	ComputedAt            time.Time     `json:"computed_at"`
}

func stateOf(recoveryPct, supercompensation int) string {
	switch {
	case recoveryPct < 100:
		return StateRecovering
	case supercompensation > 0:
		return StatePrimed
	default:
		return StateReady
	}
}
