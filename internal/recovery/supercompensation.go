package recovery

import (
	"math"

	"github.com/claude/fittrack/internal/models"
)

const (
	// SupercompensationPeak is the number of hours after full recovery at
	// which readiness peaks.
	SupercompensationPeak = 24.0
	// SupercompensationWidth is the spread of the bump in hours.
	SupercompensationWidth = 12.0
	// SupercompensationMax is the score at the peak.
	SupercompensationMax = 10.0
)

// Supercompensation scores the short above-baseline window that follows full
// recovery, from 0 to 10. A muscle that is still recovering, or that is not
// yet past its recommended rest, scores 0. After that the score follows a
// Gaussian bump centered SupercompensationPeak hours past recovery, so it
// rises, peaks at 10, then fades as detraining sets in.
func Supercompensation(status models.MuscleStatus, hoursSinceLastWorkout float64) int {
	if status.RecoveryPercentage < 100 {
		return 0
	}
	recoveryHours := status.RecommendedRestDays * 24
	if hoursSinceLastWorkout <= recoveryHours {
		return 0
	}
	sinceRecovered := hoursSinceLastWorkout - recoveryHours
	d := sinceRecovered - SupercompensationPeak
	score := SupercompensationMax * math.Exp(-(d*d)/(2*SupercompensationWidth*SupercompensationWidth))
	return toScore(score)
}
