package recovery

import "github.com/claude/fittrack/internal/models"

// ProgressiveOverloadBonus is applied to the forecast when the latest session
// beat the weighted average. It is a flat momentum heuristic, not a fitted
// trend.
const ProgressiveOverloadBonus = 1.05

// PredictVolume forecasts the volume of the next session for muscle.
//
// recent is ordered newest first. Sessions that did not train the muscle are
// ignored. With no history the forecast is 0 and with one session it is that
// session's volume. Otherwise it is a linearly weighted moving average
// (oldest weight 1, newest weight N), scaled by ProgressiveOverloadBonus when
// the newest session is above the average, rounded to an integer.
func PredictVolume(recent []models.Workout, muscle models.Muscle) float64 {
	volumes := make([]float64, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		if v := MuscleVolume(recent[i], muscle); v != 0 {
			volumes = append(volumes, v)
		}
	}

	switch len(volumes) {
	case 0:
		return 0
	case 1:
		return volumes[0]
	}

	var weighted, weights float64
	for i, v := range volumes {
		w := float64(i + 1)
		weighted += v * w
		weights += w
	}
	avg := weighted / weights

	if volumes[len(volumes)-1] > avg {
		avg *= ProgressiveOverloadBonus
	}
	return roundHalfUp(avg)
}
