package recovery

import "math"

const (
	// WorkloadToFatigue converts a workload score into initial fatigue.
	WorkloadToFatigue = 0.5
	// FatigueDecayPerHour is the exponential decay rate λ.
	FatigueDecayPerHour = 0.05
)

// Fatigue returns the residual fatigue of a muscle hoursSinceLastWorkout
// after a session that left it at workloadScore:
//
//	round(max(0, workloadScore × 0.5 × e^(−0.05 × hours)))
//
// The result never increases with time and approaches 0.
func Fatigue(workloadScore, hoursSinceLastWorkout float64) int {
	initial := workloadScore * WorkloadToFatigue
	f := initial * math.Exp(-FatigueDecayPerHour*hoursSinceLastWorkout)
	return toScore(math.Max(0, f))
}
