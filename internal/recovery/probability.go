package recovery

import "github.com/claude/fittrack/internal/models"

// Factor weights of PRProbability. They sum to 1.
const (
	RecoveryWeight          = 0.4
	SupercompensationWeight = 0.2
	ConsistencyWeight       = 0.2
	VolumeTrendWeight       = 0.2
)

// trendWindow is how many recent workouts the volume trend looks at.
const trendWindow = 5

// PRProbability estimates, from 0 to 100, how ready a muscle is to set a
// personal record. recent is ordered newest first.
func PRProbability(status models.MuscleStatus, recent []models.Workout, hoursSinceLastWorkout float64) int {
	score := RecoveryWeight*recoveryFactor(status.RecoveryPercentage) +
		SupercompensationWeight*supercompensationFactor(status, hoursSinceLastWorkout) +
		ConsistencyWeight*consistencyFactor(status.TrainingFrequency) +
		VolumeTrendWeight*volumeTrendFactor(recent)

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return toScore(score)
}

func recoveryFactor(pct int) float64 {
	switch {
	case pct >= 100:
		return 100
	case pct >= 90:
		return 80
	case pct >= 80:
		return 50
	default:
		return 20
	}
}

func supercompensationFactor(status models.MuscleStatus, hours float64) float64 {
	return min(100, float64(Supercompensation(status, hours))*10)
}

func consistencyFactor(perWeek float64) float64 {
	switch {
	case perWeek >= 2:
		return 100
	case perWeek >= 1:
		return 70
	default:
		return 40
	}
}

// volumeTrendFactor compares the total volume of the newest workout with the
// one before it, within the last trendWindow workouts.
func volumeTrendFactor(recent []models.Workout) float64 {
	n := min(len(recent), trendWindow)
	if n < 2 {
		return 50
	}
	// recent[0] is the newest, recent[1] the one before it.
	last := WorkoutVolume(recent[0])
	prev := WorkoutVolume(recent[1])
	switch {
	case last > prev:
		return 90
	case last == prev:
		return 70
	default:
		return 40
	}
}
