package recovery

import (
	"testing"

	"github.com/claude/fittrack/internal/models"
)

// TestPredictVolumeEmpty verifies an empty history forecasts 0.
func TestPredictVolumeEmpty(t *testing.T) {
	if got := PredictVolume(nil, models.Chest); got != 0 {
		t.Errorf("PredictVolume(nil) = %v, want 0", got)
	}
}

// TestPredictVolumeSinglePoint verifies one session is returned unchanged.
func TestPredictVolumeSinglePoint(t *testing.T) {
	recent := []models.Workout{liftWorkout(0, 5000, models.Chest)}
	if got := PredictVolume(recent, models.Chest); got != 5000 {
		t.Errorf("PredictVolume = %v, want 5000", got)
	}
}

// TestPredictVolumeWeightedWithBonus checks [1000, 1000, 1200] oldest to
// newest: weighted average 1100, newest above it, so 1100 × 1.05 = 1155.
func TestPredictVolumeWeightedWithBonus(t *testing.T) {
	recent := newestFirst(
		liftWorkout(0, 1000, models.Chest),
		liftWorkout(2, 1000, models.Chest),
		liftWorkout(4, 1200, models.Chest),
	)
	if got := PredictVolume(recent, models.Chest); got != 1155 {
		t.Errorf("PredictVolume = %v, want 1155", got)
	}
}

// TestPredictVolumeNoBonusWhenDeclining checks [1200, 1000] oldest to newest:
// (1200 + 2000) / 3 = 1066.67, newest is below, so round to 1067.
func TestPredictVolumeNoBonusWhenDeclining(t *testing.T) {
	recent := newestFirst(
		liftWorkout(0, 1200, models.Chest),
		liftWorkout(2, 1000, models.Chest),
	)
	if got := PredictVolume(recent, models.Chest); got != 1067 {
		t.Errorf("PredictVolume = %v, want 1067", got)
	}
}

// TestPredictVolumeSkipsOtherMuscles verifies sessions that did not train the
// muscle are dropped rather than counted as zero.
func TestPredictVolumeSkipsOtherMuscles(t *testing.T) {
	recent := newestFirst(
		liftWorkout(0, 1000, models.Chest),
		liftWorkout(1, 3000, models.Quads),
		liftWorkout(2, 1000, models.Chest),
	)
	// Two chest points of 1000: average 1000, newest not above it.
	if got := PredictVolume(recent, models.Chest); got != 1000 {
		t.Errorf("PredictVolume = %v, want 1000", got)
	}
	// A single quads point is returned as is.
	if got := PredictVolume(recent, models.Quads); got != 3000 {
		t.Errorf("PredictVolume(quads) = %v, want 3000", got)
	}
}

// TestPredictVolumeNonNegative verifies forecasts from valid history are never
// negative.
func TestPredictVolumeNonNegative(t *testing.T) {
	recent := newestFirst(
		liftWorkout(0, 10, models.Abs),
		liftWorkout(1, 0, models.Abs),
		liftWorkout(2, 7, models.Abs),
		liftWorkout(3, 3, models.Abs),
	)
	if got := PredictVolume(recent, models.Abs); got < 0 {
		t.Errorf("PredictVolume = %v, want >= 0", got)
	}
}
