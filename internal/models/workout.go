package models

import (
	"time"

	"github.com/google/uuid"
)

// TrackingType is the stored shape of a logged set's data.
type TrackingType string

const (
	TrackingWeightReps TrackingType = "weight_reps"
	TrackingRepsOnly   TrackingType = "reps_only"
	TrackingCardio     TrackingType = "cardio"
	TrackingDuration   TrackingType = "duration"
)

// Distance units accepted on cardio sets. An empty unit means kilometers.
const (
	UnitKilometers = "km"
	UnitMiles      = "mi"
	UnitMeters     = "m"
)

// Set is one logged set. Which fields are meaningful depends on the
// exercise's tracking type.
type Set struct {
	Number       int      `json:"number"`
	Reps         int      `json:"reps,omitempty"`
	WeightKg     float64  `json:"weight_kg,omitempty"`
	Distance     float64  `json:"distance,omitempty"`
	DistanceUnit string   `json:"distance_unit,omitempty"`
	DurationSec  float64  `json:"duration_sec,omitempty"`
	RIR          *float64 `json:"rir,omitempty"`
	Completed    bool     `json:"completed"`
}

// Exercise is one exercise inside a workout.
type Exercise struct {
	Number       int          `json:"number"`
	Name         string       `json:"name"`
	Equipment    string       `json:"equipment,omitempty"`
	TrackingType TrackingType `json:"tracking_type"`
	Muscles      []Muscle     `json:"muscles"`
	Sets         []Set        `json:"sets"`
}

// Targets reports whether the exercise trains the given muscle.
func (e Exercise) Targets(m Muscle) bool {
	for _, t := range e.Muscles {
		if t == m {
			return true
		}
	}
	return false
}

// Workout is a logged training session.
type Workout struct {
	ID        uuid.UUID  `json:"id"`
	UserID    int        `json:"user_id"`
	Name      string     `json:"name"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Source    string     `json:"source,omitempty"`
	Exercises []Exercise `json:"exercises"`
}

// Targets reports whether any exercise in the workout trains the given muscle.
func (w Workout) Targets(m Muscle) bool {
	for _, e := range w.Exercises {
		if e.Targets(m) {
			return true
		}
	}
	return false
}

// MaxWorkloadScore is the largest workload score a status may carry.
const MaxWorkloadScore = 1e6

// MuscleStatus is the per-user, per-muscle aggregate the recovery engine reads.
type MuscleStatus struct {
	UserID              int       `json:"user_id"`
	Muscle              Muscle    `json:"muscle"`
	WorkloadScore       float64   `json:"workload_score"`
	RecoveryPercentage  int       `json:"recovery_percentage"`
	LastWorked          time.Time `json:"last_worked"`
	RecommendedRestDays float64   `json:"recommended_rest_days"`
	TrainingFrequency   float64   `json:"training_frequency"`
	UpdatedAt           time.Time `json:"updated_at"`
}
