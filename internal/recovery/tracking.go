package recovery

import (
	"errors"
	"fmt"

	"github.com/claude/fittrack/internal/models"
)

// ErrUnknownTrackingType is returned by TrackingFor for unrecognized types.
var ErrUnknownTrackingType = errors.New("unknown tracking type")

const (
	kmPerMile  = 1.609344
	kmPerMeter = 0.001
)

// Tracking is the closed set of set-data shapes. Each variant knows how much
// volume one completed set contributes. The interface is sealed, so a new
// variant cannot be added without giving it a volume rule.
type Tracking interface {
	setVolume(s models.Set) float64
	Type() models.TrackingType
}

// WeightReps scores reps × weight.
type WeightReps struct{}

// RepsOnly scores reps.
type RepsOnly struct{}

// Cardio scores distance in kilometers.
type Cardio struct{}

// Duration scores seconds.
type Duration struct{}

func (WeightReps) setVolume(s models.Set) float64 { return float64(s.Reps) * s.WeightKg }
func (RepsOnly) setVolume(s models.Set) float64   { return float64(s.Reps) }
func (Cardio) setVolume(s models.Set) float64     { return distanceKm(s.Distance, s.DistanceUnit) }
func (Duration) setVolume(s models.Set) float64   { return s.DurationSec }

func (WeightReps) Type() models.TrackingType { return models.TrackingWeightReps }
func (RepsOnly) Type() models.TrackingType   { return models.TrackingRepsOnly }
func (Cardio) Type() models.TrackingType     { return models.TrackingCardio }
func (Duration) Type() models.TrackingType   { return models.TrackingDuration }

// TrackingFor resolves a stored tracking type. "distance" is accepted as an
// alias for cardio.
func TrackingFor(t models.TrackingType) (Tracking, error) {
	switch t {
	case models.TrackingWeightReps:
		return WeightReps{}, nil
	case models.TrackingRepsOnly:
		return RepsOnly{}, nil
	case models.TrackingCardio, "distance":
		return Cardio{}, nil
	case models.TrackingDuration:
		return Duration{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTrackingType, t)
}

// distanceKm normalizes a distance to kilometers. Unknown units are taken as
// kilometers.
func distanceKm(d float64, unit string) float64 {
	switch unit {
	case models.UnitMiles, "mile", "miles":
		return d * kmPerMile
	case models.UnitMeters, "meter", "meters":
		return d * kmPerMeter
	default:
		return d
	}
}
