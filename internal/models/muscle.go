package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMuscle is returned by ParseMuscle for identifiers outside the catalog.
var ErrUnknownMuscle = errors.New("unknown muscle group")

// Muscle is an enumerated anatomical target that exercises map to.
type Muscle string

const (
	Chest      Muscle = "chest"
	Lats       Muscle = "lats"
	UpperBack  Muscle = "upper_back"
	LowerBack  Muscle = "lower_back"
	Traps      Muscle = "traps"
	Shoulders  Muscle = "shoulders"
	Biceps     Muscle = "biceps"
	Triceps    Muscle = "triceps"
	Forearms   Muscle = "forearms"
	Abs        Muscle = "abs"
	Quads      Muscle = "quads"
	Hamstrings Muscle = "hamstrings"
	Glutes     Muscle = "glutes"
	Calves     Muscle = "calves"
)

// AllMuscles lists every muscle group in display order.
var AllMuscles = []Muscle{
	Chest, Lats, UpperBack, LowerBack, Traps, Shoulders,
	Biceps, Triceps, Forearms, Abs,
	Quads, Hamstrings, Glutes, Calves,
}

// DefaultRestDays is the recommended rest interval used when a status is
// created without one. Large muscle groups need longer between sessions.
var DefaultRestDays = map[Muscle]float64{
	Chest:      2,
	Lats:       2,
	UpperBack:  2,
	LowerBack:  3,
	Traps:      2,
	Shoulders:  2,
	Biceps:     1.5,
	Triceps:    1.5,
	Forearms:   1,
	Abs:        1,
	Quads:      3,
	Hamstrings: 3,
	Glutes:     2.5,
	Calves:     1.5,
}

// ParseMuscle converts a user-supplied identifier ("Upper Back", "upper-back",
// "upper_back") into a Muscle.
func ParseMuscle(s string) (Muscle, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	for _, m := range AllMuscles {
		if string(m) == norm {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMuscle, s)
}

// Label returns a human readable name, e.g. "Upper Back".
func (m Muscle) Label() string {
	words := strings.Split(string(m), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
