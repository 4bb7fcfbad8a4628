package models

import (
	"errors"
	"testing"
)

// TestParseMuscleNormalizes verifies spacing, case and dash variants resolve
// to the same identifier.
func TestParseMuscleNormalizes(t *testing.T) {
	for _, in := range []string{"upper_back", "Upper Back", "upper-back", "  UPPER_BACK "} {
		m, err := ParseMuscle(in)
		if err != nil {
			t.Fatalf("ParseMuscle(%q) error: %v", in, err)
		}
		if m != UpperBack {
			t.Errorf("ParseMuscle(%q) = %q, want %q", in, m, UpperBack)
		}
	}
}

// TestParseMuscleUnknown verifies unknown names wrap ErrUnknownMuscle.
func TestParseMuscleUnknown(t *testing.T) {
	_, err := ParseMuscle("spleen")
	if !errors.Is(err, ErrUnknownMuscle) {
		t.Errorf("err = %v, want ErrUnknownMuscle", err)
	}
}

// TestDefaultRestDaysCoversAllMuscles verifies every muscle has a rest default.
func TestDefaultRestDaysCoversAllMuscles(t *testing.T) {
	for _, m := range AllMuscles {
		if _, ok := DefaultRestDays[m]; !ok {
			t.Errorf("DefaultRestDays missing %q", m)
		}
	}
}

// TestMuscleLabel verifies display names.
func TestMuscleLabel(t *testing.T) {
	if got := Hamstrings.Label(); got != "Hamstrings" {
		t.Errorf("Label = %q, want Hamstrings", got)
	}
	if got := LowerBack.Label(); got != "Lower Back" {
		t.Errorf("Label = %q, want Lower Back", got)
	}
}
