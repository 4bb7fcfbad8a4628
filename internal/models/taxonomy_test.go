package models

import "testing"

// TestMusclesForExerciseSpecificFirst verifies that specific keywords win over
// generic ones, e.g. a leg curl is not classified as a biceps curl.
func TestMusclesForExerciseSpecificFirst(t *testing.T) {
	tests := []struct {
		name string
		want Muscle
	}{
		{"Lying Leg Curl", Hamstrings},
		{"EZ Bar Curl", Biceps},
		{"Romanian Deadlift", Hamstrings},
		{"Conventional Deadlift", LowerBack},
		{"Hack Squats", Quads},
		{"Incline Bench Press", Chest},
		{"Standing Calf Raises", Calves},
		{"Hanging Leg Raises", Abs},
		{"Seated Cable Row", UpperBack},
	}
	for _, tt := range tests {
		got := MusclesForExercise(tt.name)
		if len(got) == 0 {
			t.Errorf("MusclesForExercise(%q) = nil, want primary %q", tt.name, tt.want)
			continue
		}
		if got[0] != tt.want {
			t.Errorf("MusclesForExercise(%q)[0] = %q, want %q", tt.name, got[0], tt.want)
		}
	}
}

// TestMusclesForExerciseUnknown verifies that unmatched names return nil.
func TestMusclesForExerciseUnknown(t *testing.T) {
	if got := MusclesForExercise("Juggling"); got != nil {
		t.Errorf("MusclesForExercise(Juggling) = %v, want nil", got)
	}
}

// TestMusclesForExerciseReturnsCopy verifies callers cannot mutate the rule table.
func TestMusclesForExerciseReturnsCopy(t *testing.T) {
	got := MusclesForExercise("Bench Press")
	got[0] = Calves
	if again := MusclesForExercise("Bench Press"); again[0] != Chest {
		t.Errorf("rule table mutated: got %q, want %q", again[0], Chest)
	}
}
