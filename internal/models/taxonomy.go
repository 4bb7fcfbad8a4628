package models

import "strings"

// exerciseRule maps a keyword found in an exercise name to the muscles it
// trains. The first muscle is the primary target.
type exerciseRule struct {
	keyword string
	muscles []Muscle
}

// exerciseRules is checked in order, so more specific keywords come first
// ("romanian deadlift" before "deadlift", "leg curl" before "curl").
var exerciseRules = []exerciseRule{
	{"romanian deadlift", []Muscle{Hamstrings, Glutes, LowerBack}},
	{"rdl", []Muscle{Hamstrings, Glutes, LowerBack}},
	{"stiff leg", []Muscle{Hamstrings, Glutes, LowerBack}},
	{"deadlift", []Muscle{LowerBack, Hamstrings, Glutes, Traps}},
	{"hack squat", []Muscle{Quads, Glutes}},
	{"sumo squat", []Muscle{Glutes, Quads}},
	{"squat", []Muscle{Quads, Glutes}},
	{"leg press", []Muscle{Quads, Glutes}},
	{"lunge", []Muscle{Quads, Glutes}},
	{"leg extension", []Muscle{Quads}},
	{"leg curl", []Muscle{Hamstrings}},
	{"hamstring curl", []Muscle{Hamstrings}},
	{"hip thrust", []Muscle{Glutes, Hamstrings}},
	{"glute", []Muscle{Glutes}},
	{"hyperextension", []Muscle{LowerBack, Glutes}},
	{"back extension", []Muscle{LowerBack, Glutes}},
	{"calf", []Muscle{Calves}},
	{"incline bench", []Muscle{Chest, Shoulders, Triceps}},
	{"bench press", []Muscle{Chest, Triceps, Shoulders}},
	{"chest press", []Muscle{Chest, Triceps}},
	{"fly", []Muscle{Chest}},
	{"flye", []Muscle{Chest}},
	{"push-up", []Muscle{Chest, Triceps}},
	{"push up", []Muscle{Chest, Triceps}},
	{"dip", []Muscle{Triceps, Chest}},
	{"overhead press", []Muscle{Shoulders, Triceps}},
	{"shoulder press", []Muscle{Shoulders, Triceps}},
	{"military press", []Muscle{Shoulders, Triceps}},
	{"lateral raise", []Muscle{Shoulders}},
	{"rear delt", []Muscle{Shoulders, UpperBack}},
	{"face pull", []Muscle{Shoulders, UpperBack}},
	{"shrug", []Muscle{Traps}},
	{"pull-up", []Muscle{Lats, Biceps}},
	{"pull up", []Muscle{Lats, Biceps}},
	{"chin-up", []Muscle{Lats, Biceps}},
	{"chin up", []Muscle{Lats, Biceps}},
	{"pulldown", []Muscle{Lats, Biceps}},
	{"pullover", []Muscle{Lats, Chest}},
	{"row", []Muscle{UpperBack, Lats, Biceps}},
	{"triceps", []Muscle{Triceps}},
	{"tricep", []Muscle{Triceps}},
	{"skull crusher", []Muscle{Triceps}},
	{"pushdown", []Muscle{Triceps}},
	{"wrist curl", []Muscle{Forearms}},
	{"farmer", []Muscle{Forearms, Traps}},
	{"curl", []Muscle{Biceps, Forearms}},
	{"crunch", []Muscle{Abs}},
	{"leg raise", []Muscle{Abs}},
	{"plank", []Muscle{Abs}},
	{"sit-up", []Muscle{Abs}},
	{"ab wheel", []Muscle{Abs}},
}

// MusclesForExercise guesses the targeted muscles from an exercise name.
// Returns nil when no keyword matches.
func MusclesForExercise(name string) []Muscle {
	lower := strings.ToLower(name)
	for _, r := range exerciseRules {
		if strings.Contains(lower, r.keyword) {
			out := make([]Muscle, len(r.muscles))
			copy(out, r.muscles)
			return out
		}
	}
	return nil
}
