// Package ingest holds what every import source has in common.
package ingest

// Result summarises one import.
type Result struct {
	SessionsReceived int   `json:"sessions_received"`
	WorkoutsInserted int   `json:"workouts_inserted"`
	WorkoutsReplaced int64 `json:"workouts_replaced"`

	SetsReceived int `json:"sets_received"`
	WarmupSets   int `json:"warmup_sets"`

	// Exercises whose name matched no muscle; they are stored but never
	// count toward any muscle's history.
	UnmappedExercises []string `json:"unmapped_exercises,omitempty"`

	Message string `json:"message,omitempty"`
}
