// Package recovery models muscle fatigue, recovery and training load.
//
// Every function here is pure: it reads only its arguments, keeps no state,
// performs no I/O and never fails. Degenerate input (empty histories, zero
// values) yields 0 or a neutral score. Negative or NaN input is passed
// through unchecked; callers that care validate before calling.
//
// The numeric constants are fixed so results stay comparable with reports
// produced by earlier versions of the app. They are not tuning knobs.
package recovery
