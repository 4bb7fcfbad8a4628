package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/claude/fittrack/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// InsertWorkout stores a workout with its exercises and sets in one
// transaction. Returns true if inserted, false if a workout with the same ID
// already exists.
func (db *DB) InsertWorkout(ctx context.Context, w models.Workout) (bool, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx,
		`INSERT INTO workouts (id, user_id, name, start_time, end_time, source)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 ON CONFLICT DO NOTHING`,
		w.ID, w.UserID, w.Name, w.StartTime, w.EndTime, w.Source)
	if err != nil {
		return false, fmt.Errorf("inserting workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	batch := &pgx.Batch{}
	for _, e := range w.Exercises {
		batch.Queue(
			`INSERT INTO workout_exercises (workout_id, exercise_number, name, equipment, tracking_type, muscles)
			 VALUES ($1,$2,$3,$4,$5,$6)`,
			w.ID, e.Number, e.Name, e.Equipment, string(e.TrackingType), muscleStrings(e.Muscles))
		for _, s := range e.Sets {
			batch.Queue(
				`INSERT INTO workout_sets (workout_id, exercise_number, set_number, reps, weight_kg,
				 distance, distance_unit, duration_sec, rir, completed)
				 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
				w.ID, e.Number, s.Number, s.Reps, s.WeightKg,
				s.Distance, s.DistanceUnit, s.DurationSec, s.RIR, s.Completed)
		}
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return false, fmt.Errorf("inserting exercises: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("committing workout: %w", err)
	}
	return true, nil
}

// DeleteWorkout removes a workout and, through cascading keys, its exercises
// and sets.
func (db *DB) DeleteWorkout(ctx context.Context, id uuid.UUID, userID int) error {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM workouts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteWorkoutsBySource removes all workouts of a user imported from source
// that start within [start, end). Used so re-imports replace earlier rows.
func (db *DB) DeleteWorkoutsBySource(ctx context.Context, source string, start, end time.Time, userID int) (int64, error) {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM workouts
		 WHERE source = $1 AND start_time >= $2 AND start_time < $3 AND user_id = $4`,
		source, start, end, userID)
	if err != nil {
		return 0, fmt.Errorf("deleting %s workouts: %w", source, err)
	}
	return tag.RowsAffected(), nil
}

// GetWorkout retrieves a single workout by ID with exercises and sets.
func (db *DB) GetWorkout(ctx context.Context, id uuid.UUID, userID int) (*models.Workout, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, name, start_time, end_time, source
		 FROM workouts
		 WHERE id = $1 AND user_id = $2`,
		id, userID)
	if err != nil {
		return nil, fmt.Errorf("querying workout: %w", err)
	}
	workouts, err := db.scanWorkouts(ctx, rows)
	if err != nil {
		return nil, err
	}
	if len(workouts) == 0 {
		return nil, ErrNotFound
	}
	return &workouts[0], nil
}

// QueryWorkouts retrieves workouts in a time range, newest first.
func (db *DB) QueryWorkouts(ctx context.Context, start, end time.Time, userID int) ([]models.Workout, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, name, start_time, end_time, source
		 FROM workouts
		 WHERE start_time >= $1 AND start_time < $2 AND user_id = $3
		 ORDER BY start_time DESC`,
		start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	return db.scanWorkouts(ctx, rows)
}

// RecentWorkouts returns up to limit of the user's most recent workouts that
// train muscle, newest first. An empty muscle matches every workout.
func (db *DB) RecentWorkouts(ctx context.Context, userID int, muscle models.Muscle, limit int) ([]models.Workout, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT w.id, w.user_id, w.name, w.start_time, w.end_time, w.source
		 FROM workouts w
		 WHERE w.user_id = $1
		   AND ($2 = '' OR EXISTS (
		       SELECT 1 FROM workout_exercises e
		       WHERE e.workout_id = w.id AND $2 = ANY(e.muscles)))
		 ORDER BY w.start_time DESC
		 LIMIT $3`,
		userID, string(muscle), limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent workouts: %w", err)
	}
	return db.scanWorkouts(ctx, rows)
}

// scanWorkouts reads workout header rows, then attaches their exercises and
// sets. It closes rows.
func (db *DB) scanWorkouts(ctx context.Context, rows pgx.Rows) ([]models.Workout, error) {
	var result []models.Workout
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var w models.Workout
		if err := rows.Scan(&w.ID, &w.UserID, &w.Name, &w.StartTime, &w.EndTime, &w.Source); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		index[w.ID] = len(result)
		result = append(result, w)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return result, nil
	}

	ids := make([]string, 0, len(result))
	for _, w := range result {
		ids = append(ids, w.ID.String())
	}

	exRows, err := db.Pool.Query(ctx,
		`SELECT workout_id, exercise_number, name, equipment, tracking_type, muscles
		 FROM workout_exercises
		 WHERE workout_id = ANY($1::uuid[])
		 ORDER BY workout_id, exercise_number`,
		ids)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer exRows.Close()

	type exKey struct {
		workout uuid.UUID
		number  int
	}
	exIndex := make(map[exKey]int)
	for exRows.Next() {
		var (
			wid      uuid.UUID
			e        models.Exercise
			tracking string
			muscles  []string
		)
		if err := exRows.Scan(&wid, &e.Number, &e.Name, &e.Equipment, &tracking, &muscles); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		e.TrackingType = models.TrackingType(tracking)
		for _, m := range muscles {
			e.Muscles = append(e.Muscles, models.Muscle(m))
		}
		wi := index[wid]
		exIndex[exKey{wid, e.Number}] = len(result[wi].Exercises)
		result[wi].Exercises = append(result[wi].Exercises, e)
	}
	if err := exRows.Err(); err != nil {
		return nil, err
	}

	setRows, err := db.Pool.Query(ctx,
		`SELECT workout_id, exercise_number, set_number, reps, weight_kg,
		 distance, distance_unit, duration_sec, rir, completed
		 FROM workout_sets
		 WHERE workout_id = ANY($1::uuid[])
		 ORDER BY workout_id, exercise_number, set_number`,
		ids)
	if err != nil {
		return nil, fmt.Errorf("querying sets: %w", err)
	}
	defer setRows.Close()

	for setRows.Next() {
		var (
			wid   uuid.UUID
			exNum int
			s     models.Set
		)
		if err := setRows.Scan(&wid, &exNum, &s.Number, &s.Reps, &s.WeightKg,
			&s.Distance, &s.DistanceUnit, &s.DurationSec, &s.RIR, &s.Completed); err != nil {
			return nil, fmt.Errorf("scanning set: %w", err)
		}
		ei, ok := exIndex[exKey{wid, exNum}]
		if !ok {
			continue
		}
		wi := index[wid]
		result[wi].Exercises[ei].Sets = append(result[wi].Exercises[ei].Sets, s)
	}
	return result, setRows.Err()
}

func muscleStrings(ms []models.Muscle) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = string(m)
	}
	return out
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
