package storage

import (
	"context"
	"fmt"
	"time"
)

// DataStats holds aggregate statistics about a user's stored data.
type DataStats struct {
	TotalWorkouts  int64             `json:"total_workouts"`
	TotalSets      int64             `json:"total_sets"`
	CompletedSets  int64             `json:"completed_sets"`
	MusclesTracked int64             `json:"muscles_tracked"`
	EarliestData   *time.Time        `json:"earliest_data"`
	LatestData     *time.Time        `json:"latest_data"`
	WorkoutsByName []WorkoutNameStat `json:"workouts_by_name"`
}

// WorkoutNameStat summarises the workouts sharing one name.
type WorkoutNameStat struct {
	Name          string  `json:"name"`
	Count         int64   `json:"count"`
	TotalDuration float64 `json:"total_duration_sec"`
}

// GetDataStats returns aggregate statistics for a user's stored data.
func (db *DB) GetDataStats(ctx context.Context, userID int) (*DataStats, error) {
	stats := &DataStats{WorkoutsByName: []WorkoutNameStat{}}

	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), MIN(start_time), MAX(start_time) FROM workouts WHERE user_id = $1`, userID,
	).Scan(&stats.TotalWorkouts, &stats.EarliestData, &stats.LatestData)
	if err != nil {
		return nil, fmt.Errorf("counting workouts: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE s.completed)
		 FROM workout_sets s JOIN workouts w ON w.id = s.workout_id
		 WHERE w.user_id = $1`, userID,
	).Scan(&stats.TotalSets, &stats.CompletedSets)
	if err != nil {
		return nil, fmt.Errorf("counting sets: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM muscle_status WHERE user_id = $1`, userID,
	).Scan(&stats.MusclesTracked)
	if err != nil {
		return nil, fmt.Errorf("counting muscle statuses: %w", err)
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT name, COUNT(*),
		 COALESCE(SUM(EXTRACT(EPOCH FROM (end_time - start_time))), 0)::float8
		 FROM workouts
		 WHERE user_id = $1
		 GROUP BY name
		 ORDER BY COUNT(*) DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying workouts by name: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s WorkoutNameStat
		if err := rows.Scan(&s.Name, &s.Count, &s.TotalDuration); err != nil {
			return nil, fmt.Errorf("scanning workout name stat: %w", err)
		}
		stats.WorkoutsByName = append(stats.WorkoutsByName, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
