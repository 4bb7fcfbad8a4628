package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/fittrack/internal/models"
)

// MuscleSets counts completed sets that trained one muscle in a period.
type MuscleSets struct {
	Muscle models.Muscle `json:"muscle"`
	Sets   int           `json:"sets"`
}

// TrainingSummaryPeriod holds strength volume totals for one time period.
// Only completed sets count; tonnage covers weight_reps exercises.
type TrainingSummaryPeriod struct {
	Period            string       `json:"period"`
	Sessions          int          `json:"sessions"`
	WorkingSets       int          `json:"working_sets"`
	TotalReps         int          `json:"total_reps"`
	TonnageKg         float64      `json:"tonnage_kg"`
	AvgSetsPerSession float64      `json:"avg_sets_per_session"`
	Muscles           []MuscleSets `json:"muscles"`
}

// GetTrainingSummary returns strength volume per period, newest period first.
// bucket is "week" or "month" (also "1 week"/"1 month").
func (db *DB) GetTrainingSummary(ctx context.Context, start, end time.Time, bucket string, userID int) ([]TrainingSummaryPeriod, error) {
	interval := truncInterval(bucket)

	// Query 1: set totals per period
	rows, err := db.Pool.Query(ctx,
		`SELECT date_trunc($1, w.start_time)::date AS period,
		        COUNT(DISTINCT w.id)::int,
		        COUNT(*) FILTER (WHERE s.completed)::int,
		        COALESCE(SUM(s.reps) FILTER (WHERE s.completed), 0)::int,
		        COALESCE(SUM(s.weight_kg * s.reps)
		                 FILTER (WHERE s.completed AND e.tracking_type = 'weight_reps'), 0)
		 FROM workouts w
		 JOIN workout_exercises e ON e.workout_id = w.id
		 JOIN workout_sets s ON s.workout_id = e.workout_id AND s.exercise_number = e.exercise_number
		 WHERE w.start_time >= $2 AND w.start_time < $3 AND w.user_id = $4
		 GROUP BY period
		 ORDER BY period DESC`,
		interval, start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying training summary: %w", err)
	}
	defer rows.Close()

	periodMap := make(map[string]*TrainingSummaryPeriod)
	var periodOrder []string

	for rows.Next() {
		var periodTime time.Time
		p := TrainingSummaryPeriod{Muscles: []MuscleSets{}}
		if err := rows.Scan(&periodTime, &p.Sessions, &p.WorkingSets, &p.TotalReps, &p.TonnageKg); err != nil {
			return nil, fmt.Errorf("scanning training summary: %w", err)
		}
		if p.Sessions > 0 {
			p.AvgSetsPerSession = float64(p.WorkingSets) / float64(p.Sessions)
		}
		p.Period = periodTime.Format("2006-01-02")
		periodMap[p.Period] = &p
		periodOrder = append(periodOrder, p.Period)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Query 2: completed sets per muscle per period
	muscleRows, err := db.Pool.Query(ctx,
		`SELECT date_trunc($1, w.start_time)::date AS period, m.muscle, COUNT(*)::int
		 FROM workouts w
		 JOIN workout_exercises e ON e.workout_id = w.id
		 JOIN workout_sets s ON s.workout_id = e.workout_id AND s.exercise_number = e.exercise_number
		 CROSS JOIN LATERAL unnest(e.muscles) AS m(muscle)
		 WHERE w.start_time >= $2 AND w.start_time < $3 AND w.user_id = $4 AND s.completed
		 GROUP BY period, m.muscle
		 ORDER BY period DESC, COUNT(*) DESC`,
		interval, start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying muscle sets: %w", err)
	}
	defer muscleRows.Close()

	for muscleRows.Next() {
		var periodTime time.Time
		var ms MuscleSets
		if err := muscleRows.Scan(&periodTime, &ms.Muscle, &ms.Sets); err != nil {
			return nil, fmt.Errorf("scanning muscle sets: %w", err)
		}
		if p, ok := periodMap[periodTime.Format("2006-01-02")]; ok {
			p.Muscles = append(p.Muscles, ms)
		}
	}
	if err := muscleRows.Err(); err != nil {
		return nil, err
	}

	result := make([]TrainingSummaryPeriod, 0, len(periodOrder))
	for _, key := range periodOrder {
		result = append(result, *periodMap[key])
	}
	return result, nil
}

// truncInterval converts bucket strings to the interval name date_trunc
// expects. Unknown buckets fall back to "week".
func truncInterval(bucket string) string {
	switch bucket {
	case "month", "1 month":
		return "month"
	default:
		return "week"
	}
}
