package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/fittrack/internal/models"
)

// UpsertMuscleStatus inserts or replaces the status of one muscle.
func (db *DB) UpsertMuscleStatus(ctx context.Context, s models.MuscleStatus) error {
	var lastWorked *time.Time
	if !s.LastWorked.IsZero() {
		lastWorked = &s.LastWorked
	}
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO muscle_status (user_id, muscle, workload_score, recovery_percentage,
		 last_worked, recommended_rest_days, training_frequency, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7, now())
		 ON CONFLICT (user_id, muscle) DO UPDATE SET
		   workload_score = EXCLUDED.workload_score,
		   recovery_percentage = EXCLUDED.recovery_percentage,
		   last_worked = EXCLUDED.last_worked,
		   recommended_rest_days = EXCLUDED.recommended_rest_days,
		   training_frequency = EXCLUDED.training_frequency,
		   updated_at = now()`,
		s.UserID, string(s.Muscle), s.WorkloadScore, s.RecoveryPercentage,
		lastWorked, s.RecommendedRestDays, s.TrainingFrequency)
	if err != nil {
		return fmt.Errorf("upserting muscle status %s: %w", s.Muscle, err)
	}
	return nil
}

const muscleStatusColumns = `user_id, muscle, workload_score, recovery_percentage,
	last_worked, recommended_rest_days, training_frequency, updated_at`

// GetMuscleStatus returns the status of one muscle, or ErrNotFound.
func (db *DB) GetMuscleStatus(ctx context.Context, userID int, muscle models.Muscle) (*models.MuscleStatus, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+muscleStatusColumns+`
		 FROM muscle_status
		 WHERE user_id = $1 AND muscle = $2`,
		userID, string(muscle))

	s, err := scanMuscleStatus(row)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying muscle status: %w", err)
	}
	return s, nil
}

// ListMuscleStatuses returns every stored status of a user, ordered by muscle.
func (db *DB) ListMuscleStatuses(ctx context.Context, userID int) ([]models.MuscleStatus, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+muscleStatusColumns+`
		 FROM muscle_status
		 WHERE user_id = $1
		 ORDER BY muscle`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying muscle statuses: %w", err)
	}
	defer rows.Close()

	var result []models.MuscleStatus
	for rows.Next() {
		s, err := scanMuscleStatus(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning muscle status: %w", err)
		}
		result = append(result, *s)
	}
	return result, rows.Err()
}

func scanMuscleStatus(row interface{ Scan(dest ...any) error }) (*models.MuscleStatus, error) {
	var (
		s          models.MuscleStatus
		muscle     string
		lastWorked *time.Time
	)
	if err := row.Scan(&s.UserID, &muscle, &s.WorkloadScore, &s.RecoveryPercentage,
		&lastWorked, &s.RecommendedRestDays, &s.TrainingFrequency, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.Muscle = models.Muscle(muscle)
	if lastWorked != nil {
		s.LastWorked = *lastWorked
	}
	return &s, nil
}
