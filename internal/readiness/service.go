// Package readiness combines the recovery model's outputs into per-muscle
// reports and decides when a cached report can be reused.
package readiness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/claude/fittrack/internal/models"
	"github.com/claude/fittrack/internal/recovery"
	"golang.org/x/sync/errgroup"
)

// Store is the data the service reads. *storage.DB satisfies it.
type Store interface {
	GetMuscleStatus(ctx context.Context, userID int, muscle models.Muscle) (*models.MuscleStatus, error)
	ListMuscleStatuses(ctx context.Context, userID int) ([]models.MuscleStatus, error)
	RecentWorkouts(ctx context.Context, userID int, muscle models.Muscle, limit int) ([]models.Workout, error)
}

// Cached is a stored report with the fingerprint of the data it was built from.
type Cached struct {
	Report      Report
	Fingerprint string
}

// Cache persists reports between requests. Load returns nil, nil on a miss.
type Cache interface {
	Load(ctx context.Context, userID int, muscle models.Muscle) (*Cached, error)
	Store(ctx context.Context, userID int, c Cached) error
	Invalidate(ctx context.Context, userID int) error
}

// DefaultHistorySize is how many recent workouts feed a report when the
// config leaves it unset.
const DefaultHistorySize = 10

// maxParallel bounds the per-muscle fan-out of ReportAll.
const maxParallel = 4

// Service builds readiness reports.
type Service struct {
	store       Store
	cache       Cache
	historySize int
	ttl         time.Duration
	log         *slog.Logger
	now         func() time.Time
}

// NewService creates a Service. A nil cache or a zero ttl disables caching.
func NewService(store Store, cache Cache, historySize int, ttl time.Duration, log *slog.Logger) *Service {
	if historySize <= 0 {
		historySize = DefaultHistorySize
	}
	return &Service{
		store:       store,
		cache:       cache,
		historySize: historySize,
		ttl:         ttl,
		log:         log,
		now:         time.Now,
	}
}

// Report returns the readiness report of one muscle.
func (s *Service) Report(ctx context.Context, userID int, muscle models.Muscle) (*Report, error) {
	status, err := s.store.GetMuscleStatus(ctx, userID, muscle)
	if err != nil {
		return nil, fmt.Errorf("loading %s status: %w", muscle, err)
	}
	return s.reportFor(ctx, *status)
}

// ReportAll returns a report for every muscle that has a status, in status
// order. Muscles are computed concurrently.
func (s *Service) ReportAll(ctx context.Context, userID int) ([]Report, error) {
	statuses, err := s.store.ListMuscleStatuses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing statuses: %w", err)
	}

	reports := make([]Report, len(statuses))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for i, st := range statuses {
		g.Go(func() error {
			r, err := s.reportFor(ctx, st)
			if err != nil {
				return err
			}
			reports[i] = *r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// Invalidate drops every cached report of a user. Bulk imports call it so a
// stale report is never served while fingerprints are recomputed.
func (s *Service) Invalidate(ctx context.Context, userID int) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		return fmt.Errorf("invalidating reports: %w", err)
	}
	return nil
}

// RecentWorkouts exposes the history a report for muscle is built from.
func (s *Service) RecentWorkouts(ctx context.Context, userID int, muscle models.Muscle) ([]models.Workout, error) {
	return s.store.RecentWorkouts(ctx, userID, muscle, s.historySize)
}

func (s *Service) reportFor(ctx context.Context, status models.MuscleStatus) (*Report, error) {
	recent, err := s.store.RecentWorkouts(ctx, status.UserID, status.Muscle, s.historySize)
	if err != nil {
		return nil, fmt.Errorf("loading %s history: %w", status.Muscle, err)
	}

	now := s.now()
	fp := Fingerprint(status, recent)
	if r := s.cached(ctx, status, fp, now); r != nil {
		return r, nil
	}

	hours := hoursSince(status.LastWorked, now)
	s.flagInvalid(status, hours)

	sc := recovery.Supercompensation(status, hours)
	r := &Report{
		Muscle:                status.Muscle,
		State:                 stateOf(status.RecoveryPercentage, sc),
		RecoveryPercentage:    status.RecoveryPercentage,
		HoursSinceLastWorkout: hours,
		Fatigue:               recovery.Fatigue(status.WorkloadScore, hours),
		Supercompensation:     sc,
		PredictedVolume:       recovery.PredictVolume(recent, status.Muscle),
		PRProbability:         recovery.PRProbability(status, recent, hours),
		WorkoutsConsidered:    len(recent),
		ComputedAt:            now,
	}

	if s.cachingEnabled() {
		if err := s.cache.Store(ctx, status.UserID, Cached{Report: *r, Fingerprint: fp}); err != nil {
			s.log.Warn("storing report in cache", "muscle", status.Muscle, "error", err)
		}
	}
	return r, nil
}

// cached returns a stored report when it is younger than the TTL and was
// built from the same data. Cache errors are logged and treated as a miss.
func (s *Service) cached(ctx context.Context, status models.MuscleStatus, fp string, now time.Time) *Report {
	if !s.cachingEnabled() {
		return nil
	}
	c, err := s.cache.Load(ctx, status.UserID, status.Muscle)
	if err != nil {
		s.log.Warn("loading cached report", "muscle", status.Muscle, "error", err)
		return nil
	}
	if c == nil || c.Fingerprint != fp || now.Sub(c.Report.ComputedAt) >= s.ttl {
		return nil
	}
	s.log.Debug("report cache hit", "muscle", status.Muscle)
	return &c.Report
}

func (s *Service) cachingEnabled() bool {
	return s.cache != nil && s.ttl > 0
}

// hoursSince returns the hours between last and now. A muscle that was never
// worked reports 0.
func hoursSince(last, now time.Time) float64 {
	if last.IsZero() {
		return 0
	}
	return now.Sub(last).Hours()
}

// flagInvalid logs inputs the model passes through without checking. The
// report is still produced.
func (s *Service) flagInvalid(status models.MuscleStatus, hours float64) {
	var problems []error
	check := func(name string, v float64) {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			problems = append(problems, fmt.Errorf("%s=%v", name, v))
		}
	}
	check("workload_score", status.WorkloadScore)
	if status.WorkloadScore > models.MaxWorkloadScore && !math.IsInf(status.WorkloadScore, 1) {
		problems = append(problems, fmt.Errorf("workload_score=%v above %v", status.WorkloadScore, models.MaxWorkloadScore))
	}
	check("recommended_rest_days", status.RecommendedRestDays)
	check("training_frequency", status.TrainingFrequency)
	check("hours_since_last_workout", hours)
	if status.RecoveryPercentage < 0 || status.RecoveryPercentage > 100 {
		problems = append(problems, fmt.Errorf("recovery_percentage=%d", status.RecoveryPercentage))
	}
	if len(problems) > 0 {
		s.log.Warn("recovery model input out of range",
			"muscle", status.Muscle, "user_id", status.UserID, "problems", errors.Join(problems...).Error())
	}
}
