package mcp

import (
	"context"
	"time"

	"github.com/claude/fittrack/internal/models"
	"github.com/claude/fittrack/internal/readiness"
	"github.com/claude/fittrack/internal/storage"
)

// DataSource abstracts the data layer for MCP tools. Both Local (in-process)
// and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	ReadinessReport(ctx context.Context, userID int, muscle models.Muscle) (*readiness.Report, error)
	ReadinessReports(ctx context.Context, userID int) ([]readiness.Report, error)
	ListMuscleStatuses(ctx context.Context, userID int) ([]models.MuscleStatus, error)
	QueryWorkouts(ctx context.Context, start, end time.Time, userID int) ([]models.Workout, error)
	RecentWorkouts(ctx context.Context, userID int, muscle models.Muscle, limit int) ([]models.Workout, error)
	TrainingSummary(ctx context.Context, start, end time.Time, bucket string, userID int) ([]storage.TrainingSummaryPeriod, error)
}

// Local serves tools straight from the database and readiness service.
type Local struct {
	db  *storage.DB
	svc *readiness.Service
}

var _ DataSource = (*Local)(nil)

// NewLocal creates an in-process DataSource.
func NewLocal(db *storage.DB, svc *readiness.Service) *Local {
	return &Local{db: db, svc: svc}
}

func (l *Local) ReadinessReport(ctx context.Context, userID int, muscle models.Muscle) (*readiness.Report, error) {
	return l.svc.Report(ctx, userID, muscle)
}

func (l *Local) ReadinessReports(ctx context.Context, userID int) ([]readiness.Report, error) {
	return l.svc.ReportAll(ctx, userID)
}

func (l *Local) ListMuscleStatuses(ctx context.Context, userID int) ([]models.MuscleStatus, error) {
	return l.db.ListMuscleStatuses(ctx, userID)
}

func (l *Local) QueryWorkouts(ctx context.Context, start, end time.Time, userID int) ([]models.Workout, error) {
	return l.db.QueryWorkouts(ctx, start, end, userID)
}

func (l *Local) RecentWorkouts(ctx context.Context, userID int, muscle models.Muscle, limit int) ([]models.Workout, error) {
	return l.db.RecentWorkouts(ctx, userID, muscle, limit)
}

func (l *Local) TrainingSummary(ctx context.Context, start, end time.Time, bucket string, userID int) ([]storage.TrainingSummaryPeriod, error) {
	return l.db.GetTrainingSummary(ctx, start, end, bucket, userID)
}
