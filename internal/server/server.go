package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/claude/fittrack/internal/ingest"
	fitmcp "github.com/claude/fittrack/internal/mcp"
	"github.com/claude/fittrack/internal/models"
	"github.com/claude/fittrack/internal/readiness"
	"github.com/claude/fittrack/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Store is the persistence the handlers need. *storage.DB satisfies it.
type Store interface {
	UserResolver
	InsertWorkout(ctx context.Context, w models.Workout) (bool, error)
	DeleteWorkout(ctx context.Context, id uuid.UUID, userID int) error
	GetWorkout(ctx context.Context, id uuid.UUID, userID int) (*models.Workout, error)
	QueryWorkouts(ctx context.Context, start, end time.Time, userID int) ([]models.Workout, error)
	RecentWorkouts(ctx context.Context, userID int, muscle models.Muscle, limit int) ([]models.Workout, error)
	ListMuscleStatuses(ctx context.Context, userID int) ([]models.MuscleStatus, error)
	UpsertMuscleStatus(ctx context.Context, s models.MuscleStatus) error
	InsertImportLog(ctx context.Context, log storage.ImportLog) (int64, error)
	QueryImportLogs(ctx context.Context, userID, limit int) ([]storage.ImportLog, error)
	GetDataStats(ctx context.Context, userID int) (*storage.DataStats, error)
	GetTrainingSummary(ctx context.Context, start, end time.Time, bucket string, userID int) ([]storage.TrainingSummaryPeriod, error)
}

// Readiness builds reports. *readiness.Service satisfies it.
type Readiness interface {
	Report(ctx context.Context, userID int, muscle models.Muscle) (*readiness.Report, error)
	ReportAll(ctx context.Context, userID int) ([]readiness.Report, error)
	Invalidate(ctx context.Context, userID int) error
}

// Importer ingests a file export. *alpha.Provider satisfies it.
type Importer interface {
	Ingest(ctx context.Context, r io.Reader, userID int) (*ingest.Result, error)
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	db        Store
	readiness Readiness
	alpha     Importer
	mcp       *mcpserver.MCPServer
	whois     WhoIser
	log       *slog.Logger
	apiKey    string
	router    chi.Router
}

// New creates a new Server. mcpSrv may be nil, in which case /mcp is not
// mounted.
func New(db Store, ready Readiness, alphaProvider Importer, mcpSrv *mcpserver.MCPServer, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:        db,
		readiness: ready,
		alpha:     alphaProvider,
		mcp:       mcpSrv,
		log:       log,
		apiKey:    apiKey,
	}
	s.routes()
	return s
}

// SetTailscale switches request identity from the local user to the tailnet
// user behind each connection. Call before serving.
func (s *Server) SetTailscale(lc WhoIser) {
	s.whois = lc
	s.routes()
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) identity() func(http.Handler) http.Handler {
	if s.whois != nil {
		return TailscaleIdentity(s.whois, s.db)
	}
	return DevIdentity
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(RequestLogging(s.log))
	r.Use(CORS)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.identity())

		r.Get("/me", s.handleMe)
		r.Get("/stats", s.handleStats)
		r.Get("/imports", s.handleImportLogs)
		r.Get("/training/summary", s.handleTrainingSummary)

		// Reads and pure computation (no auth; tsnet handles access)
		r.Get("/workouts", s.handleQueryWorkouts)
		r.Get("/workouts/recent", s.handleRecentWorkouts)
		r.Get("/workouts/{id}", s.handleGetWorkout)
		r.Get("/muscles", s.handleListMuscles)
		r.Get("/readiness", s.handleReadinessAll)
		r.Get("/readiness/{muscle}", s.handleReadiness)
		r.Post("/volume", s.handleVolume)

		// Writes (API key required)
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))
			r.Post("/workouts", s.handleCreateWorkout)
			r.Post("/workouts/alpha", s.handleAlphaImport)
			r.Delete("/workouts/{id}", s.handleDeleteWorkout)
			r.Put("/muscles/{muscle}", s.handlePutMuscle)
		})
	})

	if s.mcp != nil {
		mcpHTTP := mcpserver.NewStreamableHTTPServer(s.mcp,
			mcpserver.WithStateLess(true),
			mcpserver.WithHTTPContextFunc(func(ctx context.Context, r *http.Request) context.Context {
				return fitmcp.WithUserID(ctx, userIDFromContext(r))
			}),
		)
		r.With(s.identity()).Handle("/mcp", mcpHTTP)
	}

	s.router = r
}
