// Package mcp exposes muscle readiness and workout history as Model Context
// Protocol tools and resources.
package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, historySize int, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("FitTrack", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("FitTrack training server. Query per-muscle recovery, fatigue, supercompensation, predicted volume and PR probability, plus logged workouts. All data is scoped to the authenticated user."),
	)

	h := &handlers{ds: ds, historySize: historySize, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolGetMuscleReadiness, Handler: h.getMuscleReadiness},
		server.ServerTool{Tool: toolGetMuscleStatuses, Handler: h.getMuscleStatuses},
		server.ServerTool{Tool: toolGetWorkouts, Handler: h.getWorkouts},
		server.ServerTool{Tool: toolPredictVolume, Handler: h.predictVolume},
		server.ServerTool{Tool: toolGetTrainingSummary, Handler: h.getTrainingSummary},
	)

	s.AddResources(
		server.ServerResource{Resource: resReadiness, Handler: h.readinessResource},
		server.ServerResource{Resource: resMuscleCatalog, Handler: h.muscleCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds          DataSource
	historySize int
	log         *slog.Logger
}
