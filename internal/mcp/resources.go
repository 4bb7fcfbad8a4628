package mcp

import (
	"context"
	"encoding/json"

	"github.com/claude/fittrack/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

var resReadiness = mcp.NewResource(
	"fittrack://readiness",
	"Muscle Readiness",
	mcp.WithResourceDescription("Current readiness report for every muscle with a recorded status"),
	mcp.WithMIMEType("application/json"),
)

var resMuscleCatalog = mcp.NewResource(
	"fittrack://muscles",
	"Muscle Catalog",
	mcp.WithResourceDescription("Every muscle group identifier with its display name and default rest days"),
	mcp.WithMIMEType("application/json"),
)

type catalogEntry struct {
	Muscle          models.Muscle `json:"muscle"`
	Label           string        `json:"label"`
	DefaultRestDays float64       `json:"default_rest_days"`
}

func (h *handlers) readinessResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	reports, err := h.ds.ReadinessReports(ctx, UserIDFromContext(ctx))
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, reports)
}

func (h *handlers) muscleCatalog(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	catalog := make([]catalogEntry, 0, len(models.AllMuscles))
	for _, m := range models.AllMuscles {
		catalog = append(catalog, catalogEntry{Muscle: m, Label: m.Label(), DefaultRestDays: models.DefaultRestDays[m]})
	}
	return jsonResource(req.Params.URI, catalog)
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
