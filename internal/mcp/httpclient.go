package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/claude/fittrack/internal/models"
	"github.com/claude/fittrack/internal/readiness"
	"github.com/claude/fittrack/internal/storage"
)

// HTTPClient implements DataSource by calling the FitTrack REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("httpclient: %s: %w", path, storage.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func timeParams(start, end time.Time) url.Values {
	v := url.Values{}
	v.Set("start", start.Format(time.RFC3339))
	v.Set("end", end.Format(time.RFC3339))
	return v
}

// getJSON fetches path and decodes the body into v.
func (c *HTTPClient) getJSON(ctx context.Context, path string, params url.Values, v any) error {
	body, err := c.get(ctx, path, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) ReadinessReport(ctx context.Context, _ int, muscle models.Muscle) (*readiness.Report, error) {
	var r readiness.Report
	if err := c.getJSON(ctx, "/api/v1/readiness/"+url.PathEscape(string(muscle)), nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *HTTPClient) ReadinessReports(ctx context.Context, _ int) ([]readiness.Report, error) {
	var reports []readiness.Report
	if err := c.getJSON(ctx, "/api/v1/readiness", nil, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (c *HTTPClient) ListMuscleStatuses(ctx context.Context, _ int) ([]models.MuscleStatus, error) {
	var statuses []models.MuscleStatus
	if err := c.getJSON(ctx, "/api/v1/muscles", nil, &statuses); err != nil {
		return nil, err
	}
	return statuses, nil
}

func (c *HTTPClient) QueryWorkouts(ctx context.Context, start, end time.Time, _ int) ([]models.Workout, error) {
	var workouts []models.Workout
	if err := c.getJSON(ctx, "/api/v1/workouts", timeParams(start, end), &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (c *HTTPClient) RecentWorkouts(ctx context.Context, _ int, muscle models.Muscle, limit int) ([]models.Workout, error) {
	params := url.Values{}
	if muscle != "" {
		params.Set("muscle", string(muscle))
	}
	params.Set("limit", strconv.Itoa(limit))

	var workouts []models.Workout
	if err := c.getJSON(ctx, "/api/v1/workouts/recent", params, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (c *HTTPClient) TrainingSummary(ctx context.Context, start, end time.Time, bucket string, _ int) ([]storage.TrainingSummaryPeriod, error) {
	params := timeParams(start, end)
	params.Set("bucket", bucket)

	var summary []storage.TrainingSummaryPeriod
	if err := c.getJSON(ctx, "/api/v1/training/summary", params, &summary); err != nil {
		return nil, err
	}
	return summary, nil
}
