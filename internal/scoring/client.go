// Package scoring is the HTTP client for the external scoring service.
// It is a pure transport adapter: no caching, no retries.
package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/housefly/internal/common"
	"github.com/Veraticus/housefly/internal/model"
	"github.com/Veraticus/housefly/internal/service"
	"github.com/google/uuid"
)

// RequestIDHeader carries a per-request id so client and service logs line up.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody bounds how much of an error response is read for its message.
const maxErrorBody = 4 << 10

var (
	_ service.ScoringService = (*Client)(nil)
	_ service.Refresher      = (*Client)(nil)
)

// Client talks to the scoring service REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates a client for the service rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListNeighborhoods returns every neighborhood. Entries that fail
// validation are dropped with a warning rather than failing the list.
func (c *Client) ListNeighborhoods(ctx context.Context) ([]model.Neighborhood, error) {
	const op = "list neighborhoods"

	var raw []model.Neighborhood
	if err := c.get(ctx, op, "/api/neighborhoods", nil, &raw); err != nil {
		return nil, err
	}

	neighborhoods := make([]model.Neighborhood, 0, len(raw))
	for i := range raw {
		if err := raw[i].Validate(); err != nil {
			slog.Warn("Skipping malformed neighborhood", "index", i, "error", err)
			continue
		}
		neighborhoods = append(neighborhoods, raw[i])
	}
	return neighborhoods, nil
}

// GetNeighborhood returns a single neighborhood.
func (c *Client) GetNeighborhood(ctx context.Context, id int) (*model.Neighborhood, error) {
	const op = "get neighborhood"

	var n model.Neighborhood
	if err := c.get(ctx, op, "/api/neighborhoods/"+strconv.Itoa(id), nil, &n); err != nil {
		return nil, err
	}
	if err := n.Validate(); err != nil {
		return nil, &common.DataShapeError{Op: op, Err: err}
	}
	return &n, nil
}

// GetNeighborhoodScore returns the current score of one neighborhood.
func (c *Client) GetNeighborhoodScore(ctx context.Context, id int) (*model.Score, error) {
	const op = "get neighborhood score"

	var s model.Score
	if err := c.get(ctx, op, fmt.Sprintf("/api/neighborhoods/%d/scores", id), nil, &s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, &common.DataShapeError{Op: op, Field: "neighborhood_id", Err: err}
	}
	return &s, nil
}

// ListScores returns the current score snapshot for all scored neighborhoods.
func (c *Client) ListScores(ctx context.Context) ([]model.Score, error) {
	const op = "list scores"

	var raw []model.Score
	if err := c.get(ctx, op, "/api/scores", nil, &raw); err != nil {
		return nil, err
	}

	scores := make([]model.Score, 0, len(raw))
	for i := range raw {
		if err := raw[i].Validate(); err != nil {
			slog.Warn("Skipping malformed score", "index", i, "error", err)
			continue
		}
		scores = append(scores, raw[i])
	}
	return scores, nil
}

// GetBreakdown returns the sub-score breakdown for a neighborhood.
func (c *Client) GetBreakdown(ctx context.Context, neighborhoodID int) (*model.ScoreBreakdown, error) {
	const op = "get breakdown"

	var b model.ScoreBreakdown
	if err := c.get(ctx, op, "/api/scores/breakdown/"+strconv.Itoa(neighborhoodID), nil, &b); err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, &common.DataShapeError{Op: op, Field: "neighborhood_id", Err: err}
	}
	return &b, nil
}

// GetProjection returns the projection triple for a neighborhood. The
// horizon is passed as the years query parameter.
func (c *Client) GetProjection(ctx context.Context, neighborhoodID int, horizon model.Horizon) (*model.ScoreProjection, error) {
	const op = "get projection"

	if _, err := model.ParseHorizon(horizon.Years()); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("years", strconv.Itoa(horizon.Years()))

	var p model.ScoreProjection
	if err := c.get(ctx, op, "/api/scores/"+strconv.Itoa(neighborhoodID), query, &p); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, &common.DataShapeError{Op: op, Field: "neighborhood_id", Err: err}
	}
	return &p, nil
}

// TriggerRefresh asks the service to rerun its data pipeline.
func (c *Client) TriggerRefresh(ctx context.Context) (*model.RefreshStatus, error) {
	const op = "trigger refresh"

	var status model.RefreshStatus
	if err := c.do(ctx, op, http.MethodPost, "/api/admin/refresh", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) get(ctx context.Context, op, path string, query url.Values, out any) error {
	return c.do(ctx, op, http.MethodGet, path, query, out)
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", op, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &common.NetworkError{Op: op, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	slog.Debug("Scoring service response",
		"op", op,
		"method", method,
		"url", endpoint,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &common.ServiceError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.Body),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &common.NetworkError{Op: op, Err: err}
	}

	if err := json.Unmarshal(body, out); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		field := ""
		if errors.As(err, &typeErr) {
			field = typeErr.Field
		} else if errors.As(err, &syntaxErr) {
			field = "body"
		}
		return &common.DataShapeError{Op: op, Field: field, Err: err}
	}

	return nil
}

// errorMessage extracts FastAPI's {"detail": "..."} or falls back to the
// trimmed body text.
func errorMessage(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(body) == 0 {
		return ""
	}

	var payload struct {
		Detail any `json:"detail"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if s, ok := payload.Detail.(string); ok {
			return s
		}
	}

	return string(bytes.TrimSpace(body))
}
