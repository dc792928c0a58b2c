// Package client talks to the measurement store over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/obra-measure/internal/workflow"
)

const defaultTimeout = 30 * time.Second

// APIError is a non-2xx response. Message is the store's error text verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// Client implements workflow.Backend against /api/v1/projects/{project_id}.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *slog.Logger
}

var _ workflow.Backend = (*Client)(nil)

// New creates a client. A zero timeout uses 30s.
func New(baseURL, token string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func projectPath(projectID uuid.UUID, rest string) string {
	return "/api/v1/projects/" + projectID.String() + rest
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s %s: %w", method, path, err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}
	c.logger.Debug("store call", "method", method, "path", path, "status", resp.StatusCode, "took", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		msg := http.StatusText(resp.StatusCode)
		if json.Unmarshal(raw, &e) == nil && e.Error != "" {
			msg = e.Error
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) ListTypologies(ctx context.Context, projectID uuid.UUID) ([]workflow.Typology, error) {
	var out []workflow.Typology
	if err := c.do(ctx, http.MethodGet, projectPath(projectID, "/typologies"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TypologyInput is the body of CreateTypology.
type TypologyInput struct {
	Code          string   `json:"code"`
	Description   string   `json:"description,omitempty"`
	NominalWidth  *float64 `json:"nominal_width,omitempty"`
	NominalHeight *float64 `json:"nominal_height,omitempty"`
	TotalQuantity int      `json:"total_quantity"`
}

// CreateTypology adds a catalog entry.
func (c *Client) CreateTypology(ctx context.Context, projectID uuid.UUID, in TypologyInput) (*workflow.Typology, error) {
	var out workflow.Typology
	if err := c.do(ctx, http.MethodPost, projectPath(projectID, "/typologies"), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListLocations(ctx context.Context, projectID uuid.UUID) ([]workflow.Location, error) {
	var out []workflow.Location
	if err := c.do(ctx, http.MethodGet, projectPath(projectID, "/locations"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GenerateLocations(ctx context.Context, projectID uuid.UUID, reqs []workflow.GenerateRequest) error {
	return c.do(ctx, http.MethodPost, projectPath(projectID, "/locations/generate"), reqs, nil)
}

func (c *Client) DeleteFloor(ctx context.Context, projectID uuid.UUID, floor string) error {
	return c.do(ctx, http.MethodDelete, projectPath(projectID, "/locations/floors/"+url.PathEscape(floor)), nil, nil)
}

func (c *Client) SaveAssignments(ctx context.Context, projectID uuid.UUID, pairs []workflow.AssignmentPair) error {
	if pairs == nil {
		pairs = []workflow.AssignmentPair{}
	}
	return c.do(ctx, http.MethodPut, projectPath(projectID, "/assignments"), pairs, nil)
}

func (c *Client) ListMeasurements(ctx context.Context, projectID uuid.UUID) ([]workflow.MeasurementRecord, error) {
	var out []workflow.MeasurementRecord
	if err := c.do(ctx, http.MethodGet, projectPath(projectID, "/measurements"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SaveMeasurements(ctx context.Context, projectID uuid.UUID, recs []workflow.MeasurementRecord) error {
	if recs == nil {
		recs = []workflow.MeasurementRecord{}
	}
	return c.do(ctx, http.MethodPut, projectPath(projectID, "/measurements"), recs, nil)
}

func (c *Client) FetchReport(ctx context.Context, projectID uuid.UUID) (*workflow.Report, error) {
	var out workflow.Report
	if err := c.do(ctx, http.MethodGet, projectPath(projectID, "/measurements/report"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
