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

	"github.com/claude/wodboard/internal/models"
)

// HTTPClient implements DataSource by calling a WODBoard server's REST API.
// Used for stdio MCP mode where the binary runs locally but the schedule
// is served elsewhere.
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

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, apiError(body))
	}

	return body, nil
}

// apiError extracts the message from a {"error": "..."} body.
func apiError(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(body))
}

func (c *HTTPClient) Schedule(ctx context.Context, week string) (*models.ScheduleDocument, error) {
	params := url.Values{}
	if week != "" {
		params.Set("week", week)
	}

	body, err := c.get(ctx, "/api/v1/schedule", params)
	if err != nil {
		return nil, err
	}

	doc, err := models.ParseSchedule(body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: decode schedule: %w", err)
	}
	return doc, nil
}

func (c *HTTPClient) ListWeeks(ctx context.Context, limit int) ([]models.WeekSummary, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	body, err := c.get(ctx, "/api/v1/weeks", params)
	if err != nil {
		return nil, err
	}

	var weeks []models.WeekSummary
	if err := json.Unmarshal(body, &weeks); err != nil {
		return nil, fmt.Errorf("httpclient: decode weeks: %w", err)
	}
	return weeks, nil
}
