package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claude/wodboard/internal/models"
)

// RemoteStore publishes weeks to a WODBoard server over HTTP.
type RemoteStore struct {
	serverURL  string
	apiKey     string
	httpClient *http.Client
	backoff    time.Duration
}

// Compile-time check: RemoteStore satisfies WeekStore.
var _ WeekStore = (*RemoteStore)(nil)

// NewRemoteStore creates a store that POSTs to serverURL's week endpoint.
func NewRemoteStore(serverURL, apiKey string) *RemoteStore {
	return &RemoteStore{
		serverURL: strings.TrimRight(serverURL, "/"),
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		backoff: time.Second,
	}
}

// UpsertWeek POSTs the week document under its slug. Server errors and
// transport failures are retried up to 3 times with exponential backoff;
// 4xx responses are not.
func (c *RemoteStore) UpsertWeek(ctx context.Context, row models.WeekRow) (*models.WeekRow, error) {
	endpoint := c.serverURL + "/api/v1/weeks?" + url.Values{"slug": {row.Slug}}.Encode()

	var lastErr error
	for attempt := range 3 {
		if attempt > 0 {
			select {
			case <-time.After(c.backoff << uint(attempt-1)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(row.Document))
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-Key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusCreated || resp.StatusCode == http.StatusOK:
			var published models.WeekRow
			if err := json.Unmarshal(body, &published); err != nil {
				return nil, fmt.Errorf("decoding publish response: %w", err)
			}
			return &published, nil
		case resp.StatusCode < http.StatusInternalServerError:
			return nil, fmt.Errorf("publish %s rejected (status %d): %s", row.Slug, resp.StatusCode, body)
		}
		lastErr = fmt.Errorf("publish failed (status %d): %s", resp.StatusCode, body)
	}

	return nil, fmt.Errorf("after 3 attempts: %w", lastErr)
}
