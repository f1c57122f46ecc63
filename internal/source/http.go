package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/claude/wodboard/internal/models"
)

// HTTP fetches the document from a URL.
type HTTP struct {
	url        string
	httpClient *http.Client
}

// NewHTTP creates an HTTP source for url.
func NewHTTP(url string) *HTTP {
	return &HTTP{
		url:        url,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Load implements Source. Non-200 responses are fetch errors.
func (h *HTTP) Load(ctx context.Context) (*models.ScheduleDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, &FetchError{Location: h.url, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Location: h.url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Location: h.url, Err: fmt.Errorf("read body: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Location: h.url, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}
	return decode(h.url, body)
}
