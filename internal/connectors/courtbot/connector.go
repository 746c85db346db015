// Package courtbot implements the source adapter for the
// headless-browser automation vendor. A search submits a job and the
// vendor replies synchronously with the extracted payloads once its
// browser session finishes, so requests run long.
package courtbot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/atrium-legal/jurisync-cli/internal/core/domain"
	"github.com/atrium-legal/jurisync-cli/internal/core/ports/driven"
)

// Ensure Connector implements the interface.
var _ driven.SourceAdapter = (*Connector)(nil)

// DefaultTimeout covers a full browser session on the vendor side.
const DefaultTimeout = 90 * time.Second

// Config holds configuration for the automation vendor connector.
type Config struct {
	// BaseURL is the vendor job endpoint.
	BaseURL string

	// APIKey authenticates job submissions.
	APIKey string

	// Timeout is the per-request timeout (default: 90s).
	Timeout time.Duration
}

// Connector submits search jobs to the vendor.
type Connector struct {
	cfg    Config
	client *http.Client
}

// New creates a connector from cfg.
func New(cfg Config) *Connector {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Connector{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}}
}

// Source returns the source system identifier.
func (c *Connector) Source() string {
	return domain.SourceCourtBot
}

// Close releases resources.
func (c *Connector) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

type jobRequest struct {
	Query    string `json:"query"`
	Page     int    `json:"page,omitempty"`
	PageSize int    `json:"page_size,omitempty"`
}

type jobResponse struct {
	Results []domain.CourtBotPayload `json:"results"`
}

// Search submits a job for the query and returns the extracted cases.
func (c *Connector) Search(ctx context.Context, query string, opts driven.SearchOptions) ([]domain.RawCase, error) {
	body, err := json.Marshal(jobRequest{Query: query, Page: opts.Page, PageSize: opts.PageSize})
	if err != nil {
		return nil, fmt.Errorf("encode job: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/jobs/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("X-Api-Key", c.cfg.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("courtbot request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: status %d", domain.ErrRateLimited, resp.StatusCode)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, fmt.Errorf("%w: status %d", domain.ErrPermanent, resp.StatusCode)
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", domain.ErrTransient, resp.StatusCode)
	}

	var out jobResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode job result: %w", err)
	}

	raws := make([]domain.RawCase, 0, len(out.Results))
	for i := range out.Results {
		payload := out.Results[i]
		raws = append(raws, domain.RawCase{
			SourceSystem: domain.SourceCourtBot,
			CourtBot:     &payload,
		})
	}
	return raws, nil
}
