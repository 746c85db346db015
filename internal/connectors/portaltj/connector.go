// Package portaltj implements the source adapter for the court-portal
// scraping vendor. The vendor runs the HTML extraction on its side
// and exposes the results as row-shaped JSON; how it scrapes is its
// business, not ours.
package portaltj

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/atrium-legal/jurisync-cli/internal/core/domain"
	"github.com/atrium-legal/jurisync-cli/internal/core/ports/driven"
)

// Ensure Connector implements the interface.
var _ driven.SourceAdapter = (*Connector)(nil)

// DefaultTimeout is the per-request timeout. Scrapes are slow.
const DefaultTimeout = 45 * time.Second

// Config holds configuration for the portal vendor connector.
type Config struct {
	// BaseURL is the vendor endpoint.
	BaseURL string

	// Token is the vendor bearer token.
	Token string

	// Timeout is the per-request timeout (default: 45s).
	Timeout time.Duration
}

// Connector queries the vendor's search endpoint.
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
	return domain.SourcePortalTJ
}

// Close releases resources.
func (c *Connector) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

// Search asks the vendor for rows matching the query.
func (c *Connector) Search(ctx context.Context, query string, opts driven.SearchOptions) ([]domain.RawCase, error) {
	q := url.Values{"q": {query}}
	if opts.Page > 1 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PageSize > 0 {
		q.Set("limit", strconv.Itoa(opts.PageSize))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/v1/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("portal request: %w", err)
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

	var rows []domain.PortalRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode rows: %w", err)
	}

	raws := make([]domain.RawCase, 0, len(rows))
	for i := range rows {
		row := rows[i]
		raws = append(raws, domain.RawCase{
			SourceSystem: domain.SourcePortalTJ,
			Portal:       &row,
		})
	}
	return raws, nil
}
