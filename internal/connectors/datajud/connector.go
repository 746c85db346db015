// Package datajud implements the source adapter for the official
// judicial query API. The API is Elasticsearch-shaped: one index per
// tribunal, queried with POST bodies carrying query/size/from.
package datajud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/atrium-legal/jurisync-cli/internal/core/domain"
	"github.com/atrium-legal/jurisync-cli/internal/core/ports/driven"
)

// Ensure Connector implements the interface.
var _ driven.SourceAdapter = (*Connector)(nil)

// Connector queries the official API.
type Connector struct {
	cfg     Config
	client  *http.Client
	limiter *rate.Limiter
}

// New creates a connector from cfg.
func New(cfg Config) *Connector {
	cfg = cfg.withDefaults()
	return &Connector{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}
}

// Source returns the source system identifier.
func (c *Connector) Source() string {
	return domain.SourceDataJud
}

// Close releases resources.
func (c *Connector) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

// searchRequest is the API's query body.
type searchRequest struct {
	Query map[string]any   `json:"query"`
	Size  int              `json:"size"`
	From  int              `json:"from"`
	Sort  []map[string]any `json:"sort,omitempty"`
}

// searchResponse is the API's hit envelope.
type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source domain.DataJudHit `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search queries the API. A query matching a known tribunal alias
// (the sync orchestrator's case) lists that tribunal's index page by
// page; anything else is treated as a party-name search fanned across
// the scheduled tribunals' indexes via the alias endpoint.
func (c *Connector) Search(ctx context.Context, query string, opts driven.SearchOptions) ([]domain.RawCase, error) {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	page := opts.Page
	if page <= 0 {
		page = 1
	}

	tribunal, isTribunal := domain.TribunalByCode(query)

	var index string
	var body searchRequest
	if isTribunal {
		index = "api_publica_" + tribunal.Code
		body = searchRequest{
			Query: map[string]any{"match_all": map[string]any{}},
			Size:  pageSize,
			From:  (page - 1) * pageSize,
			Sort:  []map[string]any{{"dataHoraUltimaAtualizacao": map[string]any{"order": "desc"}}},
		}
	} else {
		index = "api_publica_unificada"
		body = searchRequest{
			Query: map[string]any{
				"query_string": map[string]any{
					"query":  query,
					"fields": []string{"partes.nome", "numeroProcesso"},
				},
			},
			Size: pageSize,
			From: (page - 1) * pageSize,
		}
	}

	hits, err := c.post(ctx, "/"+index+"/_search", body)
	if err != nil {
		return nil, err
	}

	raws := make([]domain.RawCase, 0, len(hits))
	for i := range hits {
		hit := hits[i]
		raws = append(raws, domain.RawCase{
			SourceSystem: domain.SourceDataJud,
			DataJud:      &hit,
		})
	}
	return raws, nil
}

// post sends one query, pacing through the limiter and classifying
// failures into the domain error taxonomy.
func (c *Connector) post(ctx context.Context, path string, body searchRequest) ([]domain.DataJudHit, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate wait: %w", err)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "APIKey "+c.cfg.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		// Transport failures (timeouts, refused connections) are
		// retryable; classification happens upstream via errors.As.
		return nil, fmt.Errorf("datajud request: %w", err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp.StatusCode); err != nil {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return nil, err
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	hits := make([]domain.DataJudHit, 0, len(out.Hits.Hits))
	for _, h := range out.Hits.Hits {
		hits = append(hits, h.Source)
	}
	return hits, nil
}

// classifyStatus maps an HTTP status onto the domain error taxonomy.
func classifyStatus(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: status %d", domain.ErrRateLimited, status)
	case status >= 400 && status < 500:
		return fmt.Errorf("%w: status %d", domain.ErrPermanent, status)
	default:
		return fmt.Errorf("%w: status %d", domain.ErrTransient, status)
	}
}
