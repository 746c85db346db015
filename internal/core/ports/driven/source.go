package driven

import (
	"context"

	"github.com/atrium-legal/jurisync-cli/internal/core/domain"
)

// SearchOptions bound a source query.
type SearchOptions struct {
	// Page selects one result page, 1-based. Zero means the first.
	// The sync orchestrator drives pagination page by page; the
	// interactive search leaves this at zero.
	Page int

	// MaxPages caps adapter-internal pagination. Zero means a single
	// page.
	MaxPages int

	// PageSize is the per-page record count hint. Zero lets the
	// adapter pick its default.
	PageSize int
}

// SourceAdapter fetches raw case records from one external system.
// Every external retrieval mechanism (official API, HTML scraping
// vendor, headless-browser vendor) hides behind this interface and is
// individually swappable.
//
// Contract: a legitimate "no results" returns an empty slice and a
// nil error. Failures must be classified by wrapping one of the
// domain sentinels (ErrRateLimited, ErrPermanent, ErrTransient) so
// the resilience executor can pick the retry strategy. Adapters are
// treated as untrusted and slow; callers time-box every Search.
type SourceAdapter interface {
	// Source returns the source system identifier.
	Source() string

	// Search queries the source for records matching a party name or
	// case number.
	Search(ctx context.Context, query string, opts SearchOptions) ([]domain.RawCase, error)

	// Close releases resources.
	Close() error
}
