package driving

import (
	"context"

	"github.com/atrium-legal/jurisync-cli/internal/core/domain"
)

// ConsolidatedSearch fans a query out to every configured source and
// merges the normalised results into one record per case.
//
// The returned result is always well formed: per-source failures are
// recorded inside it, and a run with every source down yields an
// empty result, not an error. The error return covers only caller
// mistakes (empty query).
type ConsolidatedSearch interface {
	Search(ctx context.Context, query string) (*domain.ConsolidationResult, error)
}
