package normalisers

import (
	"fmt"

	"github.com/atrium-legal/jurisync-cli/internal/core/domain"
	"github.com/atrium-legal/jurisync-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry dispatches raw records to the normaliser registered for
// their source system.
type Registry struct {
	bySource map[string]driven.Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{bySource: make(map[string]driven.Normaliser)}
}

// Register adds a normaliser, replacing any previous one for the same
// source system.
func (r *Registry) Register(n driven.Normaliser) {
	r.bySource[n.SourceSystem()] = n
}

// Normalise converts one raw record via the matching normaliser.
func (r *Registry) Normalise(raw *domain.RawCase) (*domain.CanonicalCase, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	n, ok := r.bySource[raw.SourceSystem]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedSource, raw.SourceSystem)
	}
	return n.Normalise(raw)
}
