package driven

import "github.com/atrium-legal/jurisync-cli/internal/core/domain"

// Normaliser transforms one source's raw records into canonical
// cases. Each source system has exactly one normaliser; the
// conversion is deterministic and side-effect free.
type Normaliser interface {
	// SourceSystem returns the raw variant this normaliser handles.
	SourceSystem() string

	// Normalise converts one raw record of the supported variant.
	Normalise(raw *domain.RawCase) (*domain.CanonicalCase, error)
}

// NormaliserRegistry dispatches raw records to the normaliser
// registered for their SourceSystem tag. Records with no registered
// normaliser fail with domain.ErrUnsupportedSource.
type NormaliserRegistry interface {
	// Normalise converts one raw record via the matching normaliser.
	Normalise(raw *domain.RawCase) (*domain.CanonicalCase, error)

	// Register adds a normaliser to the registry.
	Register(normaliser Normaliser)
}
