package driven

import "context"

// StoredDocument is the result of a keyed lookup.
type StoredDocument struct {
	// Exists reports whether a document is stored under the key.
	Exists bool

	// Fields is the stored field map, nil when Exists is false.
	Fields map[string]any
}

// DocumentStore is the keyed document contract the pipeline persists
// through. The backing tier bills per write, which is why every write
// flows through change detection first.
//
// SetMerge overlays the given fields onto the stored document,
// creating it if absent; fields not named are left untouched.
type DocumentStore interface {
	// Get retrieves the document stored under key.
	Get(ctx context.Context, key string) (*StoredDocument, error)

	// SetMerge merges fields into the document stored under key.
	SetMerge(ctx context.Context, key string, fields map[string]any) error

	// Close releases resources.
	Close() error
}
