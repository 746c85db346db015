// Package memory provides an in-memory DocumentStore used by tests
// and dry runs.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/atrium-legal/jurisync-cli/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is a mutex-guarded map keyed by document key.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]map[string]any

	// FailGets and FailSets force errors, for failure-path tests.
	FailGets bool
	FailSets bool
}

// NewDocumentStore creates an empty store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]map[string]any)}
}

// Get retrieves the document stored under key.
func (s *DocumentStore) Get(_ context.Context, key string) (*driven.StoredDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.FailGets {
		return nil, fmt.Errorf("memory store: get disabled")
	}

	fields, ok := s.docs[key]
	if !ok {
		return &driven.StoredDocument{}, nil
	}
	return &driven.StoredDocument{Exists: true, Fields: cloneFields(fields)}, nil
}

// SetMerge overlays fields onto the stored document. Nested maps
// merge recursively; everything else replaces, matching the
// conditional-merge contract of the real storage tier.
func (s *DocumentStore) SetMerge(_ context.Context, key string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailSets {
		return fmt.Errorf("memory store: set disabled")
	}

	// Round-trip through JSON so stored shapes match what a real
	// document tier hands back: maps and primitives, no Go structs.
	normalised, err := normaliseFields(fields)
	if err != nil {
		return fmt.Errorf("memory store: %w", err)
	}

	existing, ok := s.docs[key]
	if !ok {
		s.docs[key] = normalised
		return nil
	}
	s.docs[key] = mergeFields(existing, normalised)
	return nil
}

// Close releases nothing; it exists to satisfy the port.
func (s *DocumentStore) Close() error {
	return nil
}

// Len reports the number of stored documents.
func (s *DocumentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

func normaliseFields(fields map[string]any) (map[string]any, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func mergeFields(dst, src map[string]any) map[string]any {
	out := cloneFields(dst)
	for k, v := range src {
		if sub, ok := v.(map[string]any); ok {
			if prev, ok := out[k].(map[string]any); ok {
				out[k] = mergeFields(prev, sub)
				continue
			}
		}
		out[k] = v
	}
	return out
}

func cloneFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if sub, ok := v.(map[string]any); ok {
			out[k] = cloneFields(sub)
			continue
		}
		out[k] = v
	}
	return out
}
