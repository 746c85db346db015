package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMissing(t *testing.T) {
	s := NewDocumentStore()

	doc, err := s.Get(context.Background(), "cases/123")
	require.NoError(t, err)
	assert.False(t, doc.Exists)
	assert.Nil(t, doc.Fields)
}

func TestSetMergeCreatesAndOverlays(t *testing.T) {
	s := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, s.SetMerge(ctx, "cases/123", map[string]any{
		"status": "active",
		"judge":  "Dra. Ana",
	}))
	require.NoError(t, s.SetMerge(ctx, "cases/123", map[string]any{
		"status": "concluded",
	}))

	doc, err := s.Get(ctx, "cases/123")
	require.NoError(t, err)
	assert.True(t, doc.Exists)
	assert.Equal(t, "concluded", doc.Fields["status"])
	assert.Equal(t, "Dra. Ana", doc.Fields["judge"], "unnamed fields survive a merge")
}

func TestSetMergeDeepMergesNestedMaps(t *testing.T) {
	s := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, s.SetMerge(ctx, "synclogs/2023-05-10", map[string]any{
		"tribunals": map[string]any{
			"tjsp": map[string]any{"updated": 4},
		},
	}))
	require.NoError(t, s.SetMerge(ctx, "synclogs/2023-05-10", map[string]any{
		"tribunals": map[string]any{
			"trf3": map[string]any{"updated": 2},
		},
	}))

	doc, err := s.Get(ctx, "synclogs/2023-05-10")
	require.NoError(t, err)
	tribs, ok := doc.Fields["tribunals"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, tribs, "tjsp", "sibling tribunal entries survive")
	assert.Contains(t, tribs, "trf3")
}

func TestGetReturnsCopies(t *testing.T) {
	s := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, s.SetMerge(ctx, "cases/1", map[string]any{"status": "active"}))

	doc, err := s.Get(ctx, "cases/1")
	require.NoError(t, err)
	doc.Fields["status"] = "mutated"

	again, err := s.Get(ctx, "cases/1")
	require.NoError(t, err)
	assert.Equal(t, "active", again.Fields["status"])
}
