package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestGetMissingKey(t *testing.T) {
	s := newTestStore(t)

	doc, err := s.Get(context.Background(), "cases/00000000120238260100")
	require.NoError(t, err)
	assert.False(t, doc.Exists)
	assert.Nil(t, doc.Fields)
}

func TestSetMergeCreatesAndUpdates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	key := "cases/00000000120238260100"

	require.NoError(t, s.SetMerge(ctx, key, map[string]any{
		"caseNumber": "0001234-56.2023.8.26.0100",
		"status":     "active",
	}))

	require.NoError(t, s.SetMerge(ctx, key, map[string]any{
		"status": "concluded",
	}))

	doc, err := s.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, doc.Exists)
	assert.Equal(t, "0001234-56.2023.8.26.0100", doc.Fields["caseNumber"])
	assert.Equal(t, "concluded", doc.Fields["status"])
}

func TestSetMergeDeepMergesNestedMaps(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	key := "synclogs/2026-08-29"

	require.NoError(t, s.SetMerge(ctx, key, map[string]any{
		"tribunals": map[string]any{
			"tjsp": map[string]any{"success": 10},
		},
	}))
	require.NoError(t, s.SetMerge(ctx, key, map[string]any{
		"tribunals": map[string]any{
			"tjrj": map[string]any{"success": 4},
		},
	}))

	doc, err := s.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, doc.Exists)

	tribunals, ok := doc.Fields["tribunals"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, tribunals, "tjsp")
	assert.Contains(t, tribunals, "tjrj")
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.SetMerge(ctx, "cases/1", map[string]any{"status": "active"}))
	require.NoError(t, s.Close())

	s2, err := NewStore(dir)
	require.NoError(t, err)
	defer s2.Close()

	doc, err := s2.Get(ctx, "cases/1")
	require.NoError(t, err)
	assert.True(t, doc.Exists)
	assert.Equal(t, "active", doc.Fields["status"])
}
