package jsonstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/todolist/internal/store"
	"github.com/Makepad-fr/todolist/internal/tasklist"
)

func TestStore_GetMissing(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "tasks")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_PutGet(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	s, err := New(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "tasks", []byte(`[1]`)))
	require.NoError(t, s.Put(ctx, "tasks", []byte(`[1,2]`)))

	b, err := s.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, string(b))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must be cleaned up")
	assert.Equal(t, "tasks.json", entries[0].Name())
}

func TestStore_WithAdapter(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()
	a := store.NewAdapter(s, "tasks", nil)

	c := tasklist.Collection{{ID: "b", Title: "b"}, {ID: "a", Title: "a", Completed: true}}
	require.True(t, a.Save(ctx, c))
	assert.Equal(t, c, a.Load(ctx, nil))
}
