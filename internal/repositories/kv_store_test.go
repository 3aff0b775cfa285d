package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	value := []byte(`[1,2]`)
	require.NoError(t, s.Set(ctx, "k", value))
	value[0] = 'x' // caller mutation must not leak into the store

	got, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[1,2]`, string(got))
}

func TestFileStoreRoundTripAndAtomicReplace(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	_, ok, err := s.Get(ctx, OrdersKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, OrdersKey, []byte(`["a"]`)))
	require.NoError(t, s.Set(ctx, OrdersKey, []byte(`["b"]`)))

	got, ok, err := s.Get(ctx, OrdersKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["b"]`, string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	assert.Equal(t, OrdersKey+".json", entries[0].Name())
	assert.NoError(t, s.Ping(ctx))
}

func TestFileStoreSanitizesKeys(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set(context.Background(), "../escape/key", []byte(`{}`)))
	_, err = os.Stat(filepath.Join(dir, ".._escape_key.json"))
	assert.NoError(t, err)
}
