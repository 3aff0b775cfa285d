package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStoreRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	s, err := NewRedisStore(Options{Addr: mr.Addr(), Prefix: "erp:"})
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	_, ok, err := s.Get(ctx, "erp_orders")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "erp_orders", []byte(`[{"id":"o1"}]`)))

	got, ok, err := s.Get(ctx, "erp_orders")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"o1"}]`, string(got))

	raw, err := mr.Get("erp:erp_orders")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"o1"}]`, raw)
	assert.NoError(t, s.Ping(ctx))
}

func TestNewRedisStoreFailsWhenUnreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, err = NewRedisStore(Options{Addr: addr})
	assert.Error(t, err)
}
