package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/CreativeUnicorns/receiptprefs"
)

func TestMemoryCache_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	defer c.Close()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	got[0] = 'x'
	again, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), again, "Get should return a copy")

	_, err = c.Get(ctx, "missing")
	assert.ErrorIs(t, err, receiptprefs.ErrNotFound)

	require.NoError(t, c.Delete(ctx, "k"))
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, receiptprefs.ErrNotFound)

	assert.NoError(t, c.Delete(ctx, "k"), "deleting a missing key is not an error")
}

func TestMemoryCache_Expiration(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	defer c.Close()

	require.NoError(t, c.Set(ctx, "short", []byte("1"), 10*time.Millisecond))
	require.NoError(t, c.Set(ctx, "forever", []byte("2"), 0))

	time.Sleep(30 * time.Millisecond)

	_, err := c.Get(ctx, "short")
	assert.ErrorIs(t, err, receiptprefs.ErrNotFound, "expired entries read as misses")

	got, err := c.Get(ctx, "forever")
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), got)
}

func TestMemoryCache_GarbageCollection(t *testing.T) {
	ctx := context.Background()
	c := newMemoryCache(5 * time.Millisecond)
	defer c.Close()

	require.NoError(t, c.Set(ctx, "short", []byte("1"), time.Millisecond))
	require.NoError(t, c.Set(ctx, "forever", []byte("2"), 0))

	assert.Eventually(t, func() bool { return c.Len() == 1 }, time.Second, 5*time.Millisecond)
}

func TestMemoryCache_CloseStopsCollector(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := NewMemoryCache()
	require.NoError(t, c.Set(context.Background(), "k", []byte("v"), 0))
	require.NoError(t, c.Close())
	require.NoError(t, c.Close(), "Close should be idempotent")
	assert.Equal(t, 0, c.Len())
}
