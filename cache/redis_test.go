package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CreativeUnicorns/receiptprefs"
)

// fakeRedisClient is an in-memory stand-in for *redis.Client.
type fakeRedisClient struct {
	data   map[string]string
	ttls   map[string]time.Duration
	err    error
	closed bool
}

func newFakeRedisClient() *fakeRedisClient {
	return &fakeRedisClient{data: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (f *fakeRedisClient) Get(_ context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	val, exists := f.data[key]
	if !exists {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(val, nil)
}

func (f *fakeRedisClient) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.data[key] = string(value.([]byte))
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedisClient) Del(_ context.Context, keys ...string) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	var n int64
	for _, key := range keys {
		if _, exists := f.data[key]; exists {
			delete(f.data, key)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedisClient) Close() error {
	f.closed = true
	return nil
}

func TestRedisCache_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedisClient()
	c := &RedisCache{client: client}

	value := []byte(`{"key":"isocurr","value":"EUR"}`)
	require.NoError(t, c.Set(ctx, "pref:u:isocurr", value, time.Hour))
	assert.Equal(t, time.Hour, client.ttls["pref:u:isocurr"])

	got, err := c.Get(ctx, "pref:u:isocurr")
	require.NoError(t, err)
	assert.Equal(t, value, got, "bytes are stored without re-encoding")

	require.NoError(t, c.Delete(ctx, "pref:u:isocurr"))
	_, err = c.Get(ctx, "pref:u:isocurr")
	assert.ErrorIs(t, err, receiptprefs.ErrNotFound)
}

func TestRedisCache_Errors(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedisClient()
	client.err = errors.New("connection refused")
	c := &RedisCache{client: client}

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, receiptprefs.ErrCacheUnavailable)
	assert.ErrorIs(t, c.Set(ctx, "k", []byte("v"), 0), receiptprefs.ErrCacheUnavailable)
	assert.ErrorIs(t, c.Delete(ctx, "k"), receiptprefs.ErrCacheUnavailable)
}

func TestRedisCache_Close(t *testing.T) {
	client := newFakeRedisClient()
	c := &RedisCache{client: client}
	require.NoError(t, c.Close())
	assert.True(t, client.closed)
}
