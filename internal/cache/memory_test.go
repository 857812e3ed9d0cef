package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute, time.Minute)
	defer c.Close()

	_, err := c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)

	value := []byte(`{"totalCount":1}`)
	require.NoError(t, c.Set(ctx, "k", value, time.Minute))

	// callers mutating their slice must not corrupt the entry
	value[0] = 'X'

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"totalCount":1}`, string(got))
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute, time.Minute)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 20*time.Millisecond))
	time.Sleep(40 * time.Millisecond)

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCache_GetOrSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute, time.Minute)

	calls := 0
	fill := func() ([]byte, error) {
		calls++
		return []byte("fresh"), nil
	}

	for i := 0; i < 3; i++ {
		got, err := c.GetOrSet(ctx, "k", time.Minute, fill)
		require.NoError(t, err)
		assert.Equal(t, "fresh", string(got))
	}
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, c.Len())
}

func TestMemoryCache_GetOrSetDoesNotStoreErrors(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute, time.Minute)
	upstream := errors.New("index down")

	_, err := c.GetOrSet(ctx, "k", time.Minute, func() ([]byte, error) { return nil, upstream })
	assert.ErrorIs(t, err, upstream)

	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.NoError(t, c.Ping(ctx))
}
