package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), time.Minute))

	got, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)
}

func TestMemoryCacheMiss(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()

	_, err := c.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, err := c.Get(ctx, "key")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheGetReturnsCopy(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), time.Minute))

	first, err := c.Get(ctx, "key")
	require.NoError(t, err)
	first[0] = 'X'

	second, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), second)
}

func TestMemoryCacheGetOrSet(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	computes := 0
	fill := func() ([]byte, error) {
		computes++
		return []byte("computed"), nil
	}

	got, err := c.GetOrSet(ctx, "key", time.Minute, fill)
	require.NoError(t, err)
	assert.Equal(t, []byte("computed"), got)

	// second call hits the cache, the fill function stays at one call
	got, err = c.GetOrSet(ctx, "key", time.Minute, fill)
	require.NoError(t, err)
	assert.Equal(t, []byte("computed"), got)
	assert.Equal(t, 1, computes)
}

func TestMemoryCacheGetOrSetPropagatesFillError(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()

	fillErr := errors.New("upstream down")
	_, err := c.GetOrSet(context.Background(), "key", time.Minute, func() ([]byte, error) {
		return nil, fillErr
	})
	assert.ErrorIs(t, err, fillErr)

	// a failed fill caches nothing
	_, err = c.Get(context.Background(), "key")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
