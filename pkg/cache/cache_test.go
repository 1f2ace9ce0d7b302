package cache_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/pulsefeed/post-events/pkg/cache"
	"github.com/pulsefeed/post-events/pkg/nulls"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setUpCache(t *testing.T) (cache.Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	host, port, ok := strings.Cut(mr.Addr(), ":")
	require.True(t, ok)

	c, err := cache.MakeCache(host, port, "", nulls.NullLogger{}, nulls.NullTracer())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	return c, mr
}

func TestSetGet(t *testing.T) {
	c, _ := setUpCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "post:p1", []byte(`{"id":"p1"}`), cache.PostTTL))

	got, err := c.Get(ctx, "post:p1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"id":"p1"}`), got)
}

func TestGetReturnsNilOnAbsentKey(t *testing.T) {
	c, _ := setUpCache(t)

	_, err := c.Get(context.Background(), "post:missing")
	assert.True(t, errors.Is(err, cache.Nil))
}

func TestEntriesExpire(t *testing.T) {
	c, mr := setUpCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "posts:1:10", []byte("page"), cache.ListingTTL))

	mr.FastForward(cache.ListingTTL + time.Second)

	_, err := c.Get(ctx, "posts:1:10")
	assert.True(t, errors.Is(err, cache.Nil))
}

func TestDeleteMatching(t *testing.T) {
	c, _ := setUpCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "posts:1:10", []byte("a"), cache.ListingTTL))
	require.NoError(t, c.Set(ctx, "posts:2:10", []byte("b"), cache.ListingTTL))
	require.NoError(t, c.Set(ctx, "post:p1", []byte("c"), cache.PostTTL))

	require.NoError(t, c.DeleteMatching(ctx, cache.ListingPattern()))

	_, err := c.Get(ctx, "posts:1:10")
	assert.True(t, errors.Is(err, cache.Nil))
	_, err = c.Get(ctx, "posts:2:10")
	assert.True(t, errors.Is(err, cache.Nil))

	// Keys outside the family survive.
	got, err := c.Get(ctx, "post:p1")
	require.NoError(t, err)
	assert.Equal(t, []byte("c"), got)
}

func TestDeleteMatchingManyKeys(t *testing.T) {
	c, mr := setUpCache(t)
	ctx := context.Background()

	// More keys than one SCAN batch.
	for i := 0; i < 250; i++ {
		require.NoError(t, c.Set(ctx, cache.ListingKey(i, 10), []byte("page"), cache.ListingTTL))
	}

	require.NoError(t, c.DeleteMatching(ctx, cache.ListingPattern()))
	assert.Empty(t, mr.Keys())
}

func TestKeyFormats(t *testing.T) {
	assert.Equal(t, "post:p1", cache.PostKey("p1"))
	assert.Equal(t, "posts:2:10", cache.ListingKey(2, 10))
	assert.Equal(t, "posts:*", cache.ListingPattern())
}
