package cache_test

import (
	"context"
	"errors"
	"testing"

	"github.com/pulsefeed/post-events/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidateDropsEntityAndListingKeys(t *testing.T) {
	c, _ := setUpCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, cache.PostKey("p1"), []byte("post"), cache.PostTTL))
	require.NoError(t, c.Set(ctx, cache.PostKey("p2"), []byte("other"), cache.PostTTL))
	require.NoError(t, c.Set(ctx, cache.ListingKey(1, 10), []byte("page1"), cache.ListingTTL))
	require.NoError(t, c.Set(ctx, cache.ListingKey(2, 20), []byte("page2"), cache.ListingTTL))

	require.NoError(t, cache.NewInvalidator(c).Invalidate(ctx, "p1"))

	_, err := c.Get(ctx, cache.PostKey("p1"))
	assert.True(t, errors.Is(err, cache.Nil), "exact post key should be dropped")

	_, err = c.Get(ctx, cache.ListingKey(1, 10))
	assert.True(t, errors.Is(err, cache.Nil), "every listing page should be dropped")
	_, err = c.Get(ctx, cache.ListingKey(2, 20))
	assert.True(t, errors.Is(err, cache.Nil), "every listing page should be dropped")

	// Other posts stay cached.
	got, err := c.Get(ctx, cache.PostKey("p2"))
	require.NoError(t, err)
	assert.Equal(t, []byte("other"), got)
}

func TestInvalidateWithEmptyCacheIsANoOp(t *testing.T) {
	c, _ := setUpCache(t)

	assert.NoError(t, cache.NewInvalidator(c).Invalidate(context.Background(), "p1"))
}
