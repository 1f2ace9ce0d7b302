package cache

import (
	"context"
	"fmt"
)

// Invalidator maps a post write to the set of cache keys that must be
// dropped: the post's exact key and every resident listing page. Dropping
// all listing pages instead of computing the affected ones trades hit rate
// for correctness; listing TTL is short and writes are rare next to reads.
type Invalidator struct {
	cache Cache
}

func NewInvalidator(cache Cache) Invalidator {
	return Invalidator{cache: cache}
}

// Invalidate is called by the write path before the request returns, on
// every create and delete of a post.
func (i Invalidator) Invalidate(ctx context.Context, postId string) error {
	if err := i.cache.Delete(ctx, PostKey(postId)); err != nil {
		return fmt.Errorf("failed to drop post key: %w", err)
	}

	if err := i.cache.DeleteMatching(ctx, ListingPattern()); err != nil {
		return fmt.Errorf("failed to drop listing keys: %w", err)
	}

	return nil
}
