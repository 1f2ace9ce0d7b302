package cache

import (
	"fmt"
	"time"
)

const (
	postKeyPrefix    = "post"
	listingKeyPrefix = "posts"
)

const (
	// PostTTL applies to single-post reads.
	PostTTL = time.Hour
	// ListingTTL applies to paginated listing reads. Kept short so the
	// coarse listing invalidation stays cheap to get wrong.
	ListingTTL = time.Minute * 5
)

// PostKey returns the cache key of a single post read.
func PostKey(postId string) string {
	return fmt.Sprintf("%s:%s", postKeyPrefix, postId)
}

// ListingKey returns the cache key of one page of the post listing.
func ListingKey(page, limit int) string {
	return fmt.Sprintf("%s:%d:%d", listingKeyPrefix, page, limit)
}

// ListingPattern matches every cached listing page.
func ListingPattern() string {
	return listingKeyPrefix + ":*"
}
