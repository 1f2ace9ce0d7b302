package storage

import (
	"context"
	"errors"
	"io"

	"github.com/pulsefeed/post-events/pkg/entity"
)

// ErrNotFound is returned when no post matches the given id (and owner).
var ErrNotFound = errors.New("post not found")

// Storage is the authoritative post store. It is exclusively owned by the
// posts service; derived stores are kept in sync through published events.
type Storage interface {
	Getter
	Writer
	io.Closer
}

type Getter interface {
	Get(ctx context.Context, id string) (entity.Post, error)
	// GetMultiple returns one page of posts, newest first. Pages start at 1.
	GetMultiple(ctx context.Context, page, limit int) ([]entity.Post, error)
	Count(ctx context.Context) (int64, error)
}

type Writer interface {
	Create(ctx context.Context, post entity.Post) error
	// Delete removes the post owned by userId and returns the removed
	// record so the caller can publish its media references.
	Delete(ctx context.Context, id, userId string) (entity.Post, error)
}
