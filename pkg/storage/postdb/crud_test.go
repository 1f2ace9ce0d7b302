package postdb_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pulsefeed/post-events/pkg/env"
	"github.com/pulsefeed/post-events/pkg/gentest"
	"github.com/pulsefeed/post-events/pkg/nulls"
	"github.com/pulsefeed/post-events/pkg/storage"
	"github.com/pulsefeed/post-events/pkg/storage/postdb"
)

func setUpDB(t *testing.T) postdb.DB {
	t.Helper()

	if err := env.Load(); err != nil {
		t.Fatalf("Failed to load env, err: %v", err)
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	db, err := postdb.MakeDB(ctx, uri, "posts_test", nulls.NullLogger{}, nulls.NullTracer())
	if err != nil {
		t.Fatalf("Failed to make DB, err: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func TestCreateGetDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping postdb integration test...")
	}

	db := setUpDB(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	post := gentest.RandomPost(2)

	if err := db.Create(ctx, post); err != nil {
		t.Fatalf("DB.Create() error = %v", err)
	}

	got, err := db.Get(ctx, post.Id)
	if err != nil {
		t.Fatalf("DB.Get() error = %v", err)
	}
	if !cmp.Equal(got.Id, post.Id) || !cmp.Equal(got.Content, post.Content) {
		t.Errorf("DB.Get():\n got = %+v\n want = %+v", got, post)
	}

	deleted, err := db.Delete(ctx, post.Id, post.UserId)
	if err != nil {
		t.Fatalf("DB.Delete() error = %v", err)
	}
	if !cmp.Equal(deleted.MediaIds, post.MediaIds) {
		t.Errorf("DB.Delete() returned mediaIds = %v, want %v", deleted.MediaIds, post.MediaIds)
	}

	if _, err := db.Get(ctx, post.Id); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("DB.Get() after delete error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestDeleteRequiresMatchingOwner(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping postdb integration test...")
	}

	db := setUpDB(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	post := gentest.RandomPost(0)
	if err := db.Create(ctx, post); err != nil {
		t.Fatalf("DB.Create() error = %v", err)
	}
	defer db.Delete(ctx, post.Id, post.UserId)

	if _, err := db.Delete(ctx, post.Id, "someone-else"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("DB.Delete() with wrong owner error = %v, want %v", err, storage.ErrNotFound)
	}
}
