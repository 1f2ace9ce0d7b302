package mediadb_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pulsefeed/post-events/pkg/entity"
	"github.com/pulsefeed/post-events/pkg/env"
	"github.com/pulsefeed/post-events/pkg/nulls"
	"github.com/pulsefeed/post-events/pkg/storage/mediadb"
)

func setUpDB(t *testing.T) mediadb.DB {
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

	db, err := mediadb.MakeDB(ctx, uri, "media_test", nulls.NullLogger{}, nulls.NullTracer())
	if err != nil {
		t.Fatalf("Failed to make DB, err: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func randomMedia() entity.Media {
	id := uuid.NewString()
	return entity.Media{
		Id:       id,
		UserId:   uuid.NewString(),
		PublicId: "public-" + id,
		Url:      "https://storage.example/" + id,
	}
}

func TestCreateGetMultipleDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping mediadb integration test...")
	}

	db := setUpDB(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	m1, m2 := randomMedia(), randomMedia()
	for _, m := range []entity.Media{m1, m2} {
		if err := db.Create(ctx, m); err != nil {
			t.Fatalf("DB.Create() error = %v", err)
		}
	}
	t.Cleanup(func() {
		db.Delete(ctx, m1.Id)
		db.Delete(ctx, m2.Id)
	})

	// Unknown ids are simply absent from the result.
	got, err := db.GetMultiple(ctx, []string{m1.Id, m2.Id, "never-seen"})
	if err != nil {
		t.Fatalf("DB.GetMultiple() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("DB.GetMultiple() returned %d records, want 2", len(got))
	}

	if err := db.Delete(ctx, m1.Id); err != nil {
		t.Fatalf("DB.Delete() error = %v", err)
	}

	got, err = db.GetMultiple(ctx, []string{m1.Id, m2.Id})
	if err != nil {
		t.Fatalf("DB.GetMultiple() error = %v", err)
	}
	if len(got) != 1 || got[0].Id != m2.Id {
		t.Errorf("DB.GetMultiple() after delete = %+v, want only %s", got, m2.Id)
	}
}

func TestDeleteAbsentRecordIsANoOp(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping mediadb integration test...")
	}

	db := setUpDB(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := db.Delete(ctx, uuid.NewString()); err != nil {
		t.Errorf("DB.Delete() of an absent record error = %v, want nil", err)
	}
}
