package postdb

import (
	"context"
	"errors"

	"github.com/pulsefeed/post-events/pkg/entity"
	"github.com/pulsefeed/post-events/pkg/storage"
	"github.com/pulsefeed/post-events/pkg/tracing"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db DB) Create(ctx context.Context, post entity.Post) (err error) {
	ctx, span := db.tracer.Start(ctx, "postdb.Create")
	defer span.End()
	defer func() { tracing.SetSpanErr(span, err) }()

	_, err = db.posts.InsertOne(ctx, post)
	return err
}

func (db DB) Get(ctx context.Context, id string) (_ entity.Post, err error) {
	ctx, span := db.tracer.Start(ctx, "postdb.Get")
	defer span.End()
	defer func() { tracing.SetSpanErr(span, err) }()

	var post entity.Post
	err = db.posts.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entity.Post{}, storage.ErrNotFound
	}
	if err != nil {
		return entity.Post{}, err
	}

	return post, nil
}

func (db DB) GetMultiple(ctx context.Context, page, limit int) (_ []entity.Post, err error) {
	ctx, span := db.tracer.Start(ctx, "postdb.GetMultiple")
	defer span.End()
	defer func() { tracing.SetSpanErr(span, err) }()

	if page < 1 {
		page = 1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := db.posts.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	posts := make([]entity.Post, 0, limit)
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}

	return posts, nil
}

func (db DB) Count(ctx context.Context) (_ int64, err error) {
	ctx, span := db.tracer.Start(ctx, "postdb.Count")
	defer span.End()
	defer func() { tracing.SetSpanErr(span, err) }()

	return db.posts.CountDocuments(ctx, bson.M{})
}

func (db DB) Delete(ctx context.Context, id, userId string) (_ entity.Post, err error) {
	ctx, span := db.tracer.Start(ctx, "postdb.Delete")
	defer span.End()
	defer func() { tracing.SetSpanErr(span, err) }()

	var post entity.Post
	err = db.posts.FindOneAndDelete(ctx, bson.M{"_id": id, "userId": userId}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entity.Post{}, storage.ErrNotFound
	}
	if err != nil {
		return entity.Post{}, err
	}

	return post, nil
}
