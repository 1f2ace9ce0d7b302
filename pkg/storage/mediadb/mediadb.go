// Package mediadb holds the media records owned by the media service.
// Records reference objects in external storage; their removal is driven by
// consumed post.deleted events.
package mediadb

import (
	"context"
	"time"

	"github.com/pulsefeed/post-events/pkg/entity"
	"github.com/pulsefeed/post-events/pkg/logging"
	"github.com/pulsefeed/post-events/pkg/tracing"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/trace"
)

const collectionName = "media"

type DB struct {
	client *mongo.Client
	media  *mongo.Collection
	logger logging.Logger
	tracer trace.Tracer
}

func MakeDB(ctx context.Context, uri, database string, logger logging.Logger, tracer trace.Tracer) (DB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return DB{}, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return DB{}, err
	}

	return DB{
		client: client,
		media:  client.Database(database).Collection(collectionName),
		logger: logger,
		tracer: tracer,
	}, nil
}

func (db DB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	return db.client.Disconnect(ctx)
}

func (db DB) Create(ctx context.Context, media entity.Media) (err error) {
	ctx, span := db.tracer.Start(ctx, "mediadb.Create")
	defer span.End()
	defer func() { tracing.SetSpanErr(span, err) }()

	_, err = db.media.InsertOne(ctx, media)
	return err
}

// GetMultiple returns the records matching ids. Unknown ids are simply
// absent from the result.
func (db DB) GetMultiple(ctx context.Context, ids []string) (_ []entity.Media, err error) {
	ctx, span := db.tracer.Start(ctx, "mediadb.GetMultiple")
	defer span.End()
	defer func() { tracing.SetSpanErr(span, err) }()

	cursor, err := db.media.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}

	media := make([]entity.Media, 0, len(ids))
	if err := cursor.All(ctx, &media); err != nil {
		return nil, err
	}

	return media, nil
}

// Delete removes a single record. Deleting an absent record is a no-op.
func (db DB) Delete(ctx context.Context, id string) (err error) {
	ctx, span := db.tracer.Start(ctx, "mediadb.Delete")
	defer span.End()
	defer func() { tracing.SetSpanErr(span, err) }()

	_, err = db.media.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
