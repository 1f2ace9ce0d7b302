package postdb

import (
	"context"
	"time"

	"github.com/pulsefeed/post-events/pkg/logging"
	"github.com/pulsefeed/post-events/pkg/storage"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/trace"
)

var _ storage.Storage = (*DB)(nil)

const collectionName = "posts"

// DB is the authoritative post store backed by MongoDB.
type DB struct {
	client *mongo.Client
	posts  *mongo.Collection
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
		posts:  client.Database(database).Collection(collectionName),
		logger: logger,
		tracer: tracer,
	}, nil
}

func (db DB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	return db.client.Disconnect(ctx)
}
