// Package searchindex holds the derived full-text index maintained by the
// search service. Records are keyed by the originating post id; their
// lifecycle is driven entirely by consumed events.
package searchindex

import (
	"context"
	"time"

	"github.com/pulsefeed/post-events/pkg/logging"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/trace"
)

const (
	collectionName    = "search_posts"
	searchResultLimit = 10
)

type Index struct {
	client *mongo.Client
	docs   *mongo.Collection
	logger logging.Logger
	tracer trace.Tracer
}

func MakeIndex(ctx context.Context, uri, database string, logger logging.Logger, tracer trace.Tracer) (Index, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return Index{}, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return Index{}, err
	}

	docs := client.Database(database).Collection(collectionName)

	// Redeclaring an existing index is a no-op.
	_, err = docs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "content", Value: "text"}},
	})
	if err != nil {
		return Index{}, err
	}

	return Index{
		client: client,
		docs:   docs,
		logger: logger,
		tracer: tracer,
	}, nil
}

func (i Index) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	return i.client.Disconnect(ctx)
}
