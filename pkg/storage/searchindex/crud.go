package searchindex

import (
	"context"

	"github.com/pulsefeed/post-events/pkg/entity"
	"github.com/pulsefeed/post-events/pkg/tracing"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Upsert writes the document keyed by its postId. Applying the same
// document twice leaves a single index entry.
func (i Index) Upsert(ctx context.Context, doc entity.SearchPost) (err error) {
	ctx, span := i.tracer.Start(ctx, "searchindex.Upsert")
	defer span.End()
	defer func() { tracing.SetSpanErr(span, err) }()

	_, err = i.docs.UpdateOne(ctx,
		bson.M{"postId": doc.PostId},
		bson.M{"$set": doc},
		options.Update().SetUpsert(true),
	)
	return err
}

// Delete removes the document for the given post. Deleting an absent
// document is a no-op, not an error.
func (i Index) Delete(ctx context.Context, postId, userId string) (err error) {
	ctx, span := i.tracer.Start(ctx, "searchindex.Delete")
	defer span.End()
	defer func() { tracing.SetSpanErr(span, err) }()

	_, err = i.docs.DeleteOne(ctx, bson.M{"postId": postId, "userId": userId})
	return err
}

// Search returns the top documents matching query by text score.
func (i Index) Search(ctx context.Context, query string) (_ []entity.SearchPost, err error) {
	ctx, span := i.tracer.Start(ctx, "searchindex.Search")
	defer span.End()
	defer func() { tracing.SetSpanErr(span, err) }()

	opts := options.Find().
		SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetSort(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetLimit(searchResultLimit)

	cursor, err := i.docs.Find(ctx, bson.M{"$text": bson.M{"$search": query}}, opts)
	if err != nil {
		return nil, err
	}

	results := make([]entity.SearchPost, 0, searchResultLimit)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	return results, nil
}
