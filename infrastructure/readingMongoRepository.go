package infrastructure

import (
	"context"

	"github.com/yolofarm/farm-whisperer/schema"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	readingCollectionName = "sensor_data"
	idxFeedDatetime       = "UniqueFeedDatetime"
)

// ReadingMongoRepository persists sensor readings. The collection is append
// only from the service's point of view.
type ReadingMongoRepository struct {
	*StoreClient
}

// NewReadingMongoRepository creates a new reading repository for mongo
func NewReadingMongoRepository(store *StoreClient) *ReadingMongoRepository {
	return &ReadingMongoRepository{StoreClient: store}
}

func readingCollection(r *ReadingMongoRepository) *mongo.Collection {
	return r.Collection(readingCollectionName)
}

// buildReadingModels maps reading documents to upsert models keyed by
// (feed, datetime). Upserting keeps re-delivery after a partial failure from
// producing duplicates.
func buildReadingModels(docs []schema.ReadingDocument) []mongo.WriteModel {
	models := make([]mongo.WriteModel, 0, len(docs))
	for _, doc := range docs {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"feed": doc.Feed, "datetime": doc.Datetime}).
			SetUpdate(bson.M{"$setOnInsert": doc}).
			SetUpsert(true))
	}
	return models
}

// UpsertReadings writes a batch of readings, at most once per (feed, datetime).
func (r *ReadingMongoRepository) UpsertReadings(ctx context.Context, traceID string, docs []schema.ReadingDocument) error {
	if len(docs) == 0 {
		return nil
	}
	opts := options.BulkWrite().SetOrdered(false).SetComment(traceID)
	_, err := readingCollection(r).BulkWrite(ctx, buildReadingModels(docs), opts)
	return err
}

// GetReadings returns the stored readings of one feed, newest first. A limit
// of zero or less returns the full history.
func (r *ReadingMongoRepository) GetReadings(ctx context.Context, traceID string, feed string, limit int64) ([]schema.ReadingDocument, error) {
	opts := options.Find()
	opts.SetSort(bson.D{primitive.E{Key: "datetime", Value: -1}})
	opts.SetComment(traceID)
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := readingCollection(r).Find(ctx, bson.M{"feed": feed}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := []schema.ReadingDocument{}
	err = cursor.All(ctx, &docs)
	return docs, err
}
