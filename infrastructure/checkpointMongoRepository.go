package infrastructure

import (
	"context"
	"time"

	"github.com/yolofarm/farm-whisperer/schema"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const checkpointCollectionName = "sync_checkpoints"

// checkpointDocument keeps one record per feed, keyed the way the historical
// per-feed checkpoint files were named.
type checkpointDocument struct {
	ID   string `bson:"_id"`
	Time string `bson:"time"`
}

func checkpointKey(feed string) string {
	return "last_time_" + feed
}

// CheckpointMongoRepository persists the latest ingested timestamp per feed.
type CheckpointMongoRepository struct {
	*StoreClient
}

func NewCheckpointMongoRepository(store *StoreClient) *CheckpointMongoRepository {
	return &CheckpointMongoRepository{StoreClient: store}
}

func checkpointCollection(c *CheckpointMongoRepository) *mongo.Collection {
	return c.Collection(checkpointCollectionName)
}

// LoadLastTime returns the checkpoint of a feed, or the epoch on first run.
func (c *CheckpointMongoRepository) LoadLastTime(ctx context.Context, feed string) (time.Time, error) {
	var doc checkpointDocument
	err := checkpointCollection(c).FindOne(ctx, bson.M{"_id": checkpointKey(feed)}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return schema.Epoch(), nil
		}
		return time.Time{}, err
	}
	return schema.ParseFeedTime(doc.Time)
}

// SaveLastTime durably records the newest ingested timestamp of a feed.
func (c *CheckpointMongoRepository) SaveLastTime(ctx context.Context, feed string, t time.Time) error {
	doc := checkpointDocument{ID: checkpointKey(feed), Time: schema.FormatFeedTime(t)}
	opts := options.Replace().SetUpsert(true)
	_, err := checkpointCollection(c).ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	return err
}
