package infrastructure

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Config holds the mongo connection settings, loaded from the environment.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
	// Indexes to ensure per collection when the client starts.
	Indexes map[string][]mongo.IndexModel
}

// FromEnv fills the config from the process environment.
func (c *Config) FromEnv() {
	if uri, ok := os.LookupEnv("FARM_MONGO_URI"); ok {
		c.URI = uri
	}
	if db, ok := os.LookupEnv("FARM_MONGO_DATABASE"); ok {
		c.Database = db
	}
	if c.Timeout == 0 {
		c.Timeout = 10 * time.Second
	}
}

// farmWhispererIndexes declares the unique indexes backing the dedup and
// duplicate-schedule invariants. Created at Start().
var farmWhispererIndexes = map[string][]mongo.IndexModel{
	readingCollectionName: {
		{
			Keys: bson.D{{Key: "feed", Value: 1}, {Key: "datetime", Value: -1}},
			Options: options.Index().
				SetName(idxFeedDatetime).
				SetUnique(true),
		},
	},
	scheduleCollectionName: {
		{
			Keys: bson.D{{Key: "datetime", Value: 1}},
			Options: options.Index().
				SetName(idxScheduleDatetime).
				SetUnique(true),
		},
	},
}

// StoreClient wraps the mongo client lifecycle, shared by the repositories.
type StoreClient struct {
	client *mongo.Client
	config *Config
	logger *log.Logger
}

func NewStoreClient(config *Config, logger *log.Logger) (*StoreClient, error) {
	if config == nil || config.URI == "" || config.Database == "" {
		return nil, errors.New("store client: missing mongo configuration")
	}
	if config.Indexes == nil {
		config.Indexes = farmWhispererIndexes
	}
	return &StoreClient{config: config, logger: logger}, nil
}

// Start connects, pings and creates the declared indexes. It must complete
// before any repository call.
func (s *StoreClient) Start() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.config.URI))
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return err
	}
	s.client = client

	for collection, models := range s.config.Indexes {
		if _, err := s.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
		s.logger.Printf("ensured %d index(es) on %s", len(models), collection)
	}
	return nil
}

func (s *StoreClient) Collection(name string) *mongo.Collection {
	return s.client.Database(s.config.Database).Collection(name)
}

func (s *StoreClient) Ping() error {
	if s.client == nil {
		return errors.New("store client not started")
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Timeout)
	defer cancel()
	return s.client.Ping(ctx, nil)
}

func (s *StoreClient) Close() {
	if s.client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Timeout)
	defer cancel()
	if err := s.client.Disconnect(ctx); err != nil {
		s.logger.Printf("mongo disconnect: %v", err)
	}
}
