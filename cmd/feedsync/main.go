// Command feedsync performs one incremental ingestion pass over every
// configured feed, then exits. It is meant to be run by cron or a scheduled
// task, the API process never owns the polling lifecycle.
package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/yolofarm/farm-whisperer/feedclient"
	"github.com/yolofarm/farm-whisperer/infrastructure"
	"github.com/yolofarm/farm-whisperer/usecase"
)

var defaultFeeds = []string{"temperature", "humidity", "soil_moisture", "light_intensity", "status"}

func configuredFeeds() []string {
	if raw := os.Getenv("FARM_FEEDS"); raw != "" {
		feeds := strings.Split(raw, ",")
		for i := range feeds {
			feeds[i] = strings.TrimSpace(feeds[i])
		}
		return feeds
	}
	return defaultFeeds
}

func main() {
	logger := log.New(os.Stdout, "feedsync ", log.LstdFlags|log.Lshortfile)

	if err := godotenv.Load(); err != nil {
		logger.Print("no .env file loaded, using process environment")
	}

	var feedConfig feedclient.Config
	feedConfig.FromEnv()
	if feedConfig.Username == "" || feedConfig.Key == "" {
		logger.Fatal("Env vars AIO_USERNAME and AIO_KEY are required")
	}

	var mongoConfig infrastructure.Config
	mongoConfig.FromEnv()

	store, err := infrastructure.NewStoreClient(&mongoConfig, logger)
	if err != nil {
		logger.Fatal(err)
	}
	if err := store.Start(); err != nil {
		logger.Fatal("Problem connecting to storage: ", err)
	}

	feeds := feedclient.NewClient(&feedConfig, logger)
	readingRepository := infrastructure.NewReadingMongoRepository(store)
	checkpointRepository := infrastructure.NewCheckpointMongoRepository(store)
	syncer := usecase.NewFeedSyncer(logger, feeds, readingRepository, checkpointRepository)

	traceID := uuid.New().String()
	total, err := syncer.SyncAll(context.Background(), traceID, configuredFeeds())
	store.Close()

	logger.Printf("{%s} sync pass done, %d new reading(s)", traceID, total)
	if err != nil {
		// Failed feeds already logged individually, report the pass as
		// degraded to the scheduler.
		os.Exit(1)
	}
}
