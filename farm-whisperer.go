// @title Farm-Whisperer API
// @version 1.0.0
// @description Data access API for the YoloFarm greenhouse dashboard
// @BasePath /
// @accept json
// @produce json
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	muxprom "gitlab.com/msvechla/mux-prometheus/pkg/middleware"

	"github.com/yolofarm/farm-whisperer/api"
	"github.com/yolofarm/farm-whisperer/infrastructure"
	"github.com/yolofarm/farm-whisperer/usecase"
)

// defaultFeeds are the greenhouse channels mirrored from the upstream
// provider, overridable with FARM_FEEDS.
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
	logger := log.New(os.Stdout, api.DataAPIPrefix, log.LstdFlags|log.Lshortfile)

	if err := godotenv.Load(); err != nil {
		logger.Print("no .env file loaded, using process environment")
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
	defer store.Close()

	readingRepository := infrastructure.NewReadingMongoRepository(store)
	scheduleRepository := infrastructure.NewScheduleMongoRepository(store)

	feeds := configuredFeeds()
	scheduleManager := usecase.NewScheduleManager(logger, scheduleRepository)
	feedData := usecase.NewFeedData(logger, readingRepository)

	// Export to S3 is optional, the dashboard works without it.
	var exporter api.ExportUseCase
	if bucketSuffix := os.Getenv("EXPORT_BUCKET"); bucketSuffix != "" {
		region := os.Getenv("REGION")
		if region == "" {
			region = "ap-southeast-1"
			logger.Println("Using default aws region: ", region)
		}
		url := os.Getenv("S3_ENDPOINT_URL")
		customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			if url != "" {
				logger.Println("Using custom s3 endpoint: ", url)
				return aws.Endpoint{
					PartitionID:       "aws",
					URL:               url,
					SigningRegion:     region,
					HostnameImmutable: true,
				}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		})
		awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithEndpointResolverWithOptions(customResolver), awsconfig.WithRegion(region))
		if err != nil {
			logger.Fatal(err)
		}
		uploader, err := usecase.NewS3Uploader(s3.NewFromConfig(awsCfg), bucketSuffix)
		if err != nil {
			logger.Fatal(err)
		}
		exportUseCase := usecase.NewExporter(logger, feedData, uploader)
		exporter = exportUseCase
	} else {
		logger.Print("EXPORT_BUCKET not set, export routes disabled")
	}

	/*
	 * Instrumentation setup
	 */
	instrumentation := muxprom.NewCustomInstrumentation(true, "yolofarm", "farmwhisperer", prometheus.DefBuckets, nil, prometheus.DefaultRegisterer)

	rtr := mux.NewRouter()
	rtr.Use(instrumentation.Middleware)
	rtr.Path("/metrics").Handler(promhttp.Handler())

	farmAPI := api.InitAPI(scheduleManager, feedData, exporter, store, feeds, logger)
	farmAPI.SetHandlers("", rtr)

	// ability to return compressed (gzip/deflate) responses if client browser
	// accepts it, full feed histories can get long
	gzipHandler := handlers.CompressHandler(rtr)

	port := os.Getenv("FARM_SERVICE_PORT")
	if port == "" {
		port = "9107"
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: gzipHandler,
	}

	done := make(chan bool)

	// Wait for SIGINT (Ctrl+C) or SIGTERM to stop the service
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigc
		server.Close()
		done <- true
	}()

	logger.Printf("serving on :%s", port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal(err)
	}

	<-done
}
