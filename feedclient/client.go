package feedclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/yolofarm/farm-whisperer/schema"
)

// LimitAll requests the full history of a feed.
const LimitAll = "all"

const defaultTimeout = 10 * time.Second

// Config holds the upstream feed provider settings.
type Config struct {
	BaseURL  string
	Username string
	Key      string
	Group    string
	Timeout  time.Duration
}

// FromEnv fills the config from the process environment.
func (c *Config) FromEnv() {
	if v, ok := os.LookupEnv("AIO_BASE_URL"); ok {
		c.BaseURL = v
	}
	if c.BaseURL == "" {
		c.BaseURL = "https://io.adafruit.com"
	}
	if v, ok := os.LookupEnv("AIO_USERNAME"); ok {
		c.Username = v
	}
	if v, ok := os.LookupEnv("AIO_KEY"); ok {
		c.Key = v
	}
	if c.Group == "" {
		c.Group = "yolofarm"
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
}

// FeedUnavailableError reports a transport failure or a non-2xx answer from
// the upstream provider. StatusCode is zero on transport errors.
type FeedUnavailableError struct {
	Feed       string
	StatusCode int
	Err        error
}

func (e *FeedUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("feed %s unavailable: %v", e.Feed, e.Err)
	}
	return fmt.Sprintf("feed %s unavailable: upstream status %d", e.Feed, e.StatusCode)
}

func (e *FeedUnavailableError) Unwrap() error {
	return e.Err
}

// feedDatum is one record of the upstream data endpoint.
type feedDatum struct {
	ID        string `json:"id"`
	Value     string `json:"value"`
	CreatedAt string `json:"created_at"`
}

// Client fetches reading history from the upstream feed provider.
type Client struct {
	httpClient *http.Client
	config     *Config
	logger     *log.Logger
}

func NewClient(config *Config, logger *log.Logger) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		config:     config,
		logger:     logger,
	}
}

// feedKey maps a public feed name to its upstream key, e.g.
// soil_moisture -> yolofarm.farm-soil-moisture.
func (c *Client) feedKey(feed string) string {
	return c.config.Group + ".farm-" + strings.ReplaceAll(feed, "_", "-")
}

// Fetch returns the reading history of a feed, capped to limit records unless
// limit is "all" or empty. Records without a usable timestamp are dropped with
// a log line, an empty result is a valid success.
func (c *Client) Fetch(ctx context.Context, feed string, limit string) ([]schema.Reading, error) {
	url := fmt.Sprintf("%s/api/v2/%s/feeds/%s/data", c.config.BaseURL, c.config.Username, c.feedKey(feed))
	if limit != "" && strings.ToLower(limit) != LimitAll {
		url += "?limit=" + limit
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FeedUnavailableError{Feed: feed, Err: err}
	}
	req.Header.Set("X-AIO-Key", c.config.Key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FeedUnavailableError{Feed: feed, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FeedUnavailableError{Feed: feed, StatusCode: resp.StatusCode}
	}

	var data []feedDatum
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, &FeedUnavailableError{Feed: feed, Err: err}
	}

	readings := make([]schema.Reading, 0, len(data))
	for _, item := range data {
		if item.CreatedAt == "" {
			c.logger.Printf("[%s] dropping record %q without created_at", feed, item.ID)
			continue
		}
		t, err := schema.ParseFeedTime(item.CreatedAt)
		if err != nil {
			c.logger.Printf("[%s] dropping record %q with bad timestamp %q: %v", feed, item.ID, item.CreatedAt, err)
			continue
		}
		readings = append(readings, schema.Reading{Feed: feed, Value: item.Value, Time: t})
	}
	return readings, nil
}
