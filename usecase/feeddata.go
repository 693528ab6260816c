package usecase

import (
	"context"
	"log"

	"github.com/yolofarm/farm-whisperer/common"
)

// FeedData is the read side of the stored readings, serving the per-feed GET
// routes.
type FeedData struct {
	readings ReadingRepository
	logger   *log.Logger
}

func NewFeedData(logger *log.Logger, readings ReadingRepository) *FeedData {
	return &FeedData{readings: readings, logger: logger}
}

// GetFeedData returns the stored readings of one feed, newest first, capped
// to limit when it is positive.
func (f *FeedData) GetFeedData(ctx context.Context, traceID string, feed string, limit int64) ([]PresentationRecord, error) {
	common.TimeIt(ctx, "getReadings")
	docs, err := f.readings.GetReadings(ctx, traceID, feed, limit)
	common.TimeEnd(ctx, "getReadings")
	if err != nil {
		return nil, err
	}
	records := make([]PresentationRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, FormatReading(doc))
	}
	return records, nil
}
