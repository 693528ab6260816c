package usecase

import (
	"bytes"
	"context"
	"time"

	"github.com/yolofarm/farm-whisperer/schema"
)

type ReadingRepository interface {
	UpsertReadings(ctx context.Context, traceID string, docs []schema.ReadingDocument) error
	GetReadings(ctx context.Context, traceID string, feed string, limit int64) ([]schema.ReadingDocument, error)
}

type CheckpointRepository interface {
	LoadLastTime(ctx context.Context, feed string) (time.Time, error)
	SaveLastTime(ctx context.Context, feed string, t time.Time) error
}

type ScheduleRepository interface {
	ListSchedules(ctx context.Context, traceID string) ([]schema.ScheduleDocument, error)
	FindScheduleByDatetime(ctx context.Context, traceID string, datetime string, excludeID string) (*schema.ScheduleDocument, error)
	InsertSchedule(ctx context.Context, traceID string, doc schema.ScheduleDocument) (string, error)
	UpdateSchedule(ctx context.Context, traceID string, id string, doc schema.ScheduleDocument) (bool, error)
	DeleteSchedule(ctx context.Context, traceID string, id string) (bool, error)
}

type FeedClient interface {
	Fetch(ctx context.Context, feed string, limit string) ([]schema.Reading, error)
}

type Uploader interface {
	Upload(ctx context.Context, filename string, buffer *bytes.Buffer) error
}

type DatabaseAdapter interface {
	Ping() error
}
