package api

import (
	"context"

	"github.com/yolofarm/farm-whisperer/schema"
	"github.com/yolofarm/farm-whisperer/usecase"
)

type ScheduleUseCase interface {
	List(ctx context.Context, traceID string) ([]usecase.PresentationRecord, error)
	Create(ctx context.Context, traceID string, payload schema.SchedulePayload) (string, error)
	Update(ctx context.Context, traceID string, id string, payload schema.SchedulePayload) (bool, error)
	Delete(ctx context.Context, traceID string, id string) (bool, error)
}

type FeedDataUseCase interface {
	GetFeedData(ctx context.Context, traceID string, feed string, limit int64) ([]usecase.PresentationRecord, error)
}

type ExportUseCase interface {
	Export(args usecase.ExportArgs)
}
