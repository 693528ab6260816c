package usecase

import (
	"bytes"
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/yolofarm/farm-whisperer/schema"
)

// MockReadingRepository use for unit tests
type MockReadingRepository struct {
	mock.Mock
}

func (m *MockReadingRepository) UpsertReadings(ctx context.Context, traceID string, docs []schema.ReadingDocument) error {
	args := m.Called(ctx, traceID, docs)
	return args.Error(0)
}

func (m *MockReadingRepository) GetReadings(ctx context.Context, traceID string, feed string, limit int64) ([]schema.ReadingDocument, error) {
	args := m.Called(ctx, traceID, feed, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schema.ReadingDocument), args.Error(1)
}

// MockCheckpointRepository use for unit tests
type MockCheckpointRepository struct {
	mock.Mock
}

func (m *MockCheckpointRepository) LoadLastTime(ctx context.Context, feed string) (time.Time, error) {
	args := m.Called(ctx, feed)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockCheckpointRepository) SaveLastTime(ctx context.Context, feed string, t time.Time) error {
	args := m.Called(ctx, feed, t)
	return args.Error(0)
}

// MockScheduleRepository use for unit tests
type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) ListSchedules(ctx context.Context, traceID string) ([]schema.ScheduleDocument, error) {
	args := m.Called(ctx, traceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schema.ScheduleDocument), args.Error(1)
}

func (m *MockScheduleRepository) FindScheduleByDatetime(ctx context.Context, traceID string, datetime string, excludeID string) (*schema.ScheduleDocument, error) {
	args := m.Called(ctx, traceID, datetime, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schema.ScheduleDocument), args.Error(1)
}

func (m *MockScheduleRepository) InsertSchedule(ctx context.Context, traceID string, doc schema.ScheduleDocument) (string, error) {
	args := m.Called(ctx, traceID, doc)
	return args.String(0), args.Error(1)
}

func (m *MockScheduleRepository) UpdateSchedule(ctx context.Context, traceID string, id string, doc schema.ScheduleDocument) (bool, error) {
	args := m.Called(ctx, traceID, id, doc)
	return args.Bool(0), args.Error(1)
}

func (m *MockScheduleRepository) DeleteSchedule(ctx context.Context, traceID string, id string) (bool, error) {
	args := m.Called(ctx, traceID, id)
	return args.Bool(0), args.Error(1)
}

// MockFeedClient use for unit tests
type MockFeedClient struct {
	mock.Mock
}

func (m *MockFeedClient) Fetch(ctx context.Context, feed string, limit string) ([]schema.Reading, error) {
	args := m.Called(ctx, feed, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schema.Reading), args.Error(1)
}

// MockUploader use for unit tests
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, filename string, buffer *bytes.Buffer) error {
	args := m.Called(ctx, filename, buffer)
	return args.Error(0)
}
