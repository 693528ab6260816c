package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yolofarm/farm-whisperer/schema"
	"github.com/yolofarm/farm-whisperer/usecase"
)

func newFeedDataTestAPI(readings *usecase.MockReadingRepository) *API {
	feedData := usecase.NewFeedData(apiTestLogger, readings)
	return InitAPI(nil, feedData, nil, nil, []string{"temperature", "humidity"}, apiTestLogger)
}

func TestParseLimit(t *testing.T) {
	tests := []struct {
		raw      string
		expected int64
		ok       bool
	}{
		{"", 0, true},
		{"all", 0, true},
		{"ALL", 0, true},
		{"5", 5, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"bogus", 0, false},
		{"1.5", 0, false},
	}
	for _, tt := range tests {
		t.Run("limit "+tt.raw, func(t *testing.T) {
			limit, ok := parseLimit(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, limit)
		})
	}
}

func TestAPI_GetFeedData(t *testing.T) {
	docs := []schema.ReadingDocument{
		{Feed: "temperature", Value: "21.3", Day: 1, Month: 1, Year: 2025, Hour: 8, Datetime: "2025-01-01T01:00:00Z"},
		{Feed: "temperature", Value: "20.1", Day: 1, Month: 1, Year: 2025, Hour: 7, Datetime: "2025-01-01T00:00:00Z"},
	}

	readings := usecase.MockReadingRepository{}
	readings.On("GetReadings", mock.Anything, mock.Anything, "temperature", int64(2)).Return(docs, nil)

	a := newFeedDataTestAPI(&readings)
	response := doRequest(t, a.middleware(a.getFeedDataHandler("temperature")), http.MethodGet, "/temperature?limit=2", "", nil)

	assert.Equal(t, http.StatusOK, response.Code)
	var records []usecase.PresentationRecord
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "21.3", records[0].Value)
	assert.Equal(t, "2025-01-01 08:00:00", records[0].DatetimeLocal)
}

func TestAPI_GetFeedData_InvalidLimit(t *testing.T) {
	readings := usecase.MockReadingRepository{}

	a := newFeedDataTestAPI(&readings)
	response := doRequest(t, a.middleware(a.getFeedDataHandler("temperature")), http.MethodGet, "/temperature?limit=bogus", "", nil)

	assert.Equal(t, http.StatusBadRequest, response.Code)
	assert.Contains(t, response.Body.String(), "invalid_limit")
	readings.AssertNotCalled(t, "GetReadings", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAPI_ExportFeed_UnknownFeed(t *testing.T) {
	readings := usecase.MockReadingRepository{}
	feedData := usecase.NewFeedData(apiTestLogger, &readings)
	exporter := usecase.NewExporter(apiTestLogger, feedData, nil)

	a := InitAPI(nil, feedData, exporter, nil, []string{"temperature"}, apiTestLogger)
	response := doRequest(t, a.middleware(a.exportFeed, "feed"), http.MethodGet, "/export/co2", "", map[string]string{"feed": "co2"})

	assert.Equal(t, http.StatusNotFound, response.Code)
	assert.Contains(t, response.Body.String(), "unknown_feed")
}
