package api

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yolofarm/farm-whisperer/schema"
	"github.com/yolofarm/farm-whisperer/usecase"
)

var apiTestLogger = log.New(os.Stdout, "api-test ", log.LstdFlags|log.Lshortfile)

// 2099-01-01 10:00 at UTC+7 stored canonically in UTC.
const testDatetime = "2099-01-01T03:00:00Z"

const validScheduleBody = `{"day":1,"month":1,"year":2099,"hour":10,"minute":0}`

func newScheduleTestAPI(schedules *usecase.MockScheduleRepository) *API {
	manager := usecase.NewScheduleManager(apiTestLogger, schedules)
	return InitAPI(manager, nil, nil, nil, []string{"temperature"}, apiTestLogger)
}

func doRequest(t *testing.T, handler http.HandlerFunc, method string, target string, body string, vars map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	request := httptest.NewRequest(method, target, reader)
	if vars != nil {
		request = mux.SetURLVars(request, vars)
	}
	response := httptest.NewRecorder()
	handler(response, request)
	return response
}

func TestAPI_CreateSchedule(t *testing.T) {
	schedules := usecase.MockScheduleRepository{}
	schedules.On("FindScheduleByDatetime", mock.Anything, mock.Anything, testDatetime, "").Return(nil, nil)
	schedules.On("InsertSchedule", mock.Anything, mock.Anything, mock.Anything).Return("65f000000000000000000001", nil)

	a := newScheduleTestAPI(&schedules)
	response := doRequest(t, a.middleware(a.createSchedule), http.MethodPost, "/schedule", validScheduleBody, nil)

	assert.Equal(t, http.StatusOK, response.Code)
	var body scheduleMessage
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &body))
	assert.Equal(t, "Schedule created", body.Message)
	assert.Equal(t, "65f000000000000000000001", body.ID)
}

func TestAPI_CreateSchedule_Errors(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		setup        func(*usecase.MockScheduleRepository)
		expectedCode string
	}{
		{
			name:         "not json",
			body:         "{day:",
			setup:        func(m *usecase.MockScheduleRepository) {},
			expectedCode: "invalid_payload",
		},
		{
			name:         "missing minute",
			body:         `{"day":1,"month":1,"year":2099,"hour":10}`,
			setup:        func(m *usecase.MockScheduleRepository) {},
			expectedCode: "invalid_schedule",
		},
		{
			name:         "invalid calendar date",
			body:         `{"day":32,"month":1,"year":2099,"hour":10,"minute":0}`,
			setup:        func(m *usecase.MockScheduleRepository) {},
			expectedCode: "invalid_schedule",
		},
		{
			name:         "past datetime",
			body:         `{"day":1,"month":1,"year":2020,"hour":10,"minute":0}`,
			setup:        func(m *usecase.MockScheduleRepository) {},
			expectedCode: "past_datetime",
		},
		{
			name: "duplicate datetime",
			body: validScheduleBody,
			setup: func(m *usecase.MockScheduleRepository) {
				m.On("FindScheduleByDatetime", mock.Anything, mock.Anything, testDatetime, "").
					Return(&schema.ScheduleDocument{Datetime: testDatetime}, nil)
			},
			expectedCode: "duplicate_schedule",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedules := usecase.MockScheduleRepository{}
			tt.setup(&schedules)

			a := newScheduleTestAPI(&schedules)
			response := doRequest(t, a.middleware(a.createSchedule), http.MethodPost, "/schedule", tt.body, nil)

			assert.Equal(t, http.StatusBadRequest, response.Code)
			assert.Contains(t, response.Body.String(), tt.expectedCode)
			schedules.AssertNotCalled(t, "InsertSchedule", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestAPI_UpdateSchedule(t *testing.T) {
	id := "65f000000000000000000001"
	body := `{"day":1,"month":1,"year":2099,"hour":11,"minute":0}`

	schedules := usecase.MockScheduleRepository{}
	schedules.On("FindScheduleByDatetime", mock.Anything, mock.Anything, "2099-01-01T04:00:00Z", id).Return(nil, nil)
	schedules.On("UpdateSchedule", mock.Anything, mock.Anything, id, mock.Anything).Return(true, nil)

	a := newScheduleTestAPI(&schedules)
	response := doRequest(t, a.middleware(a.updateSchedule, "scheduleID"), http.MethodPut, "/schedule/"+id, body, map[string]string{"scheduleID": id})

	assert.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), "Schedule updated")
}

func TestAPI_UpdateSchedule_NoChange(t *testing.T) {
	id := "65f000000000000000000001"

	schedules := usecase.MockScheduleRepository{}
	schedules.On("FindScheduleByDatetime", mock.Anything, mock.Anything, testDatetime, id).Return(nil, nil)
	schedules.On("UpdateSchedule", mock.Anything, mock.Anything, id, mock.Anything).Return(false, nil)

	a := newScheduleTestAPI(&schedules)
	response := doRequest(t, a.middleware(a.updateSchedule, "scheduleID"), http.MethodPut, "/schedule/"+id, validScheduleBody, map[string]string{"scheduleID": id})

	assert.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), "No changes made")
}

func TestAPI_UpdateSchedule_NotFound(t *testing.T) {
	id := "65f0000000000000000000ff"

	schedules := usecase.MockScheduleRepository{}
	schedules.On("FindScheduleByDatetime", mock.Anything, mock.Anything, testDatetime, id).Return(nil, nil)
	schedules.On("UpdateSchedule", mock.Anything, mock.Anything, id, mock.Anything).Return(false, schema.ErrScheduleNotFound)

	a := newScheduleTestAPI(&schedules)
	response := doRequest(t, a.middleware(a.updateSchedule, "scheduleID"), http.MethodPut, "/schedule/"+id, validScheduleBody, map[string]string{"scheduleID": id})

	assert.Equal(t, http.StatusNotFound, response.Code)
	assert.Contains(t, response.Body.String(), "schedule_not_found")
}

func TestAPI_DeleteSchedule(t *testing.T) {
	id := "65f000000000000000000001"

	tests := []struct {
		name            string
		deleted         bool
		expectedMessage string
	}{
		{"existing entry", true, "Schedule deleted"},
		{"missing entry", false, "Schedule not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedules := usecase.MockScheduleRepository{}
			schedules.On("DeleteSchedule", mock.Anything, mock.Anything, id).Return(tt.deleted, nil)

			a := newScheduleTestAPI(&schedules)
			response := doRequest(t, a.middleware(a.deleteSchedule, "scheduleID"), http.MethodDelete, "/schedule/"+id, "", map[string]string{"scheduleID": id})

			// a missing id is reported in the message, not as an error
			assert.Equal(t, http.StatusOK, response.Code)
			assert.Contains(t, response.Body.String(), tt.expectedMessage)
		})
	}
}

func TestAPI_GetSchedules(t *testing.T) {
	docs := []schema.ScheduleDocument{
		{Day: 1, Month: 1, Year: 2099, Hour: 10, Minute: 0, Datetime: testDatetime},
	}

	schedules := usecase.MockScheduleRepository{}
	schedules.On("ListSchedules", mock.Anything, mock.Anything).Return(docs, nil)

	a := newScheduleTestAPI(&schedules)
	response := doRequest(t, a.middleware(a.getSchedules), http.MethodGet, "/schedule", "", nil)

	assert.Equal(t, http.StatusOK, response.Code)
	var records []usecase.PresentationRecord
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, testDatetime, records[0].Datetime)
	assert.Equal(t, "2099-01-01 10:00:00", records[0].DatetimeLocal)
}
