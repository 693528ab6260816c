package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/yolofarm/farm-whisperer/common"
	"github.com/yolofarm/farm-whisperer/usecase"
)

type (
	// API struct for farm-whisperer
	API struct {
		schedules       ScheduleUseCase
		feedData        FeedDataUseCase
		exporter        ExportUseCase
		databaseAdapter usecase.DatabaseAdapter
		feeds           []string
		logger          *log.Logger
	}
)

const (
	// DataAPIPrefix logging prefix
	DataAPIPrefix = "api/farm "
)

var (
	errorStatusCheck   = common.DetailedError{Status: http.StatusInternalServerError, Code: "data_status_check", Message: "checking of the status endpoint showed an error"}
	errorRunningQuery  = common.DetailedError{Status: http.StatusInternalServerError, Code: "data_store_error", Message: "internal server error"}
	errorLoadingEvents = common.DetailedError{Status: http.StatusInternalServerError, Code: "json_marshal_error", Message: "internal server error"}
	errorInvalidLimit  = common.DetailedError{Status: http.StatusBadRequest, Code: "invalid_limit", Message: "limit must be a positive integer or \"all\""}
	errorInvalidBody   = common.DetailedError{Status: http.StatusBadRequest, Code: "invalid_payload", Message: "request body is not a valid schedule"}
)

func InitAPI(scheduleUC ScheduleUseCase, feedDataUC FeedDataUseCase, exporter ExportUseCase, dbAdapter usecase.DatabaseAdapter, feeds []string, logger *log.Logger) *API {
	return &API{
		schedules:       scheduleUC,
		feedData:        feedDataUC,
		exporter:        exporter,
		databaseAdapter: dbAdapter,
		feeds:           feeds,
		logger:          logger,
	}
}

// SetHandlers set the API routes
func (a *API) SetHandlers(prefix string, rtr *mux.Router) {
	rtr.HandleFunc(prefix+"/schedule", a.middleware(a.getSchedules)).Methods(http.MethodGet)
	rtr.HandleFunc(prefix+"/schedule", a.middleware(a.createSchedule)).Methods(http.MethodPost)
	rtr.HandleFunc(prefix+"/schedule/{scheduleID}", a.middleware(a.updateSchedule, "scheduleID")).Methods(http.MethodPut)
	rtr.HandleFunc(prefix+"/schedule/{scheduleID}", a.middleware(a.deleteSchedule, "scheduleID")).Methods(http.MethodDelete)

	if a.exporter != nil {
		rtr.HandleFunc(prefix+"/export/{feed}", a.middleware(a.exportFeed, "feed")).Methods(http.MethodGet)
	}

	for _, feed := range a.feeds {
		rtr.HandleFunc(prefix+"/"+feed, a.middleware(a.getFeedDataHandler(feed))).Methods(http.MethodGet)
	}

	rtr.HandleFunc(prefix+"/status", a.getStatus).Methods(http.MethodGet)
}

// getStatus reports whether the storage backend answers a ping.
func (a *API) getStatus(res http.ResponseWriter, req *http.Request) {
	start := time.Now()
	var s common.ApiStatus
	if err := a.databaseAdapter.Ping(); err != nil {
		errorLog := errorStatusCheck.SetInternalMessage(err)
		a.logError(&errorLog, start)
		s = common.NewApiStatus(errorLog.Status, err.Error())
	} else {
		s = common.NewApiStatus(http.StatusOK, "OK")
	}
	if jsonDetails, err := json.Marshal(s); err != nil {
		a.jsonError(res, errorLoadingEvents.SetInternalMessage(err), start)
	} else {
		res.Header().Add("content-type", "application/json")
		res.WriteHeader(s.Status.Code)
		res.Write(jsonDetails)
	}
}

// log error detail and write as application/json
func (a *API) jsonError(res http.ResponseWriter, err common.DetailedError, startedAt time.Time) {
	a.logError(&err, startedAt)
	jsonErr, _ := json.Marshal(err)

	res.Header().Add("content-type", "application/json")
	res.WriteHeader(err.Status)
	res.Write(jsonErr)
}

func (a *API) logError(err *common.DetailedError, startedAt time.Time) {
	err.ID = uuid.New().String()
	a.logger.Println(DataAPIPrefix, fmt.Sprintf("[%s][%s] failed after [%.3f]secs with error [%s][%s] ", err.ID, err.Code, time.Since(startedAt).Seconds(), err.Message, err.InternalMessage))
}
