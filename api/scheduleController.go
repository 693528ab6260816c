package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yolofarm/farm-whisperer/common"
	"github.com/yolofarm/farm-whisperer/schema"
	"github.com/yolofarm/farm-whisperer/usecase"
)

type scheduleMessage struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// scheduleError translates the schedule use case errors into the client
// facing error shape.
func scheduleError(err error) *common.DetailedError {
	var validationErr *usecase.ValidationError
	var pastErr *usecase.PastDatetimeError
	var duplicateErr *usecase.DuplicateScheduleError
	var notFoundErr *usecase.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		return &common.DetailedError{Status: http.StatusBadRequest, Code: "invalid_schedule", Message: validationErr.Error()}
	case errors.As(err, &pastErr):
		return &common.DetailedError{Status: http.StatusBadRequest, Code: "past_datetime", Message: "Invalid or past datetime"}
	case errors.As(err, &duplicateErr):
		return &common.DetailedError{Status: http.StatusBadRequest, Code: "duplicate_schedule", Message: "Schedule at this datetime already exists"}
	case errors.As(err, &notFoundErr):
		return &common.DetailedError{Status: http.StatusNotFound, Code: "schedule_not_found", Message: "Schedule not found"}
	default:
		return &common.DetailedError{
			Status:          errorRunningQuery.Status,
			Code:            errorRunningQuery.Code,
			Message:         errorRunningQuery.Message,
			InternalMessage: err.Error(),
		}
	}
}

func writeJSON(res *common.HttpResponseWriter, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		logError := errorLoadingEvents
		logError.InternalMessage = err.Error()
		return res.WriteError(&logError)
	}
	return res.Write(payload)
}

// getSchedules returns all watering schedule entries, newest datetime first.
func (a *API) getSchedules(ctx context.Context, res *common.HttpResponseWriter) error {
	records, err := a.schedules.List(ctx, res.TraceID)
	if err != nil {
		return res.WriteError(scheduleError(err))
	}
	return writeJSON(res, records)
}

// createSchedule inserts a new watering schedule entry.
func (a *API) createSchedule(ctx context.Context, res *common.HttpResponseWriter) error {
	var payload schema.SchedulePayload
	if err := json.Unmarshal(res.Body, &payload); err != nil {
		logError := errorInvalidBody.SetInternalMessage(err)
		return res.WriteError(&logError)
	}

	id, err := a.schedules.Create(ctx, res.TraceID, payload)
	if err != nil {
		return res.WriteError(scheduleError(err))
	}
	return writeJSON(res, scheduleMessage{Message: "Schedule created", ID: id})
}

// updateSchedule replaces all fields of an entry, preserving its identity.
func (a *API) updateSchedule(ctx context.Context, res *common.HttpResponseWriter) error {
	scheduleID := res.VARS["scheduleID"]

	var payload schema.SchedulePayload
	if err := json.Unmarshal(res.Body, &payload); err != nil {
		logError := errorInvalidBody.SetInternalMessage(err)
		return res.WriteError(&logError)
	}

	updated, err := a.schedules.Update(ctx, res.TraceID, scheduleID, payload)
	if err != nil {
		return res.WriteError(scheduleError(err))
	}
	if !updated {
		return writeJSON(res, scheduleMessage{Message: "No changes made"})
	}
	return writeJSON(res, scheduleMessage{Message: "Schedule updated"})
}

// deleteSchedule removes an entry, a missing id is reported in the message,
// not as an error.
func (a *API) deleteSchedule(ctx context.Context, res *common.HttpResponseWriter) error {
	scheduleID := res.VARS["scheduleID"]

	deleted, err := a.schedules.Delete(ctx, res.TraceID, scheduleID)
	if err != nil {
		return res.WriteError(scheduleError(err))
	}
	if !deleted {
		return writeJSON(res, scheduleMessage{Message: "Schedule not found"})
	}
	return writeJSON(res, scheduleMessage{Message: "Schedule deleted"})
}
