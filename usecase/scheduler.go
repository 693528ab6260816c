package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/yolofarm/farm-whisperer/common"
	"github.com/yolofarm/farm-whisperer/schema"
)

// ScheduleManager owns the watering schedule CRUD and its invariants: all
// calendar fields present, no past datetime, no two live entries sharing one
// datetime.
type ScheduleManager struct {
	schedules ScheduleRepository
	logger    *log.Logger
	now       func() time.Time
}

func NewScheduleManager(logger *log.Logger, schedules ScheduleRepository) *ScheduleManager {
	return &ScheduleManager{
		schedules: schedules,
		logger:    logger,
		now:       time.Now,
	}
}

// buildScheduleDocument validates the payload and resolves the calendar
// fields, interpreted in the reference timezone, into the canonical datetime.
func buildScheduleDocument(p schema.SchedulePayload) (schema.ScheduleDocument, time.Time, error) {
	fields := []struct {
		name  string
		value *int
	}{
		{"day", p.Day},
		{"month", p.Month},
		{"year", p.Year},
		{"hour", p.Hour},
		{"minute", p.Minute},
	}
	for _, f := range fields {
		if f.value == nil {
			return schema.ScheduleDocument{}, time.Time{}, &ValidationError{Field: f.name}
		}
	}

	instant := time.Date(*p.Year, time.Month(*p.Month), *p.Day, *p.Hour, *p.Minute, 0, 0, schema.ReferenceZone)
	// time.Date normalizes out-of-range fields (e.g. month 13 rolls over), a
	// round trip that does not match the input is not a real calendar date.
	if instant.Year() != *p.Year || int(instant.Month()) != *p.Month || instant.Day() != *p.Day ||
		instant.Hour() != *p.Hour || instant.Minute() != *p.Minute {
		return schema.ScheduleDocument{}, time.Time{}, &ValidationError{Field: "datetime", Reason: "not a valid calendar date"}
	}

	doc := schema.ScheduleDocument{
		Day:      *p.Day,
		Month:    *p.Month,
		Year:     *p.Year,
		Hour:     *p.Hour,
		Minute:   *p.Minute,
		Datetime: schema.FormatUTC(instant),
	}
	return doc, instant, nil
}

// List returns all schedule entries, newest datetime first, in their
// presentation shape.
func (m *ScheduleManager) List(ctx context.Context, traceID string) ([]PresentationRecord, error) {
	common.TimeIt(ctx, "listSchedules")
	docs, err := m.schedules.ListSchedules(ctx, traceID)
	common.TimeEnd(ctx, "listSchedules")
	if err != nil {
		return nil, err
	}
	records := make([]PresentationRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, FormatSchedule(doc))
	}
	return records, nil
}

// Create validates and inserts a new schedule entry, returning its id.
func (m *ScheduleManager) Create(ctx context.Context, traceID string, payload schema.SchedulePayload) (string, error) {
	doc, instant, err := buildScheduleDocument(payload)
	if err != nil {
		return "", err
	}
	if instant.Before(m.now()) {
		return "", &PastDatetimeError{Datetime: doc.Datetime}
	}

	// Fast path for a friendly error. The unique index on datetime is the
	// actual guarantee under concurrent creates.
	existing, err := m.schedules.FindScheduleByDatetime(ctx, traceID, doc.Datetime, "")
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", &DuplicateScheduleError{Datetime: doc.Datetime}
	}

	id, err := m.schedules.InsertSchedule(ctx, traceID, doc)
	if err != nil {
		if errors.Is(err, schema.ErrDuplicateDatetime) {
			return "", &DuplicateScheduleError{Datetime: doc.Datetime}
		}
		return "", err
	}
	return id, nil
}

// Update replaces all fields of an existing entry. The duplicate check skips
// the entry itself, so keeping its own datetime unchanged succeeds. Returns
// whether any field actually changed.
func (m *ScheduleManager) Update(ctx context.Context, traceID string, id string, payload schema.SchedulePayload) (bool, error) {
	doc, instant, err := buildScheduleDocument(payload)
	if err != nil {
		return false, err
	}
	if instant.Before(m.now()) {
		return false, &PastDatetimeError{Datetime: doc.Datetime}
	}

	existing, err := m.schedules.FindScheduleByDatetime(ctx, traceID, doc.Datetime, id)
	if err != nil {
		if errors.Is(err, schema.ErrScheduleNotFound) {
			return false, &NotFoundError{ID: id}
		}
		return false, err
	}
	if existing != nil {
		return false, &DuplicateScheduleError{Datetime: doc.Datetime}
	}

	updated, err := m.schedules.UpdateSchedule(ctx, traceID, id, doc)
	if err != nil {
		if errors.Is(err, schema.ErrScheduleNotFound) {
			return false, &NotFoundError{ID: id}
		}
		if errors.Is(err, schema.ErrDuplicateDatetime) {
			return false, &DuplicateScheduleError{Datetime: doc.Datetime}
		}
		return false, err
	}
	return updated, nil
}

// Delete removes an entry. A missing id is a benign no-op reported as
// deleted=false.
func (m *ScheduleManager) Delete(ctx context.Context, traceID string, id string) (bool, error) {
	return m.schedules.DeleteSchedule(ctx, traceID, id)
}
