package usecase

import "fmt"

// ValidationError reports a missing or malformed schedule field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid schedule field %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("missing field: %s", e.Field)
}

// PastDatetimeError reports a schedule instant earlier than the time of the
// write.
type PastDatetimeError struct {
	Datetime string
}

func (e *PastDatetimeError) Error() string {
	return fmt.Sprintf("schedule datetime %s is in the past", e.Datetime)
}

// DuplicateScheduleError reports a live entry already holding the datetime.
type DuplicateScheduleError struct {
	Datetime string
}

func (e *DuplicateScheduleError) Error() string {
	return fmt.Sprintf("schedule at %s already exists", e.Datetime)
}

// NotFoundError reports an update against an unknown schedule id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("schedule %s not found", e.ID)
}
