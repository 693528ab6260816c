package schema

import "errors"

// Storage level sentinel errors, translated by the use cases into their
// user facing equivalents.
var (
	// ErrDuplicateDatetime is returned when the unique index on the schedule
	// datetime field rejects a write.
	ErrDuplicateDatetime = errors.New("schedule datetime already exists")
	// ErrScheduleNotFound is returned when no schedule matches the given id.
	ErrScheduleNotFound = errors.New("schedule not found")
)
