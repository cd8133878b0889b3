package attendance

import "errors"

// Attendance domain errors
var (
	ErrRecordNotFound = errors.New("attendance record not found")
	ErrFutureDate     = errors.New("attendance date cannot be in the future")

	// ErrConflict signals a concurrent write to the same record; callers
	// should reload and retry the reconciliation.
	ErrConflict = errors.New("attendance record was modified concurrently")

	ErrEmployeeUnknown = errors.New("punch references an unknown employee code")
	ErrTooManyPairs    = errors.New("attendance record cannot hold more than 6 time pairs")
)
