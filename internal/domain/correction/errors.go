package correction

import "errors"

// Correction domain errors
var (
	ErrCorrectionNotFound = errors.New("correction not found")
	ErrAlreadyProcessed   = errors.New("correction has already been approved or rejected")

	// ErrStaleReference is returned when the underlying attendance record was
	// deleted or re-keyed after the correction was filed; the correction
	// stays PENDING.
	ErrStaleReference = errors.New("correction references a stale attendance record")

	ErrUnknownField = errors.New("corrected data contains an unknown field")
)
