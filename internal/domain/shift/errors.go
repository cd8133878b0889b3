package shift

import "errors"

// Shift domain errors
var (
	ErrShiftNotFound         = errors.New("shift not found")
	ErrAssignmentNotFound    = errors.New("shift assignment not found")
	ErrOverlappingAssignment = errors.New("employee already has a shift assigned for this period")
)
