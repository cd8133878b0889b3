package leave

import "errors"

// Leave domain errors
var (
	ErrRequestNotFound = errors.New("leave request not found")
	ErrTypeNotFound    = errors.New("leave type not found")
	ErrBalanceNotFound = errors.New("leave balance not found")

	// ErrInsufficientBalance is returned when approval would overdraw the
	// balance; the request stays PENDING.
	ErrInsufficientBalance = errors.New("insufficient leave balance")

	ErrOverlappingRequest = errors.New("leave request overlaps with an existing request")
	ErrNoticeTooShort     = errors.New("leave request does not meet the minimum notice period")
	ErrTooManyDays        = errors.New("leave request exceeds the maximum consecutive days")
	ErrAlreadyProcessed   = errors.New("leave request has already been processed")
	ErrNotCancellable     = errors.New("leave request can no longer be cancelled")
)
