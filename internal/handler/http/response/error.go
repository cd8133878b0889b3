package response

import (
	"errors"
	"net/http"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/domain/correction"
	"github.com/chronohr/attendance-backend-go/internal/domain/device"
	"github.com/chronohr/attendance-backend-go/internal/domain/employee"
	"github.com/chronohr/attendance-backend-go/internal/domain/holiday"
	"github.com/chronohr/attendance-backend-go/internal/domain/leave"
	"github.com/chronohr/attendance-backend-go/internal/domain/shift"
	"github.com/chronohr/attendance-backend-go/internal/domain/summary"
	"github.com/chronohr/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrFutureDate):
		BadRequest(w, "Cannot reconcile a future date", nil)
	case errors.Is(err, attendance.ErrConflict):
		Conflict(w, "Attendance record was modified concurrently")
	case errors.Is(err, attendance.ErrEmployeeUnknown):
		NotFound(w, "Employee code is not registered")
	case errors.Is(err, attendance.ErrTooManyPairs):
		BadRequest(w, "Too many check-in/check-out pairs", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrAssignmentNotFound):
		NotFound(w, "Shift assignment not found")
	case errors.Is(err, shift.ErrOverlappingAssignment):
		Conflict(w, "Shift assignment overlaps with an existing assignment")

	// Leave domain errors
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrOverlappingRequest):
		Conflict(w, "Leave request overlaps with an existing request")
	case errors.Is(err, leave.ErrNoticeTooShort):
		BadRequest(w, "Leave request does not meet the minimum notice period", nil)
	case errors.Is(err, leave.ErrTooManyDays):
		BadRequest(w, "Leave request exceeds the maximum consecutive days", nil)
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrNotCancellable):
		Conflict(w, "Leave request can no longer be cancelled")

	// Correction domain errors
	case errors.Is(err, correction.ErrCorrectionNotFound):
		NotFound(w, "Correction not found")
	case errors.Is(err, correction.ErrAlreadyProcessed):
		Conflict(w, "Correction already processed")
	case errors.Is(err, correction.ErrStaleReference):
		Conflict(w, "Attendance record behind this correction no longer exists")
	case errors.Is(err, correction.ErrUnknownField):
		BadRequest(w, "Correction touches an unknown field", nil)

	// Holiday domain errors
	case errors.Is(err, holiday.ErrInvalidRecurrenceRule):
		BadRequest(w, "Recurrence rule is not a valid RRULE", nil)

	// Summary domain errors
	case errors.Is(err, summary.ErrSummaryNotFound):
		NotFound(w, "Monthly summary not found")

	// Device domain errors
	case errors.Is(err, device.ErrDeviceNotFound):
		Unauthorized(w, "Unknown device")
	case errors.Is(err, device.ErrInvalidAPIKey):
		Unauthorized(w, "Invalid device API key")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
