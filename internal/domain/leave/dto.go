package leave

import (
	"github.com/chronohr/attendance-backend-go/internal/pkg/validator"
)

// CreateRequestRequest submits a leave application in PENDING state.
type CreateRequestRequest struct {
	EmployeeID  string `json:"employee_id"`
	LeaveTypeID string `json:"leave_type_id"`
	StartDate   string `json:"start_date"` // YYYY-MM-DD
	EndDate     string `json:"end_date"`   // YYYY-MM-DD
	IsHalfDay   bool   `json:"is_half_day"`
	Reason      string `json:"reason"`
}

func (r *CreateRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date cannot be before start_date",
		})
	}
	if r.IsHalfDay && okStart && okEnd && !start.Equal(end) {
		errs = append(errs, validator.ValidationError{
			Field:   "is_half_day",
			Message: "half day leave must be for a single date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// RejectRequestRequest carries the rejection reason.
type RejectRequestRequest struct {
	Reason string `json:"reason"`
}

func (r *RejectRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// RequestResponse is the wire form of a leave request.
type RequestResponse struct {
	ID          string  `json:"id"`
	EmployeeID  string  `json:"employee_id"`
	LeaveTypeID string  `json:"leave_type_id"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	TotalDays   float64 `json:"total_days"`
	IsHalfDay   bool    `json:"is_half_day"`
	Reason      string  `json:"reason"`
	Status      string  `json:"status"`
	DecidedBy   *string `json:"decided_by,omitempty"`
}

func NewRequestResponse(req Request) RequestResponse {
	return RequestResponse{
		ID:          req.ID,
		EmployeeID:  req.EmployeeID,
		LeaveTypeID: req.LeaveTypeID,
		StartDate:   req.StartDate.Format("2006-01-02"),
		EndDate:     req.EndDate.Format("2006-01-02"),
		TotalDays:   req.TotalDays,
		IsHalfDay:   req.IsHalfDay,
		Reason:      req.Reason,
		Status:      string(req.Status),
		DecidedBy:   req.DecidedBy,
	}
}

// BalanceResponse is the wire form of a ledger row.
type BalanceResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	LeaveTypeID    string  `json:"leave_type_id"`
	Year           int     `json:"year"`
	AllocatedDays  float64 `json:"allocated_days"`
	UsedDays       float64 `json:"used_days"`
	CarriedForward float64 `json:"carried_forward_days"`
	AdjustmentDays float64 `json:"adjustment_days"`
	AvailableDays  float64 `json:"available_days"`
}

func NewBalanceResponse(b Balance) BalanceResponse {
	return BalanceResponse{
		ID:             b.ID,
		EmployeeID:     b.EmployeeID,
		LeaveTypeID:    b.LeaveTypeID,
		Year:           b.Year,
		AllocatedDays:  b.AllocatedDays,
		UsedDays:       b.UsedDays,
		CarriedForward: b.CarriedForward,
		AdjustmentDays: b.AdjustmentDays,
		AvailableDays:  b.AvailableDays(),
	}
}
