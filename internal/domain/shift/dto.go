package shift

import (
	"github.com/chronohr/attendance-backend-go/internal/pkg/validator"
)

// CreateAssignmentRequest assigns a shift to an employee for a date range.
type CreateAssignmentRequest struct {
	EmployeeID    string  `json:"employee_id"`
	ShiftID       string  `json:"shift_id"`
	EffectiveFrom string  `json:"effective_from"`         // YYYY-MM-DD
	EffectiveTo   *string `json:"effective_to,omitempty"` // nil = open-ended
	Notes         *string `json:"notes,omitempty"`
}

func (r *CreateAssignmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if validator.IsEmpty(r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id is required",
		})
	}

	from, okFrom := validator.IsValidDate(r.EffectiveFrom)
	if !okFrom {
		errs = append(errs, validator.ValidationError{
			Field:   "effective_from",
			Message: "effective_from must be in YYYY-MM-DD format",
		})
	}

	if r.EffectiveTo != nil {
		to, okTo := validator.IsValidDate(*r.EffectiveTo)
		if !okTo {
			errs = append(errs, validator.ValidationError{
				Field:   "effective_to",
				Message: "effective_to must be in YYYY-MM-DD format",
			})
		} else if okFrom && !to.After(from) {
			errs = append(errs, validator.ValidationError{
				Field:   "effective_to",
				Message: "effective_to must be after effective_from",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// AssignmentResponse is the wire form of an assignment.
type AssignmentResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	ShiftID       string  `json:"shift_id"`
	EffectiveFrom string  `json:"effective_from"`
	EffectiveTo   *string `json:"effective_to,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

func NewAssignmentResponse(a Assignment) AssignmentResponse {
	resp := AssignmentResponse{
		ID:            a.ID,
		EmployeeID:    a.EmployeeID,
		ShiftID:       a.ShiftID,
		EffectiveFrom: a.EffectiveFrom.Format("2006-01-02"),
		Notes:         a.Notes,
	}
	if a.EffectiveTo != nil {
		to := a.EffectiveTo.Format("2006-01-02")
		resp.EffectiveTo = &to
	}
	return resp
}
