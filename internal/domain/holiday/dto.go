package holiday

import (
	"github.com/chronohr/attendance-backend-go/internal/pkg/validator"
)

// CreateHolidayRequest adds one holiday to the calendar.
type CreateHolidayRequest struct {
	Name           string   `json:"name"`
	Date           string   `json:"date"` // YYYY-MM-DD
	RecurrenceRule *string  `json:"recurrence_rule,omitempty"`
	DepartmentIDs  []string `json:"department_ids,omitempty"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	for i, id := range r.DepartmentIDs {
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{
				Field:   "department_ids[" + validator.Itoa(i) + "]",
				Message: "must be a valid UUID",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// HolidayResponse is the wire form of a calendar entry.
type HolidayResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Date           string   `json:"date"`
	RecurrenceRule *string  `json:"recurrence_rule,omitempty"`
	DepartmentIDs  []string `json:"department_ids,omitempty"`
}

func NewHolidayResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:             h.ID,
		Name:           h.Name,
		Date:           h.Date.Format("2006-01-02"),
		RecurrenceRule: h.RecurrenceRule,
		DepartmentIDs:  h.DepartmentIDs,
	}
}
