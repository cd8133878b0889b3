package attendance

import (
	"time"

	"github.com/chronohr/attendance-backend-go/internal/pkg/validator"
)

// PunchEventRequest is one raw punch as delivered by a device sync cycle.
type PunchEventRequest struct {
	EmployeeCode string `json:"employee_code"`
	Timestamp    string `json:"timestamp"` // RFC3339
	Type         string `json:"type"`      // IN | OUT
}

// IngestPunchesRequest is the payload of one device sync cycle.
type IngestPunchesRequest struct {
	Punches []PunchEventRequest `json:"punches"`
}

func (r *IngestPunchesRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Punches) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "punches",
			Message: "punches must not be empty",
		})
	}

	for i, p := range r.Punches {
		if !validator.IsValidEmployeeCode(p.EmployeeCode) {
			errs = append(errs, validator.ValidationError{
				Field:   "punches[" + validator.Itoa(i) + "].employee_code",
				Message: "employee_code must match NNNN-NNNN",
			})
		}
		if _, ok := validator.IsValidDateTime(p.Timestamp); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "punches[" + validator.Itoa(i) + "].timestamp",
				Message: "timestamp must be a valid RFC3339 timestamp",
			})
		}
		if !validator.IsInSlice(p.Type, []string{string(PunchIn), string(PunchOut)}) {
			errs = append(errs, validator.ValidationError{
				Field:   "punches[" + validator.Itoa(i) + "].type",
				Message: "type must be IN or OUT",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ReconcileRequest asks the engine to (re)build one employee-day record from
// its stored punch log.
type ReconcileRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"` // YYYY-MM-DD
}

func (r *ReconcileRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// RecordFilter narrows record listings.
type RecordFilter struct {
	EmployeeID *string
	DateFrom   *string
	DateTo     *string
	Status     *Status
	Page       int
	Limit      int
}

// TimePairResponse is the wire form of one pair.
type TimePairResponse struct {
	CheckIn  *string `json:"check_in"`
	CheckOut *string `json:"check_out"`
}

// RecordResponse is the wire form of a reconciled record.
type RecordResponse struct {
	ID                    string             `json:"id"`
	EmployeeID            string             `json:"employee_id"`
	Date                  string             `json:"date"`
	ShiftID               *string            `json:"shift_id,omitempty"`
	Pairs                 []TimePairResponse `json:"pairs"`
	TotalMinutes          int                `json:"total_minutes"`
	BreakMinutes          int                `json:"break_minutes"`
	WorkMinutes           int                `json:"work_minutes"`
	OvertimeMinutes       int                `json:"overtime_minutes"`
	UndertimeMinutes      int                `json:"undertime_minutes"`
	FirstIn               *string            `json:"first_in,omitempty"`
	LastOut               *string            `json:"last_out,omitempty"`
	Status                string             `json:"status"`
	LateMinutes           int                `json:"late_minutes"`
	EarlyDepartureMinutes int                `json:"early_departure_minutes"`
	IsManual              bool               `json:"is_manual"`
	IsHoliday             bool               `json:"is_holiday"`
	IsWeekend             bool               `json:"is_weekend"`
}

// NewRecordResponse converts a Record to its wire form.
func NewRecordResponse(rec Record) RecordResponse {
	resp := RecordResponse{
		ID:                    rec.ID,
		EmployeeID:            rec.EmployeeID,
		Date:                  rec.Date.Format("2006-01-02"),
		ShiftID:               rec.ShiftID,
		TotalMinutes:          rec.TotalMinutes,
		BreakMinutes:          rec.BreakMinutes,
		WorkMinutes:           rec.WorkMinutes,
		OvertimeMinutes:       rec.OvertimeMinutes,
		UndertimeMinutes:      rec.UndertimeMinutes,
		FirstIn:               formatClock(rec.FirstIn),
		LastOut:               formatClock(rec.LastOut),
		Status:                string(rec.Status),
		LateMinutes:           rec.LateMinutes,
		EarlyDepartureMinutes: rec.EarlyDepartureMinutes,
		IsManual:              rec.IsManual,
		IsHoliday:             rec.IsHoliday,
		IsWeekend:             rec.IsWeekend,
	}
	for _, pair := range rec.Pairs {
		resp.Pairs = append(resp.Pairs, TimePairResponse{
			CheckIn:  formatClock(pair.In),
			CheckOut: formatClock(pair.Out),
		})
	}
	return resp
}

func formatClock(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("15:04:05")
	return &s
}
