package correction

import (
	"github.com/chronohr/attendance-backend-go/internal/pkg/validator"
)

// CreateCorrectionRequest files a manual override against a record.
type CreateCorrectionRequest struct {
	AttendanceID  string            `json:"attendance_id"`
	Type          string            `json:"correction_type"`
	Reason        string            `json:"reason"`
	CorrectedData map[string]*string `json:"corrected_data"`
}

func (r *CreateCorrectionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.AttendanceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_id",
			Message: "attendance_id must be a valid UUID",
		})
	}
	if !validator.IsInSlice(r.Type, []string{
		string(TypeTimeAdjustment),
		string(TypeStatusChange),
		string(TypeManualEntry),
		string(TypeDeviceError),
	}) {
		errs = append(errs, validator.ValidationError{
			Field:   "correction_type",
			Message: "correction_type is invalid",
		})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}
	if len(r.CorrectedData) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "corrected_data",
			Message: "corrected_data must not be empty",
		})
	}
	for name, value := range r.CorrectedData {
		field := Field(name)
		if !field.IsKnown() {
			errs = append(errs, validator.ValidationError{
				Field:   "corrected_data." + name,
				Message: "unknown field",
			})
			continue
		}
		if field != FieldNotes && value != nil {
			if _, ok := validator.IsValidClockTime(*value); !ok {
				errs = append(errs, validator.ValidationError{
					Field:   "corrected_data." + name,
					Message: "must be a clock time in HH:MM:SS format",
				})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Diff converts the request payload into a typed FieldDiff.
func (r *CreateCorrectionRequest) Diff() FieldDiff {
	diff := make(FieldDiff, len(r.CorrectedData))
	for name, value := range r.CorrectedData {
		diff[Field(name)] = value
	}
	return diff
}

// RejectCorrectionRequest carries the rejection reason.
type RejectCorrectionRequest struct {
	Reason string `json:"reason"`
}

func (r *RejectCorrectionRequest) Validate() error {
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

// CorrectionResponse is the wire form of a correction.
type CorrectionResponse struct {
	ID            string             `json:"id"`
	AttendanceID  string             `json:"attendance_id"`
	Type          string             `json:"correction_type"`
	Reason        string             `json:"reason"`
	OriginalData  map[string]*string `json:"original_data"`
	CorrectedData map[string]*string `json:"corrected_data"`
	Status        string             `json:"status"`
	RequestedBy   string             `json:"requested_by"`
	DecidedBy     *string            `json:"decided_by,omitempty"`
}

func NewCorrectionResponse(c Correction) CorrectionResponse {
	return CorrectionResponse{
		ID:            c.ID,
		AttendanceID:  c.AttendanceID,
		Type:          string(c.Type),
		Reason:        c.Reason,
		OriginalData:  diffToMap(c.OriginalData),
		CorrectedData: diffToMap(c.CorrectedData),
		Status:        string(c.Status),
		RequestedBy:   c.RequestedBy,
		DecidedBy:     c.DecidedBy,
	}
}

func diffToMap(d FieldDiff) map[string]*string {
	m := make(map[string]*string, len(d))
	for field, value := range d {
		m[string(field)] = value
	}
	return m
}
