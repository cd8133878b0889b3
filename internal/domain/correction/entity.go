package correction

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// CorrectionType describes why a record is being overridden.
type CorrectionType string

const (
	TypeTimeAdjustment CorrectionType = "TIME_ADJUSTMENT"
	TypeStatusChange   CorrectionType = "STATUS_CHANGE"
	TypeManualEntry    CorrectionType = "MANUAL_ENTRY"
	TypeDeviceError    CorrectionType = "DEVICE_ERROR"
)

// CorrectionStatus is the lifecycle state; APPROVED and REJECTED are terminal.
type CorrectionStatus string

const (
	StatusPending  CorrectionStatus = "PENDING"
	StatusApproved CorrectionStatus = "APPROVED"
	StatusRejected CorrectionStatus = "REJECTED"
)

// Field names the mutable attendance fields a correction may touch. Derived
// metrics are never part of a diff; they are recomputed on approval.
type Field string

const (
	FieldCheckIn1  Field = "check_in_1"
	FieldCheckOut1 Field = "check_out_1"
	FieldCheckIn2  Field = "check_in_2"
	FieldCheckOut2 Field = "check_out_2"
	FieldCheckIn3  Field = "check_in_3"
	FieldCheckOut3 Field = "check_out_3"
	FieldCheckIn4  Field = "check_in_4"
	FieldCheckOut4 Field = "check_out_4"
	FieldCheckIn5  Field = "check_in_5"
	FieldCheckOut5 Field = "check_out_5"
	FieldCheckIn6  Field = "check_in_6"
	FieldCheckOut6 Field = "check_out_6"
	FieldNotes     Field = "notes"
)

// PairFields returns the (in, out) field names for pair index i (0-based).
func PairFields(i int) (Field, Field) {
	pairs := [][2]Field{
		{FieldCheckIn1, FieldCheckOut1},
		{FieldCheckIn2, FieldCheckOut2},
		{FieldCheckIn3, FieldCheckOut3},
		{FieldCheckIn4, FieldCheckOut4},
		{FieldCheckIn5, FieldCheckOut5},
		{FieldCheckIn6, FieldCheckOut6},
	}
	return pairs[i][0], pairs[i][1]
}

// KnownFields lists every field a diff may carry, in storage order.
var KnownFields = []Field{
	FieldCheckIn1, FieldCheckOut1,
	FieldCheckIn2, FieldCheckOut2,
	FieldCheckIn3, FieldCheckOut3,
	FieldCheckIn4, FieldCheckOut4,
	FieldCheckIn5, FieldCheckOut5,
	FieldCheckIn6, FieldCheckOut6,
	FieldNotes,
}

// IsKnown reports whether f is a correctable field.
func (f Field) IsKnown() bool {
	for _, k := range KnownFields {
		if f == k {
			return true
		}
	}
	return false
}

// FieldDiff is a typed snapshot of mutable attendance fields: field name to
// value, nil meaning cleared/absent. Check times are "15:04:05" strings.
// Stored as JSONB.
type FieldDiff map[Field]*string

// Value implements driver.Valuer for database storage
func (d FieldDiff) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

// Scan implements sql.Scanner for database retrieval
func (d *FieldDiff) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan FieldDiff: invalid type")
	}

	return json.Unmarshal(bytes, d)
}

// Correction is an auditable manual override of an attendance record.
// OriginalData is captured once at creation and never changed afterwards.
type Correction struct {
	ID           string
	AttendanceID string
	Type         CorrectionType
	Reason       string

	OriginalData  FieldDiff
	CorrectedData FieldDiff

	RequestedBy string
	RequestedAt time.Time

	Status          CorrectionStatus
	DecidedBy       *string
	DecidedAt       *time.Time
	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
