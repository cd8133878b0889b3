package audit

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Audit actions recorded by the engine.
const (
	ActionLeaveApproved       = "LEAVE_APPROVED"
	ActionLeaveRejected       = "LEAVE_REJECTED"
	ActionLeaveCancelled      = "LEAVE_CANCELLED"
	ActionLeaveWithdrawn      = "LEAVE_WITHDRAWN"
	ActionCorrectionApproved  = "CORRECTION_APPROVED"
	ActionCorrectionRejected  = "CORRECTION_REJECTED"
	ActionBalanceDeducted     = "BALANCE_DEDUCTED"
	ActionBalanceRestored     = "BALANCE_RESTORED"
)

// Details is a free-form JSONB payload on an audit entry.
type Details map[string]interface{}

// Value implements driver.Valuer for database storage
func (d Details) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

// Scan implements sql.Scanner for database retrieval
func (d *Details) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan Details: invalid type")
	}

	return json.Unmarshal(bytes, d)
}

// Entry is one immutable audit log row.
type Entry struct {
	ID         string
	ActorID    string
	Action     string
	EmployeeID string
	Date       time.Time
	Details    Details
	CreatedAt  time.Time
}
