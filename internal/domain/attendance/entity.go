package attendance

import (
	"time"
)

// Status is the classified daily attendance state. Classification is
// evaluated in a fixed priority order by the calculator; see service/attendance.
type Status string

const (
	StatusPresent        Status = "PRESENT"
	StatusAbsent         Status = "ABSENT"
	StatusLate           Status = "LATE"
	StatusHalfDay        Status = "HALF_DAY"
	StatusLeave          Status = "LEAVE"
	StatusHoliday        Status = "HOLIDAY"
	StatusIncomplete     Status = "INCOMPLETE"
	StatusEarlyDeparture Status = "EARLY_DEPARTURE"
)

// MaxPairs is the maximum number of (in, out) pairs a daily record holds.
const MaxPairs = 6

// TimePair is one (check-in, check-out) pair. A nil Out marks an open punch:
// the employee checked in but never checked out, which flags the day INCOMPLETE.
type TimePair struct {
	In  *time.Time
	Out *time.Time
}

// Complete reports whether both punches of the pair are present.
func (p TimePair) Complete() bool {
	return p.In != nil && p.Out != nil
}

// Record is the reconciled daily attendance record. Exactly one record exists
// per (employee, date). All derived fields are owned by the calculator and
// recomputed on every reconciliation; they are never accepted from callers.
type Record struct {
	ID         string
	EmployeeID string
	Date       time.Time
	ShiftID    *string

	Pairs []TimePair

	TotalMinutes     int
	BreakMinutes     int
	WorkMinutes      int
	OvertimeMinutes  int
	UndertimeMinutes int

	FirstIn *time.Time
	LastOut *time.Time

	Status                Status
	LateMinutes           int
	EarlyDepartureMinutes int

	IsManual  bool
	IsHoliday bool
	IsWeekend bool
	Notes     *string

	// Version implements the optimistic lock on concurrent reconciliation.
	Version int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PunchType is the direction of a raw time-clock punch.
type PunchType string

const (
	PunchIn  PunchType = "IN"
	PunchOut PunchType = "OUT"
)

// Punch processing states for the append-only punch log.
const (
	PunchStatusPending   = "PENDING"
	PunchStatusProcessed = "PROCESSED"
	PunchStatusError     = "ERROR"
	PunchStatusIgnored   = "IGNORED"
)

// PunchLog is one raw punch event as delivered by a device sync cycle.
// Rows are append-only; reconciliation only flips the processing status.
type PunchLog struct {
	ID               string
	EmployeeID       string
	EmployeeCode     string
	DeviceID         string
	Timestamp        time.Time
	Type             PunchType
	ProcessingStatus string
	ProcessedAt      *time.Time
	ErrorMessage     *string
	CreatedAt        time.Time
}
