package shift

import "time"

// Shift is a reusable working-time template. Clock times are stored as
// minutes from midnight; a night shift ends on the following day.
type Shift struct {
	ID                       string
	Name                     string
	Code                     string
	StartMinute              int
	EndMinute                int
	BreakMinutes             int
	GraceMinutes             int
	OvertimeThresholdMinutes int
	IsNightShift             bool
	WeekendApplicable        bool
	IsActive                 bool
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

const minutesPerDay = 24 * 60

// SpanMinutes is the scheduled shift length including the break.
func (s Shift) SpanMinutes() int {
	if s.IsNightShift {
		return s.EndMinute + minutesPerDay - s.StartMinute
	}
	return s.EndMinute - s.StartMinute
}

// EffectiveWorkingMinutes is the shift span minus the break.
func (s Shift) EffectiveWorkingMinutes() int {
	return s.SpanMinutes() - s.BreakMinutes
}

// StartOn anchors the shift start on the given calendar day.
func (s Shift) StartOn(date time.Time) time.Time {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return day.Add(time.Duration(s.StartMinute) * time.Minute)
}

// EndOn anchors the shift end on the given calendar day. For night shifts the
// end falls on the next day.
func (s Shift) EndOn(date time.Time) time.Time {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	if s.IsNightShift {
		return day.AddDate(0, 0, 1).Add(time.Duration(s.EndMinute) * time.Minute)
	}
	return day.Add(time.Duration(s.EndMinute) * time.Minute)
}

// Assignment binds an employee to a shift for a date range. A nil EffectiveTo
// means the assignment is open-ended. Active assignments of one employee must
// not overlap in date.
type Assignment struct {
	ID            string
	EmployeeID    string
	ShiftID       string
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
	IsActive      bool
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Covers reports whether the assignment's range contains the date.
func (a Assignment) Covers(date time.Time) bool {
	if date.Before(a.EffectiveFrom) {
		return false
	}
	if a.EffectiveTo == nil {
		return true
	}
	return !date.After(*a.EffectiveTo)
}
