package summary

import "time"

// MonthlySummary is the derived monthly rollup of an employee's daily
// attendance records. It is a disposable cache keyed by (employee, year,
// month): regeneration upserts and must be idempotent.
type MonthlySummary struct {
	ID         string
	EmployeeID string
	Year       int
	Month      int

	TotalWorkMinutes      int
	TotalBreakMinutes     int
	TotalOvertimeMinutes  int
	TotalUndertimeMinutes int

	WorkingDays  int
	AttendedDays int
	HalfDays     int
	LateDays     int
	EarlyDays    int
	AbsentDays   int
	LeaveDays    int
	HolidayDays  int

	AttendancePercentage float64
	PunctualityScore     float64
	AverageWorkHours     float64

	EarliestIn *time.Time
	LatestOut  *time.Time

	GeneratedAt time.Time
	UpdatedAt   time.Time
}
