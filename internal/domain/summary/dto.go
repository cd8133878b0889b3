package summary

import "time"

// SummaryResponse is the wire form of a monthly summary.
type SummaryResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`

	TotalWorkMinutes      int `json:"total_work_minutes"`
	TotalBreakMinutes     int `json:"total_break_minutes"`
	TotalOvertimeMinutes  int `json:"total_overtime_minutes"`
	TotalUndertimeMinutes int `json:"total_undertime_minutes"`

	WorkingDays  int `json:"working_days"`
	AttendedDays int `json:"attended_days"`
	HalfDays     int `json:"half_days"`
	LateDays     int `json:"late_days"`
	EarlyDays    int `json:"early_days"`
	AbsentDays   int `json:"absent_days"`
	LeaveDays    int `json:"leave_days"`
	HolidayDays  int `json:"holiday_days"`

	AttendancePercentage float64 `json:"attendance_percentage"`
	PunctualityScore     float64 `json:"punctuality_score"`
	AverageWorkHours     float64 `json:"average_work_hours"`

	EarliestIn  *string `json:"earliest_in,omitempty"`
	LatestOut   *string `json:"latest_out,omitempty"`
	GeneratedAt string  `json:"generated_at"`
}

// NewSummaryResponse converts a MonthlySummary to its wire form.
func NewSummaryResponse(s MonthlySummary) SummaryResponse {
	return SummaryResponse{
		ID:                    s.ID,
		EmployeeID:            s.EmployeeID,
		Year:                  s.Year,
		Month:                 s.Month,
		TotalWorkMinutes:      s.TotalWorkMinutes,
		TotalBreakMinutes:     s.TotalBreakMinutes,
		TotalOvertimeMinutes:  s.TotalOvertimeMinutes,
		TotalUndertimeMinutes: s.TotalUndertimeMinutes,
		WorkingDays:           s.WorkingDays,
		AttendedDays:          s.AttendedDays,
		HalfDays:              s.HalfDays,
		LateDays:              s.LateDays,
		EarlyDays:             s.EarlyDays,
		AbsentDays:            s.AbsentDays,
		LeaveDays:             s.LeaveDays,
		HolidayDays:           s.HolidayDays,
		AttendancePercentage:  s.AttendancePercentage,
		PunctualityScore:      s.PunctualityScore,
		AverageWorkHours:      s.AverageWorkHours,
		EarliestIn:            formatClock(s.EarliestIn),
		LatestOut:             formatClock(s.LatestOut),
		GeneratedAt:           s.GeneratedAt.Format(time.RFC3339),
	}
}

func formatClock(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("15:04:05")
	return &s
}
