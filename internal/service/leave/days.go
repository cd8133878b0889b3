package leave

import "time"

// TotalDays counts the chargeable days of a leave span: weekdays within
// [start, end] that are not holidays. A half-day request always charges 0.5.
func TotalDays(start, end time.Time, isHalfDay bool, isHoliday func(time.Time) bool) float64 {
	if isHalfDay {
		return 0.5
	}

	days := 0.0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		if isHoliday != nil && isHoliday(d) {
			continue
		}
		days++
	}

	return days
}
