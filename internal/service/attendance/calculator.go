package attendance

import (
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/domain/shift"
)

// CalculationInput is everything the calculator needs for one employee-day.
// The shift may be nil when no assignment covers the date and no default is
// configured; shift-relative metrics are then skipped.
type CalculationInput struct {
	Date            time.Time
	Pairs           []attendance.TimePair
	Shift           *shift.Shift
	IsHoliday       bool
	OnApprovedLeave bool
	IsWeekend       bool
}

// Metrics is the full set of derived attendance fields for one day.
type Metrics struct {
	TotalMinutes     int
	BreakMinutes     int
	WorkMinutes      int
	OvertimeMinutes  int
	UndertimeMinutes int

	FirstIn *time.Time
	LastOut *time.Time

	Status                attendance.Status
	LateMinutes           int
	EarlyDepartureMinutes int

	Incomplete bool
}

// Calculate derives every computed attendance field from the normalized pairs
// and the day's context. It is pure: same input, same output.
func Calculate(in CalculationInput) Metrics {
	var m Metrics

	for _, pair := range in.Pairs {
		if pair.In != nil && (m.FirstIn == nil || pair.In.Before(*m.FirstIn)) {
			m.FirstIn = pair.In
		}
		if pair.Out != nil && (m.LastOut == nil || pair.Out.After(*m.LastOut)) {
			m.LastOut = pair.Out
		}
		if pair.Complete() {
			m.WorkMinutes += wholeMinutes(pair.Out.Sub(*pair.In))
		} else if pair.In != nil {
			// open punch contributes nothing but taints the day
			m.Incomplete = true
		}
	}

	if m.FirstIn != nil && m.LastOut != nil {
		m.TotalMinutes = wholeMinutes(m.LastOut.Sub(*m.FirstIn))
		if m.TotalMinutes > m.WorkMinutes {
			m.BreakMinutes = m.TotalMinutes - m.WorkMinutes
		}
	}

	if in.Shift != nil && len(in.Pairs) > 0 {
		effective := in.Shift.EffectiveWorkingMinutes()

		if m.WorkMinutes > effective+in.Shift.OvertimeThresholdMinutes {
			m.OvertimeMinutes = m.WorkMinutes - effective - in.Shift.OvertimeThresholdMinutes
		}
		if m.WorkMinutes < effective {
			m.UndertimeMinutes = effective - m.WorkMinutes
		}

		graceEnd := in.Shift.StartOn(in.Date).Add(time.Duration(in.Shift.GraceMinutes) * time.Minute)
		if m.FirstIn != nil && m.FirstIn.After(graceEnd) {
			m.LateMinutes = wholeMinutes(m.FirstIn.Sub(graceEnd))
			if m.LateMinutes == 0 {
				// sub-minute lateness still counts once past the grace end
				m.LateMinutes = 1
			}
		}

		shiftEnd := in.Shift.EndOn(in.Date)
		if m.LastOut != nil && m.LastOut.Before(shiftEnd) {
			m.EarlyDepartureMinutes = wholeMinutes(shiftEnd.Sub(*m.LastOut))
		}
	}

	m.Status = classify(in, m)
	return m
}

// classify applies the status rules in fixed priority order; first match wins.
func classify(in CalculationInput, m Metrics) attendance.Status {
	if in.IsHoliday {
		return attendance.StatusHoliday
	}
	if in.OnApprovedLeave {
		return attendance.StatusLeave
	}
	// ABSENT is a working-day judgement; a weekend day with no punches is a
	// rest day, not an absence.
	if len(in.Pairs) == 0 {
		if in.IsWeekend {
			return attendance.StatusPresent
		}
		return attendance.StatusAbsent
	}
	if m.Incomplete {
		return attendance.StatusIncomplete
	}
	if in.Shift != nil && m.WorkMinutes < in.Shift.EffectiveWorkingMinutes()/2 {
		return attendance.StatusHalfDay
	}
	if m.LateMinutes > 0 {
		return attendance.StatusLate
	}
	if m.EarlyDepartureMinutes > 0 {
		return attendance.StatusEarlyDeparture
	}
	return attendance.StatusPresent
}

func wholeMinutes(d time.Duration) int {
	if d < 0 {
		return 0
	}
	return int(d / time.Minute)
}
