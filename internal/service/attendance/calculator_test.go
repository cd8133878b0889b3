package attendance

import (
	"testing"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/domain/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // a Monday

// dayShift is 09:00-17:00, no scheduled break, 15 minutes grace.
func dayShift() *shift.Shift {
	return &shift.Shift{
		ID:           "day",
		StartMinute:  9 * 60,
		EndMinute:    17 * 60,
		GraceMinutes: 15,
	}
}

func pairAt(t *testing.T, in, out string) attendance.TimePair {
	t.Helper()
	var pair attendance.TimePair
	if in != "" {
		ts, err := time.Parse("2006-01-02 15:04:05", "2026-03-02 "+in)
		require.NoError(t, err)
		pair.In = &ts
	}
	if out != "" {
		ts, err := time.Parse("2006-01-02 15:04:05", "2026-03-02 "+out)
		require.NoError(t, err)
		pair.Out = &ts
	}
	return pair
}

func TestCalculateOnTimeFullDay(t *testing.T) {
	m := Calculate(CalculationInput{
		Date:  testDay,
		Pairs: []attendance.TimePair{pairAt(t, "09:00:00", "17:00:00")},
		Shift: dayShift(),
	})

	assert.Equal(t, attendance.StatusPresent, m.Status)
	assert.Equal(t, 480, m.WorkMinutes)
	assert.Equal(t, 480, m.TotalMinutes)
	assert.Zero(t, m.BreakMinutes)
	assert.Zero(t, m.LateMinutes)
	assert.Zero(t, m.OvertimeMinutes)
	assert.Zero(t, m.UndertimeMinutes)
	assert.Zero(t, m.EarlyDepartureMinutes)
}

func TestCalculateLateArrival(t *testing.T) {
	m := Calculate(CalculationInput{
		Date:  testDay,
		Pairs: []attendance.TimePair{pairAt(t, "09:20:00", "17:00:00")},
		Shift: dayShift(),
	})

	assert.Equal(t, attendance.StatusLate, m.Status)
	assert.Equal(t, 5, m.LateMinutes)
	assert.Equal(t, 460, m.WorkMinutes)
	assert.Equal(t, 20, m.UndertimeMinutes)
}

func TestCalculateArrivalInsideGraceIsNotLate(t *testing.T) {
	m := Calculate(CalculationInput{
		Date:  testDay,
		Pairs: []attendance.TimePair{pairAt(t, "09:14:00", "17:00:00")},
		Shift: dayShift(),
	})

	assert.Equal(t, attendance.StatusPresent, m.Status)
	assert.Zero(t, m.LateMinutes)
}

func TestCalculateSubMinuteLatenessCountsAsOne(t *testing.T) {
	m := Calculate(CalculationInput{
		Date:  testDay,
		Pairs: []attendance.TimePair{pairAt(t, "09:15:30", "17:00:00")},
		Shift: dayShift(),
	})

	assert.Equal(t, attendance.StatusLate, m.Status)
	assert.Equal(t, 1, m.LateMinutes)
}

func TestCalculateEarlyDeparture(t *testing.T) {
	m := Calculate(CalculationInput{
		Date:  testDay,
		Pairs: []attendance.TimePair{pairAt(t, "09:00:00", "16:30:00")},
		Shift: dayShift(),
	})

	assert.Equal(t, attendance.StatusEarlyDeparture, m.Status)
	assert.Equal(t, 30, m.EarlyDepartureMinutes)
	assert.Equal(t, 450, m.WorkMinutes)
}

func TestCalculateOvertimeBeyondThreshold(t *testing.T) {
	s := dayShift()
	s.OvertimeThresholdMinutes = 60

	m := Calculate(CalculationInput{
		Date:  testDay,
		Pairs: []attendance.TimePair{pairAt(t, "09:00:00", "19:00:00")},
		Shift: s,
	})

	assert.Equal(t, 600, m.WorkMinutes)
	assert.Equal(t, 60, m.OvertimeMinutes)
}

func TestCalculateBreakBetweenPairs(t *testing.T) {
	m := Calculate(CalculationInput{
		Date: testDay,
		Pairs: []attendance.TimePair{
			pairAt(t, "09:00:00", "12:00:00"),
			pairAt(t, "13:00:00", "17:00:00"),
		},
		Shift: dayShift(),
	})

	assert.Equal(t, 420, m.WorkMinutes)
	assert.Equal(t, 480, m.TotalMinutes)
	assert.Equal(t, 60, m.BreakMinutes)
}

func TestCalculateHalfDay(t *testing.T) {
	m := Calculate(CalculationInput{
		Date:  testDay,
		Pairs: []attendance.TimePair{pairAt(t, "09:00:00", "12:00:00")},
		Shift: dayShift(),
	})

	assert.Equal(t, attendance.StatusHalfDay, m.Status)
	assert.Equal(t, 180, m.WorkMinutes)
}

func TestCalculateOpenPunchIsIncomplete(t *testing.T) {
	m := Calculate(CalculationInput{
		Date:  testDay,
		Pairs: []attendance.TimePair{pairAt(t, "09:00:00", "")},
		Shift: dayShift(),
	})

	assert.Equal(t, attendance.StatusIncomplete, m.Status)
	assert.Zero(t, m.WorkMinutes)
	assert.Zero(t, m.TotalMinutes)
}

func TestCalculateHolidayWinsOverPunches(t *testing.T) {
	m := Calculate(CalculationInput{
		Date:      testDay,
		Pairs:     []attendance.TimePair{pairAt(t, "09:20:00", "17:00:00")},
		Shift:     dayShift(),
		IsHoliday: true,
	})

	assert.Equal(t, attendance.StatusHoliday, m.Status)
	// metrics are still computed for holiday work reporting
	assert.Equal(t, 460, m.WorkMinutes)
}

func TestCalculateLeaveWinsOverAbsence(t *testing.T) {
	m := Calculate(CalculationInput{
		Date:            testDay,
		Shift:           dayShift(),
		OnApprovedLeave: true,
	})

	assert.Equal(t, attendance.StatusLeave, m.Status)
}

func TestCalculateNoPairsIsAbsent(t *testing.T) {
	m := Calculate(CalculationInput{
		Date:  testDay,
		Shift: dayShift(),
	})

	assert.Equal(t, attendance.StatusAbsent, m.Status)
}

func TestCalculateWeekendWithoutPunchesIsNotAbsent(t *testing.T) {
	saturday := time.Date(2026, 6, 6, 0, 0, 0, 0, time.UTC)

	m := Calculate(CalculationInput{
		Date:      saturday,
		Shift:     dayShift(),
		IsWeekend: true,
	})

	assert.Equal(t, attendance.StatusPresent, m.Status)
	assert.Zero(t, m.LateMinutes)
	assert.Zero(t, m.UndertimeMinutes)
}

func TestCalculateWithoutShiftSkipsShiftMetrics(t *testing.T) {
	m := Calculate(CalculationInput{
		Date:  testDay,
		Pairs: []attendance.TimePair{pairAt(t, "09:20:00", "17:00:00")},
	})

	assert.Equal(t, attendance.StatusPresent, m.Status)
	assert.Equal(t, 460, m.WorkMinutes)
	assert.Zero(t, m.LateMinutes)
	assert.Zero(t, m.OvertimeMinutes)
	assert.Zero(t, m.UndertimeMinutes)
}

func TestCalculateNightShiftSpansMidnight(t *testing.T) {
	night := &shift.Shift{
		ID:           "night",
		StartMinute:  22 * 60,
		EndMinute:    6 * 60,
		IsNightShift: true,
	}

	in := time.Date(2026, 3, 2, 22, 0, 0, 0, time.UTC)
	out := time.Date(2026, 3, 3, 6, 0, 0, 0, time.UTC)

	m := Calculate(CalculationInput{
		Date:  testDay,
		Pairs: []attendance.TimePair{{In: &in, Out: &out}},
		Shift: night,
	})

	assert.Equal(t, attendance.StatusPresent, m.Status)
	assert.Equal(t, 480, m.WorkMinutes)
	assert.Zero(t, m.LateMinutes)
	assert.Zero(t, m.EarlyDepartureMinutes)
}

func TestCalculateIsPure(t *testing.T) {
	in := CalculationInput{
		Date:  testDay,
		Pairs: []attendance.TimePair{pairAt(t, "09:20:00", "17:00:00")},
		Shift: dayShift(),
	}

	assert.Equal(t, Calculate(in), Calculate(in))
}
