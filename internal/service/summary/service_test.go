package summary

import (
	"testing"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
)

func record(day int, status attendance.Status, workMinutes int) attendance.Record {
	return attendance.Record{
		EmployeeID:  "emp-1",
		Date:        time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC),
		Status:      status,
		WorkMinutes: workMinutes,
	}
}

func weekend(d time.Time) bool {
	return d.Weekday() == time.Saturday || d.Weekday() == time.Sunday
}

// March 2026 has 22 weekdays.
func marchInput(records []attendance.Record) BuildInput {
	return BuildInput{
		EmployeeID: "emp-1",
		Year:       2026,
		Month:      3,
		Records:    records,
		Holidays:   map[string]bool{"2026-03-04": true},
		IsWeekend:  weekend,
		Today:      time.Date(2026, 4, 5, 12, 0, 0, 0, time.UTC),
	}
}

func TestBuildBucketsDayStatuses(t *testing.T) {
	nine := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	five := time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)
	nineTwenty := time.Date(2026, 3, 3, 9, 20, 0, 0, time.UTC)

	present := record(2, attendance.StatusPresent, 480)
	present.FirstIn = &nine
	present.LastOut = &five

	late := record(3, attendance.StatusLate, 460)
	late.FirstIn = &nineTwenty

	records := []attendance.Record{
		present,
		late,
		record(5, attendance.StatusLeave, 0),
		record(6, attendance.StatusHalfDay, 180),
	}

	got := Build(marchInput(records))

	assert.Equal(t, 21, got.WorkingDays) // 22 weekdays minus the holiday
	assert.Equal(t, 1, got.HolidayDays)
	assert.Equal(t, 2, got.AttendedDays)
	assert.Equal(t, 1, got.LateDays)
	assert.Equal(t, 1, got.HalfDays)
	assert.Equal(t, 1, got.LeaveDays)
	assert.Equal(t, 17, got.AbsentDays) // every remaining past weekday

	assert.Equal(t, 1120, got.TotalWorkMinutes)
	assert.Equal(t, 9.52, got.AttendancePercentage) // 2 of 21 working days
	assert.Equal(t, 95.24, got.PunctualityScore)    // 100 - 1/21*100
	assert.Equal(t, 9.33, got.AverageWorkHours)     // 1120m over 2 attended days

	assert.Equal(t, "09:00", got.EarliestIn.Format("15:04"))
	assert.Equal(t, "17:00", got.LatestOut.Format("15:04"))
}

// June 2026 has 22 weekdays and no holidays; both rates divide by working
// days, not attended days, and half days stay out of every numerator.
func TestBuildRatesUseWorkingDayDenominator(t *testing.T) {
	records := []attendance.Record{
		{EmployeeID: "emp-1", Date: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), Status: attendance.StatusPresent, WorkMinutes: 480},
		{EmployeeID: "emp-1", Date: time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC), Status: attendance.StatusLate, WorkMinutes: 450},
		{EmployeeID: "emp-1", Date: time.Date(2026, 6, 3, 0, 0, 0, 0, time.UTC), Status: attendance.StatusHalfDay, WorkMinutes: 200},
	}

	got := Build(BuildInput{
		EmployeeID: "emp-1",
		Year:       2026,
		Month:      6,
		Records:    records,
		Holidays:   map[string]bool{},
		IsWeekend:  weekend,
		Today:      time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
	})

	assert.Equal(t, 22, got.WorkingDays)
	assert.Equal(t, 2, got.AttendedDays)
	assert.Equal(t, 9.09, got.AttendancePercentage) // 2/22*100
	assert.Equal(t, 95.45, got.PunctualityScore)    // 100 - 1/22*100
	assert.Equal(t, 9.42, got.AverageWorkHours)     // 1130m over 2 attended days
}

func TestBuildIsIdempotent(t *testing.T) {
	records := []attendance.Record{
		record(2, attendance.StatusPresent, 480),
		record(3, attendance.StatusAbsent, 0),
	}

	first := Build(marchInput(records))
	second := Build(marchInput(records))

	assert.Equal(t, first, second)
}

func TestBuildEmptyMonth(t *testing.T) {
	in := marchInput(nil)
	in.Today = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC) // month entirely in the future

	got := Build(in)

	assert.Equal(t, 21, got.WorkingDays)
	assert.Zero(t, got.AbsentDays)
	assert.Zero(t, got.AttendedDays)
	assert.Zero(t, got.AttendancePercentage)
	assert.Nil(t, got.EarliestIn)
}

func TestBuildFutureDaysAreNotAbsent(t *testing.T) {
	in := marchInput([]attendance.Record{record(2, attendance.StatusPresent, 480)})
	in.Today = time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	got := Build(in)

	// only March 3 is a past weekday without a record; March 4 is a holiday
	// and everything from today onwards is still open
	assert.Equal(t, 1, got.AbsentDays)
	assert.Equal(t, 1, got.AttendedDays)
}
