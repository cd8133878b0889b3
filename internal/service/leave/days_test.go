package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTotalDaysFullWeek(t *testing.T) {
	// Monday through Sunday; only the five weekdays count
	got := TotalDays(day(2026, 3, 2), day(2026, 3, 8), false, nil)
	assert.Equal(t, 5.0, got)
}

func TestTotalDaysExcludesHolidays(t *testing.T) {
	wednesday := day(2026, 3, 4)
	isHoliday := func(d time.Time) bool { return d.Equal(wednesday) }

	got := TotalDays(day(2026, 3, 2), day(2026, 3, 6), false, isHoliday)
	assert.Equal(t, 4.0, got)
}

func TestTotalDaysHalfDay(t *testing.T) {
	got := TotalDays(day(2026, 3, 2), day(2026, 3, 2), true, nil)
	assert.Equal(t, 0.5, got)
}

func TestTotalDaysWeekendOnlyRange(t *testing.T) {
	got := TotalDays(day(2026, 3, 7), day(2026, 3, 8), false, nil)
	assert.Equal(t, 0.0, got)
}

func TestTotalDaysSingleWeekday(t *testing.T) {
	got := TotalDays(day(2026, 3, 3), day(2026, 3, 3), false, nil)
	assert.Equal(t, 1.0, got)
}
