package attendance

import (
	"testing"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func punch(t *testing.T, clock string, direction attendance.PunchType) attendance.PunchLog {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04:05", "2026-03-02 "+clock)
	require.NoError(t, err)
	return attendance.PunchLog{Timestamp: ts, Type: direction}
}

func TestNormalizePunchesOrdersByTimestamp(t *testing.T) {
	punches := []attendance.PunchLog{
		punch(t, "17:00:00", attendance.PunchOut),
		punch(t, "09:00:00", attendance.PunchIn),
		punch(t, "13:00:00", attendance.PunchIn),
		punch(t, "12:00:00", attendance.PunchOut),
	}

	result := NormalizePunches(punches)

	require.Len(t, result.Pairs, 2)
	assert.Equal(t, "09:00:00", result.Pairs[0].In.Format("15:04:05"))
	assert.Equal(t, "12:00:00", result.Pairs[0].Out.Format("15:04:05"))
	assert.Equal(t, "13:00:00", result.Pairs[1].In.Format("15:04:05"))
	assert.Equal(t, "17:00:00", result.Pairs[1].Out.Format("15:04:05"))
	assert.Zero(t, result.Dropped)
	assert.False(t, result.Incomplete)
}

func TestNormalizePunchesDropsWrongDirection(t *testing.T) {
	punches := []attendance.PunchLog{
		punch(t, "09:00:00", attendance.PunchIn),
		punch(t, "09:00:30", attendance.PunchIn), // double tap
		punch(t, "17:00:00", attendance.PunchOut),
		punch(t, "17:00:10", attendance.PunchOut), // double tap
	}

	result := NormalizePunches(punches)

	require.Len(t, result.Pairs, 1)
	assert.Equal(t, 2, result.Dropped)
	assert.True(t, result.Pairs[0].Complete())
}

func TestNormalizePunchesLeadingOutIsDropped(t *testing.T) {
	punches := []attendance.PunchLog{
		punch(t, "08:00:00", attendance.PunchOut), // stale from yesterday
		punch(t, "09:00:00", attendance.PunchIn),
		punch(t, "17:00:00", attendance.PunchOut),
	}

	result := NormalizePunches(punches)

	require.Len(t, result.Pairs, 1)
	assert.Equal(t, 1, result.Dropped)
	assert.Equal(t, "09:00:00", result.Pairs[0].In.Format("15:04:05"))
}

func TestNormalizePunchesCapsAtMaxPairs(t *testing.T) {
	var punches []attendance.PunchLog
	for i := 0; i < attendance.MaxPairs+2; i++ {
		in := punch(t, "08:00:00", attendance.PunchIn)
		in.Timestamp = in.Timestamp.Add(time.Duration(i) * time.Hour)
		out := punch(t, "08:30:00", attendance.PunchOut)
		out.Timestamp = out.Timestamp.Add(time.Duration(i) * time.Hour)
		punches = append(punches, in, out)
	}

	result := NormalizePunches(punches)

	assert.Len(t, result.Pairs, attendance.MaxPairs)
	// the seventh and eighth cycles are dropped whole
	assert.Equal(t, 4, result.Dropped)
}

func TestNormalizePunchesOpenTrailingIn(t *testing.T) {
	punches := []attendance.PunchLog{
		punch(t, "09:00:00", attendance.PunchIn),
	}

	result := NormalizePunches(punches)

	require.Len(t, result.Pairs, 1)
	assert.Nil(t, result.Pairs[0].Out)
	assert.True(t, result.Incomplete)
}

func TestNormalizePunchesIsDeterministic(t *testing.T) {
	punches := []attendance.PunchLog{
		punch(t, "13:00:00", attendance.PunchIn),
		punch(t, "09:00:00", attendance.PunchIn),
		punch(t, "12:00:00", attendance.PunchOut),
		punch(t, "17:00:00", attendance.PunchOut),
	}

	first := NormalizePunches(punches)
	second := NormalizePunches(punches)

	assert.Equal(t, first, second)
}

func TestPairsFromClockTimes(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	in := "09:00:00"
	out := "17:00:00"

	pairs, err := PairsFromClockTimes(date, [][2]*string{
		{&in, &out},
		{nil, nil},
	})

	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), *pairs[0].In)
	assert.Equal(t, time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC), *pairs[0].Out)
}

func TestPairsFromClockTimesRejectsGarbage(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	bad := "not-a-time"

	_, err := PairsFromClockTimes(date, [][2]*string{{&bad, nil}})

	assert.Error(t, err)
}
