package shift

import (
	"testing"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPickAssignmentBoundedWinsOverOpenEnded(t *testing.T) {
	to := date(2026, 3, 31)
	assignments := []shift.Assignment{
		{ID: "open", ShiftID: "regular", EffectiveFrom: date(2026, 1, 1)},
		{ID: "bounded", ShiftID: "night", EffectiveFrom: date(2026, 3, 1), EffectiveTo: &to},
	}

	picked := PickAssignment(assignments, date(2026, 3, 15))

	require.NotNil(t, picked)
	assert.Equal(t, "bounded", picked.ID)
}

func TestPickAssignmentFallsBackToOpenEnded(t *testing.T) {
	to := date(2026, 3, 31)
	assignments := []shift.Assignment{
		{ID: "open", ShiftID: "regular", EffectiveFrom: date(2026, 1, 1)},
		{ID: "bounded", ShiftID: "night", EffectiveFrom: date(2026, 3, 1), EffectiveTo: &to},
	}

	picked := PickAssignment(assignments, date(2026, 4, 10))

	require.NotNil(t, picked)
	assert.Equal(t, "open", picked.ID)
}

func TestPickAssignmentNoneCovering(t *testing.T) {
	to := date(2026, 3, 31)
	assignments := []shift.Assignment{
		{ID: "bounded", EffectiveFrom: date(2026, 3, 1), EffectiveTo: &to},
	}

	assert.Nil(t, PickAssignment(assignments, date(2026, 2, 1)))
	assert.Nil(t, PickAssignment(assignments, date(2026, 4, 1)))
	assert.Nil(t, PickAssignment(nil, date(2026, 4, 1)))
}

func TestPickAssignmentBoundaryDatesInclusive(t *testing.T) {
	to := date(2026, 3, 31)
	assignments := []shift.Assignment{
		{ID: "bounded", EffectiveFrom: date(2026, 3, 1), EffectiveTo: &to},
	}

	require.NotNil(t, PickAssignment(assignments, date(2026, 3, 1)))
	require.NotNil(t, PickAssignment(assignments, date(2026, 3, 31)))
}
