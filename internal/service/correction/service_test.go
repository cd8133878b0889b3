package correction

import (
	"testing"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/domain/correction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord() attendance.Record {
	in := time.Date(2026, 3, 2, 9, 20, 0, 0, time.UTC)
	out := time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)
	notes := "device clock drift"
	return attendance.Record{
		ID:         "rec-1",
		EmployeeID: "emp-1",
		Date:       time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Pairs:      []attendance.TimePair{{In: &in, Out: &out}},
		Notes:      &notes,
	}
}

func TestSnapshotRecordCapturesPairsAndNotes(t *testing.T) {
	snapshot := snapshotRecord(testRecord())

	require.NotNil(t, snapshot[correction.FieldCheckIn1])
	assert.Equal(t, "09:20:00", *snapshot[correction.FieldCheckIn1])
	require.NotNil(t, snapshot[correction.FieldCheckOut1])
	assert.Equal(t, "17:00:00", *snapshot[correction.FieldCheckOut1])

	// unused pair slots are present but empty
	assert.Nil(t, snapshot[correction.FieldCheckIn2])
	assert.Nil(t, snapshot[correction.FieldCheckOut6])

	require.NotNil(t, snapshot[correction.FieldNotes])
	assert.Equal(t, "device clock drift", *snapshot[correction.FieldNotes])
}

func TestApplyDiffOverridesSingleField(t *testing.T) {
	corrected := "09:00:00"
	diff := correction.FieldDiff{correction.FieldCheckIn1: &corrected}

	pairs, notes, err := applyDiff(testRecord(), diff)

	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "09:00:00", pairs[0].In.Format("15:04:05"))
	// the untouched out punch survives
	assert.Equal(t, "17:00:00", pairs[0].Out.Format("15:04:05"))
	require.NotNil(t, notes)
	assert.Equal(t, "device clock drift", *notes)
}

func TestApplyDiffClearsAPunch(t *testing.T) {
	diff := correction.FieldDiff{correction.FieldCheckOut1: nil}

	pairs, _, err := applyDiff(testRecord(), diff)

	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Nil(t, pairs[0].Out)
	assert.NotNil(t, pairs[0].In)
}

func TestApplyDiffAddsASecondPair(t *testing.T) {
	in2 := "18:00:00"
	out2 := "20:00:00"
	diff := correction.FieldDiff{
		correction.FieldCheckIn2:  &in2,
		correction.FieldCheckOut2: &out2,
	}

	pairs, _, err := applyDiff(testRecord(), diff)

	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Equal(t, "18:00:00", pairs[1].In.Format("15:04:05"))
	assert.Equal(t, "20:00:00", pairs[1].Out.Format("15:04:05"))
}

func TestApplyDiffUpdatesNotes(t *testing.T) {
	newNotes := "corrected after device replacement"
	diff := correction.FieldDiff{correction.FieldNotes: &newNotes}

	_, notes, err := applyDiff(testRecord(), diff)

	require.NoError(t, err)
	require.NotNil(t, notes)
	assert.Equal(t, newNotes, *notes)
}

func TestApplyDiffRejectsGarbageTime(t *testing.T) {
	bad := "25:99"
	diff := correction.FieldDiff{correction.FieldCheckIn1: &bad}

	_, _, err := applyDiff(testRecord(), diff)

	assert.Error(t, err)
}

func TestSnapshotThenApplyRoundTrips(t *testing.T) {
	original := testRecord()
	snapshot := snapshotRecord(original)

	// applying the snapshot over a modified record restores the original pairs
	modified := original
	changed := "10:00:00"
	pairs, notes, err := applyDiff(modified, correction.FieldDiff{correction.FieldCheckIn1: &changed})
	require.NoError(t, err)
	modified.Pairs = pairs
	modified.Notes = notes

	restored, restoredNotes, err := applyDiff(modified, snapshot)
	require.NoError(t, err)
	require.Len(t, restored, 1)
	assert.Equal(t, "09:20:00", restored[0].In.Format("15:04:05"))
	assert.Equal(t, "17:00:00", restored[0].Out.Format("15:04:05"))
	require.NotNil(t, restoredNotes)
	assert.Equal(t, "device clock drift", *restoredNotes)
}
