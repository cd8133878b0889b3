package attendance

import (
	"sort"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
)

// NormalizeResult carries the ordered pairs plus bookkeeping about what the
// normalizer had to discard.
type NormalizeResult struct {
	Pairs []attendance.TimePair

	// Dropped counts punches discarded as device noise: wrong-direction
	// punches (double taps, missed punches) and anything beyond the sixth
	// pair. The raw punch log keeps the originals.
	Dropped int

	// Incomplete is set when the last pair has an IN with no matching OUT.
	Incomplete bool
}

// NormalizePunches turns the raw punch multiset of one employee-day into an
// ordered list of at most MaxPairs (in, out) pairs.
//
// Punches are sorted by timestamp; ties keep device delivery order. The walk
// alternates the expected direction starting with IN. A punch of the wrong
// direction is dropped rather than rejected: real devices produce duplicate
// and missed punches, and reconciliation must degrade instead of erroring.
// A trailing IN with no OUT leaves the final pair open, which downstream
// classification turns into INCOMPLETE.
func NormalizePunches(punches []attendance.PunchLog) NormalizeResult {
	sorted := make([]attendance.PunchLog, len(punches))
	copy(sorted, punches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	var result NormalizeResult
	expectIn := true

	for _, punch := range sorted {
		if expectIn {
			if punch.Type != attendance.PunchIn {
				result.Dropped++
				continue
			}
			if len(result.Pairs) == attendance.MaxPairs {
				result.Dropped++
				continue
			}
			in := punch.Timestamp
			result.Pairs = append(result.Pairs, attendance.TimePair{In: &in})
			expectIn = false
		} else {
			if punch.Type != attendance.PunchOut {
				result.Dropped++
				continue
			}
			out := punch.Timestamp
			result.Pairs[len(result.Pairs)-1].Out = &out
			expectIn = true
		}
	}

	if n := len(result.Pairs); n > 0 && result.Pairs[n-1].Out == nil {
		result.Incomplete = true
	}

	return result
}

// PairsFromClockTimes rebuilds pairs from "15:04:05" strings anchored on the
// record's date. Used by the correction engine when applying a field diff.
func PairsFromClockTimes(date time.Time, clocks [][2]*string) ([]attendance.TimePair, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	var pairs []attendance.TimePair
	for _, clock := range clocks {
		var pair attendance.TimePair
		if clock[0] != nil {
			in, err := anchorClock(day, *clock[0])
			if err != nil {
				return nil, err
			}
			pair.In = &in
		}
		if clock[1] != nil {
			out, err := anchorClock(day, *clock[1])
			if err != nil {
				return nil, err
			}
			pair.Out = &out
		}
		if pair.In == nil && pair.Out == nil {
			continue
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

func anchorClock(day time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04:05", clock)
	if err != nil {
		t, err = time.Parse("15:04", clock)
		if err != nil {
			return time.Time{}, err
		}
	}
	return day.Add(time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second), nil
}
