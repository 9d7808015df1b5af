package stopwatch

import "fmt"

// Lap is one recorded checkpoint.
//
// Seq, Split and Cumulative never change after the lap is recorded. Fastest
// and Slowest are recomputed over the whole history on every append.
type Lap struct {
	Seq        int   `json:"seq"`
	Split      int64 `json:"split_ms"`
	Cumulative int64 `json:"cumulative_ms"`
	Fastest    bool  `json:"fastest"`
	Slowest    bool  `json:"slowest"`
}

// LapRecorder holds the lap history for one run.
// The zero value is an empty history ready for use.
type LapRecorder struct {
	laps []Lap
}

// Record appends a lap taken at the given elapsed time and returns it with
// its flags as recomputed.
//
// Recording at zero elapsed is a no-op and returns false: a clock that has
// not started cannot be lapped.
func (r *LapRecorder) Record(current int64) (Lap, bool) {
	if current == 0 {
		return Lap{}, false
	}

	var previous int64
	if n := len(r.laps); n > 0 {
		previous = r.laps[n-1].Cumulative
	}

	split := current - previous
	if split < 0 {
		panic(fmt.Sprintf("stopwatch: lap at %dms precedes previous lap at %dms", current, previous))
	}

	r.laps = append(r.laps, Lap{
		Seq:        len(r.laps) + 1,
		Split:      split,
		Cumulative: current,
	})
	r.recomputeExtremes()

	return r.laps[len(r.laps)-1], true
}

// recomputeExtremes re-derives Fastest and Slowest for every lap.
//
// Flags belong to the set, not to an insertion, so the whole history is
// rescanned each time. Ties flag every tied lap; a single lap or a history of
// equal splits flags nothing.
func (r *LapRecorder) recomputeExtremes() {
	for i := range r.laps {
		r.laps[i].Fastest = false
		r.laps[i].Slowest = false
	}
	if len(r.laps) < 2 {
		return
	}

	lo, hi := r.laps[0].Split, r.laps[0].Split
	for _, lap := range r.laps[1:] {
		lo = min(lo, lap.Split)
		hi = max(hi, lap.Split)
	}
	if lo == hi {
		return
	}

	for i := range r.laps {
		r.laps[i].Fastest = r.laps[i].Split == lo
		r.laps[i].Slowest = r.laps[i].Split == hi
	}
}

// Clear empties the history.
func (r *LapRecorder) Clear() {
	r.laps = nil
}

// Len returns the number of recorded laps.
func (r *LapRecorder) Len() int {
	return len(r.laps)
}

// Laps returns a copy of the history in recording order.
func (r *LapRecorder) Laps() []Lap {
	out := make([]Lap, len(r.laps))
	copy(out, r.laps)
	return out
}
