package stopwatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLapRecorder_ZeroIsNoop(t *testing.T) {
	var r LapRecorder

	_, ok := r.Record(0)
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
}

func TestLapRecorder_FirstLapUnflagged(t *testing.T) {
	var r LapRecorder

	lap, ok := r.Record(1000)
	require.True(t, ok)
	assert.Equal(t, Lap{Seq: 1, Split: 1000, Cumulative: 1000}, lap)
}

func TestLapRecorder_SecondLapFlagsBoth(t *testing.T) {
	var r LapRecorder
	r.Record(1000)

	lap, ok := r.Record(1500)
	require.True(t, ok)
	assert.Equal(t, Lap{Seq: 2, Split: 500, Cumulative: 1500, Fastest: true}, lap)

	laps := r.Laps()
	require.Len(t, laps, 2)
	assert.True(t, laps[0].Slowest)
	assert.False(t, laps[0].Fastest)
	assert.True(t, laps[1].Fastest)
	assert.False(t, laps[1].Slowest)
}

func TestLapRecorder_EqualSplitsUnflagged(t *testing.T) {
	var r LapRecorder
	r.Record(500)
	r.Record(1000)
	r.Record(1500)

	for _, lap := range r.Laps() {
		assert.False(t, lap.Fastest, "lap %d", lap.Seq)
		assert.False(t, lap.Slowest, "lap %d", lap.Seq)
	}
}

func TestLapRecorder_TiesFlagEveryTiedLap(t *testing.T) {
	var r LapRecorder
	// splits: 300, 100, 300, 100, 200
	for _, at := range []int64{300, 400, 700, 800, 1000} {
		r.Record(at)
	}

	var fastest, slowest []int
	for _, lap := range r.Laps() {
		if lap.Fastest {
			fastest = append(fastest, lap.Seq)
		}
		if lap.Slowest {
			slowest = append(slowest, lap.Seq)
		}
		assert.False(t, lap.Fastest && lap.Slowest, "lap %d flagged both", lap.Seq)
	}
	assert.Equal(t, []int{2, 4}, fastest)
	assert.Equal(t, []int{1, 3}, slowest)
}

func TestLapRecorder_NewExtremeClearsOldFlags(t *testing.T) {
	var r LapRecorder
	r.Record(200) // 200
	r.Record(300) // 100
	r.Record(310) // 10, new fastest

	laps := r.Laps()
	assert.False(t, laps[1].Fastest)
	assert.True(t, laps[2].Fastest)
	assert.True(t, laps[0].Slowest)

	r.Record(1310) // 1000, new slowest
	laps = r.Laps()
	assert.False(t, laps[0].Slowest)
	assert.True(t, laps[3].Slowest)
}

func TestLapRecorder_SplitsSumToLastCumulative(t *testing.T) {
	var r LapRecorder
	for _, at := range []int64{130, 250, 990, 1000, 4210, 4220} {
		r.Record(at)
	}

	laps := r.Laps()
	var sum int64
	for i, lap := range laps {
		sum += lap.Split
		assert.Equal(t, i+1, lap.Seq)
		if i > 0 {
			assert.Greater(t, lap.Cumulative, laps[i-1].Cumulative)
		}
	}
	assert.Equal(t, laps[len(laps)-1].Cumulative, sum)
}

func TestLapRecorder_ZeroSplitWhilePaused(t *testing.T) {
	var r LapRecorder
	r.Record(1000)

	lap, ok := r.Record(1000)
	require.True(t, ok)
	assert.Equal(t, Lap{Seq: 2, Split: 0, Cumulative: 1000, Fastest: true}, lap)

	laps := r.Laps()
	assert.Equal(t, laps[0].Cumulative, laps[1].Cumulative)
	assert.True(t, laps[0].Slowest)
}

func TestLapRecorder_BackwardsPanics(t *testing.T) {
	var r LapRecorder
	r.Record(1000)

	assert.Panics(t, func() { r.Record(500) })
}

func TestLapRecorder_Clear(t *testing.T) {
	var r LapRecorder
	r.Record(100)
	r.Record(200)

	r.Clear()
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Laps())

	lap, ok := r.Record(50)
	require.True(t, ok)
	assert.Equal(t, 1, lap.Seq)
	assert.Equal(t, int64(50), lap.Split)
}

func TestLapRecorder_LapsIsCopy(t *testing.T) {
	var r LapRecorder
	r.Record(100)

	laps := r.Laps()
	laps[0].Split = 999

	assert.Equal(t, int64(100), r.Laps()[0].Split)
}
