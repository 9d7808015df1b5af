package stopwatch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ticks(s *Stopwatch, n int) {
	for i := 0; i < n; i++ {
		s.Tick()
	}
}

func TestStopwatch_New(t *testing.T) {
	s := New()
	assert.Equal(t, Stopped, s.State())
	assert.Equal(t, int64(0), s.Elapsed())
	assert.False(t, s.CanLap())
}

func TestStopwatch_TickOnlyWhileRunning(t *testing.T) {
	s := New()

	assert.False(t, s.Tick())
	assert.Equal(t, int64(0), s.Elapsed())

	require.True(t, s.Start())
	assert.True(t, s.Tick())
	assert.Equal(t, Quantum, s.Elapsed())

	require.True(t, s.Pause())
	ticks(s, 50)
	assert.Equal(t, Quantum, s.Elapsed(), "stopped clock must not advance")
}

func TestStopwatch_StartIdempotent(t *testing.T) {
	s := New()

	assert.True(t, s.Start())
	assert.False(t, s.Start())
	assert.Equal(t, Running, s.State())

	ticks(s, 3)
	assert.Equal(t, int64(30), s.Elapsed())
}

func TestStopwatch_PauseIdempotent(t *testing.T) {
	s := New()

	assert.False(t, s.Pause(), "pause from stopped is a no-op")

	s.Start()
	ticks(s, 2)
	assert.True(t, s.Pause())
	assert.False(t, s.Pause())
	assert.Equal(t, Stopped, s.State())
	assert.Equal(t, int64(20), s.Elapsed())
}

func TestStopwatch_Monotonic(t *testing.T) {
	s := New()
	last := s.Elapsed()

	ops := []func(){func() { s.Start() }, func() { s.Tick() }, func() { s.Tick() }, func() { s.Pause() },
		func() { s.Tick() }, func() { s.Start() }, func() { s.Tick() }, func() { s.Lap() }}

	for round := 0; round < 20; round++ {
		for _, op := range ops {
			op()
			require.GreaterOrEqual(t, s.Elapsed(), last)
			last = s.Elapsed()
		}
	}
}

func TestStopwatch_ResetFromRunningWithLaps(t *testing.T) {
	s := New()
	s.Start()
	for i := 0; i < 3; i++ {
		ticks(s, 10)
		_, ok := s.Lap()
		require.True(t, ok)
	}
	require.Equal(t, 3, s.LapCount())

	s.Reset()
	assert.Equal(t, Stopped, s.State())
	assert.Equal(t, int64(0), s.Elapsed())
	assert.Equal(t, 0, s.LapCount())
}

func TestStopwatch_ResetFromStopped(t *testing.T) {
	s := New()
	s.Start()
	ticks(s, 5)
	s.Pause()

	s.Reset()
	assert.Equal(t, Stopped, s.State())
	assert.Equal(t, int64(0), s.Elapsed())
}

func TestStopwatch_LapBeforeStartIsNoop(t *testing.T) {
	s := New()

	_, ok := s.Lap()
	assert.False(t, ok)
	assert.Equal(t, 0, s.LapCount())
}

func TestStopwatch_LapScenario(t *testing.T) {
	s := New()
	s.Start()

	ticks(s, 100)
	first, ok := s.Lap()
	require.True(t, ok)
	assert.Equal(t, Lap{Seq: 1, Split: 1000, Cumulative: 1000}, first)

	ticks(s, 50)
	second, ok := s.Lap()
	require.True(t, ok)
	assert.Equal(t, Lap{Seq: 2, Split: 500, Cumulative: 1500, Fastest: true}, second)

	laps := s.Laps()
	assert.True(t, laps[0].Slowest)
}

func TestRunState_Text(t *testing.T) {
	b, err := json.Marshal(map[string]RunState{"a": Running, "b": Stopped})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"running","b":"stopped"}`, string(b))

	var st RunState
	require.NoError(t, st.UnmarshalText([]byte("running")))
	assert.Equal(t, Running, st)
	assert.Error(t, st.UnmarshalText([]byte("paused")))

	assert.Equal(t, "RunState(7)", RunState(7).String())
}
