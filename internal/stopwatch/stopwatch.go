package stopwatch

import (
	"fmt"
	"time"
)

const (
	// Quantum is the elapsed time added per tick, in milliseconds.
	Quantum int64 = 10

	// Period is how often a driver should call Tick.
	Period = 10 * time.Millisecond
)

// RunState governs whether ticks advance the clock.
type RunState int

const (
	// Stopped is the initial state. Ticks are ignored.
	Stopped RunState = iota
	// Running advances elapsed time on every tick.
	Running
)

func (s RunState) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	default:
		return fmt.Sprintf("RunState(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s RunState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *RunState) UnmarshalText(b []byte) error {
	switch string(b) {
	case "stopped":
		*s = Stopped
	case "running":
		*s = Running
	default:
		return fmt.Errorf("unknown run state %q", b)
	}
	return nil
}

// Stopwatch is the clock driver: elapsed time, run state and the lap
// history it resets.
//
// Stopwatch is not safe for concurrent use. The engine serializes all calls
// through its single-writer loop.
type Stopwatch struct {
	elapsed int64
	state   RunState
	laps    LapRecorder
}

// New returns a stopped stopwatch at zero.
func New() *Stopwatch {
	return &Stopwatch{}
}

// Start moves Stopped to Running. It reports false, changing nothing, when
// already running.
func (s *Stopwatch) Start() bool {
	if s.state == Running {
		return false
	}
	s.state = Running
	return true
}

// Pause moves Running to Stopped. It reports false, changing nothing, when
// already stopped.
func (s *Stopwatch) Pause() bool {
	if s.state == Stopped {
		return false
	}
	s.state = Stopped
	return true
}

// Reset stops the clock, zeroes elapsed time and clears the laps.
// Valid from any state.
func (s *Stopwatch) Reset() {
	s.state = Stopped
	s.elapsed = 0
	s.laps.Clear()
}

// Tick adds one Quantum while running and reports whether it did.
func (s *Stopwatch) Tick() bool {
	if s.state != Running {
		return false
	}
	s.elapsed += Quantum
	return true
}

// Lap records a lap at the current elapsed time.
// It reports false when nothing has elapsed yet.
func (s *Stopwatch) Lap() (Lap, bool) {
	return s.laps.Record(s.elapsed)
}

// Elapsed returns the elapsed time in milliseconds.
func (s *Stopwatch) Elapsed() int64 {
	return s.elapsed
}

// State returns the current run state.
func (s *Stopwatch) State() RunState {
	return s.state
}

// CanLap reports whether a lap would be recorded right now.
func (s *Stopwatch) CanLap() bool {
	return s.elapsed > 0
}

// Laps returns a copy of the lap history in recording order.
func (s *Stopwatch) Laps() []Lap {
	return s.laps.Laps()
}

// LapCount returns the number of recorded laps.
func (s *Stopwatch) LapCount() int {
	return s.laps.Len()
}
