// Package stopwatch implements the lapwatch timing core.
//
// The core is a pure state machine with no goroutines and no wall clock:
//
//   - Stopwatch is the clock driver. It owns the elapsed time and the run
//     state, and advances by a fixed Quantum each time Tick is called while
//     running.
//   - LapRecorder derives lap entries from an elapsed snapshot and flags the
//     fastest and slowest laps over the whole history.
//   - Format renders milliseconds as MM:SS.CS.
//
// Scheduling ticks is the caller's job (see package engine), which keeps the
// core deterministic and trivially testable.
//
// INVARIANTS:
//   - Elapsed time is never negative, never decreases while running and never
//     changes while stopped.
//   - Lap cumulative durations are non-decreasing (a lap taken while paused
//     has a zero split) and the splits sum to the last cumulative duration.
//
// Violating an invariant is a programming error and panics.
package stopwatch
