// Package script runs recorded stopwatch sessions.
//
// A script is a YAML file of steps. Each step performs one action, lets time
// pass, or checks the display:
//
//	name: two_laps
//	description: "Second lap is faster"
//	steps:
//	  - do: start
//	  - tick: 100          # 100 ticks of 10ms = 1s
//	  - do: lap
//	  - tick: 50
//	  - do: lap
//	    expect:
//	      display: "00:01.50"
//	      laps: 2
//	      fastest: [2]
//	      slowest: [1]
//
// Scripts are validated against an embedded CUE schema, then executed against
// a real engine driven by a manual ticker and journaled to an in-memory
// store. Runs are fully deterministic: the same script always produces the
// same journal, which makes it suitable for golden file comparison.
//
// # Expectations
//
// All expect fields are optional; only the fields present are checked.
//
//   - display: formatted elapsed time
//   - state: "stopped" or "running"
//   - elapsed_ms: raw elapsed milliseconds
//   - can_lap: whether a lap would be recorded
//   - laps: number of recorded laps
//   - splits: formatted split of each lap, most recent first
//   - fastest, slowest: positions flagged, ascending (lap 1 is the oldest)
package script
