package script

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/roach88/lapwatch/internal/engine"
	"github.com/roach88/lapwatch/internal/stopwatch"
	"github.com/roach88/lapwatch/internal/store"
	"github.com/roach88/lapwatch/internal/tick"
	"github.com/roach88/lapwatch/internal/trace"
)

// Result is the outcome of running a script.
type Result struct {
	// Pass is true when every expectation matched.
	Pass bool `json:"pass"`

	// Errors lists expectation mismatches, one per failed field.
	Errors []string `json:"errors,omitempty"`

	// Events is the journal in seq order.
	Events []trace.Event `json:"events"`

	// Runs lists the run IDs in the journal, oldest first.
	Runs []string `json:"runs"`

	// Final is the snapshot after the last step.
	Final stopwatch.Snapshot `json:"final"`
}

// AddError records a mismatch and marks the result as failed.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}

// Option configures Run.
type Option func(*runConfig)

type runConfig struct {
	journal func(*store.Store)
}

// WithJournal is called with the populated journal before it is closed,
// for callers that need more than Result.Events (raw payloads, per-run reads).
func WithJournal(fn func(*store.Store)) Option {
	return func(c *runConfig) {
		c.journal = fn
	}
}

// Run executes s against a fresh engine.
//
// Each run gets its own in-memory journal, a manual ticker, and sequential
// run IDs (run-1, run-2, ...), so identical scripts yield identical results.
// Expectation mismatches are reported in Result; the returned error is for
// failures of the machinery itself.
func Run(ctx context.Context, s *Script, opts ...Option) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var cfg runConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	st, err := store.Open(store.Memory)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	ticks := tick.NewManual()
	eng := engine.New(
		engine.WithTickerFactory(ticks.Factory()),
		engine.WithJournal(st),
		engine.WithRunIDGenerator(engine.NewSequentialGenerator("run")),
	)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- eng.Run(runCtx) }()

	result := &Result{Pass: true, Errors: []string{}}

	stepErr := execute(ctx, eng, ticks, s, result)

	eng.Stop()
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return nil, fmt.Errorf("engine: %w", err)
	}
	if stepErr != nil {
		return nil, stepErr
	}

	if result.Events, err = st.ReadAll(ctx); err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	if result.Runs, err = st.Runs(ctx); err != nil {
		return nil, fmt.Errorf("read runs: %w", err)
	}
	if cfg.journal != nil {
		cfg.journal(st)
	}

	slog.Debug("script finished",
		"script", s.Name,
		"pass", result.Pass,
		"events", len(result.Events),
	)

	return result, nil
}

func execute(ctx context.Context, eng *engine.Engine, ticks *tick.Manual, s *Script, result *Result) error {
	snap, err := eng.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("initial snapshot: %w", err)
	}

	for i, step := range s.Steps {
		n := i + 1

		switch {
		case step.Do != "":
			action, err := engine.ParseAction(step.Do)
			if err != nil {
				return fmt.Errorf("step %d: %w", n, err)
			}
			if snap, err = eng.Do(ctx, action); err != nil {
				return fmt.Errorf("step %d: %w", n, err)
			}

		case step.Tick > 0:
			delivered := ticks.Advance(step.Tick)
			slog.Debug("ticks delivered", "step", n, "requested", step.Tick, "delivered", delivered)
			if snap, err = eng.Snapshot(ctx); err != nil {
				return fmt.Errorf("step %d: %w", n, err)
			}
		}

		if step.Expect != nil {
			for _, msg := range step.Expect.check(snap) {
				result.AddError(fmt.Sprintf("step %d: %s", n, msg))
			}
		}
	}

	result.Final = snap
	return nil
}

// check compares snap with the expectation and returns one message per
// mismatched field.
func (e *Expect) check(snap stopwatch.Snapshot) []string {
	var msgs []string
	mismatch := func(field string, got, want any) {
		msgs = append(msgs, fmt.Sprintf("%s = %v, want %v", field, got, want))
	}

	if e.Display != nil && snap.Display != *e.Display {
		mismatch("display", snap.Display, *e.Display)
	}
	if e.State != nil && snap.State.String() != *e.State {
		mismatch("state", snap.State, *e.State)
	}
	if e.ElapsedMS != nil && snap.ElapsedMS != *e.ElapsedMS {
		mismatch("elapsed_ms", snap.ElapsedMS, *e.ElapsedMS)
	}
	if e.CanLap != nil && snap.CanLap != *e.CanLap {
		mismatch("can_lap", snap.CanLap, *e.CanLap)
	}
	if e.Laps != nil && len(snap.Laps) != *e.Laps {
		mismatch("laps", len(snap.Laps), *e.Laps)
	}
	if e.Splits != nil {
		got := make([]string, len(snap.Laps))
		for i, lap := range snap.Laps {
			got[i] = lap.Split
		}
		if !slices.Equal(got, e.Splits) {
			mismatch("splits", got, e.Splits)
		}
	}
	if e.Fastest != nil && !slices.Equal(snap.Fastest(), e.Fastest) {
		mismatch("fastest", snap.Fastest(), e.Fastest)
	}
	if e.Slowest != nil && !slices.Equal(snap.Slowest(), e.Slowest) {
		mismatch("slowest", snap.Slowest(), e.Slowest)
	}

	return msgs
}
