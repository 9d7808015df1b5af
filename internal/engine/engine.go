package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/roach88/lapwatch/internal/metrics"
	"github.com/roach88/lapwatch/internal/stopwatch"
	"github.com/roach88/lapwatch/internal/tick"
	"github.com/roach88/lapwatch/internal/trace"
)

// Journal receives one event per processed action.
// Implemented by store.Store.
type Journal interface {
	Append(ctx context.Context, ev trace.Event) error
}

// Engine is the single-writer stopwatch event loop.
//
// Thread-safety model:
//   - Do(), Snapshot(), Stop(): safe from any goroutine
//   - Run(): must be called from exactly one goroutine
//
// INVARIANTS:
//   - ticker is non-nil exactly while the stopwatch is running
//   - only Run touches sw, ticker and runID
type Engine struct {
	sw      *stopwatch.Stopwatch
	seq     *Sequencer
	queue   *commandQueue
	tickers tick.Factory
	ticker  tick.Ticker
	runIDs  RunIDGenerator
	runID   string
	journal Journal
	metrics *metrics.Collector

	done     chan struct{}
	doneOnce sync.Once
}

// Option configures an Engine.
type Option func(*Engine)

// WithTickerFactory replaces the wall-clock ticker, typically with
// tick.NewManual().Factory() in tests and scripts.
func WithTickerFactory(f tick.Factory) Option {
	return func(e *Engine) {
		e.tickers = f
	}
}

// WithJournal appends every processed action to j.
func WithJournal(j Journal) Option {
	return func(e *Engine) {
		e.journal = j
	}
}

// WithMetrics records activity on c.
func WithMetrics(c *metrics.Collector) Option {
	return func(e *Engine) {
		e.metrics = c
	}
}

// WithRunIDGenerator sets how runs are named. Default: UUIDv7Generator.
func WithRunIDGenerator(g RunIDGenerator) Option {
	return func(e *Engine) {
		e.runIDs = g
	}
}

// New creates a stopped engine at zero. Call Run to start processing.
func New(opts ...Option) *Engine {
	e := &Engine{
		sw:      stopwatch.New(),
		seq:     NewSequencer(),
		queue:   newCommandQueue(),
		tickers: tick.Real(),
		runIDs:  UUIDv7Generator{},
		done:    make(chan struct{}),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.runID = e.runIDs.Generate()
	return e
}

// Do applies a user action and returns the snapshot taken right after it.
//
// Invalid transitions (start while running, pause while stopped, lap at
// zero) are absorbed as no-ops and still return a snapshot.
func (e *Engine) Do(ctx context.Context, a Action) (stopwatch.Snapshot, error) {
	if !a.valid() {
		return stopwatch.Snapshot{}, NewUnknownActionError(a.String())
	}
	return e.submit(ctx, a)
}

// Snapshot returns the current state without changing it.
func (e *Engine) Snapshot(ctx context.Context) (stopwatch.Snapshot, error) {
	return e.submit(ctx, actionView)
}

func (e *Engine) submit(ctx context.Context, a Action) (stopwatch.Snapshot, error) {
	cmd := command{action: a, reply: make(chan stopwatch.Snapshot, 1)}
	if !e.queue.Enqueue(cmd) {
		return stopwatch.Snapshot{}, NewStoppedError()
	}

	select {
	case snap := <-cmd.reply:
		return snap, nil
	case <-ctx.Done():
		return stopwatch.Snapshot{}, ctx.Err()
	case <-e.done:
		// The loop may have answered just before exiting.
		select {
		case snap := <-cmd.reply:
			return snap, nil
		default:
			return stopwatch.Snapshot{}, NewStoppedError()
		}
	}
}

// Run processes commands and ticks until ctx is cancelled or Stop is called.
//
// CRITICAL: Must be called from exactly ONE goroutine.
//
// Commands already queued when Stop is called are still processed. On
// return the ticker is stopped and later calls to Do fail with
// ErrCodeStopped.
func (e *Engine) Run(ctx context.Context) error {
	slog.Info("engine starting", "run_id", e.runID)
	defer e.shutdown()

	for {
		if cmd, ok := e.queue.TryDequeue(); ok {
			e.process(ctx, cmd)
			continue
		}

		select {
		case <-ctx.Done():
			slog.Info("engine stopping: context cancelled")
			return ctx.Err()

		case <-e.queue.Wait():
			if e.queue.Drained() {
				slog.Info("engine stopping: queue closed")
				return nil
			}

		case <-e.tickC():
			if e.sw.Tick() {
				e.metrics.ObserveTick()
				e.metrics.SetState(e.sw.Elapsed(), true)
			}
		}
	}
}

// Stop closes the command queue; Run returns once it is drained.
func (e *Engine) Stop() {
	e.queue.Close()
}

// Done is closed when Run has returned.
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

func (e *Engine) shutdown() {
	e.stopTicker()
	e.queue.Close()
	e.doneOnce.Do(func() { close(e.done) })
}

// tickC returns the live ticker's channel, or nil (blocks forever in a
// select) while stopped.
func (e *Engine) tickC() <-chan time.Time {
	if e.ticker == nil {
		return nil
	}
	return e.ticker.C()
}

func (e *Engine) startTicker() {
	if e.ticker != nil {
		return
	}
	e.ticker = e.tickers(stopwatch.Period)
}

func (e *Engine) stopTicker() {
	if e.ticker == nil {
		return
	}
	e.ticker.Stop()
	e.ticker = nil
}

// process applies one command.
// CRITICAL: Called only from Run() goroutine - single-writer guarantee.
func (e *Engine) process(ctx context.Context, cmd command) {
	if cmd.action == actionView {
		cmd.reply <- e.sw.Snapshot()
		return
	}

	var (
		applied bool
		lap     stopwatch.Lap
	)

	switch cmd.action {
	case ActionStart:
		if applied = e.sw.Start(); applied {
			e.startTicker()
		}
	case ActionPause:
		if applied = e.sw.Pause(); applied {
			e.stopTicker()
		}
	case ActionReset:
		e.stopTicker()
		e.sw.Reset()
		applied = true
	case ActionLap:
		lap, applied = e.sw.Lap()
		if applied {
			e.metrics.ObserveLap(lap.Split)
		}
	}

	ev := trace.Event{
		Seq:       e.seq.Next(),
		RunID:     e.runID,
		Action:    cmd.action.String(),
		Applied:   applied,
		State:     e.sw.State().String(),
		ElapsedMS: e.sw.Elapsed(),
		Display:   stopwatch.Format(e.sw.Elapsed()),
		LapCount:  e.sw.LapCount(),
	}
	if cmd.action == ActionLap && applied {
		ev.LapSeq = lap.Seq
		ev.SplitMS = lap.Split
	}

	slog.Debug("action processed",
		"seq", ev.Seq,
		"run_id", ev.RunID,
		"action", ev.Action,
		"applied", ev.Applied,
		"elapsed", ev.Display,
	)

	// A reset closes the current run; the next action opens a new one.
	if cmd.action == ActionReset {
		e.runID = e.runIDs.Generate()
	}

	e.metrics.ObserveAction(ev.Action, applied)
	e.metrics.SetState(e.sw.Elapsed(), e.sw.State() == stopwatch.Running)

	if e.journal != nil {
		// Log and continue: the stopwatch must keep running if the journal fails.
		if err := e.journal.Append(ctx, ev); err != nil {
			slog.Error("journal append failed",
				"seq", ev.Seq,
				"action", ev.Action,
				"error", err,
			)
		}
	}

	cmd.reply <- e.sw.Snapshot()
}
