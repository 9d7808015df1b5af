// Package tick abstracts the periodic schedule that drives the stopwatch.
//
// Production code asks a Factory for a Ticker instead of calling
// time.NewTicker directly. Real() returns the standard library behaviour;
// NewManual() returns a factory whose tickers fire only when Advance is
// called, so tests and scripts run without wall-clock sleeps.
package tick

import "time"

// Ticker delivers ticks on C until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Factory creates a ticker firing every period.
type Factory func(period time.Duration) Ticker

// Real returns a Factory backed by time.NewTicker.
func Real() Factory {
	return func(period time.Duration) Ticker {
		return &realTicker{t: time.NewTicker(period)}
	}
}

type realTicker struct {
	t *time.Ticker
}

func (r *realTicker) C() <-chan time.Time { return r.t.C }

func (r *realTicker) Stop() { r.t.Stop() }

var _ Ticker = (*realTicker)(nil)
