package tick

import (
	"sync"
	"time"
)

// Manual is a deterministic Factory. Its tickers fire only when Advance is
// called, and each tick is handed over synchronously: Advance does not return
// from a tick until the consumer has received it.
//
// At most one ticker is live at a time; creating a new one replaces the old.
//
// Thread-safety: all methods are safe for concurrent use.
type Manual struct {
	mu      sync.Mutex
	live    *manualTicker
	created int
	now     time.Time
}

// NewManual creates a manual factory whose clock starts at the Unix epoch.
func NewManual() *Manual {
	return &Manual{now: time.Unix(0, 0).UTC()}
}

// Factory returns the Factory to inject into the code under test.
func (m *Manual) Factory() Factory {
	return m.newTicker
}

func (m *Manual) newTicker(period time.Duration) Ticker {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := &manualTicker{
		owner:   m,
		period:  period,
		c:       make(chan time.Time),
		stopped: make(chan struct{}),
	}
	m.live = t
	m.created++
	return t
}

// Advance delivers up to n ticks to the live ticker and returns how many were
// received. It stops early, returning the count so far, when no ticker is
// live or the live ticker is stopped mid-delivery.
func (m *Manual) Advance(n int) int {
	delivered := 0
	for delivered < n {
		m.mu.Lock()
		t := m.live
		var at time.Time
		if t != nil {
			at = m.now.Add(t.period)
		}
		m.mu.Unlock()

		if t == nil {
			return delivered
		}

		select {
		case t.c <- at:
			m.mu.Lock()
			m.now = at
			m.mu.Unlock()
			delivered++
		case <-t.stopped:
			return delivered
		}
	}
	return delivered
}

// Created returns how many tickers the factory has created.
func (m *Manual) Created() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.created
}

// Active reports whether a ticker is live.
func (m *Manual) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.live != nil
}

type manualTicker struct {
	owner   *Manual
	period  time.Duration
	c       chan time.Time
	stopped chan struct{}
	once    sync.Once
}

func (t *manualTicker) C() <-chan time.Time { return t.c }

func (t *manualTicker) Stop() {
	t.once.Do(func() {
		close(t.stopped)

		t.owner.mu.Lock()
		if t.owner.live == t {
			t.owner.live = nil
		}
		t.owner.mu.Unlock()
	})
}

var _ Ticker = (*manualTicker)(nil)
