package engine

import "sync/atomic"

// Sequencer is the logical clock that orders journal events.
//
// It is unrelated to stopwatch time: every processed action takes the next
// value, ticks take none. Wall-clock timestamps are never used for ordering,
// so a replayed script yields the same sequence numbers every time.
//
// Thread-safety: safe for concurrent use, though only the Run loop calls Next.
type Sequencer struct {
	seq atomic.Int64
}

// NewSequencer creates a sequencer whose first Next returns 1.
func NewSequencer() *Sequencer {
	return &Sequencer{}
}

// Next advances and returns the new sequence number.
func (s *Sequencer) Next() int64 {
	return s.seq.Add(1)
}

// Current returns the last issued sequence number without advancing.
func (s *Sequencer) Current() int64 {
	return s.seq.Load()
}
