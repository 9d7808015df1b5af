package store

import (
	"context"
	"fmt"

	"github.com/roach88/lapwatch/internal/trace"
)

// Append inserts one event. Implements engine.Journal.
//
// Uses ON CONFLICT(seq) DO NOTHING so a re-appended event is ignored. CHECK
// violations (negative elapsed, unknown action) still return errors.
func (s *Store) Append(ctx context.Context, ev trace.Event) error {
	payload, err := ev.Canonical()
	if err != nil {
		return fmt.Errorf("append event %d: %w", ev.Seq, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO events
		(seq, run_id, action, applied, state, elapsed_ms, display, lap_count, lap_seq, split_ms, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(seq) DO NOTHING
	`,
		ev.Seq,
		ev.RunID,
		ev.Action,
		ev.Applied,
		ev.State,
		ev.ElapsedMS,
		ev.Display,
		ev.LapCount,
		ev.LapSeq,
		ev.SplitMS,
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("append event %d: %w", ev.Seq, err)
	}

	return nil
}
