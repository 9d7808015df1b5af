package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/lapwatch/internal/stopwatch"
	"github.com/roach88/lapwatch/internal/trace"
)

// createTestStore creates a new file-backed store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestEvent creates an applied event with derived display text.
func createTestEvent(seq int64, runID, action string, elapsed int64) trace.Event {
	state := "running"
	if action == "pause" || action == "reset" {
		state = "stopped"
	}
	return trace.Event{
		Seq:       seq,
		RunID:     runID,
		Action:    action,
		Applied:   true,
		State:     state,
		ElapsedMS: elapsed,
		Display:   stopwatch.Format(elapsed),
	}
}
