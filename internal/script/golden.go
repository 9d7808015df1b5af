package script

import (
	"context"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/lapwatch/internal/trace"
)

// TraceSnapshot is the golden form of a script run: the journal plus the
// final display. Serialized with trace.MarshalCanonical.
type TraceSnapshot struct {
	Script  string
	Events  []trace.Event
	Display string
	State   string
}

// NewTraceSnapshot captures a result for golden comparison.
func NewTraceSnapshot(name string, r *Result) TraceSnapshot {
	return TraceSnapshot{
		Script:  name,
		Events:  r.Events,
		Display: r.Final.Display,
		State:   r.Final.State.String(),
	}
}

// Canonical returns the snapshot's canonical JSON encoding.
func (s TraceSnapshot) Canonical() ([]byte, error) {
	events := make([]any, len(s.Events))
	for i, ev := range s.Events {
		events[i] = ev.ToMap()
	}
	return trace.MarshalCanonical(map[string]any{
		"script":  s.Script,
		"events":  events,
		"display": s.Display,
		"state":   s.State,
	})
}

// RunWithGolden runs a script and compares its trace against
// testdata/golden/{script.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/script -update
//
// Expectation failures are reported through t as well, so a golden match
// cannot hide a failing expect clause.
func RunWithGolden(t *testing.T, s *Script) error {
	t.Helper()

	result, err := Run(context.Background(), s)
	if err != nil {
		return err
	}
	for _, msg := range result.Errors {
		t.Errorf("%s: %s", s.Name, msg)
	}

	return AssertGolden(t, s.Name, result)
}

// AssertGolden compares an existing result's trace against a golden file
// without re-running the script.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	data, err := NewTraceSnapshot(name, result).Canonical()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)

	return nil
}
