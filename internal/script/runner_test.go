package script

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lapwatch/internal/stopwatch"
	"github.com/roach88/lapwatch/internal/store"
)

func runFixture(t *testing.T, path string, opts ...Option) *Result {
	t.Helper()
	s, err := Load(path)
	require.NoError(t, err)
	result, err := Run(context.Background(), s, opts...)
	require.NoError(t, err)
	return result
}

func ptr[T any](v T) *T { return &v }

func TestRun_Fixtures(t *testing.T) {
	for _, path := range []string{
		"testdata/two_laps.yaml",
		"testdata/reset_runs.yaml",
		"testdata/ties.yaml",
		"testdata/equal_splits.yaml",
	} {
		t.Run(path, func(t *testing.T) {
			result := runFixture(t, path)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
			assert.Empty(t, result.Errors)
		})
	}
}

func TestRun_FinalSnapshot(t *testing.T) {
	result := runFixture(t, "testdata/two_laps.yaml")

	assert.Equal(t, stopwatch.Stopped, result.Final.State)
	assert.Equal(t, "00:01.50", result.Final.Display)
	assert.Equal(t, "Start", result.Final.ToggleLabel)
	require.Len(t, result.Final.Laps, 2)
	assert.Equal(t, 2, result.Final.Laps[0].Position)
}

func TestRun_JournalAndRuns(t *testing.T) {
	result := runFixture(t, "testdata/reset_runs.yaml")

	assert.Equal(t, []string{"run-1", "run-2"}, result.Runs)
	require.Len(t, result.Events, 5)

	lap := result.Events[2]
	assert.Equal(t, "lap", lap.Action)
	assert.False(t, lap.Applied, "lap at zero is a no-op")
	assert.Equal(t, "run-2", lap.RunID)
}

func TestRun_ReportsMismatches(t *testing.T) {
	s := &Script{
		Name: "wrong",
		Steps: []Step{
			{Do: "start"},
			{Tick: 25},
			{Do: "lap", Expect: &Expect{
				Display: ptr("00:00.26"),
				State:   ptr("running"),
				Laps:    ptr(2),
			}},
		},
	}

	result, err := Run(context.Background(), s)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	assert.Equal(t, []string{
		`step 3: display = 00:00.25, want 00:00.26`,
		`step 3: laps = 1, want 2`,
	}, result.Errors)
}

func TestRun_TicksWhileStoppedAreDropped(t *testing.T) {
	s := &Script{
		Name: "idle",
		Steps: []Step{
			{Tick: 100, Expect: &Expect{ElapsedMS: ptr(int64(0)), CanLap: ptr(false)}},
			{Do: "start"},
			{Do: "pause"},
			{Tick: 100, Expect: &Expect{ElapsedMS: ptr(int64(0))}},
		},
	}

	result, err := Run(context.Background(), s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_WithJournal(t *testing.T) {
	var payloads []string
	result := runFixture(t, "testdata/two_laps.yaml", WithJournal(func(st *store.Store) {
		var err error
		payloads, err = st.Payloads(context.Background(), "run-1")
		require.NoError(t, err)
	}))

	require.Len(t, payloads, len(result.Events))
	want, err := result.Events[0].Canonical()
	require.NoError(t, err)
	assert.Equal(t, string(want), payloads[0])
}

func TestRun_IsDeterministic(t *testing.T) {
	a := runFixture(t, "testdata/ties.yaml")
	b := runFixture(t, "testdata/ties.yaml")
	assert.Equal(t, a.Events, b.Events)
}

func TestRun_CancelledContext(t *testing.T) {
	s, err := Load("testdata/two_laps.yaml")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = Run(ctx, s)
	assert.Error(t, err)
}
