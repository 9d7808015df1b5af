package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplayCommand_MissingArgs(t *testing.T) {
	_, err := execute(t, NewReplayCommand(&RootOptions{Format: "text"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
}

func TestReplayCommand_Pass(t *testing.T) {
	path := writeScript(t, "two_laps.yaml", twoLapsScript)

	out, err := execute(t, NewReplayCommand(&RootOptions{Format: "text"}), path)
	require.NoError(t, err)

	assert.Contains(t, out, "✓ two_laps  00:00.03 (6 events)")
	assert.Contains(t, out, "Replay Summary: 1 passed, 0 failed, 1 total")
}

func TestReplayCommand_Fail(t *testing.T) {
	good := writeScript(t, "two_laps.yaml", twoLapsScript)
	bad := writeScript(t, "wrong.yaml", failingScript)

	out, err := execute(t, NewReplayCommand(&RootOptions{Format: "text"}), good, bad)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	assert.Contains(t, out, "✗ wrong_time")
	assert.Contains(t, out, "step 2: display = 00:00.10, want 00:00.20")
	assert.Contains(t, out, "1 passed, 1 failed, 2 total")
}

func TestReplayCommand_JSON(t *testing.T) {
	path := writeScript(t, "two_laps.yaml", twoLapsScript)

	out, err := execute(t, NewReplayCommand(&RootOptions{Format: "json"}), path)
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   ReplayResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 1, resp.Data.Passed)
	require.Len(t, resp.Data.Scripts, 1)
	assert.Equal(t, "two_laps", resp.Data.Scripts[0].Name)
	assert.Equal(t, 6, resp.Data.Scripts[0].Events)
}

func TestReplayCommand_MissingFile(t *testing.T) {
	_, err := execute(t, NewReplayCommand(&RootOptions{Format: "text"}), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestReplayCommand_InvalidScript(t *testing.T) {
	path := writeScript(t, "bad.yaml", "name: bad\nsteps:\n  - do: jump\n")

	_, err := execute(t, NewReplayCommand(&RootOptions{Format: "text"}), path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid script")
}
