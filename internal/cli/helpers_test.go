package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const twoLapsScript = `name: two_laps
description: "Second lap is faster"
steps:
  - do: start
  - tick: 100
  - do: lap
  - tick: 50
  - do: lap
    expect:
      display: "00:01.50"
      fastest: [2]
      slowest: [1]
  - do: reset
  - do: start
  - tick: 3
  - do: pause
    expect:
      display: "00:00.03"
`

const failingScript = `name: wrong_time
steps:
  - do: start
  - tick: 10
    expect:
      display: "00:00.20"
`

// writeScript writes body to a temp file and returns its path.
func writeScript(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// execute runs cmd with args and returns stdout.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
