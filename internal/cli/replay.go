package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/lapwatch/internal/script"
)

// ScriptResult is the outcome of one replayed script.
type ScriptResult struct {
	Path    string   `json:"path"`
	Name    string   `json:"name"`
	Pass    bool     `json:"pass"`
	Events  int      `json:"events"`
	Display string   `json:"display"`
	Errors  []string `json:"errors,omitempty"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Scripts []ScriptResult `json:"scripts"`
	Passed  int            `json:"passed"`
	Failed  int            `json:"failed"`
	Total   int            `json:"total"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <script>...",
		Short: "Run scripted sessions and check their expectations",
		Long: `Run one or more stopwatch scripts and check every expect clause.

Each script runs against a fresh stopwatch whose clock only advances on the
script's tick steps, so results never depend on wall time.

Exit codes:
  0 - All scripts passed
  1 - At least one expectation failed or a script is invalid
  2 - Command error (unreadable file, etc.)

Examples:
  lapwatch replay sessions/two_laps.yaml
  lapwatch replay sessions/*.yaml --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runReplay(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	result := ReplayResult{
		Scripts: make([]ScriptResult, 0, len(paths)),
		Total:   len(paths),
	}

	for _, path := range paths {
		s, err := loadScript(path)
		if err != nil {
			return err
		}

		formatter.VerboseLog("replaying %s (%d steps)", path, len(s.Steps))
		run, err := script.Run(cmd.Context(), s)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to run %s", path), err)
		}

		sr := ScriptResult{
			Path:    path,
			Name:    s.Name,
			Pass:    run.Pass,
			Events:  len(run.Events),
			Display: run.Final.Display,
			Errors:  run.Errors,
		}
		result.Scripts = append(result.Scripts, sr)
		if sr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if err := formatter.Success(result, func(w io.Writer) error {
		return outputReplayText(w, result)
	}); err != nil {
		return err
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d script(s) failed", result.Failed))
	}
	return nil
}

func outputReplayText(w io.Writer, result ReplayResult) error {
	for _, sr := range result.Scripts {
		if sr.Pass {
			fmt.Fprintf(w, "✓ %s  %s (%d events)\n", sr.Name, sr.Display, sr.Events)
			continue
		}
		fmt.Fprintf(w, "✗ %s\n", sr.Name)
		for _, msg := range sr.Errors {
			fmt.Fprintf(w, "    %s\n", msg)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Replay Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)
	return nil
}
