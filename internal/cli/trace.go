package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/lapwatch/internal/script"
	"github.com/roach88/lapwatch/internal/store"
	"github.com/roach88/lapwatch/internal/trace"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	RunID string // optional - one run only
}

// TraceResult holds the journal of a script run.
type TraceResult struct {
	Script string            `json:"script"`
	Runs   []string          `json:"runs"`
	Events []json.RawMessage `json:"events"`
	Stats  TraceStats        `json:"stats"`

	events []trace.Event
}

// TraceStats holds summary statistics for the trace.
type TraceStats struct {
	TotalEvents int `json:"total_events"`
	Applied     int `json:"applied"`
	Ignored     int `json:"ignored"`
	Laps        int `json:"laps"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace <script>",
		Short: "Run a script and print its event journal",
		Long: `Run a stopwatch script and print every journaled action.

Each reset closes a run; run IDs are run-1, run-2, ... in script order.
With --format json the events are printed in canonical JSON, byte for byte
as journaled.

Examples:
  lapwatch trace sessions/two_laps.yaml
  lapwatch trace sessions/two_laps.yaml --run run-2 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.RunID, "run", "", "show a single run only")

	return cmd
}

func runTrace(opts *TraceOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	s, err := loadScript(path)
	if err != nil {
		return err
	}

	result := TraceResult{Script: s.Name}
	var readErr error
	capture := script.WithJournal(func(st *store.Store) {
		result, readErr = readTrace(context.Background(), st, s.Name, opts.RunID)
	})

	if _, err := script.Run(cmd.Context(), s, capture); err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("failed to run %s", path), err)
	}
	if readErr != nil {
		var exitErr *ExitError
		if errors.As(readErr, &exitErr) && exitErr.Code == ExitCommandError {
			if outErr := formatter.Error(CodeRunNotFound, exitErr.Message, map[string]any{"runs": result.Runs}); outErr != nil {
				return outErr
			}
		}
		return readErr
	}

	return formatter.Success(result, func(w io.Writer) error {
		return outputTraceText(w, result)
	})
}

func readTrace(ctx context.Context, st *store.Store, name, runID string) (TraceResult, error) {
	result := TraceResult{Script: name}

	runs, err := st.Runs(ctx)
	if err != nil {
		return result, WrapExitError(ExitFailure, "failed to read runs", err)
	}
	result.Runs = runs

	if runID != "" && !slices.Contains(runs, runID) {
		return result, NewExitError(ExitCommandError, fmt.Sprintf("run %q not found", runID))
	}

	if runID != "" {
		result.events, err = st.ReadRun(ctx, runID)
	} else {
		result.events, err = st.ReadAll(ctx)
	}
	if err != nil {
		return result, WrapExitError(ExitFailure, "failed to read journal", err)
	}

	payloads, err := st.Payloads(ctx, runID)
	if err != nil {
		return result, WrapExitError(ExitFailure, "failed to read journal", err)
	}
	result.Events = make([]json.RawMessage, len(payloads))
	for i, p := range payloads {
		result.Events[i] = json.RawMessage(p)
	}

	for _, ev := range result.events {
		result.Stats.TotalEvents++
		if ev.Applied {
			result.Stats.Applied++
		} else {
			result.Stats.Ignored++
		}
		if ev.LapSeq != 0 {
			result.Stats.Laps++
		}
	}

	return result, nil
}

func outputTraceText(w io.Writer, result TraceResult) error {
	fmt.Fprintf(w, "Script: %s\n", result.Script)
	fmt.Fprintf(w, "Runs: %d\n\n", len(result.Runs))

	if err := renderEvents(w, result.events); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Events: %d (%d applied, %d ignored), laps: %d\n",
		result.Stats.TotalEvents, result.Stats.Applied, result.Stats.Ignored, result.Stats.Laps)
	return nil
}
