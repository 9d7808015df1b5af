package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/lapwatch/internal/engine"
	"github.com/roach88/lapwatch/internal/metrics"
	"github.com/roach88/lapwatch/internal/stopwatch"
	"github.com/roach88/lapwatch/internal/store"
	"github.com/roach88/lapwatch/internal/tick"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	MetricsAddr string

	// TickerFactory overrides the wall-clock ticker (for testing).
	TickerFactory tick.Factory

	// RunIDs overrides the run ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunIDs engine.RunIDGenerator
}

// SessionSummary is printed when an interactive session ends.
type SessionSummary struct {
	Actions int                `json:"actions"`
	Runs    []string           `json:"runs"`
	Final   stopwatch.Snapshot `json:"final"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start an interactive stopwatch",
		Long: `Start a stopwatch and control it with one command per line on stdin.

Commands:
  start, s    start counting
  pause, p    stop counting, keep the time
  toggle, t   start if stopped, pause if running
  lap, l      record a lap (ignored at 00:00.00)
  reset, r    stop and clear the time and all laps
  show, v     print the current time and laps
  quit, q     end the session (as does end of input)

Nothing is saved when the session ends.

Example:
  lapwatch run
  lapwatch run --metrics-addr :9100`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9100)")

	return cmd
}

// sessionCommand is one parsed input line.
type sessionCommand int

const (
	cmdAction sessionCommand = iota
	cmdToggle
	cmdShow
	cmdQuit
)

// parseSessionLine maps an input line to a session command. For cmdAction
// the engine action is returned too.
func parseSessionLine(line string) (sessionCommand, engine.Action, error) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "toggle", "t":
		return cmdToggle, 0, nil
	case "show", "v", "":
		return cmdShow, 0, nil
	case "quit", "q", "exit":
		return cmdQuit, 0, nil
	}

	a, err := engine.ParseAction(line)
	if err != nil {
		return 0, 0, err
	}
	return cmdAction, a, nil
}

func runSession(opts *RunOptions, cmd *cobra.Command) error {
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	formatter := newFormatter(opts.RootOptions, cmd)

	var collector *metrics.Collector
	if addr := opts.metricsAddr(); addr != "" {
		collector = metrics.New()
		_, shutdown, err := serveMetrics(addr, collector)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to start metrics server", err)
		}
		defer shutdown()
	}

	st, err := store.Open(store.Memory)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open session journal", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing journal", "error", closeErr)
		}
	}()

	engOpts := []engine.Option{
		engine.WithJournal(st),
		engine.WithMetrics(collector),
	}
	if opts.TickerFactory != nil {
		engOpts = append(engOpts, engine.WithTickerFactory(opts.TickerFactory))
	}
	if opts.RunIDs != nil {
		engOpts = append(engOpts, engine.WithRunIDGenerator(opts.RunIDs))
	}
	eng := engine.New(engOpts...)

	runErr := make(chan error, 1)
	go func() { runErr <- eng.Run(ctx) }()

	if !formatter.JSON() {
		fmt.Fprintln(formatter.Writer, "Stopwatch ready. Type start, pause, toggle, lap, reset, show or quit.")
	}

	final, loopErr := sessionLoop(ctx, eng, cmd.InOrStdin(), formatter)

	eng.Stop()
	if err := <-runErr; err != nil && !errors.Is(err, context.Canceled) {
		return WrapExitError(ExitFailure, "engine error", err)
	}
	if loopErr != nil {
		return loopErr
	}

	// A fresh context: the session context may already be cancelled by a signal.
	summary, err := summarize(context.Background(), st, final)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to read session journal", err)
	}

	return formatter.Success(summary, func(w io.Writer) error {
		fmt.Fprintf(w, "Session ended at %s: %d action(s) over %d run(s).\n",
			summary.Final.Display, summary.Actions, len(summary.Runs))
		return nil
	})
}

// sessionLoop feeds input lines to the engine until quit, end of input, or
// cancellation. Returns the last snapshot seen.
func sessionLoop(ctx context.Context, eng *engine.Engine, in io.Reader, f *OutputFormatter) (stopwatch.Snapshot, error) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	last, err := eng.Snapshot(ctx)
	if err != nil {
		return last, WrapExitError(ExitFailure, "engine unavailable", err)
	}

	for {
		var line string
		select {
		case <-ctx.Done():
			slog.Info("session interrupted")
			return last, nil
		case l, ok := <-lines:
			if !ok {
				return last, nil
			}
			line = l
		}

		kind, action, err := parseSessionLine(line)
		if err != nil {
			if !engine.IsUnknownAction(err) {
				return last, WrapExitError(ExitFailure, "bad input", err)
			}
			if outErr := f.Error(CodeBadArgument, fmt.Sprintf("unknown command %q", strings.TrimSpace(line)), sessionHelp()); outErr != nil {
				return last, outErr
			}
			continue
		}

		var snap stopwatch.Snapshot
		switch kind {
		case cmdQuit:
			return last, nil
		case cmdShow:
			snap, err = eng.Snapshot(ctx)
		case cmdToggle:
			snap, err = toggle(ctx, eng)
		case cmdAction:
			snap, err = eng.Do(ctx, action)
		}
		if err != nil {
			if ctx.Err() != nil || engine.IsStopped(err) {
				return last, nil
			}
			return last, WrapExitError(ExitFailure, "engine error", err)
		}

		last = snap
		if err := f.Success(snap, func(w io.Writer) error { return renderSnapshot(w, snap) }); err != nil {
			return last, err
		}
	}
}

// sessionHelp lists the commands a session line may hold.
func sessionHelp() string {
	names := make([]string, 0, len(engine.Actions)+3)
	for _, a := range engine.Actions {
		names = append(names, a.String())
	}
	names = append(names, "toggle", "show", "quit")
	return "want one of " + strings.Join(names, ", ")
}

// toggle starts a stopped stopwatch and pauses a running one.
func toggle(ctx context.Context, eng *engine.Engine) (stopwatch.Snapshot, error) {
	snap, err := eng.Snapshot(ctx)
	if err != nil {
		return snap, err
	}
	if snap.State == stopwatch.Running {
		return eng.Do(ctx, engine.ActionPause)
	}
	return eng.Do(ctx, engine.ActionStart)
}

func summarize(ctx context.Context, st *store.Store, final stopwatch.Snapshot) (SessionSummary, error) {
	events, err := st.ReadAll(ctx)
	if err != nil {
		return SessionSummary{}, err
	}
	runs, err := st.Runs(ctx)
	if err != nil {
		return SessionSummary{}, err
	}
	return SessionSummary{Actions: len(events), Runs: runs, Final: final}, nil
}

// metricsAddr prefers the resolved config, which already applies the flag.
func (o *RunOptions) metricsAddr() string {
	if o.Config != nil {
		return o.Config.MetricsAddr
	}
	return o.MetricsAddr
}

// serveMetrics starts the metrics endpoint and returns the bound address and
// a shutdown func.
func serveMetrics(addr string, c *metrics.Collector) (net.Addr, func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, err
	}

	srv := &http.Server{
		Handler:           metrics.NewRouter(c),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	go func() {
		slog.Info("metrics server listening", "addr", ln.Addr().String(), "path", "/metrics")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server error", "error", err)
		}
	}()

	return ln.Addr(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("metrics server shutdown error", "error", err)
		}
	}, nil
}
