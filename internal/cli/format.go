package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/lapwatch/internal/stopwatch"
)

// FormatOptions holds flags for the format command.
type FormatOptions struct {
	*RootOptions
	Parse bool
}

// Conversion is one formatted (or parsed) value.
type Conversion struct {
	ElapsedMS int64  `json:"elapsed_ms"`
	Display   string `json:"display"`
}

// NewFormatCommand creates the format command.
func NewFormatCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FormatOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "format <ms>...",
		Short: "Print elapsed milliseconds as MM:SS.CS",
		Long: `Print each elapsed time the way the stopwatch displays it.

Sub-centisecond remainders are truncated, never rounded, and minutes keep
counting past 99. With --parse the conversion runs the other way.

Examples:
  lapwatch format 61230        # 01:01.23
  lapwatch format --parse 01:01.23`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Parse, "parse", false, "parse MM:SS.CS back to milliseconds")

	return cmd
}

func runFormat(opts *FormatOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	conversions := make([]Conversion, 0, len(args))
	for _, arg := range args {
		c, err := convert(arg, opts.Parse)
		if err != nil {
			if outErr := formatter.Error(CodeBadArgument, err.Error(), nil); outErr != nil {
				return outErr
			}
			return WrapExitError(ExitCommandError, "invalid argument", err)
		}
		conversions = append(conversions, c)
	}

	return formatter.Success(conversions, func(w io.Writer) error {
		for _, c := range conversions {
			if opts.Parse {
				fmt.Fprintln(w, c.ElapsedMS)
			} else {
				fmt.Fprintln(w, c.Display)
			}
		}
		return nil
	})
}

func convert(arg string, parse bool) (Conversion, error) {
	if parse {
		ms, err := stopwatch.Parse(arg)
		if err != nil {
			return Conversion{}, err
		}
		return Conversion{ElapsedMS: ms, Display: stopwatch.Format(ms)}, nil
	}

	ms, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return Conversion{}, fmt.Errorf("%q is not a whole number of milliseconds", arg)
	}
	if ms < 0 {
		return Conversion{}, fmt.Errorf("elapsed time cannot be negative: %d", ms)
	}
	return Conversion{ElapsedMS: ms, Display: stopwatch.Format(ms)}, nil
}
