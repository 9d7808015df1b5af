package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/roach88/lapwatch/internal/script"
)

// ValidateResult lists the scripts that passed validation.
type ValidateResult struct {
	Valid []string `json:"valid"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <script>...",
		Short: "Check scripts against the script schema without running them",
		Long: `Check one or more stopwatch scripts against the script schema.

Reports unknown fields, unknown actions, malformed display strings and
non-positive tick counts. Nothing is executed.

Exit codes:
  0 - All scripts are valid
  1 - A script is invalid
  2 - A script could not be read`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	result := ValidateResult{Valid: make([]string, 0, len(paths))}

	for _, path := range paths {
		if _, err := script.Load(path); err != nil {
			exitErr := scriptLoadExitError(path, err)
			if exitErr.Code == ExitFailure {
				if outErr := formatter.Error(CodeScriptInvalid, err.Error(), map[string]string{"path": path}); outErr != nil {
					return outErr
				}
			}
			return exitErr
		}
		result.Valid = append(result.Valid, path)
	}

	return formatter.Success(result, func(w io.Writer) error {
		for _, path := range result.Valid {
			fmt.Fprintf(w, "✓ %s\n", path)
		}
		return nil
	})
}

// loadScript loads a script, mapping failures to exit codes.
func loadScript(path string) (*script.Script, error) {
	s, err := script.Load(path)
	if err != nil {
		return nil, scriptLoadExitError(path, err)
	}
	return s, nil
}

// scriptLoadExitError distinguishes unreadable files (2) from invalid ones (1).
func scriptLoadExitError(path string, err error) *ExitError {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return WrapExitError(ExitCommandError, fmt.Sprintf("cannot read %s", path), err)
	}
	return WrapExitError(ExitFailure, "invalid script", err)
}
