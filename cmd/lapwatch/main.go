// Command lapwatch is a terminal stopwatch with lap recording.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/lapwatch/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
