package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/roach88/lapwatch/internal/stopwatch"
	"github.com/roach88/lapwatch/internal/trace"
)

// renderSnapshot prints the display line and, if any, the lap table with the
// most recent lap first.
func renderSnapshot(w io.Writer, snap stopwatch.Snapshot) error {
	lapHint := ""
	if snap.CanLap {
		lapHint = "  (l)ap"
	}
	fmt.Fprintf(w, "%s  %-7s  [%s]%s\n", snap.Display, snap.State, snap.ToggleLabel, lapHint)

	if len(snap.Laps) == 0 {
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Lap", "Split", "Total", "")
	for _, lap := range snap.Laps {
		if err := table.Append([]string{
			strconv.Itoa(lap.Position),
			lap.Split,
			lap.Total,
			lapMark(lap),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

func lapMark(lap stopwatch.LapView) string {
	switch {
	case lap.Fastest:
		return "fastest"
	case lap.Slowest:
		return "slowest"
	default:
		return ""
	}
}

// renderEvents prints a journal as a timeline table.
func renderEvents(w io.Writer, events []trace.Event) error {
	table := tablewriter.NewWriter(w)
	table.Header("Seq", "Run", "Action", "Applied", "State", "Display", "Laps", "Split")
	for _, ev := range events {
		split := ""
		if ev.LapSeq != 0 {
			split = fmt.Sprintf("#%d %s", ev.LapSeq, stopwatch.Format(ev.SplitMS))
		}
		if err := table.Append([]string{
			strconv.FormatInt(ev.Seq, 10),
			ev.RunID,
			ev.Action,
			strconv.FormatBool(ev.Applied),
			ev.State,
			ev.Display,
			strconv.Itoa(ev.LapCount),
			split,
		}); err != nil {
			return err
		}
	}
	return table.Render()
}
