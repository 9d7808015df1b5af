package stopwatch

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// Format renders a non-negative millisecond count as MM:SS.CS.
//
// Minutes are zero-padded to two digits but not capped, so 100 minutes
// renders as "100:00.00". Centiseconds truncate: Format(599) is "00:00.59".
//
// Panics on negative input.
func Format(ms int64) string {
	if ms < 0 {
		panic(fmt.Sprintf("stopwatch: cannot format negative duration %dms", ms))
	}
	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	centis := (ms % 1000) / 10
	return fmt.Sprintf("%02d:%02d.%02d", minutes, seconds, centis)
}

// maxMinutes keeps minutes*60000 plus the largest seconds and centiseconds
// fields within int64.
const maxMinutes = (math.MaxInt64 - 59990) / 60000

var displayPattern = regexp.MustCompile(`^(\d{2,}):(\d{2})\.(\d{2})$`)

// ParseError reports a display string that is not in MM:SS.CS form.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %s", e.Input, e.Reason)
}

// Parse converts a MM:SS.CS display string back to milliseconds.
//
// Parse is exact only at centisecond resolution: Parse(Format(ms)) equals ms
// rounded down to a multiple of 10.
func Parse(s string) (int64, error) {
	m := displayPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, &ParseError{Input: s, Reason: "want MM:SS.CS"}
	}

	minutes, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, &ParseError{Input: s, Reason: err.Error()}
	}
	seconds, _ := strconv.ParseInt(m[2], 10, 64)
	centis, _ := strconv.ParseInt(m[3], 10, 64)

	if minutes > maxMinutes {
		return 0, &ParseError{Input: s, Reason: "minutes out of range"}
	}
	if seconds >= 60 {
		return 0, &ParseError{Input: s, Reason: "seconds out of range"}
	}

	return minutes*60000 + seconds*1000 + centis*10, nil
}
