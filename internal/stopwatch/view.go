package stopwatch

// Snapshot is the read-only projection handed to presentation.
type Snapshot struct {
	ElapsedMS   int64     `json:"elapsed_ms"`
	Display     string    `json:"display"`
	State       RunState  `json:"state"`
	ToggleLabel string    `json:"toggle_label"`
	CanLap      bool      `json:"can_lap"`
	Laps        []LapView `json:"laps"`
}

// LapView is one row of the lap list as presentation shows it.
type LapView struct {
	Position int    `json:"position"`
	Split    string `json:"split"`
	Total    string `json:"total"`
	Fastest  bool   `json:"fastest"`
	Slowest  bool   `json:"slowest"`
}

// Snapshot captures the current state for rendering.
//
// Laps are ordered most recent first. Position is derived from the reversed
// index as total-index, so the newest row of five laps is labelled 5.
func (s *Stopwatch) Snapshot() Snapshot {
	label := "Start"
	if s.state == Running {
		label = "Pause"
	}

	laps := s.laps.laps
	views := make([]LapView, len(laps))
	for i := range laps {
		lap := laps[len(laps)-1-i]
		views[i] = LapView{
			Position: len(laps) - i,
			Split:    Format(lap.Split),
			Total:    Format(lap.Cumulative),
			Fastest:  lap.Fastest,
			Slowest:  lap.Slowest,
		}
	}

	return Snapshot{
		ElapsedMS:   s.elapsed,
		Display:     Format(s.elapsed),
		State:       s.state,
		ToggleLabel: label,
		CanLap:      s.CanLap(),
		Laps:        views,
	}
}

// Fastest returns the positions of every lap flagged fastest, ascending.
func (v Snapshot) Fastest() []int {
	return v.flagged(func(l LapView) bool { return l.Fastest })
}

// Slowest returns the positions of every lap flagged slowest, ascending.
func (v Snapshot) Slowest() []int {
	return v.flagged(func(l LapView) bool { return l.Slowest })
}

func (v Snapshot) flagged(keep func(LapView) bool) []int {
	out := []int{}
	for i := len(v.Laps) - 1; i >= 0; i-- {
		if keep(v.Laps[i]) {
			out = append(out, v.Laps[i].Position)
		}
	}
	return out
}
