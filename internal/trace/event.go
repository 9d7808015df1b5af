// Package trace defines journal events and their canonical JSON form.
//
// Every action the engine processes becomes one Event stamped with a logical
// sequence number. Events are serialized with MarshalCanonical so that the
// same session always produces byte-identical journals and golden files.
package trace

// Event is one processed user action.
type Event struct {
	// Seq is the engine's logical clock value. Strictly increasing.
	Seq int64 `json:"seq"`

	// RunID identifies the run the action belongs to. A reset starts a new run.
	RunID string `json:"run_id"`

	// Action is the action name: start, pause, reset or lap.
	Action string `json:"action"`

	// Applied is false when the action was absorbed as a no-op.
	Applied bool `json:"applied"`

	// State is the run state after the action.
	State string `json:"state"`

	ElapsedMS int64  `json:"elapsed_ms"`
	Display   string `json:"display"`
	LapCount  int    `json:"lap_count"`

	// LapSeq and SplitMS are set only for an applied lap.
	LapSeq  int   `json:"lap_seq,omitempty"`
	SplitMS int64 `json:"split_ms,omitempty"`
}

// ToMap converts the event to the generic form MarshalCanonical accepts.
// Zero lap fields are omitted.
func (e Event) ToMap() map[string]any {
	m := map[string]any{
		"seq":        e.Seq,
		"run_id":     e.RunID,
		"action":     e.Action,
		"applied":    e.Applied,
		"state":      e.State,
		"elapsed_ms": e.ElapsedMS,
		"display":    e.Display,
		"lap_count":  e.LapCount,
	}
	if e.LapSeq != 0 {
		m["lap_seq"] = e.LapSeq
		m["split_ms"] = e.SplitMS
	}
	return m
}

// Canonical returns the canonical JSON encoding of the event.
func (e Event) Canonical() ([]byte, error) {
	return MarshalCanonical(e.ToMap())
}
