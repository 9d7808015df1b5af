package engine

import "strings"

// Action is a user action accepted by the engine.
type Action int

const (
	// ActionStart starts the clock. No-op while running.
	ActionStart Action = iota + 1
	// ActionPause stops the clock. No-op while stopped.
	ActionPause
	// ActionReset stops the clock, zeroes it and clears the laps.
	ActionReset
	// ActionLap records a lap. No-op at zero elapsed.
	ActionLap

	// actionView reads a snapshot without mutating anything.
	actionView
)

// Actions lists the user actions in display order.
var Actions = []Action{ActionStart, ActionPause, ActionReset, ActionLap}

func (a Action) String() string {
	switch a {
	case ActionStart:
		return "start"
	case ActionPause:
		return "pause"
	case ActionReset:
		return "reset"
	case ActionLap:
		return "lap"
	case actionView:
		return "view"
	default:
		return "unknown"
	}
}

func (a Action) valid() bool {
	return a >= ActionStart && a <= ActionLap
}

// ParseAction resolves an action name or its one-letter alias.
func ParseAction(name string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "start", "s":
		return ActionStart, nil
	case "pause", "p":
		return ActionPause, nil
	case "reset", "r":
		return ActionReset, nil
	case "lap", "l":
		return ActionLap, nil
	default:
		return 0, NewUnknownActionError(name)
	}
}
