package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Error is returned by engine entry points.
//
// The stopwatch itself never fails; these errors cover the boundary around
// it: unparseable action names and calls made after the loop has exited.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Action is the offending action name, if any.
	Action string
}

// ErrorCode categorizes engine errors.
type ErrorCode string

const (
	// ErrCodeUnknownAction indicates an action name ParseAction does not know.
	ErrCodeUnknownAction ErrorCode = "UNKNOWN_ACTION"

	// ErrCodeStopped indicates the event loop is no longer running.
	ErrCodeStopped ErrorCode = "ENGINE_STOPPED"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Action != "" {
		return fmt.Sprintf("%s: %s (action=%q)", e.Code, e.Message, e.Action)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsStopped reports whether err, or anything it wraps, is ErrCodeStopped.
func IsStopped(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeStopped
}

// IsUnknownAction reports whether err, or anything it wraps, is ErrCodeUnknownAction.
func IsUnknownAction(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeUnknownAction
}

// NewUnknownActionError creates an Error for an unrecognized action name.
func NewUnknownActionError(name string) *Error {
	return &Error{
		Code:    ErrCodeUnknownAction,
		Message: "want one of " + actionNames(),
		Action:  name,
	}
}

func actionNames() string {
	names := make([]string, len(Actions))
	for i, a := range Actions {
		names[i] = a.String()
	}
	return strings.Join(names, ", ")
}

// NewStoppedError creates an Error for a call made after Run returned.
func NewStoppedError() *Error {
	return &Error{
		Code:    ErrCodeStopped,
		Message: "engine is not running",
	}
}
