package script

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/lapwatch/internal/engine"
)

// Script is a recorded stopwatch session.
type Script struct {
	// Name identifies the script and names its golden file.
	Name string `yaml:"name"`

	Description string `yaml:"description,omitempty"`

	Steps []Step `yaml:"steps"`
}

// Step is one line of a script. Exactly one of Do and Tick is set, or
// neither when the step only checks Expect.
type Step struct {
	// Do is an action name or alias (start, s, pause, p, reset, r, lap, l).
	Do string `yaml:"do,omitempty"`

	// Tick lets this many 10ms ticks elapse. Ticks while stopped are dropped.
	Tick int `yaml:"tick,omitempty"`

	// Expect is checked against the snapshot after the step.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect lists the snapshot fields a step checks. Nil fields are unchecked.
type Expect struct {
	Display   *string  `yaml:"display,omitempty"`
	State     *string  `yaml:"state,omitempty"`
	ElapsedMS *int64   `yaml:"elapsed_ms,omitempty"`
	CanLap    *bool    `yaml:"can_lap,omitempty"`
	Laps      *int     `yaml:"laps,omitempty"`
	Splits    []string `yaml:"splits,omitempty"`
	Fastest   []int    `yaml:"fastest,omitempty"`
	Slowest   []int    `yaml:"slowest,omitempty"`
}

// LoadError reports a script that could not be read, parsed or validated.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("script %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsLoadError reports whether err is or wraps a *LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

// Load reads, validates and parses a script file.
//
// Returns a *LoadError if the file doesn't exist, violates the schema,
// or contains unknown fields (typos).
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return Parse(filepath.Base(path), data)
}

// Parse validates and decodes script source. name is used in errors.
func Parse(name string, data []byte) (*Script, error) {
	if err := Validate(name, data); err != nil {
		return nil, err
	}

	// Strict decoding catches fields the schema allows but the structs don't.
	var s Script
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, &LoadError{Path: name, Err: fmt.Errorf("failed to parse YAML: %w", err)}
	}

	if err := s.check(); err != nil {
		return nil, &LoadError{Path: name, Err: err}
	}

	return &s, nil
}

// check enforces what the schema cannot express in Go terms.
func (s *Script) check() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		n := i + 1
		if step.Do != "" && step.Tick != 0 {
			return fmt.Errorf("step %d: do and tick are mutually exclusive", n)
		}
		if step.Do == "" && step.Tick == 0 && step.Expect == nil {
			return fmt.Errorf("step %d: empty step", n)
		}
		if step.Tick < 0 {
			return fmt.Errorf("step %d: tick must be positive, got %d", n, step.Tick)
		}
		if step.Do != "" {
			if _, err := engine.ParseAction(step.Do); err != nil {
				return fmt.Errorf("step %d: %w", n, err)
			}
		}
	}

	return nil
}
