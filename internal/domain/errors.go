package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoDisplays is returned when display enumeration yields nothing
	ErrNoDisplays = errors.New("no displays attached")
	// ErrIndexOutOfRange is returned for a display index past the enumerated list
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrInvalidIndex is returned for a cell index outside [0, rows*cols)
	ErrInvalidIndex = errors.New("invalid cell index")
	// ErrPointOutside is returned for a point outside the display or viewport
	ErrPointOutside = errors.New("point outside bounds")
	// ErrEmptyEntry is returned when a numeric entry is committed with no digits
	ErrEmptyEntry = errors.New("no cell number entered")
)

// GeometryError reports a rejected geometric input. The current state is kept.
type GeometryError struct {
	Op   string
	Kind error
	Msg  string
}

func (e *GeometryError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Kind, e.Msg)
}

func (e *GeometryError) Unwrap() error {
	return e.Kind
}

// NewGeometryError builds a GeometryError with a formatted detail message
func NewGeometryError(op string, kind error, format string, args ...any) *GeometryError {
	return &GeometryError{Op: op, Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// ConfigError reports an invalid configuration value. Callers fall back to
// the default or the last-known-good snapshot.
type ConfigError struct {
	Key    string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config %s=%v: %s", e.Key, e.Value, e.Reason)
}

// ConfigErrors aggregates every invalid key found in one validation pass
type ConfigErrors []*ConfigError

func (errs ConfigErrors) Error() string {
	switch len(errs) {
	case 0:
		return "no config errors"
	case 1:
		return errs[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more)", errs[0].Error(), len(errs)-1)
	}
}

// Keys returns the offending keys in order
func (errs ConfigErrors) Keys() []string {
	keys := make([]string, 0, len(errs))
	for _, e := range errs {
		keys = append(keys, e.Key)
	}
	return keys
}

// InjectionError reports a failed pointer-injection primitive. It is surfaced
// to the operator and never retried.
type InjectionError struct {
	Op    string
	Point Point
	Err   error
}

func (e *InjectionError) Error() string {
	if e.Op == "move" {
		return fmt.Sprintf("pointer move to %s failed: %v", e.Point, e.Err)
	}
	return fmt.Sprintf("pointer %s at %s failed: %v", e.Op, e.Point, e.Err)
}

func (e *InjectionError) Unwrap() error {
	return e.Err
}
