package gcode

import "errors"

var (
	// ErrNotFound is returned by FindOne when no line matches.
	ErrNotFound = errors.New("line not found")
	ErrArgIndex = errors.New("argument index out of range")
	ErrPosition = errors.New("position out of range")
)
