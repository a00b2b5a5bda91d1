package script

import (
	"errors"
	"fmt"
)

// Errors for script execution.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrTimeout is returned when a run exceeds its timeout.
	ErrTimeout = errors.New("script timed out")

	// ErrCallLimit is returned when a run makes too many dlist API calls.
	ErrCallLimit = errors.New("script exceeded its dlist call limit")
)

// ScriptError wraps a failure of one script run.
type ScriptError struct {
	// Path is the script file, or "<string>" for inline code.
	Path string
	// RunID identifies the run in the logs.
	RunID string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ScriptError) Error() string {
	return fmt.Sprintf("script %s (run %s): %v", e.Path, e.RunID, e.Err)
}

// Unwrap returns the underlying error.
func (e *ScriptError) Unwrap() error {
	return e.Err
}
