package script

import (
	"errors"
	"fmt"
)

// Errors for script operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when execution exceeds the timeout.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrInstructionLimit is returned when the instruction limit is exceeded.
	ErrInstructionLimit = errors.New("lua instruction limit exceeded")
)

// RuntimeError wraps an error raised while a script ran.
type RuntimeError struct {
	// Chunk names the script, usually its file path.
	Chunk string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	return fmt.Sprintf("script %s: %v", e.Chunk, e.Err)
}

// Unwrap returns the underlying error.
func (e *RuntimeError) Unwrap() error {
	return e.Err
}
