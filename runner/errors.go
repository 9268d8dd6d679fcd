package runner

import (
	"errors"
	"fmt"

	"github.com/utkarsh5026/supera/internal/thread"
)

var (
	// ErrRecv means a worker's incoming queue was disconnected while it was
	// waiting for the next command. It wraps the transport error.
	ErrRecv = errors.New("runner: incoming queue disconnected")

	// ErrClosed is returned by Send after Close, and by a second Close.
	ErrClosed = errors.New("runner: already closed")

	// ErrNoStopCommand is returned by Close when the command type does not
	// implement SimpleStop, and by CloseWith when given a nil StopRunner.
	ErrNoStopCommand = errors.New("runner: no stop command available")
)

// SendError is a worker's terminal error when a result could not be
// delivered, for example because the caller closed its Token first.
// Result carries the undelivered payload.
type SendError[R any] struct {
	Result R
	Err    error
}

func (e *SendError[R]) Error() string {
	return fmt.Sprintf("runner: result undeliverable: %v", e.Err)
}

func (e *SendError[R]) Unwrap() error {
	return e.Err
}

func (e *SendError[R]) undelivered() {}

// SubmitError is returned when a command could not be enqueued. The caller
// gets the command back.
type SubmitError[C any] struct {
	Command C
	Err     error
}

func (e *SubmitError[C]) Error() string {
	return fmt.Sprintf("runner: submit failed: %v", e.Err)
}

func (e *SubmitError[C]) Unwrap() error {
	return e.Err
}

// CloseError reports that a stop command could not be delivered during
// Close. Workers are still joined when this happens.
type CloseError struct {
	Err error
}

func (e *CloseError) Error() string {
	return fmt.Sprintf("runner: stop delivery failed: %v", e.Err)
}

func (e *CloseError) Unwrap() error {
	return e.Err
}

// PanicError is a worker's terminal error when a command panicked. It holds
// the panic value and the stack of the worker goroutine.
type PanicError = thread.PanicError

// outcome classifies a worker's terminal error for logs and metrics.
func outcome(err error) string {
	var pe *PanicError
	var undelivered interface{ undelivered() }
	switch {
	case err == nil:
		return "stop"
	case errors.As(err, &pe):
		return "panic"
	case errors.Is(err, ErrRecv):
		return "recv_error"
	case errors.As(err, &undelivered):
		return "send_error"
	default:
		return "error"
	}
}
