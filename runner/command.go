package runner

import "fmt"

// Command is a unit of work executed by a worker.
//
// A submitted command is executed at most once. Execute has no error return:
// a command that can fail folds the failure into its result type R.
type Command[R any] interface {
	Execute() ActionResult[R]
}

// ActionResult is the outcome of executing a Command: either a normal
// payload to deliver to the caller, or Stop, which terminates the worker.
type ActionResult[R any] struct {
	value R
	stop  bool
}

// Normal wraps a payload that is delivered to the caller.
func Normal[R any](v R) ActionResult[R] {
	return ActionResult[R]{value: v}
}

// Stop tells the worker that executed the command to exit.
func Stop[R any]() ActionResult[R] {
	return ActionResult[R]{stop: true}
}

// Value returns the payload and true, or the zero value and false for Stop.
func (a ActionResult[R]) Value() (R, bool) {
	if a.stop {
		var zero R
		return zero, false
	}
	return a.value, true
}

// IsStop reports whether the result is Stop.
func (a ActionResult[R]) IsStop() bool {
	return a.stop
}

func (a ActionResult[R]) String() string {
	if a.stop {
		return "Stop"
	}
	return fmt.Sprintf("Normal(%v)", a.value)
}

// StopRunner produces the stop command sent to each worker during Close.
// StopCommand is called once per worker.
type StopRunner[C any] interface {
	StopCommand() C
}

// SimpleStop is implemented by command types whose zero value can build the
// stop command itself. Runners over such types can be closed with Close
// instead of CloseWith.
type SimpleStop[C any] interface {
	StopRunner[C]
}

// StopFunc adapts a plain function to a StopRunner.
type StopFunc[C any] func() C

// StopCommand calls f.
func (f StopFunc[C]) StopCommand() C {
	return f()
}

// SimpleCloser returns the StopRunner of a SimpleStop command type, or
// ErrNoStopCommand if C does not implement SimpleStop.
func SimpleCloser[C any]() (StopRunner[C], error) {
	var zero C
	if s, ok := any(zero).(SimpleStop[C]); ok {
		return s, nil
	}
	return nil, ErrNoStopCommand
}

// Runner is the terminal state of a worker that exited through Stop.
type Runner struct {
	slot      int
	executed  uint64
	delivered uint64
}

// Slot is the worker's index within its runner, 0 for a Single runner.
func (r *Runner) Slot() int {
	return r.slot
}

// Executed is the number of commands the worker executed, including the one
// that returned Stop.
func (r *Runner) Executed() uint64 {
	return r.executed
}

// Delivered is the number of results the worker handed to callers.
func (r *Runner) Delivered() uint64 {
	return r.delivered
}

func (r *Runner) String() string {
	return fmt.Sprintf("Runner{slot: %d, executed: %d, delivered: %d}", r.slot, r.executed, r.delivered)
}
