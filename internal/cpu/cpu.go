// Package cpu binds worker goroutines to operating system threads.
package cpu

import "runtime"

// Bind locks the calling goroutine to its current OS thread and, when pin is
// set, restricts that thread to core slot % NumCPU. It returns the cleanup
// to defer in the worker body.
//
// A pinned thread is never handed back to the scheduler: the cleanup keeps
// it locked, so the runtime terminates the thread when the goroutine exits
// instead of reusing it with a narrowed affinity mask.
func Bind(slot int, pin bool) (cleanup func(), err error) {
	runtime.LockOSThread()

	if !pin {
		return runtime.UnlockOSThread, nil
	}

	if err := pinToCore(slot); err != nil {
		return runtime.UnlockOSThread, err
	}
	return func() {}, nil
}

// NumCPU returns the number of logical CPUs available.
func NumCPU() int {
	return runtime.NumCPU()
}
