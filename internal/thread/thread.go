// Package thread runs worker bodies on their own goroutine and hands back a
// join handle. A panic in the body is captured at the goroutine boundary and
// surfaced through Join as a *PanicError.
package thread

import (
	"fmt"
	"runtime"

	"github.com/utkarsh5026/supera/internal/cpu"
)

// Config controls how a worker goroutine is attached to the OS.
type Config struct {
	Slot         int
	LockOSThread bool
	PinCPU       bool

	// OnPinError is called when the CPU affinity cannot be applied. The body
	// still runs, locked to its OS thread.
	OnPinError func(err error)
}

// Handle joins a spawned body.
type Handle[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Spawn starts body on a new goroutine.
//
// onExit, when non-nil, is called on that goroutine with the body's final
// error (a *PanicError if it panicked) before the handle becomes joinable.
func Spawn[T any](cfg Config, body func() (T, error), onExit func(error)) *Handle[T] {
	h := &Handle[T]{done: make(chan struct{})}

	go func() {
		defer close(h.done)
		defer func() {
			if onExit != nil {
				onExit(h.err)
			}
		}()
		defer func() {
			if r := recover(); r != nil {
				buf := make([]byte, 4096)
				n := runtime.Stack(buf, false)
				h.err = &PanicError{Slot: cfg.Slot, Value: r, Stack: buf[:n]}
			}
		}()

		if cfg.LockOSThread || cfg.PinCPU {
			cleanup, err := cpu.Bind(cfg.Slot, cfg.PinCPU)
			defer cleanup()
			if err != nil && cfg.OnPinError != nil {
				cfg.OnPinError(fmt.Errorf("thread: pin worker %d: %w", cfg.Slot, err))
			}
		}

		h.value, h.err = body()
	}()

	return h
}

// Join blocks until the body has returned.
func (h *Handle[T]) Join() (T, error) {
	<-h.done
	return h.value, h.err
}

// Done is closed once the body has returned.
func (h *Handle[T]) Done() <-chan struct{} {
	return h.done
}

// PanicError records a panic raised inside a worker body.
type PanicError struct {
	Slot  int
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("worker %d panicked: %v", e.Slot, e.Value)
}

// Unwrap exposes the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
