package runner

import (
	"errors"

	"github.com/utkarsh5026/supera/chanx"
)

// SingleToken runs commands on one worker and answers each submission with
// its own Token. Results complete in submission order.
type SingleToken[C Command[R], R any] struct {
	*base[C, R, *QueuedCommand[C, R]]
}

// StartSingleToken starts a single-worker runner with per-call tokens.
//
// This is the expert entry point: the worker blocks until the runner is
// closed, so the caller must call Close or CloseWith exactly once.
// ScopeSingleToken does that automatically.
//
// Example:
//
//	r := runner.StartSingleToken[Sub, int]()
//	tok, _ := r.Send(Sub{A: 2, B: 1})
//	v, _ := tok.Recv() // 1
//	_, _ = r.Close()
func StartSingleToken[C Command[R], R any](opts ...Option) *SingleToken[C, R] {
	conf := createConfig(opts...)
	tx, rx := chanx.Unbounded[*QueuedCommand[C, R]]()

	b := newBase[C, R, *QueuedCommand[C, R]](conf, tx, stopMessage[C, R])
	b.spawn(rx, tokenDelivery[C, R]{})
	return &SingleToken[C, R]{base: b}
}

// Send enqueues cmd and returns the Token its result will arrive on.
// It fails with a *SubmitError holding cmd if the runner is closed or its
// worker is gone.
func (r *SingleToken[C, R]) Send(cmd C) (*Token[R], error) {
	return submitToken(r.base, cmd)
}

// Close shuts the runner down with the stop command synthesized by C.
// It returns ErrNoStopCommand without closing if C is not a SimpleStop.
func (r *SingleToken[C, R]) Close() (*Runner, error) {
	stop, err := SimpleCloser[C]()
	if err != nil {
		return nil, err
	}
	return r.CloseWith(stop)
}

// CloseWith sends the worker one command from stop and waits for it to exit.
// The returned Runner is nil unless the worker exited through Stop; the
// error joins any stop delivery failure with the worker's own error.
func (r *SingleToken[C, R]) CloseWith(stop StopRunner[C]) (*Runner, error) {
	return singleExit(r.closeWith(stop))
}

// SingleStream runs commands on one worker and pushes every result onto one
// shared stream read with Recv. Results arrive in submission order.
type SingleStream[C Command[R], R any] struct {
	*base[C, R, C]
	results *chanx.QueueReceiver[R]
}

// StartSingleStream starts a single-worker runner with a shared result
// stream. The caller must call Close or CloseWith exactly once;
// ScopeSingleStream does that automatically.
func StartSingleStream[C Command[R], R any](opts ...Option) *SingleStream[C, R] {
	conf := createConfig(opts...)
	tx, rx := chanx.Unbounded[C]()
	sink, results := chanx.Unbounded[R]()

	b := newBase[C, R, C](conf, tx, identity[C])
	b.spawn(rx, streamDelivery[C, R]{sink: sink})
	return &SingleStream[C, R]{base: b, results: results}
}

// Send enqueues cmd. It fails with a *SubmitError holding cmd if the runner
// is closed or its worker is gone.
func (r *SingleStream[C, R]) Send(cmd C) error {
	return r.submit(cmd, cmd)
}

// Recv blocks until the next result is available. It fails with
// chanx.ErrDisconnected once the worker has terminated and every result
// has been read. Results remain readable after Close.
func (r *SingleStream[C, R]) Recv() (R, error) {
	return r.results.Recv()
}

// TryRecv returns the next result without blocking, or chanx.ErrEmpty.
func (r *SingleStream[C, R]) TryRecv() (R, error) {
	return r.results.TryRecv()
}

// Close shuts the runner down with the stop command synthesized by C.
func (r *SingleStream[C, R]) Close() (*Runner, error) {
	stop, err := SimpleCloser[C]()
	if err != nil {
		return nil, err
	}
	return r.CloseWith(stop)
}

// CloseWith sends the worker one command from stop and waits for it to exit.
func (r *SingleStream[C, R]) CloseWith(stop StopRunner[C]) (*Runner, error) {
	return singleExit(r.closeWith(stop))
}

func submitToken[C Command[R], R any](b *base[C, R, *QueuedCommand[C, R]], cmd C) (*Token[R], error) {
	q, tok := newQueuedCommand[C, R](cmd)
	if err := b.submit(cmd, q); err != nil {
		tok.Close()
		q.Discard()
		return nil, err
	}
	return tok, nil
}

func singleExit(exits Exits, err error) (*Runner, error) {
	if len(exits) == 0 {
		return nil, err
	}
	return exits[0].Runner, errors.Join(err, exits[0].Err)
}

func identity[C any](cmd C) C {
	return cmd
}
