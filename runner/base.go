package runner

import (
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/utkarsh5026/supera/chanx"
	"github.com/utkarsh5026/supera/internal/thread"
)

// Exit is the terminal state of one worker: Runner for a Stop exit, Err
// otherwise.
type Exit struct {
	Slot   int
	Runner *Runner
	Err    error
}

// Exits holds one Exit per worker, in slot order.
type Exits []Exit

// Err joins the errors of every worker that did not exit through Stop.
func (e Exits) Err() error {
	var errs []error
	for _, x := range e {
		if x.Err != nil {
			errs = append(errs, x.Err)
		}
	}
	return errors.Join(errs...)
}

// Runners returns the state of every worker that exited through Stop.
func (e Exits) Runners() []*Runner {
	rs := make([]*Runner, 0, len(e))
	for _, x := range e {
		if x.Runner != nil {
			rs = append(rs, x.Runner)
		}
	}
	return rs
}

type sendCloser[M any] interface {
	chanx.Sender[M]
	chanx.Closer
}

// base holds what every runner kind shares: the API's sending half of the
// incoming queue, the workers and the closed flag.
type base[C Command[R], R any, M any] struct {
	id        uuid.UUID
	conf      *config
	tel       *telemetry
	incoming  sendCloser[M]
	receivers []chanx.Closer
	handles   []*thread.Handle[*Runner]
	closed    atomic.Bool
	wrapStop  func(C) M

	// Outcome of the first close, valid once closeDone is closed.
	closeDone  chan struct{}
	closeExits Exits
	closeErr   error
}

func newBase[C Command[R], R any, M any](conf *config, incoming sendCloser[M], wrapStop func(C) M) *base[C, R, M] {
	id := uuid.New()
	if conf.name == "" {
		conf.name = id.String()
	}

	return &base[C, R, M]{
		id:       id,
		conf:     conf,
		tel:      newTelemetry(conf),
		incoming: incoming,
		wrapStop: wrapStop,

		closeDone: make(chan struct{}),
	}
}

// spawn starts the next worker on in, delivering through out.
func (b *base[C, R, M]) spawn(in chanx.Receiver[M], out delivery[C, R, M]) {
	w := &worker[C, R, M]{
		slot: len(b.handles),
		in:   in,
		out:  out,
		conf: b.conf,
		tel:  b.tel,
	}

	if c, ok := in.(chanx.Closer); ok {
		b.receivers = append(b.receivers, c)
	}

	cfg := thread.Config{
		Slot:         w.slot,
		LockOSThread: b.conf.lockOSThread,
		PinCPU:       b.conf.pinCPU,
		OnPinError: func(err error) {
			b.tel.logger.Warn("cpu pinning failed", slog.Int("slot", w.slot), slog.Any("error", err))
		},
	}
	h := thread.Spawn(cfg, w.run, func(err error) {
		b.tel.workerExited(w.slot, err)
		if b.conf.onWorkerExit != nil {
			b.conf.onWorkerExit(w.slot, err)
		}
	})
	b.handles = append(b.handles, h)
}

func (b *base[C, R, M]) submit(cmd C, m M) error {
	if b.closed.Load() {
		return &SubmitError[C]{Command: cmd, Err: ErrClosed}
	}
	if err := b.incoming.Send(m); err != nil {
		return &SubmitError[C]{Command: cmd, Err: err}
	}
	return nil
}

// closeWith sends one stop command per worker, joins every worker, then
// releases the queues. Commands still queued after the join are discarded,
// which fails their tokens.
//
// Workers are joined even if a stop cannot be delivered: that only happens
// once every worker has closed its receiver, i.e. has already exited.
func (b *base[C, R, M]) closeWith(stop StopRunner[C]) (Exits, error) {
	if stop == nil {
		return nil, ErrNoStopCommand
	}
	if !b.closed.CompareAndSwap(false, true) {
		return nil, ErrClosed
	}

	var stopErr error
	for range b.handles {
		cmd := stop.StopCommand()
		if err := b.incoming.Send(b.wrapStop(cmd)); err != nil {
			stopErr = &CloseError{Err: &SubmitError[C]{Command: cmd, Err: err}}
			break
		}
	}

	exits := b.join()

	for _, r := range b.receivers {
		r.Close()
	}
	b.incoming.Close()

	b.closeExits, b.closeErr = exits, stopErr
	close(b.closeDone)

	return exits, stopErr
}

// scopeClose closes the runner, or returns the outcome of the close that
// already happened, waiting for it to finish.
func (b *base[C, R, M]) scopeClose(stop StopRunner[C]) (Exits, error) {
	exits, err := b.closeWith(stop)
	if exits == nil && errors.Is(err, ErrClosed) {
		<-b.closeDone
		return b.closeExits, b.closeErr
	}
	return exits, err
}

func (b *base[C, R, M]) join() Exits {
	exits := make(Exits, len(b.handles))

	var g errgroup.Group
	for i, h := range b.handles {
		g.Go(func() error {
			r, err := h.Join()
			exits[i] = Exit{Slot: i, Runner: r, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return exits
}

// ID returns the runner's unique identifier.
func (b *base[C, R, M]) ID() uuid.UUID {
	return b.id
}

// Name returns the name set with WithName, or a generated one.
func (b *base[C, R, M]) Name() string {
	return b.conf.name
}

// Workers returns the fixed number of workers.
func (b *base[C, R, M]) Workers() int {
	return len(b.handles)
}

// Pending returns the number of commands waiting in the incoming queue.
func (b *base[C, R, M]) Pending() int {
	if l, ok := b.incoming.(interface{ Len() int }); ok {
		return l.Len()
	}
	return 0
}
