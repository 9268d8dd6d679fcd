package chanx

import (
	"context"
	"sync"
)

type oneshotState uint8

const (
	oneshotPending oneshotState = iota
	oneshotSent
	oneshotSenderClosed
	oneshotReceived
)

// oneshot carries at most one value from a single sender to a single receiver.
type oneshot[T any] struct {
	mu           sync.Mutex
	state        oneshotState
	value        T
	receiverGone bool
	ready        chan struct{} // closed once the sender has sent or closed
}

// OneshotSender is the single-use send half of a Oneshot pair.
type OneshotSender[T any] struct {
	o *oneshot[T]
}

// OneshotReceiver is the single-use receive half of a Oneshot pair.
type OneshotReceiver[T any] struct {
	o    *oneshot[T]
	once sync.Once
	gone chan struct{} // closed by Close to unblock a pending Recv
}

// Oneshot creates a pair that moves exactly one value. Both halves are
// single-use: the second Send or Recv returns ErrConsumed.
func Oneshot[T any]() (*OneshotSender[T], *OneshotReceiver[T]) {
	o := &oneshot[T]{ready: make(chan struct{})}
	return &OneshotSender[T]{o: o}, &OneshotReceiver[T]{o: o, gone: make(chan struct{})}
}

// Send delivers v. It fails with a *SendError carrying v if the receiver was
// closed, and with ErrConsumed if the sender was already used.
func (s *OneshotSender[T]) Send(v T) error {
	o := s.o
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != oneshotPending {
		return ErrConsumed
	}
	if o.receiverGone {
		o.state = oneshotSenderClosed
		close(o.ready)
		return &SendError[T]{Value: v}
	}

	o.value = v
	o.state = oneshotSent
	close(o.ready)
	return nil
}

// Close releases the sender without sending. A waiting receiver observes
// ErrDisconnected. Closing after Send is a no-op.
func (s *OneshotSender[T]) Close() {
	o := s.o
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == oneshotPending {
		o.state = oneshotSenderClosed
		close(o.ready)
	}
}

// Recv blocks until the value is sent or the sender is closed.
func (r *OneshotReceiver[T]) Recv() (T, error) {
	select {
	case <-r.o.ready:
		return r.take()
	case <-r.gone:
		var zero T
		return zero, ErrDisconnected
	}
}

// RecvContext is Recv bounded by ctx. A cancelled wait does not consume the
// receiver, so it can be retried.
func (r *OneshotReceiver[T]) RecvContext(ctx context.Context) (T, error) {
	select {
	case <-r.o.ready:
		return r.take()
	case <-r.gone:
		var zero T
		return zero, ErrDisconnected
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// TryRecv returns the value if it has already arrived, or ErrEmpty.
func (r *OneshotReceiver[T]) TryRecv() (T, error) {
	select {
	case <-r.o.ready:
		return r.take()
	default:
	}

	var zero T
	select {
	case <-r.gone:
		return zero, ErrDisconnected
	default:
		return zero, ErrEmpty
	}
}

// Close releases the receiver. A later Send fails and hands its value back;
// a value that was already sent is discarded.
func (r *OneshotReceiver[T]) Close() {
	r.once.Do(func() {
		o := r.o
		o.mu.Lock()
		o.receiverGone = true
		var pending T
		hasPending := o.state == oneshotSent
		if hasPending {
			pending = o.value
			var zero T
			o.value = zero
			o.state = oneshotReceived
		}
		o.mu.Unlock()

		close(r.gone)
		if hasPending {
			discard(pending)
		}
	})
}

func (r *OneshotReceiver[T]) take() (T, error) {
	o := r.o
	o.mu.Lock()
	defer o.mu.Unlock()

	var zero T
	if o.receiverGone {
		return zero, ErrDisconnected
	}

	switch o.state {
	case oneshotSent:
		v := o.value
		o.value = zero
		o.state = oneshotReceived
		return v, nil
	case oneshotReceived:
		return zero, ErrConsumed
	default:
		return zero, ErrDisconnected
	}
}

var (
	_ Sender[int]      = (*OneshotSender[int])(nil)
	_ TryReceiver[int] = (*OneshotReceiver[int])(nil)
	_ Closer           = (*OneshotSender[int])(nil)
	_ Closer           = (*OneshotReceiver[int])(nil)
)
