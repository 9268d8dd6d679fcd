package chanx

import (
	"sync"
	"sync/atomic"
)

// queue is the shared state behind Unbounded and MPMC. It counts live
// sender and receiver handles to detect disconnection from either side.
type queue[T any] struct {
	mu        sync.Mutex
	ready     *sync.Cond
	items     ring[T]
	senders   int
	receivers int
}

func newQueue[T any]() *queue[T] {
	q := &queue[T]{
		items:     newRing[T](defaultInitialCapacity),
		senders:   1,
		receivers: 1,
	}
	q.ready = sync.NewCond(&q.mu)
	return q
}

func (q *queue[T]) send(v T) error {
	q.mu.Lock()
	if q.receivers == 0 {
		q.mu.Unlock()
		return &SendError[T]{Value: v}
	}
	q.items.push(v)
	q.mu.Unlock()

	q.ready.Signal()
	return nil
}

func (q *queue[T]) recv() (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.items.len() == 0 && q.senders > 0 {
		q.ready.Wait()
	}

	if q.items.len() > 0 {
		return q.items.pop(), nil
	}

	var zero T
	return zero, ErrDisconnected
}

func (q *queue[T]) tryRecv() (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.items.len() > 0 {
		return q.items.pop(), nil
	}

	var zero T
	if q.senders == 0 {
		return zero, ErrDisconnected
	}
	return zero, ErrEmpty
}

func (q *queue[T]) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.len()
}

func (q *queue[T]) addSender() {
	q.mu.Lock()
	q.senders++
	q.mu.Unlock()
}

func (q *queue[T]) addReceiver() {
	q.mu.Lock()
	q.receivers++
	q.mu.Unlock()
}

// dropSender wakes every blocked receiver once the last sender is gone, so
// they can observe the disconnection.
func (q *queue[T]) dropSender() {
	q.mu.Lock()
	q.senders--
	last := q.senders == 0
	q.mu.Unlock()

	if last {
		q.ready.Broadcast()
	}
}

// dropReceiver discards everything still pending once the last receiver is
// gone. Discarding happens outside the lock because a value's Close may
// touch other transports.
func (q *queue[T]) dropReceiver() {
	q.mu.Lock()
	q.receivers--
	var pending []T
	if q.receivers == 0 {
		pending = q.items.drain()
	}
	q.mu.Unlock()

	for _, v := range pending {
		discard(v)
	}
}

// senderHandle and receiverHandle carry the per-handle closed flag shared by
// both queue families.
type senderHandle[T any] struct {
	q      *queue[T]
	closed atomic.Bool
}

func (h *senderHandle[T]) send(v T) error {
	if h.closed.Load() {
		return &SendError[T]{Value: v}
	}
	return h.q.send(v)
}

func (h *senderHandle[T]) close() {
	if h.closed.CompareAndSwap(false, true) {
		h.q.dropSender()
	}
}

func (h *senderHandle[T]) clone() *senderHandle[T] {
	c := &senderHandle[T]{q: h.q}
	if h.closed.Load() {
		c.closed.Store(true)
		return c
	}
	h.q.addSender()
	return c
}

type receiverHandle[T any] struct {
	q      *queue[T]
	closed atomic.Bool
}

func (h *receiverHandle[T]) recv() (T, error) {
	if h.closed.Load() {
		var zero T
		return zero, ErrDisconnected
	}
	return h.q.recv()
}

func (h *receiverHandle[T]) tryRecv() (T, error) {
	if h.closed.Load() {
		var zero T
		return zero, ErrDisconnected
	}
	return h.q.tryRecv()
}

func (h *receiverHandle[T]) close() {
	if h.closed.CompareAndSwap(false, true) {
		h.q.dropReceiver()
	}
}

func (h *receiverHandle[T]) clone() *receiverHandle[T] {
	c := &receiverHandle[T]{q: h.q}
	if h.closed.Load() {
		c.closed.Store(true)
		return c
	}
	h.q.addReceiver()
	return c
}
