package chanx

// MPMCSender is a send handle of an MPMC queue.
type MPMCSender[T any] struct {
	h *senderHandle[T]
}

// MPMCReceiver is a receive handle of an MPMC queue. Clones compete for
// values: each value is received by exactly one of them.
type MPMCReceiver[T any] struct {
	h *receiverHandle[T]
}

// MPMC creates a multi-producer, multi-consumer FIFO queue with no capacity
// limit. Values leave the queue in arrival order, but which receiver gets a
// given value is unspecified.
func MPMC[T any]() (*MPMCSender[T], *MPMCReceiver[T]) {
	q := newQueue[T]()
	return &MPMCSender[T]{h: &senderHandle[T]{q: q}}, &MPMCReceiver[T]{h: &receiverHandle[T]{q: q}}
}

// Send enqueues v. It fails with a *SendError once every receiver is closed.
func (s *MPMCSender[T]) Send(v T) error {
	return s.h.send(v)
}

// Clone returns another independent sender for the same queue.
func (s *MPMCSender[T]) Clone() *MPMCSender[T] {
	return &MPMCSender[T]{h: s.h.clone()}
}

// Close releases this sender.
func (s *MPMCSender[T]) Close() {
	s.h.close()
}

// Len returns the number of values waiting in the queue.
func (s *MPMCSender[T]) Len() int {
	return s.h.q.len()
}

// Recv blocks until a value is available or every sender is closed.
func (r *MPMCReceiver[T]) Recv() (T, error) {
	return r.h.recv()
}

// TryRecv returns a pending value without blocking, or ErrEmpty.
func (r *MPMCReceiver[T]) TryRecv() (T, error) {
	return r.h.tryRecv()
}

// Clone returns another competing receiver for the same queue.
// Cloning a closed receiver yields a closed receiver.
func (r *MPMCReceiver[T]) Clone() *MPMCReceiver[T] {
	return &MPMCReceiver[T]{h: r.h.clone()}
}

// Close releases this receiver. Closing the last one discards every pending
// value.
func (r *MPMCReceiver[T]) Close() {
	r.h.close()
}

// Len returns the number of values waiting in the queue.
func (r *MPMCReceiver[T]) Len() int {
	return r.h.q.len()
}

var (
	_ Sender[int]      = (*MPMCSender[int])(nil)
	_ TryReceiver[int] = (*MPMCReceiver[int])(nil)
	_ Closer           = (*MPMCSender[int])(nil)
	_ Closer           = (*MPMCReceiver[int])(nil)
)
