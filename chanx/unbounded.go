package chanx

// QueueSender is a send handle of an Unbounded queue.
type QueueSender[T any] struct {
	h *senderHandle[T]
}

// QueueReceiver is the single receive handle of an Unbounded queue.
type QueueReceiver[T any] struct {
	h *receiverHandle[T]
}

// Unbounded creates a multi-producer, single-consumer FIFO queue with no
// capacity limit. Send never blocks.
func Unbounded[T any]() (*QueueSender[T], *QueueReceiver[T]) {
	q := newQueue[T]()
	return &QueueSender[T]{h: &senderHandle[T]{q: q}}, &QueueReceiver[T]{h: &receiverHandle[T]{q: q}}
}

// Send enqueues v. It fails with a *SendError once the receiver is closed.
func (s *QueueSender[T]) Send(v T) error {
	return s.h.send(v)
}

// Clone returns another independent sender for the same queue.
// Cloning a closed sender yields a closed sender.
func (s *QueueSender[T]) Clone() *QueueSender[T] {
	return &QueueSender[T]{h: s.h.clone()}
}

// Close releases this sender. The receiver observes ErrDisconnected once all
// senders are closed and the queue is empty.
func (s *QueueSender[T]) Close() {
	s.h.close()
}

// Len returns the number of values waiting in the queue.
func (s *QueueSender[T]) Len() int {
	return s.h.q.len()
}

// Recv blocks until a value is available or every sender is closed.
func (r *QueueReceiver[T]) Recv() (T, error) {
	return r.h.recv()
}

// TryRecv returns a pending value without blocking, or ErrEmpty.
func (r *QueueReceiver[T]) TryRecv() (T, error) {
	return r.h.tryRecv()
}

// Close releases the receiver and discards every pending value.
func (r *QueueReceiver[T]) Close() {
	r.h.close()
}

// Len returns the number of values waiting in the queue.
func (r *QueueReceiver[T]) Len() int {
	return r.h.q.len()
}

var (
	_ Sender[int]      = (*QueueSender[int])(nil)
	_ TryReceiver[int] = (*QueueReceiver[int])(nil)
	_ Closer           = (*QueueSender[int])(nil)
	_ Closer           = (*QueueReceiver[int])(nil)
)
