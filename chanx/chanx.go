package chanx

// Sender is the send half of a transport.
//
// Send must not block beyond the transport's own contract and fails only
// when the receiving side is permanently gone.
type Sender[T any] interface {
	Send(v T) error
}

// Receiver is the receive half of a transport.
//
// Recv blocks the calling goroutine until a value arrives or the transport
// is permanently closed, in which case it fails.
type Receiver[T any] interface {
	Recv() (T, error)
}

// TryReceiver is a Receiver that can also poll without blocking.
type TryReceiver[T any] interface {
	Receiver[T]
	TryRecv() (T, error)
}

// Closer releases a handle. It is the explicit counterpart of dropping a
// channel end.
type Closer interface {
	Close()
}

// Discarder is implemented by values that own resources of their own.
// Discard is called when a transport drops the value undelivered. A
// value's Close method, if any, is never called by a transport.
type Discarder interface {
	Discard()
}

// discard releases a value that will never be received.
func discard[T any](v T) {
	if d, ok := any(v).(Discarder); ok {
		d.Discard()
	}
}
