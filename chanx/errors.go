package chanx

import "errors"

var (
	// ErrDisconnected is returned when the other side of a transport is gone:
	// by Recv once all senders are closed and nothing is pending, and (wrapped
	// in a SendError) by Send once all receivers are closed.
	ErrDisconnected = errors.New("chanx: channel disconnected")

	// ErrEmpty is returned by TryRecv when no value is pending yet.
	ErrEmpty = errors.New("chanx: channel empty")

	// ErrConsumed is returned when a single-use handle is used a second time.
	ErrConsumed = errors.New("chanx: handle already consumed")
)

// SendError is returned by Send when the value could not be delivered.
// The caller regains ownership of the value through the Value field.
type SendError[T any] struct {
	Value T
}

func (e *SendError[T]) Error() string {
	return "chanx: send on disconnected channel"
}

func (e *SendError[T]) Unwrap() error {
	return ErrDisconnected
}
