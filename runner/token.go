package runner

import (
	"context"
	"fmt"

	"github.com/utkarsh5026/supera/chanx"
)

// QueuedCommand pairs a submitted command with the one-shot reply its result
// is sent on.
type QueuedCommand[C Command[R], R any] struct {
	cmd   C
	reply *chanx.OneshotSender[R]
}

func newQueuedCommand[C Command[R], R any](cmd C) (*QueuedCommand[C, R], *Token[R]) {
	tx, rx := chanx.Oneshot[R]()
	return &QueuedCommand[C, R]{cmd: cmd, reply: tx}, &Token[R]{rx: rx}
}

// stopMessage wraps a stop command. Nobody waits for its reply.
func stopMessage[C Command[R], R any](cmd C) *QueuedCommand[C, R] {
	q, tok := newQueuedCommand[C, R](cmd)
	tok.Close()
	return q
}

// Command returns the wrapped command.
func (q *QueuedCommand[C, R]) Command() C {
	return q.cmd
}

// Discard releases the reply without answering, so the waiting Token fails.
// The wrapped command is left untouched.
func (q *QueuedCommand[C, R]) Discard() {
	q.reply.Close()
}

func (q *QueuedCommand[C, R]) String() string {
	return fmt.Sprintf("QueuedCommand{cmd: %v}", q.cmd)
}

// Token is the caller's handle on the result of one submitted command.
// It yields at most one value.
type Token[R any] struct {
	rx *chanx.OneshotReceiver[R]
}

// Recv blocks until the result arrives. It fails with chanx.ErrDisconnected
// if the command will never produce one: it returned Stop, its worker
// terminated, or it was discarded at Close. A second Recv after success
// fails with chanx.ErrConsumed.
func (t *Token[R]) Recv() (R, error) {
	return t.rx.Recv()
}

// RecvContext is Recv bounded by ctx. A cancelled wait leaves the token
// usable.
func (t *Token[R]) RecvContext(ctx context.Context) (R, error) {
	return t.rx.RecvContext(ctx)
}

// TryRecv returns the result if it has arrived, or chanx.ErrEmpty.
func (t *Token[R]) TryRecv() (R, error) {
	return t.rx.TryRecv()
}

// Close abandons the result. The worker that later tries to deliver it exits
// with a *SendError.
func (t *Token[R]) Close() {
	t.rx.Close()
}
