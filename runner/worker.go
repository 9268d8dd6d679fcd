package runner

import (
	"context"
	"fmt"

	"github.com/utkarsh5026/supera/chanx"
)

// delivery is the response strategy of a worker. M is the message type of
// the incoming queue.
type delivery[C Command[R], R any, M any] interface {
	// open splits a message into the command and the sink for its result.
	open(m M) (C, chanx.Sender[R])
	// discard releases a message whose result will never be sent.
	discard(m M)
	// release closes what the worker owns once it terminates.
	release()
}

// tokenDelivery answers each command through its own one-shot reply.
type tokenDelivery[C Command[R], R any] struct{}

func (tokenDelivery[C, R]) open(q *QueuedCommand[C, R]) (C, chanx.Sender[R]) {
	return q.cmd, q.reply
}

func (tokenDelivery[C, R]) discard(q *QueuedCommand[C, R]) {
	q.Discard()
}

func (tokenDelivery[C, R]) release() {}

// streamDelivery answers every command through the worker's clone of the
// shared result queue.
type streamDelivery[C Command[R], R any] struct {
	sink *chanx.QueueSender[R]
}

func (d streamDelivery[C, R]) open(cmd C) (C, chanx.Sender[R]) {
	return cmd, d.sink
}

func (streamDelivery[C, R]) discard(C) {}

func (d streamDelivery[C, R]) release() {
	d.sink.Close()
}

// worker is the receive, execute, deliver loop shared by every runner kind.
type worker[C Command[R], R any, M any] struct {
	slot int
	in   chanx.Receiver[M]
	out  delivery[C, R, M]
	conf *config
	tel  *telemetry
}

// run processes commands until one returns Stop or a transport fails.
//
// Panics are not recovered here. The deferred release still closes the
// in-flight reply and the worker's endpoints while a panic unwinds. On any
// exit other than Stop the incoming receiver is closed too, so submissions
// fail once every worker is gone.
func (w *worker[C, R, M]) run() (*Runner, error) {
	state := &Runner{slot: w.slot}

	var (
		inFlight M
		holding  bool
		stopped  bool
	)
	defer func() {
		if holding {
			w.out.discard(inFlight)
		}
		w.out.release()
		if !stopped {
			if c, ok := w.in.(chanx.Closer); ok {
				c.Close()
			}
		}
	}()

	w.tel.workerStarted(w.slot)

	for {
		m, err := w.in.Recv()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRecv, err)
		}
		inFlight, holding = m, true

		if w.conf.rateLimiter != nil {
			// Background never cancels and burst is positive, so Wait cannot fail.
			_ = w.conf.rateLimiter.Wait(context.Background())
		}

		cmd, sink := w.out.open(m)
		if w.conf.beforeExecute != nil {
			w.conf.beforeExecute(w.slot)
		}

		result := cmd.Execute()
		state.executed++
		w.tel.commandExecuted()

		v, ok := result.Value()
		if !ok {
			stopped = true
			return state, nil
		}

		if err := sink.Send(v); err != nil {
			return nil, &SendError[R]{Result: v, Err: err}
		}
		state.delivered++
		w.tel.resultDelivered()

		var zero M
		inFlight, holding = zero, false
	}
}
