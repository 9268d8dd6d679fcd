// Package chanx provides the minimal channel capability used by the runner
// package, together with the transports that satisfy it.
//
// A transport is anything that can move values between goroutines through
// two independent operations:
//
//   - Sender.Send delivers one value, failing once every receiver is gone.
//   - Receiver.Recv blocks until a value is available, failing once every
//     sender is gone and nothing is pending.
//
// Three transports are included:
//
//   - Unbounded: multi-producer, single-consumer FIFO queue.
//   - MPMC: multi-producer, multi-consumer FIFO queue. Every receiver clone
//     competes for the next value.
//   - Oneshot: a single value, delivered at most once.
//
// Go has no destructors, so handles are released explicitly with Close.
// Closing a handle twice is a no-op. When the last receiver of a queue is
// closed, pending values are discarded, and values implementing Discarder
// have Discard called as they are dropped.
//
// # Basic Usage
//
//	tx, rx := chanx.Unbounded[int]()
//	go func() {
//	    defer tx.Close()
//	    for i := range 3 {
//	        _ = tx.Send(i)
//	    }
//	}()
//	for {
//	    v, err := rx.Recv()
//	    if errors.Is(err, chanx.ErrDisconnected) {
//	        break
//	    }
//	    fmt.Println(v)
//	}
package chanx
