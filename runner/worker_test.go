package runner

import (
	"errors"
	"testing"

	"github.com/utkarsh5026/supera/chanx"
)

func newTestWorker[M any](in chanx.Receiver[M], out delivery[mathCmd, int, M]) *worker[mathCmd, int, M] {
	conf := createConfig(quietLogger())
	return &worker[mathCmd, int, M]{
		in:   in,
		out:  out,
		conf: conf,
		tel:  newTelemetry(conf),
	}
}

func TestWorker_RecvError(t *testing.T) {
	t.Run("stream releases its sink", func(t *testing.T) {
		tx, rx := chanx.Unbounded[mathCmd]()
		tx.Close()

		sink, results := chanx.Unbounded[int]()
		defer results.Close()

		w := newTestWorker[mathCmd](rx, streamDelivery[mathCmd, int]{sink: sink})

		state, err := w.run()
		if state != nil {
			t.Errorf("expected no runner state, got %v", state)
		}
		if !errors.Is(err, ErrRecv) {
			t.Fatalf("expected ErrRecv, got %v", err)
		}
		if !errors.Is(err, chanx.ErrDisconnected) {
			t.Errorf("expected the transport error to be wrapped, got %v", err)
		}
		if outcome(err) != "recv_error" {
			t.Errorf("expected recv_error outcome, got %s", outcome(err))
		}

		if _, err := results.Recv(); !errors.Is(err, chanx.ErrDisconnected) {
			t.Errorf("expected the result sink to be closed, got %v", err)
		}
	})

	t.Run("pending commands run before the error", func(t *testing.T) {
		tx, rx := chanx.Unbounded[*QueuedCommand[mathCmd, int]]()

		q, tok := newQueuedCommand[mathCmd, int](sub(9, 4))
		if err := tx.Send(q); err != nil {
			t.Fatalf("send failed: %v", err)
		}
		tx.Close()

		w := newTestWorker[*QueuedCommand[mathCmd, int]](rx, tokenDelivery[mathCmd, int]{})

		if _, err := w.run(); !errors.Is(err, ErrRecv) {
			t.Fatalf("expected ErrRecv, got %v", err)
		}
		if v, err := tok.Recv(); err != nil || v != 5 {
			t.Errorf("expected 5 before disconnect, got %d (err %v)", v, err)
		}
	})
}
