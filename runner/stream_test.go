package runner

import (
	"errors"
	"sort"
	"testing"

	"github.com/utkarsh5026/supera/chanx"
)

func TestSingleStream_Scenario(t *testing.T) {
	state, err := ScopeSingleStream(func(r *SingleStream[mathCmd, int]) {
		if err := r.Send(sub(3, 2)); err != nil {
			t.Fatalf("send failed: %v", err)
		}
		v, err := r.Recv()
		if err != nil {
			t.Fatalf("recv failed: %v", err)
		}
		if v != 1 {
			t.Errorf("expected 1, got %d", v)
		}
	}, quietLogger())

	if err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if state == nil || state.Delivered() != 1 {
		t.Errorf("unexpected runner state %v", state)
	}
}

func TestSingleStream_Order(t *testing.T) {
	r := StartSingleStream[mathCmd, int](quietLogger())

	const count = 1000
	for i := range count {
		if err := r.Send(sub(i, 0)); err != nil {
			t.Fatalf("send failed: %v", err)
		}
	}
	for want := range count {
		got, err := r.Recv()
		if err != nil {
			t.Fatalf("recv failed: %v", err)
		}
		if got != want {
			t.Fatalf("expected %d, got %d", want, got)
		}
	}

	if _, err := r.TryRecv(); !errors.Is(err, chanx.ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
	if _, err := r.Close(); err != nil {
		t.Errorf("close failed: %v", err)
	}
}

func TestSingleStream_ResultsReadableAfterClose(t *testing.T) {
	r := StartSingleStream[mathCmd, int](quietLogger())

	for i := range 3 {
		if err := r.Send(sub(10, i)); err != nil {
			t.Fatalf("send failed: %v", err)
		}
	}
	if _, err := r.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	for i := range 3 {
		v, err := r.Recv()
		if err != nil || v != 10-i {
			t.Fatalf("expected %d, got %d (err %v)", 10-i, v, err)
		}
	}
	if _, err := r.Recv(); !errors.Is(err, chanx.ErrDisconnected) {
		t.Errorf("expected ErrDisconnected once drained, got %v", err)
	}
}

func TestPoolStream_Multiset(t *testing.T) {
	const count = 2000

	var got []int
	exits, err := ScopePoolStream(func(p *PoolStream[mathCmd, int]) {
		for i := range count {
			if err := p.Send(sub(i, 0)); err != nil {
				t.Fatalf("send failed: %v", err)
			}
		}
		for range count {
			v, err := p.Recv()
			if err != nil {
				t.Fatalf("recv failed: %v", err)
			}
			got = append(got, v)
		}
	}, WithWorkerCount(8), quietLogger())

	if err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if len(exits) != 8 {
		t.Fatalf("expected 8 exits, got %d", len(exits))
	}
	if err := exits.Err(); err != nil {
		t.Errorf("expected clean exits, got %v", err)
	}

	sort.Ints(got)
	for i, v := range got {
		if v != i {
			t.Fatalf("result %d missing or duplicated (found %d)", i, v)
		}
	}
}

func TestPoolStream_RecvFailsWhenAllWorkersGone(t *testing.T) {
	const workers = 3

	watcher := newExitWatcher()
	p := StartPoolStream[mathCmd, int](WithWorkerCount(workers), watcher.option(), quietLogger())

	// Each user-sent Stop ends exactly one worker.
	for range workers {
		if err := p.Send(mathCmd{op: opStop}); err != nil {
			t.Fatalf("send failed: %v", err)
		}
	}
	for range workers {
		if err := watcher.wait(t); err != nil {
			t.Fatalf("expected stop exit, got %v", err)
		}
	}

	if _, err := p.Recv(); !errors.Is(err, chanx.ErrDisconnected) {
		t.Errorf("expected ErrDisconnected with no live worker, got %v", err)
	}

	exits, err := p.Close()
	if err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if len(exits.Runners()) != workers {
		t.Errorf("expected %d runner states, got %d", workers, len(exits.Runners()))
	}
}
