package runner

import (
	"log/slog"
	"testing"
	"time"
)

type mathOp uint8

const (
	opSub mathOp = iota
	opStop
	opPanic
	opWait
)

// mathCmd is the arithmetic command used throughout the tests.
type mathCmd struct {
	op   mathOp
	a, b int
	gate chan struct{}
}

func sub(a, b int) mathCmd {
	return mathCmd{op: opSub, a: a, b: b}
}

// gated subtracts only after gate is closed.
func gated(a, b int, gate chan struct{}) mathCmd {
	return mathCmd{op: opWait, a: a, b: b, gate: gate}
}

func (c mathCmd) Execute() ActionResult[int] {
	switch c.op {
	case opStop:
		return Stop[int]()
	case opPanic:
		panic("math: boom")
	case opWait:
		<-c.gate
	}
	return Normal(c.a - c.b)
}

func (mathCmd) StopCommand() mathCmd {
	return mathCmd{op: opStop}
}

// flagCmd has a stop variant but cannot build it from its zero value.
type flagCmd struct {
	stop bool
}

func (c flagCmd) Execute() ActionResult[string] {
	if c.stop {
		return Stop[string]()
	}
	return Normal("ok")
}

func quietLogger() Option {
	return WithLogger(slog.New(slog.DiscardHandler))
}

// exitWatcher collects worker exits reported through WithOnWorkerExit.
type exitWatcher struct {
	ch chan error
}

func newExitWatcher() *exitWatcher {
	return &exitWatcher{ch: make(chan error, 64)}
}

func (w *exitWatcher) option() Option {
	return WithOnWorkerExit(func(_ int, err error) {
		w.ch <- err
	})
}

func (w *exitWatcher) wait(t *testing.T) error {
	t.Helper()
	select {
	case err := <-w.ch:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a worker to exit")
		return nil
	}
}

// kindConfig describes one runner kind in terms every kind supports, so a
// test body can run against all four.
type kindConfig struct {
	name    string
	workers int
	start   func(opts ...Option) kindHarness
}

type kindHarness struct {
	send  func(mathCmd) error
	close func() (Exits, error)
}

func getAllKinds(workerCount int) []kindConfig {
	return []kindConfig{
		{
			name:    "SingleToken",
			workers: 1,
			start: func(opts ...Option) kindHarness {
				r := StartSingleToken[mathCmd, int](opts...)
				return kindHarness{
					send: func(c mathCmd) error {
						_, err := r.Send(c)
						return err
					},
					close: func() (Exits, error) { return r.closeWith(mathCmd{}) },
				}
			},
		},
		{
			name:    "PoolToken",
			workers: workerCount,
			start: func(opts ...Option) kindHarness {
				p := StartPoolToken[mathCmd, int](append(opts, WithWorkerCount(workerCount))...)
				return kindHarness{
					send: func(c mathCmd) error {
						_, err := p.Send(c)
						return err
					},
					close: func() (Exits, error) { return p.closeWith(mathCmd{}) },
				}
			},
		},
		{
			name:    "SingleStream",
			workers: 1,
			start: func(opts ...Option) kindHarness {
				r := StartSingleStream[mathCmd, int](opts...)
				return kindHarness{
					send:  r.Send,
					close: func() (Exits, error) { return r.closeWith(mathCmd{}) },
				}
			},
		},
		{
			name:    "PoolStream",
			workers: workerCount,
			start: func(opts ...Option) kindHarness {
				p := StartPoolStream[mathCmd, int](append(opts, WithWorkerCount(workerCount))...)
				return kindHarness{
					send:  p.Send,
					close: func() (Exits, error) { return p.closeWith(mathCmd{}) },
				}
			},
		},
	}
}

// runKindTest runs fn once per runner kind as a subtest.
func runKindTest(t *testing.T, workerCount int, fn func(t *testing.T, k kindConfig)) {
	t.Helper()
	for _, k := range getAllKinds(workerCount) {
		t.Run(k.name, func(t *testing.T) {
			fn(t, k)
		})
	}
}
