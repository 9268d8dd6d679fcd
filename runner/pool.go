package runner

import "github.com/utkarsh5026/supera/chanx"

// PoolToken runs commands on a fixed set of workers sharing one queue and
// answers each submission with its own Token. Completion order across
// workers is not defined.
type PoolToken[C Command[R], R any] struct {
	*base[C, R, *QueuedCommand[C, R]]
}

// StartPoolToken starts a pool of WithWorkerCount workers with per-call
// tokens. The caller must call Close or CloseWith exactly once;
// ScopePoolToken does that automatically.
//
// Example:
//
//	p := runner.StartPoolToken[Sub, int](runner.WithWorkerCount(4))
//	tokens := make([]*runner.Token[int], 0, 100)
//	for range 100 {
//	    tok, _ := p.Send(Sub{A: 2, B: 1})
//	    tokens = append(tokens, tok)
//	}
//	for _, tok := range tokens {
//	    v, _ := tok.Recv()
//	    fmt.Println(v)
//	}
//	exits, _ := p.Close()
//	fmt.Println(exits.Err())
func StartPoolToken[C Command[R], R any](opts ...Option) *PoolToken[C, R] {
	conf := createConfig(opts...)
	tx, rx := chanx.MPMC[*QueuedCommand[C, R]]()

	b := newBase[C, R, *QueuedCommand[C, R]](conf, tx, stopMessage[C, R])
	for _, in := range cloneReceivers(rx, conf.workerCount) {
		b.spawn(in, tokenDelivery[C, R]{})
	}
	return &PoolToken[C, R]{base: b}
}

// Send enqueues cmd for the next free worker and returns its Token.
func (p *PoolToken[C, R]) Send(cmd C) (*Token[R], error) {
	return submitToken(p.base, cmd)
}

// Close shuts the pool down with the stop command synthesized by C.
func (p *PoolToken[C, R]) Close() (Exits, error) {
	stop, err := SimpleCloser[C]()
	if err != nil {
		return nil, err
	}
	return p.CloseWith(stop)
}

// CloseWith sends one command from stop per worker and waits for every
// worker to exit. Exits has one entry per worker in slot order; the error
// reports a stop delivery failure only. Use Exits.Err for worker errors.
func (p *PoolToken[C, R]) CloseWith(stop StopRunner[C]) (Exits, error) {
	return p.closeWith(stop)
}

// PoolStream runs commands on a fixed set of workers and pushes every result
// onto one shared stream. Results do not carry submission order; correlate
// them through R if needed.
type PoolStream[C Command[R], R any] struct {
	*base[C, R, C]
	results *chanx.QueueReceiver[R]
}

// StartPoolStream starts a pool of WithWorkerCount workers with a shared
// result stream. The caller must call Close or CloseWith exactly once;
// ScopePoolStream does that automatically.
func StartPoolStream[C Command[R], R any](opts ...Option) *PoolStream[C, R] {
	conf := createConfig(opts...)
	tx, rx := chanx.MPMC[C]()
	sink, results := chanx.Unbounded[R]()

	ins := cloneReceivers(rx, conf.workerCount)
	sinks := make([]*chanx.QueueSender[R], len(ins))
	sinks[0] = sink
	for i := 1; i < len(sinks); i++ {
		sinks[i] = sink.Clone()
	}

	b := newBase[C, R, C](conf, tx, identity[C])
	for i, in := range ins {
		b.spawn(in, streamDelivery[C, R]{sink: sinks[i]})
	}
	return &PoolStream[C, R]{base: b, results: results}
}

// Send enqueues cmd for the next free worker.
func (p *PoolStream[C, R]) Send(cmd C) error {
	return p.submit(cmd, cmd)
}

// Recv blocks until a result is available. It fails with
// chanx.ErrDisconnected once every worker has terminated and every result
// has been read.
func (p *PoolStream[C, R]) Recv() (R, error) {
	return p.results.Recv()
}

// TryRecv returns a result without blocking, or chanx.ErrEmpty.
func (p *PoolStream[C, R]) TryRecv() (R, error) {
	return p.results.TryRecv()
}

// Close shuts the pool down with the stop command synthesized by C.
func (p *PoolStream[C, R]) Close() (Exits, error) {
	stop, err := SimpleCloser[C]()
	if err != nil {
		return nil, err
	}
	return p.CloseWith(stop)
}

// CloseWith sends one command from stop per worker and waits for every
// worker to exit.
func (p *PoolStream[C, R]) CloseWith(stop StopRunner[C]) (Exits, error) {
	return p.closeWith(stop)
}

// cloneReceivers makes one receiver per worker. All clones exist before any
// worker starts, so an early worker exit cannot disconnect the queue while
// the pool is still being built.
func cloneReceivers[M any](rx *chanx.MPMCReceiver[M], n int) []*chanx.MPMCReceiver[M] {
	ins := make([]*chanx.MPMCReceiver[M], n)
	ins[0] = rx
	for i := 1; i < n; i++ {
		ins[i] = rx.Clone()
	}
	return ins
}
