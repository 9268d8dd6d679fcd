package benchmarks

import (
	"testing"
	"time"

	"github.com/utkarsh5026/supera/runner"
)

// workload is the benchmark command. The zero value builds the stop command.
type workload struct {
	iterations int
	delay      time.Duration
	task       int
	stop       bool
}

func (w workload) Execute() runner.ActionResult[int] {
	if w.stop {
		return runner.Stop[int]()
	}
	if w.delay > 0 {
		time.Sleep(w.delay)
	}
	result := 0
	for i := range w.iterations {
		result += i * w.task
	}
	return runner.Normal(result + w.task)
}

func (workload) StopCommand() workload {
	return workload{stop: true}
}

// cpuBound simulates a CPU-intensive command.
func cpuBound(iterations int) func(task int) workload {
	return func(task int) workload {
		return workload{iterations: iterations, task: task}
	}
}

// ioBound simulates a command waiting on I/O.
func ioBound(delay time.Duration) func(task int) workload {
	return func(task int) workload {
		return workload{delay: delay, task: task}
	}
}

// mixed simulates variable processing time (0-9ms) followed by computation.
func mixed() func(task int) workload {
	return func(task int) workload {
		return workload{iterations: 1000, delay: time.Duration(task%10) * time.Millisecond, task: task}
	}
}

// kindConfig is one runner kind driven through a common shape: run submits
// every command and waits for every result.
type kindConfig struct {
	name string
	run  func(b *testing.B, count int, gen func(int) workload, opts ...runner.Option)
}

func getAllKinds() []kindConfig {
	return []kindConfig{
		{name: "SingleToken", run: runSingleToken},
		{name: "PoolToken", run: runPoolToken},
		{name: "SingleStream", run: runSingleStream},
		{name: "PoolStream", run: runPoolStream},
	}
}

func getPoolKinds() []kindConfig {
	return []kindConfig{
		{name: "PoolToken", run: runPoolToken},
		{name: "PoolStream", run: runPoolStream},
	}
}

// runKindBenchmark runs benchFunc for every kind as a sub-benchmark.
func runKindBenchmark(b *testing.B, kinds []kindConfig, benchFunc func(b *testing.B, k kindConfig)) {
	for _, k := range kinds {
		b.Run(k.name, func(b *testing.B) {
			benchFunc(b, k)
		})
	}
}

func runSingleToken(b *testing.B, count int, gen func(int) workload, opts ...runner.Option) {
	_, err := runner.ScopeSingleToken(func(r *runner.SingleToken[workload, int]) {
		tokens := make([]*runner.Token[int], 0, count)
		for i := range count {
			tok, err := r.Send(gen(i))
			if err != nil {
				b.Fatal(err)
			}
			tokens = append(tokens, tok)
		}
		for _, tok := range tokens {
			if _, err := tok.Recv(); err != nil {
				b.Fatal(err)
			}
		}
	}, opts...)
	if err != nil {
		b.Fatal(err)
	}
}

func runPoolToken(b *testing.B, count int, gen func(int) workload, opts ...runner.Option) {
	exits, err := runner.ScopePoolToken(func(p *runner.PoolToken[workload, int]) {
		tokens := make([]*runner.Token[int], 0, count)
		for i := range count {
			tok, err := p.Send(gen(i))
			if err != nil {
				b.Fatal(err)
			}
			tokens = append(tokens, tok)
		}
		for _, tok := range tokens {
			if _, err := tok.Recv(); err != nil {
				b.Fatal(err)
			}
		}
	}, opts...)
	if err == nil {
		err = exits.Err()
	}
	if err != nil {
		b.Fatal(err)
	}
}

func runSingleStream(b *testing.B, count int, gen func(int) workload, opts ...runner.Option) {
	_, err := runner.ScopeSingleStream(func(r *runner.SingleStream[workload, int]) {
		for i := range count {
			if err := r.Send(gen(i)); err != nil {
				b.Fatal(err)
			}
		}
		for range count {
			if _, err := r.Recv(); err != nil {
				b.Fatal(err)
			}
		}
	}, opts...)
	if err != nil {
		b.Fatal(err)
	}
}

func runPoolStream(b *testing.B, count int, gen func(int) workload, opts ...runner.Option) {
	exits, err := runner.ScopePoolStream(func(p *runner.PoolStream[workload, int]) {
		for i := range count {
			if err := p.Send(gen(i)); err != nil {
				b.Fatal(err)
			}
		}
		for range count {
			if _, err := p.Recv(); err != nil {
				b.Fatal(err)
			}
		}
	}, opts...)
	if err == nil {
		err = exits.Err()
	}
	if err != nil {
		b.Fatal(err)
	}
}
