// Package runner turns a user-defined Command type into a background worker,
// or a fixed-size pool of workers, with a well-defined shutdown protocol.
//
// A Command executes to an ActionResult: Normal(v) delivers v to the caller,
// Stop terminates the worker that ran it. Four runner kinds combine two
// topologies with two ways of delivering results:
//
//   - SingleToken: one worker, every Send returns its own Token.
//   - PoolToken: N workers sharing one queue, every Send returns a Token.
//   - SingleStream: one worker, results are read in order with Recv.
//   - PoolStream: N workers, results are read with Recv in completion order.
//
// # Lifecycle
//
// A runner's workers block until it is closed, so every started runner must
// be closed exactly once. The Scope functions do this for you and are the
// recommended entry point:
//
//	exits, err := runner.ScopePoolToken(func(p *runner.PoolToken[Sub, int]) {
//	    tok, _ := p.Send(Sub{A: 2, B: 1})
//	    v, _ := tok.Recv()
//	    fmt.Println(v) // 1
//	}, runner.WithWorkerCount(4))
//
// Closing sends one stop command per worker, joins every worker and reports
// how each one ended: a *Runner for a Stop exit, or an error wrapping
// ErrRecv, a *SendError or a *PanicError. Commands still queued when the
// workers have exited are discarded and their Tokens fail.
//
// Close uses the stop command built by the zero value of a SimpleStop
// command type. CloseWith takes any StopRunner.
//
// Dropped commands and results are released only through chanx.Discarder.
// A Close method on a user command or result type is never called by the
// runner, whether the value is discarded at Close or abandoned with
// Token.Close.
//
// # Failure Isolation
//
// A worker that cannot receive or deliver exits on its own; the others keep
// running. A panic inside Execute ends only the worker that ran the command
// and is reported when the runner is closed.
package runner
