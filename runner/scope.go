package runner

// ScopeSingleToken starts a SingleToken runner, passes it to fn and closes it
// with C's own stop command once fn returns. Close also runs when fn panics;
// the panic continues after every worker has been joined. If fn closes the
// runner itself, that close's outcome is returned.
//
// Example:
//
//	_, err := runner.ScopeSingleToken(func(r *runner.SingleToken[Sub, int]) {
//	    tok, _ := r.Send(Sub{A: 2, B: 1})
//	    v, _ := tok.Recv()
//	    fmt.Println(v)
//	})
func ScopeSingleToken[C Command[R], R any](fn func(*SingleToken[C, R]), opts ...Option) (*Runner, error) {
	stop, err := SimpleCloser[C]()
	if err != nil {
		return nil, err
	}
	return ScopeSingleTokenWith(stop, fn, opts...)
}

// ScopeSingleTokenWith is ScopeSingleToken with an explicit stop source.
func ScopeSingleTokenWith[C Command[R], R any](stop StopRunner[C], fn func(*SingleToken[C, R]), opts ...Option) (r *Runner, err error) {
	if stop == nil {
		return nil, ErrNoStopCommand
	}

	api := StartSingleToken[C, R](opts...)
	defer func() {
		r, err = singleExit(api.scopeClose(stop))
	}()

	fn(api)
	return nil, nil
}

// ScopeSingleStream starts a SingleStream runner, passes it to fn and closes
// it once fn returns or panics.
func ScopeSingleStream[C Command[R], R any](fn func(*SingleStream[C, R]), opts ...Option) (*Runner, error) {
	stop, err := SimpleCloser[C]()
	if err != nil {
		return nil, err
	}
	return ScopeSingleStreamWith(stop, fn, opts...)
}

// ScopeSingleStreamWith is ScopeSingleStream with an explicit stop source.
func ScopeSingleStreamWith[C Command[R], R any](stop StopRunner[C], fn func(*SingleStream[C, R]), opts ...Option) (r *Runner, err error) {
	if stop == nil {
		return nil, ErrNoStopCommand
	}

	api := StartSingleStream[C, R](opts...)
	defer func() {
		r, err = singleExit(api.scopeClose(stop))
	}()

	fn(api)
	return nil, nil
}

// ScopePoolToken starts a PoolToken runner, passes it to fn and closes it
// once fn returns or panics.
func ScopePoolToken[C Command[R], R any](fn func(*PoolToken[C, R]), opts ...Option) (Exits, error) {
	stop, err := SimpleCloser[C]()
	if err != nil {
		return nil, err
	}
	return ScopePoolTokenWith(stop, fn, opts...)
}

// ScopePoolTokenWith is ScopePoolToken with an explicit stop source.
func ScopePoolTokenWith[C Command[R], R any](stop StopRunner[C], fn func(*PoolToken[C, R]), opts ...Option) (exits Exits, err error) {
	if stop == nil {
		return nil, ErrNoStopCommand
	}

	api := StartPoolToken[C, R](opts...)
	defer func() {
		exits, err = api.scopeClose(stop)
	}()

	fn(api)
	return nil, nil
}

// ScopePoolStream starts a PoolStream runner, passes it to fn and closes it
// once fn returns or panics.
func ScopePoolStream[C Command[R], R any](fn func(*PoolStream[C, R]), opts ...Option) (Exits, error) {
	stop, err := SimpleCloser[C]()
	if err != nil {
		return nil, err
	}
	return ScopePoolStreamWith(stop, fn, opts...)
}

// ScopePoolStreamWith is ScopePoolStream with an explicit stop source.
func ScopePoolStreamWith[C Command[R], R any](stop StopRunner[C], fn func(*PoolStream[C, R]), opts ...Option) (exits Exits, err error) {
	if stop == nil {
		return nil, ErrNoStopCommand
	}

	api := StartPoolStream[C, R](opts...)
	defer func() {
		exits, err = api.scopeClose(stop)
	}()

	fn(api)
	return nil, nil
}
