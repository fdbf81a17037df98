package parse

// Alternation tries candidate parsers in the order they are registered with
// One and keeps the first success.
//
// A candidate runs only if no earlier candidate succeeded and the previous
// failure, if any, was recoverable. The first irrecoverable failure stops the
// alternation; later candidates are never invoked. Every failure observed,
// including that last one, is handed to the error accumulator.
//
// All candidates start at the same cursor. The driver state is shared and
// not restored between candidates.
type Alternation[S, P, T any, E Recoverable, R any] struct {
	driver  *Driver[S]
	pos     P
	acc     ErrorAccumulator[P, E, R]
	current Progress[P, T, E]
	ran     bool
}

// One registers the next candidate and runs it if the rules above allow.
func (a *Alternation[S, P, T, E, R]) One(p Parser[S, P, T, E]) *Alternation[S, P, T, E, R] {
	if a.ran && (a.current.ok || !a.current.err.Recoverable()) {
		return a
	}
	a.current = p(a.driver, a.pos)
	a.ran = true
	if !a.current.ok {
		a.acc.Add(a.current.err, a.current.pos)
	}
	return a
}

// Finish returns the first success, or the accumulated error together with
// the cursor reported by the last candidate that ran. It panics if no
// candidate was registered.
func (a *Alternation[S, P, T, E, R]) Finish() Progress[P, T, R] {
	mustHold(a.ran, "alternation finished without any candidate")
	if a.current.ok {
		return Success[R](a.current.pos, a.current.value)
	}
	return Failure[T](a.current.pos, a.acc.Finish())
}

// OneOf packages an alternation over candidates as a parser reporting the
// last error.
func OneOf[S, P, T any, E Recoverable](candidates ...Parser[S, P, T, E]) Parser[S, P, T, E] {
	return OneOfWith(func() ErrorAccumulator[P, E, E] { return &LastError[P, E]{} }, candidates...)
}

// OneOfWith is OneOf with an accumulator built by newAcc for every run.
func OneOfWith[S, P, T any, E Recoverable, R any](newAcc func() ErrorAccumulator[P, E, R], candidates ...Parser[S, P, T, E]) Parser[S, P, T, R] {
	return func(d *Driver[S], pos P) Progress[P, T, R] {
		alt := AlternateWith[T](d, pos, newAcc())
		for _, c := range candidates {
			alt.One(c)
		}
		return alt.Finish()
	}
}
