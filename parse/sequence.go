package parse

// Sequence runs parsers one after another against an evolving cursor.
//
//	seq := parse.Begin[*Error](d, pos)
//	n := parse.Step(seq, length)
//	data := parse.Step(seq, bytes(n))
//	return parse.Build(seq, func(_ *parse.Driver[S], _ slice.BytePos) Bin { return Bin(data) })
//
// The variables assigned from Step are the sequence's bindings. After the
// first failing step every later Step is skipped and returns the zero value;
// the sequence then fails with exactly that step's cursor and error. There is
// no implicit rewind to where the sequence started: each step owns its own
// atomicity. Wrap the result with [Progress.RewindOnErr] or [AndThen] when the
// whole sequence must be all or nothing.
type Sequence[S, P, E any] struct {
	driver *Driver[S]
	pos    P
	err    E
	failed bool
}

// Begin starts a sequence at pos.
func Begin[E, S, P any](d *Driver[S], pos P) *Sequence[S, P, E] {
	return &Sequence[S, P, E]{driver: d, pos: pos}
}

// Pos returns the cursor reached so far.
func (s *Sequence[S, P, E]) Pos() P { return s.pos }

// Failed reports whether a step has failed.
func (s *Sequence[S, P, E]) Failed() bool { return s.failed }

// Step runs p at the current cursor and returns its value.
func Step[S, P, T, E any](s *Sequence[S, P, E], p Parser[S, P, T, E]) T {
	var zero T
	if s.failed {
		return zero
	}
	r := p(s.driver, s.pos)
	s.pos = r.pos
	if !r.ok {
		s.err = r.err
		s.failed = true
		return zero
	}
	return r.value
}

// Build ends the sequence. build runs only if every step succeeded and
// receives the driver and the final cursor.
func Build[S, P, T, E any](s *Sequence[S, P, E], build func(d *Driver[S], pos P) T) Progress[P, T, E] {
	if s.failed {
		return Failure[T](s.pos, s.err)
	}
	return Success[E](s.pos, build(s.driver, s.pos))
}

// Yield ends the sequence with a value computed by the caller.
func Yield[S, P, T, E any](s *Sequence[S, P, E], value T) Progress[P, T, E] {
	if s.failed {
		return Failure[T](s.pos, s.err)
	}
	return Success[E](s.pos, value)
}

// Sequence2 runs pa then pb and combines their values with build.
func Sequence2[S, P, A, B, T, E any](pa Parser[S, P, A, E], pb Parser[S, P, B, E], build func(A, B) T) Parser[S, P, T, E] {
	return func(d *Driver[S], pos P) Progress[P, T, E] {
		s := Begin[E](d, pos)
		a := Step(s, pa)
		b := Step(s, pb)
		return Build(s, func(*Driver[S], P) T { return build(a, b) })
	}
}

// Sequence3 runs pa, pb then pc and combines their values with build.
func Sequence3[S, P, A, B, C, T, E any](pa Parser[S, P, A, E], pb Parser[S, P, B, E], pc Parser[S, P, C, E], build func(A, B, C) T) Parser[S, P, T, E] {
	return func(d *Driver[S], pos P) Progress[P, T, E] {
		s := Begin[E](d, pos)
		a := Step(s, pa)
		b := Step(s, pb)
		c := Step(s, pc)
		return Build(s, func(*Driver[S], P) T { return build(a, b, c) })
	}
}
