package parse

// ZeroOrMore runs p until it fails and returns the values collected so far.
//
// A recoverable failure ends the loop successfully, with the cursor where the
// failing attempt started; this includes a failure on the very first attempt,
// which yields an empty slice. An irrecoverable failure aborts: its error is
// returned unchanged, every collected value is dropped and the cursor is
// rewound to where the repetition started.
//
// Every successful iteration must advance the cursor. A parser that succeeds
// without consuming input would loop forever and makes ZeroOrMore panic.
func ZeroOrMore[S any, P Pos[P], T any, E Recoverable](p Parser[S, P, T, E]) Parser[S, P, []T, E] {
	return func(d *Driver[S], pos P) Progress[P, []T, E] {
		r := ZeroOrMoreInto(newSeq[T], p)(d, pos)
		return Map(r, func(s *Seq[T]) []T { return *s })
	}
}

// ZeroOrMoreInto is ZeroOrMore pushing every value into the sink returned by
// build.
func ZeroOrMoreInto[S any, P Pos[P], T any, E Recoverable, C Push[T]](build func() C, p Parser[S, P, T, E]) Parser[S, P, C, E] {
	return func(d *Driver[S], start P) Progress[P, C, E] {
		return repeat(d, start, start, build(), p)
	}
}

// OneOrMore is ZeroOrMore requiring at least one success. If the first
// attempt fails, recoverably or not, OneOrMore fails with that error and the
// cursor where it started.
func OneOrMore[S any, P Pos[P], T any, E Recoverable](p Parser[S, P, T, E]) Parser[S, P, []T, E] {
	return func(d *Driver[S], pos P) Progress[P, []T, E] {
		r := OneOrMoreInto(newSeq[T], p)(d, pos)
		return Map(r, func(s *Seq[T]) []T { return *s })
	}
}

// OneOrMoreInto is OneOrMore pushing every value into the sink returned by
// build.
func OneOrMoreInto[S any, P Pos[P], T any, E Recoverable, C Push[T]](build func() C, p Parser[S, P, T, E]) Parser[S, P, C, E] {
	return func(d *Driver[S], start P) Progress[P, C, E] {
		sink := build()
		first := p(d, start)
		if !first.ok {
			return Failure[C](start, first.err)
		}
		mustAdvance(start, first.pos)
		sink.Push(first.value)
		return repeat(d, start, first.pos, sink, p)
	}
}

func repeat[S any, P Pos[P], T any, E Recoverable, C Push[T]](d *Driver[S], start, pos P, sink C, p Parser[S, P, T, E]) Progress[P, C, E] {
	for {
		r := p(d, pos)
		if !r.ok {
			if !r.err.Recoverable() {
				return Failure[C](start, r.err)
			}
			return Success[E](pos, sink)
		}
		mustAdvance(pos, r.pos)
		sink.Push(r.value)
		pos = r.pos
	}
}

func newSeq[T any]() *Seq[T] {
	s := make(Seq[T], 0)
	return &s
}
