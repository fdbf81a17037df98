package parse

// Count runs p exactly n times and returns the n values in order. A count of
// zero or less succeeds with no values and does not run p.
//
// Count is all or nothing: any failure, recoverable or not, fails the whole
// combinator with the cursor rewound to where the first repetition started.
func Count[S, P, T, E any](n int, p Parser[S, P, T, E]) Parser[S, P, []T, E] {
	return func(d *Driver[S], pos P) Progress[P, []T, E] {
		r := CountInto(n, func() *Seq[T] {
			s := make(Seq[T], 0, max(n, 0))
			return &s
		}, p)(d, pos)
		return Map(r, func(s *Seq[T]) []T { return *s })
	}
}

// SkipCount is Count without collecting the values.
func SkipCount[S, P, T, E any](n int, p Parser[S, P, T, E]) Parser[S, P, struct{}, E] {
	return func(d *Driver[S], pos P) Progress[P, struct{}, E] {
		r := CountInto(n, func() Discard[T] { return Discard[T]{} }, p)(d, pos)
		return Map(r, func(Discard[T]) struct{} { return struct{}{} })
	}
}

// CountInto is Count pushing every value into the sink returned by build.
// build is called once per invocation of the returned parser.
func CountInto[S, P, T, E any, C Push[T]](n int, build func() C, p Parser[S, P, T, E]) Parser[S, P, C, E] {
	return func(d *Driver[S], start P) Progress[P, C, E] {
		sink := build()
		pos := start
		for i := 0; i < n; i++ {
			r := p(d, pos)
			if !r.ok {
				return Failure[C](start, r.err)
			}
			sink.Push(r.value)
			pos = r.pos
		}
		return Success[E](pos, sink)
	}
}
