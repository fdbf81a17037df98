package parse

// Maybe holds a value that may be absent.
type Maybe[T any] struct {
	value T
	ok    bool
}

func Some[T any](v T) Maybe[T] { return Maybe[T]{value: v, ok: true} }

func None[T any]() Maybe[T] { return Maybe[T]{} }

// Get returns the value and whether it is present.
func (m Maybe[T]) Get() (T, bool) { return m.value, m.ok }

func (m Maybe[T]) IsSome() bool { return m.ok }

func (m Maybe[T]) IsNone() bool { return !m.ok }

// Or returns the value if present and def otherwise.
func (m Maybe[T]) Or(def T) T {
	if m.ok {
		return m.value
	}
	return def
}

// Optional makes p optional.
//
// A success is passed through as a present value. A recoverable failure
// becomes a success holding an absent value, with the cursor rewound to where
// the attempt started. An irrecoverable failure is returned unchanged,
// including the cursor p reported.
func Optional[S, P, T any, E Recoverable](p Parser[S, P, T, E]) Parser[S, P, Maybe[T], E] {
	return func(d *Driver[S], pos P) Progress[P, Maybe[T], E] {
		r := p(d, pos)
		switch {
		case r.ok:
			return Success[E](r.pos, Some(r.value))
		case r.err.Recoverable():
			return Success[E](pos, None[T]())
		default:
			return Failure[Maybe[T]](r.pos, r.err)
		}
	}
}
