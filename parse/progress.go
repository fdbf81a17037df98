package parse

// Progress is what every parser returns: the cursor where parsing stopped
// together with either a value (success) or an error (failure).
//
// Which cursor accompanies a failure is part of each combinator's contract.
// Some report the cursor before the attempt, signalling that nothing was
// consumed and another alternative may be tried; others report the deepest
// cursor reached, which is more useful for diagnostics.
type Progress[P, T, E any] struct {
	pos   P
	value T
	err   E
	ok    bool
}

// Success returns a successful Progress. The error type comes first so that
// it can be named while the other two are inferred:
//
//	return parse.Success[*MyError](pos, value)
func Success[E, P, T any](pos P, value T) Progress[P, T, E] {
	return Progress[P, T, E]{pos: pos, value: value, ok: true}
}

// Failure returns a failed Progress. The value type comes first so that it
// can be named while the other two are inferred:
//
//	return parse.Failure[uint32](pos, err)
func Failure[T, P, E any](pos P, err E) Progress[P, T, E] {
	return Progress[P, T, E]{pos: pos, err: err}
}

// Pos returns the cursor carried by p.
func (p Progress[P, T, E]) Pos() P { return p.pos }

// IsOk reports whether p is a success.
func (p Progress[P, T, E]) IsOk() bool { return p.ok }

// IsErr reports whether p is a failure.
func (p Progress[P, T, E]) IsErr() bool { return !p.ok }

// Value returns the parsed value and true, or the zero value and false.
func (p Progress[P, T, E]) Value() (T, bool) {
	if !p.ok {
		var zero T
		return zero, false
	}
	return p.value, true
}

// Err returns the failure and true, or the zero value and false.
func (p Progress[P, T, E]) Err() (E, bool) {
	if p.ok {
		var zero E
		return zero, false
	}
	return p.err, true
}

// Finish splits p into its parts. Exactly one of value and err is meaningful,
// as reported by ok.
func (p Progress[P, T, E]) Finish() (pos P, value T, err E, ok bool) {
	return p.pos, p.value, p.err, p.ok
}

// Unwrap returns the cursor and value of a success. It panics on failure.
func (p Progress[P, T, E]) Unwrap() (P, T) {
	if !p.ok {
		panic("parse: Unwrap called on a failed Progress")
	}
	return p.pos, p.value
}

// UnwrapErr returns the cursor and error of a failure. It panics on success.
func (p Progress[P, T, E]) UnwrapErr() (P, E) {
	if p.ok {
		panic("parse: UnwrapErr called on a successful Progress")
	}
	return p.pos, p.err
}

// RewindOnErr replaces the cursor of a failure with to.
func (p Progress[P, T, E]) RewindOnErr(to P) Progress[P, T, E] {
	if !p.ok {
		p.pos = to
	}
	return p
}

// Optional turns p into a cursor and an optional value. A failure yields
// resetTo and an absent value regardless of whether it was recoverable.
func (p Progress[P, T, E]) Optional(resetTo P) (P, Maybe[T]) {
	if !p.ok {
		return resetTo, None[T]()
	}
	return p.pos, Some(p.value)
}

// Map transforms the value of a success. The cursor is untouched.
func Map[P, T, U, E any](p Progress[P, T, E], f func(T) U) Progress[P, U, E] {
	if !p.ok {
		return Failure[U](p.pos, p.err)
	}
	return Success[E](p.pos, f(p.value))
}

// MapWithPos is Map with access to the cursor reached by the success.
func MapWithPos[P, T, U, E any](p Progress[P, T, E], f func(T, P) U) Progress[P, U, E] {
	if !p.ok {
		return Failure[U](p.pos, p.err)
	}
	return Success[E](p.pos, f(p.value, p.pos))
}

// MapErr transforms the error of a failure. The cursor is untouched.
func MapErr[P, T, E, F any](p Progress[P, T, E], f func(E) F) Progress[P, T, F] {
	if p.ok {
		return Success[F](p.pos, p.value)
	}
	return Failure[T](p.pos, f(p.err))
}

// MapErrWithPos is MapErr with access to the cursor reported by the failure.
func MapErrWithPos[P, T, E, F any](p Progress[P, T, E], f func(E, P) F) Progress[P, T, F] {
	if p.ok {
		return Success[F](p.pos, p.value)
	}
	return Failure[T](p.pos, f(p.err, p.pos))
}

// AndThen refines the value of a success with a step that may fail. f reports
// ok=false together with the failure. A failed refinement is reported at
// restoreTo, not at the cursor the inner parser reached, so that from the
// outside it looks exactly like a failure of the original attempt.
func AndThen[P, T, U, E any](p Progress[P, T, E], restoreTo P, f func(T) (U, E, bool)) Progress[P, U, E] {
	if !p.ok {
		return Failure[U](p.pos, p.err)
	}
	v, err, ok := f(p.value)
	if !ok {
		return Failure[U](restoreTo, err)
	}
	return Success[E](p.pos, v)
}

// AndThenWithPos is AndThen with access to the cursor reached by the success.
func AndThenWithPos[P, T, U, E any](p Progress[P, T, E], restoreTo P, f func(T, P) (U, E, bool)) Progress[P, U, E] {
	if !p.ok {
		return Failure[U](p.pos, p.err)
	}
	v, err, ok := f(p.value, p.pos)
	if !ok {
		return Failure[U](restoreTo, err)
	}
	return Success[E](p.pos, v)
}

// To converts both payload types of p with the given conversions. It is the
// usual way to lift a leaf parser's error into a grammar's error type while
// keeping its value.
func To[P, T, U, E, F any](p Progress[P, T, E], value func(T) U, err func(E) F) Progress[P, U, F] {
	if !p.ok {
		return Failure[U](p.pos, err(p.err))
	}
	return Success[F](p.pos, value(p.value))
}

// Then continues a success with f and passes a failure through unchanged.
func Then[P, T, U, E any](p Progress[P, T, E], f func(P, T) Progress[P, U, E]) Progress[P, U, E] {
	if !p.ok {
		return Failure[U](p.pos, p.err)
	}
	return f(p.pos, p.value)
}

// Propagate re-types a failure so it can be returned from a parser producing
// U:
//
//	r := num.Uint16BE(d, pos)
//	if r.IsErr() {
//		return parse.Propagate[Header](r)
//	}
//
// It panics if p is a success.
func Propagate[U, P, T, E any](p Progress[P, T, E]) Progress[P, U, E] {
	mustHold(!p.ok, "Propagate called on a successful Progress")
	return Failure[U](p.pos, p.err)
}
