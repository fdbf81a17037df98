package parse

// Parser is the contract every leaf parser and combinator obeys: given the
// driver and a cursor it reports how far it got and what it found.
type Parser[S, P, T, E any] func(d *Driver[S], pos P) Progress[P, T, E]

// Driver carries the caller's mutable context through one parse session.
//
// State is handed to every parser by reference and is never rolled back on
// backtracking; only the cursor is. Grammars that need transactional state
// snapshot and restore it themselves around their retry points.
//
// A Driver must not be shared between goroutines. Parse independent inputs
// with independent drivers.
type Driver[S any] struct {
	State S
}

// NewDriver returns a driver for grammars without state.
func NewDriver() *Driver[struct{}] {
	return &Driver[struct{}]{}
}

// WithState returns a driver holding state.
func WithState[S any](state S) *Driver[S] {
	return &Driver[S]{State: state}
}

// RunOptional runs p at pos as if wrapped with [Optional].
func RunOptional[S, P, T any, E Recoverable](d *Driver[S], pos P, p Parser[S, P, T, E]) Progress[P, Maybe[T], E] {
	return Optional(p)(d, pos)
}

// Alternate starts an alternation at pos that reports the error of the last
// candidate it ran.
//
//	parse.Alternate[FieldType, *Error](d, pos).
//		One(baseType).
//		One(objectType).
//		One(arrayType).
//		Finish()
func Alternate[T any, E Recoverable, S, P any](d *Driver[S], pos P) *Alternation[S, P, T, E, E] {
	return AlternateWith[T, E, E](d, pos, ErrorAccumulator[P, E, E](&LastError[P, E]{}))
}

// AlternateWith starts an alternation at pos whose overall failure is
// produced by acc.
func AlternateWith[T any, E Recoverable, R, S, P any](d *Driver[S], pos P, acc ErrorAccumulator[P, E, R]) *Alternation[S, P, T, E, R] {
	return &Alternation[S, P, T, E, R]{driver: d, pos: pos, acc: acc}
}
