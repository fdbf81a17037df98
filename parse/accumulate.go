package parse

// ErrorAccumulator decides which failures of a compound parser are kept and
// what the caller finally sees.
type ErrorAccumulator[P, E, R any] interface {
	// Add records a failure reported at pos.
	Add(err E, pos P)
	// Finish returns the accumulated result.
	Finish() R
}

// AddProgress records the failure in p, if any, and returns p with its error
// erased.
func AddProgress[P, T, E, R any](acc ErrorAccumulator[P, E, R], p Progress[P, T, E]) Progress[P, T, struct{}] {
	if p.ok {
		return Success[struct{}](p.pos, p.value)
	}
	acc.Add(p.err, p.pos)
	return Failure[T](p.pos, struct{}{})
}

// DiscardErrors keeps nothing.
type DiscardErrors[P, E any] struct{}

func (*DiscardErrors[P, E]) Add(E, P) {}

func (*DiscardErrors[P, E]) Finish() struct{} { return struct{}{} }

// LastError keeps only the most recent failure.
type LastError[P, E any] struct {
	err E
	set bool
}

func (a *LastError[P, E]) Add(err E, _ P) {
	a.err = err
	a.set = true
}

// Finish returns the last failure. It panics if none was added.
func (a *LastError[P, E]) Finish() E {
	mustHold(a.set, "LastError finished without any error")
	return a.err
}

// AllErrors keeps every failure in the order it was added.
type AllErrors[P, E any] struct {
	errs []E
}

func (a *AllErrors[P, E]) Add(err E, _ P) { a.errs = append(a.errs, err) }

func (a *AllErrors[P, E]) Finish() []E { return a.errs }

// FurthestErrors keeps the failures reported furthest into the input: the
// branch that consumed the most input usually explains a syntax error best.
//
// A failure at a greater cursor replaces everything kept so far, failures at
// the same cursor are kept together and failures at smaller cursors are
// dropped.
type FurthestErrors[P Pos[P], E any] struct {
	pos  P
	errs []E
	set  bool
}

func (a *FurthestErrors[P, E]) Add(err E, pos P) {
	switch c := pos.Compare(a.pos); {
	case !a.set || c > 0:
		a.pos = pos
		a.errs = []E{err}
		a.set = true
	case c == 0:
		a.errs = append(a.errs, err)
	}
}

// Pos returns the cursor of the kept failures.
func (a *FurthestErrors[P, E]) Pos() P { return a.pos }

func (a *FurthestErrors[P, E]) Finish() []E { return a.errs }
