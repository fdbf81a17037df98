package parse

import "fmt"

// mustHold panics when a caller breaks the contract of a combinator.
func mustHold(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("parse: CONTRACT VIOLATION: "+format, args...))
	}
}

// mustAdvance guards the repetition loops against parsers that succeed
// without consuming input. Compiled out with the descent_noassert build tag.
func mustAdvance[P Pos[P]](prev, next P) {
	if loopAssertions && next.Compare(prev) <= 0 {
		panic(fmt.Sprintf("parse: INVARIANT VIOLATION: repetition did not advance the cursor (%v -> %v)", prev, next))
	}
}
