package parse

import "cmp"

// Pos is the constraint every cursor type satisfies.
//
// Cursors are immutable and cheap to copy. Compare orders two cursors by how
// far into the input they point, returning -1, 0 or +1 like [cmp.Compare].
// The zero value of a cursor type is its minimal position.
type Pos[P any] interface {
	Compare(other P) int
}

// Offset is a cursor that is nothing but an index into the input. It is
// useful for grammars that keep their input elsewhere (for example in the
// driver state) and for tests.
type Offset int

func (o Offset) Compare(other Offset) int { return cmp.Compare(o, other) }
