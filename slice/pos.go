// Package slice provides the reference cursor for the parse engine: a view of
// the remaining elements of a slice plus the absolute offset of that view.
package slice

import (
	"cmp"
	"fmt"

	"github.com/dhamidi/descent/parse"
)

// Pos is a position in a slice.
//
// The offset is tracked separately from the view so that errors can record
// how far parsing got without holding on to the input. Offset equals the
// length of the original slice minus the length of the view, unless the view
// was narrowed with Limit.
//
// The zero Pos has offset 0 and an empty view. Pos values compare by offset
// only.
type Pos[T any] struct {
	offset int
	s      []T
}

// BytePos is a position in a byte slice.
type BytePos = Pos[byte]

// New returns a position at the start of s.
func New[T any](s []T) Pos[T] {
	return Pos[T]{s: s}
}

// Offset returns how many elements lie before the position.
func (p Pos[T]) Offset() int { return p.offset }

// Rest returns the elements that remain. The result shares memory with the
// input and must not be modified.
func (p Pos[T]) Rest() []T { return p.s }

// Len returns the number of remaining elements.
func (p Pos[T]) Len() int { return len(p.s) }

// IsEmpty reports whether the input is exhausted.
func (p Pos[T]) IsEmpty() bool { return len(p.s) == 0 }

func (p Pos[T]) Compare(other Pos[T]) int { return cmp.Compare(p.offset, other.offset) }

func (p Pos[T]) String() string { return fmt.Sprintf("offset 0x%X", p.offset) }

// AdvanceBy returns the position n elements further. It panics if fewer than
// n elements remain.
func (p Pos[T]) AdvanceBy(n int) Pos[T] {
	return Pos[T]{offset: p.offset + n, s: p.s[n:]}
}

// Limit returns the position p with its view narrowed to the next n elements,
// so that a parser run on it cannot read past them. It panics if fewer than n
// elements remain.
func (p Pos[T]) Limit(n int) Pos[T] {
	return Pos[T]{offset: p.offset, s: p.s[:n:n]}
}

// Take consumes exactly n elements.
//
// It fails with [NotEnoughDataError] if fewer than n elements remain, and
// also if n is zero so that repetitions built on Take cannot loop forever.
// On failure the returned cursor is p itself. On success the consumed
// elements are returned without copying; their capacity is clipped so that
// appending to them cannot overwrite the input.
func (p Pos[T]) Take(n int) parse.Progress[Pos[T], []T, NotEnoughDataError] {
	if n <= 0 || n > len(p.s) {
		return parse.Failure[[]T](p, NotEnoughDataError{})
	}
	return parse.Success[NotEnoughDataError](p.AdvanceBy(n), p.s[:n:n])
}

// Take1 consumes a single element.
func (p Pos[T]) Take1() parse.Progress[Pos[T], T, NotEnoughDataError] {
	if len(p.s) == 0 {
		return parse.Failure[T](p, NotEnoughDataError{})
	}
	return parse.Success[NotEnoughDataError](p.AdvanceBy(1), p.s[0])
}

// NotEnoughDataError reports that the input ended before a request could be
// satisfied, or that zero elements were requested. It is recoverable.
type NotEnoughDataError struct{}

func (NotEnoughDataError) Error() string { return "not enough data" }

func (NotEnoughDataError) Recoverable() bool { return true }
