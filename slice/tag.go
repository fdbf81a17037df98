package slice

import (
	"fmt"
	"slices"

	"github.com/dhamidi/descent/parse"
)

// TagErrorKind tells why a [Tag] did not match.
type TagErrorKind int

const (
	// TagNotEnoughData means the input is shorter than the literal.
	TagNotEnoughData TagErrorKind = iota
	// TagMismatch means the input does not start with the literal.
	TagMismatch
)

// TagError is returned by [Tag]. Both kinds are recoverable, so tags can be
// used as alternatives.
type TagError struct {
	Kind   TagErrorKind
	Offset int
}

func (e *TagError) Error() string {
	if e.Kind == TagNotEnoughData {
		return fmt.Sprintf("not enough data for tag at offset 0x%X", e.Offset)
	}
	return fmt.Sprintf("tag mismatch at offset 0x%X", e.Offset)
}

func (e *TagError) Recoverable() bool { return true }

// Tag matches the literal lit at the start of the input. On failure the
// cursor is the one the tag was tried at.
func Tag[S any, T comparable](lit []T) parse.Parser[S, Pos[T], []T, *TagError] {
	return func(_ *parse.Driver[S], pos Pos[T]) parse.Progress[Pos[T], []T, *TagError] {
		next, got, _, ok := pos.Take(len(lit)).Finish()
		if !ok {
			return parse.Failure[[]T](pos, &TagError{Kind: TagNotEnoughData, Offset: pos.offset})
		}
		if !slices.Equal(got, lit) {
			return parse.Failure[[]T](pos, &TagError{Kind: TagMismatch, Offset: pos.offset})
		}
		return parse.Success[*TagError](next, got)
	}
}

// String matches the bytes of lit.
func String[S any](lit string) parse.Parser[S, BytePos, []byte, *TagError] {
	return Tag[S]([]byte(lit))
}
