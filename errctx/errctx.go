// Package errctx turns the plain errors reported by parsers into
// application-facing errors that carry the input offset, a message, the
// original error as their cause and a stack trace.
//
// It is the only place where engine errors meet a richer error type: grammars
// use whatever error values suit them and wrap them here at their API
// boundary.
//
//	r := errctx.Wrap(parseHeader(d, pos), func(pos slice.BytePos) string {
//		return fmt.Sprintf("failed to read header at offset 0x%X", pos.Offset())
//	})
package errctx

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/dhamidi/descent/parse"
)

// Located is implemented by cursors that know their absolute offset, such as
// [github.com/dhamidi/descent/slice.Pos].
type Located interface {
	Offset() int
}

// Error is a parse failure with context.
//
// Only the offset of the failing cursor is kept, never the cursor itself, so
// an Error does not keep the input alive.
type Error struct {
	Offset int
	Msg    string

	cause       error
	err         error
	recoverable bool
}

func (e *Error) Error() string { return e.err.Error() }

// Cause returns the root cause of e, which is e's own message for a leaf
// error. It makes Error work with errors.Cause.
func (e *Error) Cause() error { return errors.Cause(e.err) }

func (e *Error) Unwrap() error { return e.cause }

// Recoverable forwards the classification of the original error. Errors that
// do not implement [parse.Recoverable] are fatal.
func (e *Error) Recoverable() bool { return e.recoverable }

// Format supports %+v, which prints the chain with stack traces.
func (e *Error) Format(s fmt.State, verb rune) {
	if f, ok := e.err.(fmt.Formatter); ok {
		f.Format(s, verb)
		return
	}
	fmt.Fprint(s, e.err.Error())
}

// Wrap replaces the error of a failed Progress with an *Error whose message
// is built from the failing cursor and whose cause is the original error.
func Wrap[P Located, T any, E error](p parse.Progress[P, T, E], context func(pos P) string) parse.Progress[P, T, *Error] {
	return parse.MapErrWithPos(p, func(err E, pos P) *Error {
		msg := context(pos)
		return &Error{
			Offset:      pos.Offset(),
			Msg:         msg,
			cause:       err,
			err:         errors.Wrap(err, msg),
			recoverable: isRecoverable(err),
		}
	})
}

// Leaf replaces the error of a failed Progress with an *Error without a
// cause. describe sees the original error, which is otherwise dropped.
func Leaf[P Located, T, E any](p parse.Progress[P, T, E], describe func(err E, pos P) string) parse.Progress[P, T, *Error] {
	return parse.MapErrWithPos(p, func(err E, pos P) *Error {
		msg := describe(err, pos)
		return &Error{
			Offset:      pos.Offset(),
			Msg:         msg,
			err:         errors.New(msg),
			recoverable: isRecoverable(err),
		}
	})
}

// Errorf returns a fatal leaf *Error at pos for failures that are detected
// by the grammar itself rather than reported by a parser.
func Errorf(pos Located, format string, args ...any) *Error {
	err := errors.Errorf(format, args...)
	return &Error{
		Offset: pos.Offset(),
		Msg:    err.Error(),
		err:    err,
	}
}

// Replace is Leaf for callers that do not need the original error.
func Replace[P Located, T, E any](p parse.Progress[P, T, E], describe func(pos P) string) parse.Progress[P, T, *Error] {
	return Leaf(p, func(_ E, pos P) string { return describe(pos) })
}

// Result converts p into Go's usual value and error pair.
func Result[P, T any](p parse.Progress[P, T, *Error]) (T, error) {
	_, v, err, ok := p.Finish()
	if !ok {
		return v, err
	}
	return v, nil
}

// OffsetOf returns the offset of the outermost *Error in err's chain.
func OffsetOf(err error) (int, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Offset, true
	}
	return 0, false
}

func isRecoverable(err any) bool {
	r, ok := err.(parse.Recoverable)
	return ok && r.Recoverable()
}
