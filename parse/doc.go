// Package parse is a zero-copy parser-combinator engine for recursive-descent
// parsers over arbitrary cursor types.
//
// # Overview
//
// Every parser has the same shape:
//
//	func(d *parse.Driver[S], pos P) parse.Progress[P, T, E]
//
// It receives the session's [Driver], which carries caller-defined mutable
// state, and an immutable cursor P. It returns a [Progress]: the cursor where
// it stopped together with either a value T or an error E.
//
// Cursors are ordered by how far into the input they point (see [Pos]). The
// reference cursor is [github.com/dhamidi/descent/slice.Pos], a view of the
// remaining elements of a slice plus an absolute offset.
//
// # Backtracking
//
// Because cursors are values, backtracking is simply calling the next parser
// with an older cursor. Only the cursor is restored; driver state changed by
// an abandoned branch stays changed.
//
// Errors decide how far a failure travels. Every error used with the
// combinators below implements [Recoverable]:
//
//	recoverable    the attempt did not match; alternatives may be tried and
//	               repetitions stop cleanly
//	irrecoverable  the input is malformed; every enclosing repetition and
//	               alternation aborts and passes the error on unchanged
//
// # Combinators
//
// Working with a single result:
//
//   - [Map], [MapWithPos], [MapErr], [MapErrWithPos], [To]
//   - [AndThen], [AndThenWithPos]: fallible refinement with an explicit restore cursor
//   - [Then]: continue a success; [Propagate]: re-type a failure for early return
//
// Sequencing: [Begin], [Step], [Build], [Yield], [Sequence2], [Sequence3].
//
// Repetition, with values collected by a [Push] sink ([Seq], [KeyMap], [Discard]):
//
//   - [Count], [SkipCount], [CountInto]: exactly n times, all or nothing
//   - [ZeroOrMore], [ZeroOrMoreInto]
//   - [OneOrMore], [OneOrMoreInto]
//   - [Optional], [RunOptional]
//
// Alternation: [Alternate], [AlternateWith], [OneOf], [OneOfWith]. Failed
// candidates are fed to an [ErrorAccumulator]:
//
//   - [DiscardErrors]: keep nothing
//   - [LastError]: keep the most recent failure
//   - [AllErrors]: keep every failure in attempt order
//   - [FurthestErrors]: keep the failures reported furthest into the input
//
// # Termination
//
// The repetition combinators panic when a parser succeeds without advancing
// the cursor, since the loop would otherwise never end. Build with the
// descent_noassert tag to drop the check.
//
// # Concurrency
//
// Parsing is synchronous. A Driver belongs to one goroutine; parse
// independent inputs concurrently with independent drivers.
package parse
