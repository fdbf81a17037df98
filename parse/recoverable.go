package parse

// Recoverable classifies a parse failure.
//
// A recoverable failure means the attempt did not match but the input is
// otherwise well formed: an enclosing alternation may try the next candidate
// and a repetition may stop cleanly. An irrecoverable failure means the input
// is malformed and the whole enclosing compound operation must abort.
//
// Only the grammar author decides which of its errors are fatal.
type Recoverable interface {
	Recoverable() bool
}
