package parse

// Push is a destination for the values produced by a repetition. It lets the
// same looping logic fill a slice, fill a map or drop values altogether.
type Push[T any] interface {
	Push(value T)
}

// Seq collects values in order, keeping duplicates.
type Seq[T any] []T

func (s *Seq[T]) Push(value T) { *s = append(*s, value) }

// Entry is a key/value pair pushed into a [KeyMap].
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// KeyMap collects entries by key. A later entry replaces an earlier one with
// the same key.
type KeyMap[K comparable, V any] map[K]V

func (m KeyMap[K, V]) Push(e Entry[K, V]) { m[e.Key] = e.Value }

// Discard drops every value. Use it when only success and the cursor matter.
type Discard[T any] struct{}

func (Discard[T]) Push(T) {}
