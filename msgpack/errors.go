package msgpack

import "fmt"

// ErrorKind classifies an Error.
type ErrorKind int

const (
	// NoNextElement means the input ended exactly at an element boundary.
	// It is the only recoverable kind: a stream of elements simply ends
	// there.
	NoNextElement ErrorKind = iota
	// NotEnoughData means the input ended inside an element.
	NotEnoughData
	// NeverUsed means the reserved format byte 0xC1 was found.
	NeverUsed
	// InvalidUTF8 means a str payload is not valid UTF-8.
	InvalidUTF8
	// TooDeep means arrays and maps are nested deeper than allowed.
	TooDeep
	// UnsupportedKey means a map key cannot be used as a string key.
	UnsupportedKey
)

var errorMessages = [...]string{
	NoNextElement:  "no next element",
	NotEnoughData:  "not enough data",
	NeverUsed:      "never used format byte 0xC1",
	InvalidUTF8:    "invalid UTF-8 in str",
	TooDeep:        "nesting too deep",
	UnsupportedKey: "unsupported map key",
}

// Error is a MessagePack decoding failure at Offset.
type Error struct {
	Kind   ErrorKind
	Offset int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at offset 0x%X", errorMessages[e.Kind], e.Offset)
}

func (e *Error) Recoverable() bool { return e.Kind == NoNextElement }

func newError(kind ErrorKind, offset int) *Error {
	return &Error{Kind: kind, Offset: offset}
}
