package msgpack

import (
	"unicode/utf8"

	"github.com/dhamidi/descent/parse"
	"github.com/dhamidi/descent/slice"
	"github.com/dhamidi/descent/slice/num"
)

// ParseElement parses one element at pos.
//
// An empty input fails with the recoverable NoNextElement at pos. Every other
// failure is fatal.
func ParseElement[S any](d *parse.Driver[S], pos slice.BytePos) parse.Progress[slice.BytePos, Element, *Error] {
	first := pos.Take1()
	if first.IsErr() {
		return parse.Failure[Element](pos, newError(NoNextElement, pos.Offset()))
	}
	next, b := first.Unwrap()

	switch {
	case b <= 0x7f:
		return ok(next, Element{Kind: KindUint, Format: b, Uint: uint64(b)})
	case b >= 0xe0:
		return ok(next, Element{Kind: KindInt, Format: b, Int: int64(int8(b))})
	case b>>4 == 0x8:
		return ok(next, Element{Kind: KindMap, Format: b, Len: uint32(b & 0x0f)})
	case b>>4 == 0x9:
		return ok(next, Element{Kind: KindArray, Format: b, Len: uint32(b & 0x0f)})
	case b>>5 == 0x5:
		return str(d, pos, next, b, int(b&0x1f))
	}

	switch b {
	case 0xc0:
		return ok(next, Element{Kind: KindNil, Format: b})
	case 0xc1:
		return parse.Failure[Element](pos, newError(NeverUsed, pos.Offset()))
	case 0xc2, 0xc3:
		return ok(next, Element{Kind: KindBool, Format: b, Bool: b == 0xc3})

	case 0xc4, 0xc5, 0xc6:
		s := parse.Begin[*Error](d, next)
		n := parse.Step(s, length[S](b-0xc4))
		data := parse.Step(s, payload[S](n))
		return parse.Yield(s, Element{Kind: KindBin, Format: b, Bytes: data})

	case 0xc7, 0xc8, 0xc9:
		s := parse.Begin[*Error](d, next)
		n := parse.Step(s, length[S](b-0xc7))
		e := parse.Step(s, ext[S](n))
		e.Format = b
		return parse.Yield(s, e)

	case 0xca:
		return scalar(num.Float32BE(d, next), func(v float32) Element {
			return Element{Kind: KindFloat32, Format: b, Float: float64(v)}
		})
	case 0xcb:
		return scalar(num.Float64BE(d, next), func(v float64) Element {
			return Element{Kind: KindFloat64, Format: b, Float: v}
		})

	case 0xcc:
		return scalar(num.Uint8(d, next), func(v uint8) Element { return uintElem(b, uint64(v)) })
	case 0xcd:
		return scalar(num.Uint16BE(d, next), func(v uint16) Element { return uintElem(b, uint64(v)) })
	case 0xce:
		return scalar(num.Uint32BE(d, next), func(v uint32) Element { return uintElem(b, uint64(v)) })
	case 0xcf:
		return scalar(num.Uint64BE(d, next), func(v uint64) Element { return uintElem(b, v) })

	case 0xd0:
		return scalar(num.Int8(d, next), func(v int8) Element { return intElem(b, int64(v)) })
	case 0xd1:
		return scalar(num.Int16BE(d, next), func(v int16) Element { return intElem(b, int64(v)) })
	case 0xd2:
		return scalar(num.Int32BE(d, next), func(v int32) Element { return intElem(b, int64(v)) })
	case 0xd3:
		return scalar(num.Int64BE(d, next), func(v int64) Element { return intElem(b, v) })

	case 0xd4, 0xd5, 0xd6, 0xd7, 0xd8:
		r := ext[S](1<<(b-0xd4))(d, next)
		return parse.Map(r, func(e Element) Element {
			e.Format = b
			return e
		})

	case 0xd9, 0xda, 0xdb:
		r := length[S](b-0xd9)(d, next)
		if r.IsErr() {
			return parse.Propagate[Element](r)
		}
		after, n := r.Unwrap()
		return str(d, pos, after, b, n)

	case 0xdc:
		return scalar(num.Uint16BE(d, next), func(v uint16) Element { return header(KindArray, b, uint32(v)) })
	case 0xdd:
		return scalar(num.Uint32BE(d, next), func(v uint32) Element { return header(KindArray, b, v) })
	case 0xde:
		return scalar(num.Uint16BE(d, next), func(v uint16) Element { return header(KindMap, b, uint32(v)) })
	default: // 0xdf
		return scalar(num.Uint32BE(d, next), func(v uint32) Element { return header(KindMap, b, v) })
	}
}

func ok(pos slice.BytePos, e Element) parse.Progress[slice.BytePos, Element, *Error] {
	return parse.Success[*Error](pos, e)
}

func uintElem(format byte, v uint64) Element {
	return Element{Kind: KindUint, Format: format, Uint: v}
}

func intElem(format byte, v int64) Element {
	return Element{Kind: KindInt, Format: format, Int: v}
}

func header(kind Kind, format byte, n uint32) Element {
	return Element{Kind: kind, Format: format, Len: n}
}

// truncated converts the leaf parsers' underflow into a fatal error: once the
// format byte is read, running out of input means the element is cut short.
func truncated(_ slice.NotEnoughDataError, pos slice.BytePos) *Error {
	return newError(NotEnoughData, pos.Offset())
}

func scalar[T any](r parse.Progress[slice.BytePos, T, slice.NotEnoughDataError], build func(T) Element) parse.Progress[slice.BytePos, Element, *Error] {
	return parse.Map(parse.MapErrWithPos(r, truncated), build)
}

// length returns the decoder for an 8, 16 or 32 bit big-endian length,
// selected by width 0, 1 or 2.
func length[S any](width byte) parse.Parser[S, slice.BytePos, int, *Error] {
	return func(d *parse.Driver[S], pos slice.BytePos) parse.Progress[slice.BytePos, int, *Error] {
		switch width {
		case 0:
			return parse.MapErrWithPos(parse.Map(num.Uint8(d, pos), toInt[uint8]), truncated)
		case 1:
			return parse.MapErrWithPos(parse.Map(num.Uint16BE(d, pos), toInt[uint16]), truncated)
		default:
			return parse.MapErrWithPos(parse.Map(num.Uint32BE(d, pos), toInt[uint32]), truncated)
		}
	}
}

func toInt[N uint8 | uint16 | uint32](n N) int { return int(n) }

// payload takes n bytes. Unlike Take it accepts n == 0, which is a valid
// length for str, bin and ext payloads.
func payload[S any](n int) parse.Parser[S, slice.BytePos, []byte, *Error] {
	return func(_ *parse.Driver[S], pos slice.BytePos) parse.Progress[slice.BytePos, []byte, *Error] {
		if n == 0 {
			return parse.Success[*Error](pos, []byte{})
		}
		return parse.MapErrWithPos(pos.Take(n), truncated)
	}
}

func ext[S any](n int) parse.Parser[S, slice.BytePos, Element, *Error] {
	return parse.Sequence2(
		func(d *parse.Driver[S], pos slice.BytePos) parse.Progress[slice.BytePos, int8, *Error] {
			return parse.MapErrWithPos(num.Int8(d, pos), truncated)
		},
		payload[S](n),
		func(typ int8, data []byte) Element {
			return Element{Kind: KindExt, ExtType: typ, Bytes: data}
		},
	)
}

// str reads an n byte str payload at pos. A payload that is not valid UTF-8
// is reported at start, the beginning of the element.
func str[S any](d *parse.Driver[S], start, pos slice.BytePos, format byte, n int) parse.Progress[slice.BytePos, Element, *Error] {
	r := payload[S](n)(d, pos)
	return parse.AndThen(r, start, func(data []byte) (Element, *Error, bool) {
		if !utf8.Valid(data) {
			return Element{}, newError(InvalidUTF8, start.Offset()), false
		}
		return Element{Kind: KindStr, Format: format, Bytes: data}, nil, true
	})
}
