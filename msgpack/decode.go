package msgpack

import (
	"fmt"
	"io"
	"sort"

	"github.com/dhamidi/descent/errctx"
	"github.com/dhamidi/descent/parse"
	"github.com/dhamidi/descent/slice"
)

// Value is a decoded MessagePack value. Arrays keep their members in Items,
// maps keep theirs in Fields; for every other kind only the Element is set.
type Value struct {
	Element
	Items  []Value
	Fields map[string]Value
}

// Keys returns the keys of a map value in sorted order.
func (v Value) Keys() []string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Interface returns v as plain Go values: []any for arrays, map[string]any
// for maps and the scalar payload otherwise.
func (v Value) Interface() any {
	switch v.Kind {
	case KindArray:
		items := make([]any, len(v.Items))
		for i, item := range v.Items {
			items[i] = item.Interface()
		}
		return items
	case KindMap:
		fields := make(map[string]any, len(v.Fields))
		for k, f := range v.Fields {
			fields[k] = f.Interface()
		}
		return fields
	default:
		return v.Element.Interface()
	}
}

type decodeState struct {
	config
	depth int
}

// Decode decodes every value in data.
//
// Trailing bytes that do not form a complete value are an error; an empty
// input yields no values.
func Decode(data []byte, opts ...Option) ([]Value, error) {
	d := parse.WithState(decodeState{config: newConfig(opts)})
	values, err := decodeAll(d, slice.New(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode msgpack: %w", err)
	}
	return values, nil
}

func decodeAll(d *parse.Driver[decodeState], pos slice.BytePos) ([]Value, error) {
	_, values, err, ok := parse.ZeroOrMore(value)(d, pos).Finish()
	if !ok {
		return nil, err
	}
	return values, nil
}

// value parses one complete value, including the members of arrays and
// maps.
func value(d *parse.Driver[decodeState], pos slice.BytePos) parse.Progress[slice.BytePos, Value, *Error] {
	r := ParseElement(d, pos)
	if r.IsErr() {
		return parse.Propagate[Value](r)
	}
	next, e := r.Unwrap()
	if e.Kind != KindArray && e.Kind != KindMap {
		return parse.Success[*Error](next, Value{Element: e})
	}

	if d.State.depth >= d.State.maxDepth {
		return parse.Failure[Value](pos, newError(TooDeep, pos.Offset()))
	}
	// Every member takes at least one byte. Checking this up front keeps a
	// forged header from making us allocate for billions of members.
	need := uint64(e.Len)
	if e.Kind == KindMap {
		need *= 2
	}
	if need > uint64(next.Len()) {
		return parse.Failure[Value](pos, newError(NotEnoughData, pos.Offset()))
	}

	d.State.depth++
	defer func() { d.State.depth-- }()

	n := int(e.Len)
	if e.Kind == KindArray {
		items := parse.Count(n, member)(d, next)
		return parse.Map(items, func(items []Value) Value {
			return Value{Element: e, Items: items}
		}).RewindOnErr(pos)
	}
	fields := parse.CountInto(n, func() parse.KeyMap[string, Value] {
		return make(parse.KeyMap[string, Value], n)
	}, entry)(d, next)
	return parse.Map(fields, func(fields parse.KeyMap[string, Value]) Value {
		return Value{Element: e, Fields: fields}
	}).RewindOnErr(pos)
}

// member parses a value inside an array or map, where running out of input
// means the container is truncated.
func member(d *parse.Driver[decodeState], pos slice.BytePos) parse.Progress[slice.BytePos, Value, *Error] {
	return parse.MapErr(value(d, pos), func(err *Error) *Error {
		if err.Kind == NoNextElement {
			return newError(NotEnoughData, err.Offset)
		}
		return err
	})
}

func entry(d *parse.Driver[decodeState], pos slice.BytePos) parse.Progress[slice.BytePos, parse.Entry[string, Value], *Error] {
	return parse.Sequence2(key, member, func(k string, v Value) parse.Entry[string, Value] {
		return parse.Entry[string, Value]{Key: k, Value: v}
	})(d, pos)
}

func key(d *parse.Driver[decodeState], pos slice.BytePos) parse.Progress[slice.BytePos, string, *Error] {
	return parse.AndThen(member(d, pos), pos, func(v Value) (string, *Error, bool) {
		switch {
		case v.Kind == KindStr:
			return v.Text(), nil, true
		case d.State.strictKeys, v.Kind == KindNil, v.Kind == KindArray, v.Kind == KindMap:
			return "", newError(UnsupportedKey, pos.Offset()), false
		case v.Kind == KindBin:
			return fmt.Sprintf("%x", v.Bytes), nil, true
		default:
			return fmt.Sprint(v.Element.Interface()), nil, true
		}
	})
}

// Decoder reads elements one at a time. Arrays and maps are returned as
// headers followed by their members, so a Decoder never recurses and has no
// depth limit.
type Decoder struct {
	d   *parse.Driver[struct{}]
	pos slice.BytePos
	err error
}

func NewDecoder(data []byte) *Decoder {
	return &Decoder{d: parse.NewDriver(), pos: slice.New(data)}
}

// Next returns the next element. At the end of the input it returns io.EOF.
// After the first error every call returns that error again.
func (dec *Decoder) Next() (Element, error) {
	if dec.err != nil {
		return Element{}, dec.err
	}
	r := ParseElement(dec.d, dec.pos)
	next, e, perr, ok := r.Finish()
	if ok {
		dec.pos = next
		return e, nil
	}
	if perr.Kind == NoNextElement {
		dec.err = io.EOF
		return Element{}, dec.err
	}
	start := dec.pos.Offset()
	_, dec.err = errctx.Result(errctx.Wrap(r, func(slice.BytePos) string {
		return fmt.Sprintf("failed to read element at offset 0x%X", start)
	}))
	return Element{}, dec.err
}

// Offset returns the offset of the next element.
func (dec *Decoder) Offset() int { return dec.pos.Offset() }

// Remaining returns the number of bytes not yet consumed.
func (dec *Decoder) Remaining() int { return dec.pos.Len() }
