// Package format renders decoded documents: MessagePack values and elements,
// and class file summaries.
package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/descent/msgpack"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(doc any) error
}

// New returns the encoder called name, one of line, json, yaml or cbor.
func New(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "line":
		return NewLineEncoder(w), nil
	case "json":
		return NewJSONEncoder(w), nil
	case "yaml":
		return NewYAMLEncoder(w), nil
	case "cbor":
		return NewCBOREncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format: %s", name)
}

// plain converts MessagePack documents into the maps, slices and scalars
// that the generic encoders understand. Other documents pass through.
func plain(doc any) any {
	switch v := doc.(type) {
	case msgpack.Value:
		return v.Interface()
	case []msgpack.Value:
		items := make([]any, len(v))
		for i, item := range v {
			items[i] = item.Interface()
		}
		return items
	case msgpack.Element:
		return v.Interface()
	}
	return doc
}

func write(w io.Writer, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
