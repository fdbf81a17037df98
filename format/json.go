package format

import (
	"encoding/json"
	"io"
)

type JSONEncoder struct {
	w   io.Writer
	doc any
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(doc any) error {
	e.doc = doc
	return write(e.w, e)
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	text, err := json.MarshalIndent(plain(e.doc), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(text, '\n'), nil
}
