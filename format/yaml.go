package format

import (
	"io"

	"github.com/goccy/go-yaml"
)

type YAMLEncoder struct {
	w   io.Writer
	doc any
}

func NewYAMLEncoder(w io.Writer) *YAMLEncoder {
	return &YAMLEncoder{w: w}
}

func (e *YAMLEncoder) Encode(doc any) error {
	e.doc = doc
	return write(e.w, e)
}

func (e *YAMLEncoder) MarshalText() ([]byte, error) {
	return yaml.Marshal(plain(e.doc))
}
