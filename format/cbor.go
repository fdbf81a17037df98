package format

import (
	"io"

	"github.com/fxamacker/cbor/v2"
)

// CBOREncoder transcodes documents to canonical CBOR, so equal documents
// always produce equal bytes. MarshalText returns binary data.
type CBOREncoder struct {
	w   io.Writer
	doc any
}

func NewCBOREncoder(w io.Writer) *CBOREncoder {
	return &CBOREncoder{w: w}
}

func (e *CBOREncoder) Encode(doc any) error {
	e.doc = doc
	return write(e.w, e)
}

func (e *CBOREncoder) MarshalText() ([]byte, error) {
	mode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	return mode.Marshal(plain(e.doc))
}
