package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/descent/classfile"
	"github.com/dhamidi/descent/msgpack"
)

// LineEncoder writes one line per element, class, field or method, in a
// form meant for grep and cut.
type LineEncoder struct {
	w   io.Writer
	doc any
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(doc any) error {
	e.doc = doc
	return write(e.w, e)
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	switch doc := e.doc.(type) {
	case msgpack.Value:
		writeValue(&sb, doc, 0, "")
	case []msgpack.Value:
		for _, v := range doc {
			writeValue(&sb, v, 0, "")
		}
	case msgpack.Element:
		fmt.Fprintf(&sb, "%s\n", doc)
	case *classfile.Summary:
		writeSummary(&sb, doc)
	default:
		return nil, fmt.Errorf("line format does not support %T", e.doc)
	}
	return []byte(sb.String()), nil
}

func writeValue(sb *strings.Builder, v msgpack.Value, depth int, label string) {
	fmt.Fprintf(sb, "%s%s%s\n", strings.Repeat("  ", depth), label, v.Element)
	switch v.Kind {
	case msgpack.KindArray:
		for _, item := range v.Items {
			writeValue(sb, item, depth+1, "")
		}
	case msgpack.KindMap:
		for _, k := range v.Keys() {
			writeValue(sb, v.Fields[k], depth+1, strconv.Quote(k)+": ")
		}
	}
}

func writeSummary(sb *strings.Builder, s *classfile.Summary) {
	fmt.Fprintf(sb, "class\t%s\t%s\t%s\n", s.Name, s.Version, strings.Join(s.Access, " "))
	if s.SuperClass != "" {
		fmt.Fprintf(sb, "extends\t%s\n", s.SuperClass)
	}
	for _, i := range s.Interfaces {
		fmt.Fprintf(sb, "implements\t%s\n", i)
	}
	for _, f := range s.Fields {
		fmt.Fprintf(sb, "field\t%s\t%s\t%s\n", f.Name, f.Type, strings.Join(f.Access, " "))
	}
	for _, m := range s.Methods {
		kind := "method"
		if m.Constructor {
			kind = "constructor"
		}
		fmt.Fprintf(sb, "%s\t%s\t%s\t%s\n", kind, m.Name, m.Type, strings.Join(m.Access, " "))
	}
	for _, r := range s.References {
		fmt.Fprintf(sb, "uses\t%s\n", r)
	}
	for _, str := range s.Strings {
		fmt.Fprintf(sb, "string\t%q\n", str)
	}
}
