package msgpack

import (
	"fmt"
	"math"
)

// Kind is the type of an Element.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat32
	KindFloat64
	KindStr
	KindBin
	KindExt
	KindArray
	KindMap
)

var kindNames = [...]string{
	KindNil:     "nil",
	KindBool:    "bool",
	KindInt:     "int",
	KindUint:    "uint",
	KindFloat32: "float32",
	KindFloat64: "float64",
	KindStr:     "str",
	KindBin:     "bin",
	KindExt:     "ext",
	KindArray:   "array",
	KindMap:     "map",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Element is one MessagePack element as it appears on the wire. Arrays and
// maps are reported as headers; their members are the elements that follow.
//
// Str, Bin and Ext payloads point into the decoded input.
type Element struct {
	Kind Kind
	// Format is the leading byte of the element.
	Format byte

	Bool    bool
	Int     int64
	Uint    uint64
	Float   float64
	Bytes   []byte
	ExtType int8
	// Len is the number of members announced by an array or map header.
	Len uint32
}

// Text returns the payload of a str element.
func (e Element) Text() string { return string(e.Bytes) }

// Float32 returns the payload of a float32 element.
func (e Element) Float32() float32 { return float32(e.Float) }

// Ext is the plain Go form of an extension element.
type Ext struct {
	Type int8   `json:"type" yaml:"type" cbor:"type"`
	Data []byte `json:"data" yaml:"data" cbor:"data"`
}

// Interface returns the scalar payload of e as a plain Go value. Headers
// report their length.
func (e Element) Interface() any {
	switch e.Kind {
	case KindNil:
		return nil
	case KindBool:
		return e.Bool
	case KindInt:
		return e.Int
	case KindUint:
		return e.Uint
	case KindFloat32:
		return e.Float32()
	case KindFloat64:
		return e.Float
	case KindStr:
		return e.Text()
	case KindBin:
		return e.Bytes
	case KindExt:
		return Ext{Type: e.ExtType, Data: e.Bytes}
	default:
		return e.Len
	}
}

func (e Element) String() string {
	switch e.Kind {
	case KindArray, KindMap:
		return fmt.Sprintf("%s(%d)", e.Kind, e.Len)
	case KindStr:
		return fmt.Sprintf("str(%q)", e.Text())
	case KindBin:
		return fmt.Sprintf("bin(%x)", e.Bytes)
	case KindExt:
		return fmt.Sprintf("ext(%d, %x)", e.ExtType, e.Bytes)
	case KindFloat32, KindFloat64:
		if math.IsInf(e.Float, 0) || math.IsNaN(e.Float) {
			return fmt.Sprintf("%s(%v)", e.Kind, e.Float)
		}
		return fmt.Sprintf("%s(%g)", e.Kind, e.Float)
	default:
		return fmt.Sprintf("%s(%v)", e.Kind, e.Interface())
	}
}
