// Package num decodes fixed-width numbers from byte slices.
//
// Every decoder is a leaf parser over [slice.BytePos]. A short input fails
// with [slice.NotEnoughDataError] and leaves the cursor untouched.
package num

import (
	"encoding/binary"
	"math"

	"github.com/dhamidi/descent/parse"
	"github.com/dhamidi/descent/slice"
)

func fixed[N any](pos slice.BytePos, size int, decode func([]byte) N) parse.Progress[slice.BytePos, N, slice.NotEnoughDataError] {
	return parse.Map(pos.Take(size), decode)
}

// Uint8 reads one byte.
func Uint8[S any](_ *parse.Driver[S], pos slice.BytePos) parse.Progress[slice.BytePos, uint8, slice.NotEnoughDataError] {
	return pos.Take1()
}

// Int8 reads one byte as a two's complement integer.
func Int8[S any](_ *parse.Driver[S], pos slice.BytePos) parse.Progress[slice.BytePos, int8, slice.NotEnoughDataError] {
	return parse.Map(pos.Take1(), func(b byte) int8 { return int8(b) })
}

// Uint16LE and Uint16BE read an unsigned 16-bit integer in little or big
// endian order. The wider unsigned readers follow the same naming.
func Uint16LE[S any](_ *parse.Driver[S], pos slice.BytePos) parse.Progress[slice.BytePos, uint16, slice.NotEnoughDataError] {
	return fixed(pos, 2, binary.LittleEndian.Uint16)
}

func Uint16BE[S any](_ *parse.Driver[S], pos slice.BytePos) parse.Progress[slice.BytePos, uint16, slice.NotEnoughDataError] {
	return fixed(pos, 2, binary.BigEndian.Uint16)
}

func Uint32LE[S any](_ *parse.Driver[S], pos slice.BytePos) parse.Progress[slice.BytePos, uint32, slice.NotEnoughDataError] {
	return fixed(pos, 4, binary.LittleEndian.Uint32)
}

func Uint32BE[S any](_ *parse.Driver[S], pos slice.BytePos) parse.Progress[slice.BytePos, uint32, slice.NotEnoughDataError] {
	return fixed(pos, 4, binary.BigEndian.Uint32)
}

func Uint64LE[S any](_ *parse.Driver[S], pos slice.BytePos) parse.Progress[slice.BytePos, uint64, slice.NotEnoughDataError] {
	return fixed(pos, 8, binary.LittleEndian.Uint64)
}

func Uint64BE[S any](_ *parse.Driver[S], pos slice.BytePos) parse.Progress[slice.BytePos, uint64, slice.NotEnoughDataError] {
	return fixed(pos, 8, binary.BigEndian.Uint64)
}

// Int16LE and Int16BE read a two's complement 16-bit integer. The wider
// signed readers follow the same naming.
func Int16LE[S any](_ *parse.Driver[S], pos slice.BytePos) parse.Progress[slice.BytePos, int16, slice.NotEnoughDataError] {
	return fixed(pos, 2, func(b []byte) int16 { return int16(binary.LittleEndian.Uint16(b)) })
}

func Int16BE[S any](_ *parse.Driver[S], pos slice.BytePos) parse.Progress[slice.BytePos, int16, slice.NotEnoughDataError] {
	return fixed(pos, 2, func(b []byte) int16 { return int16(binary.BigEndian.Uint16(b)) })
}

func Int32LE[S any](_ *parse.Driver[S], pos slice.BytePos) parse.Progress[slice.BytePos, int32, slice.NotEnoughDataError] {
	return fixed(pos, 4, func(b []byte) int32 { return int32(binary.LittleEndian.Uint32(b)) })
}

func Int32BE[S any](_ *parse.Driver[S], pos slice.BytePos) parse.Progress[slice.BytePos, int32, slice.NotEnoughDataError] {
	return fixed(pos, 4, func(b []byte) int32 { return int32(binary.BigEndian.Uint32(b)) })
}

func Int64LE[S any](_ *parse.Driver[S], pos slice.BytePos) parse.Progress[slice.BytePos, int64, slice.NotEnoughDataError] {
	return fixed(pos, 8, func(b []byte) int64 { return int64(binary.LittleEndian.Uint64(b)) })
}

func Int64BE[S any](_ *parse.Driver[S], pos slice.BytePos) parse.Progress[slice.BytePos, int64, slice.NotEnoughDataError] {
	return fixed(pos, 8, func(b []byte) int64 { return int64(binary.BigEndian.Uint64(b)) })
}

// Float32LE and Float32BE read an IEEE 754 single precision number.
func Float32LE[S any](_ *parse.Driver[S], pos slice.BytePos) parse.Progress[slice.BytePos, float32, slice.NotEnoughDataError] {
	return fixed(pos, 4, func(b []byte) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(b)) })
}

func Float32BE[S any](_ *parse.Driver[S], pos slice.BytePos) parse.Progress[slice.BytePos, float32, slice.NotEnoughDataError] {
	return fixed(pos, 4, func(b []byte) float32 { return math.Float32frombits(binary.BigEndian.Uint32(b)) })
}

// Float64LE and Float64BE read an IEEE 754 double precision number.
func Float64LE[S any](_ *parse.Driver[S], pos slice.BytePos) parse.Progress[slice.BytePos, float64, slice.NotEnoughDataError] {
	return fixed(pos, 8, func(b []byte) float64 { return math.Float64frombits(binary.LittleEndian.Uint64(b)) })
}

func Float64BE[S any](_ *parse.Driver[S], pos slice.BytePos) parse.Progress[slice.BytePos, float64, slice.NotEnoughDataError] {
	return fixed(pos, 8, func(b []byte) float64 { return math.Float64frombits(binary.BigEndian.Uint64(b)) })
}
