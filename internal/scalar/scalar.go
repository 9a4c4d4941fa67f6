// Package scalar converts raw little-endian bytes to and from the scalar
// component types used by vertex attributes, index streams and texels.
package scalar

import (
	"errors"
	"fmt"
	"math"

	"github.com/x448/float16"

	"github.com/gogpu/softgl/internal/bytebuf"
)

// Common errors for scalar decoding.
var (
	// ErrInvalidType is returned for a Type outside the known set.
	ErrInvalidType = errors.New("scalar: invalid component type")

	// ErrNotInteger is returned when an integer read is requested for a
	// floating-point component type.
	ErrNotInteger = errors.New("scalar: component type is not an integer type")
)

// Type is a scalar component type.
type Type uint8

const (
	// Int8 is a signed 8-bit integer.
	Int8 Type = iota + 1
	// Uint8 is an unsigned 8-bit integer.
	Uint8
	// Int16 is a signed 16-bit integer.
	Int16
	// Uint16 is an unsigned 16-bit integer.
	Uint16
	// Int32 is a signed 32-bit integer.
	Int32
	// Uint32 is an unsigned 32-bit integer.
	Uint32
	// Float16 is an IEEE 754 half-precision float.
	Float16
	// Float32 is an IEEE 754 single-precision float.
	Float32

	typeEnd
)

// Valid reports whether t is a known type.
func (t Type) Valid() bool {
	return t >= Int8 && t < typeEnd
}

// Size returns the size of one component in bytes, or 0 if t is invalid.
func (t Type) Size() int {
	switch t {
	case Int8, Uint8:
		return 1
	case Int16, Uint16, Float16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	}
	return 0
}

// IsInteger reports whether t is an integer type.
func (t Type) IsInteger() bool {
	switch t {
	case Int8, Uint8, Int16, Uint16, Int32, Uint32:
		return true
	}
	return false
}

// IsSigned reports whether t can hold negative values.
func (t Type) IsSigned() bool {
	switch t {
	case Int8, Int16, Int32, Float16, Float32:
		return true
	}
	return false
}

// String returns the name of the type.
func (t Type) String() string {
	switch t {
	case Int8:
		return "Int8"
	case Uint8:
		return "Uint8"
	case Int16:
		return "Int16"
	case Uint16:
		return "Uint16"
	case Int32:
		return "Int32"
	case Uint32:
		return "Uint32"
	case Float16:
		return "Float16"
	case Float32:
		return "Float32"
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// raw reads one component as its integer bit pattern, sign-extended for
// signed integer types.
func raw(c bytebuf.Cursor, offset int, t Type) (int64, error) {
	switch t {
	case Int8:
		v, err := c.Uint8(offset)
		return int64(int8(v)), err
	case Uint8:
		v, err := c.Uint8(offset)
		return int64(v), err
	case Int16:
		v, err := c.Uint16(offset)
		return int64(int16(v)), err
	case Uint16, Float16:
		v, err := c.Uint16(offset)
		return int64(v), err
	case Int32:
		v, err := c.Uint32(offset)
		return int64(int32(v)), err
	case Uint32, Float32:
		v, err := c.Uint32(offset)
		return int64(v), err
	}
	return 0, fmt.Errorf("%w: %v", ErrInvalidType, t)
}

// Decode reads one component at offset and converts it to float32.
//
// With normalized set, unsigned integers map to [0,1] and signed integers
// to [-1,1] (the most negative value clamps to -1). Without it, integers
// convert by magnitude. normalized is ignored for float types.
func Decode(c bytebuf.Cursor, offset int, t Type, normalized bool) (float32, error) {
	bits, err := raw(c, offset, t)
	if err != nil {
		return 0, err
	}
	switch t {
	case Float16:
		return float16.Frombits(uint16(bits)).Float32(), nil
	case Float32:
		return math.Float32frombits(uint32(bits)), nil
	}
	if !normalized {
		return float32(bits), nil
	}
	return normalize(bits, t), nil
}

// DecodeInt reads one integer component at offset without conversion.
func DecodeInt(c bytebuf.Cursor, offset int, t Type) (int64, error) {
	if !t.IsInteger() {
		if !t.Valid() {
			return 0, fmt.Errorf("%w: %v", ErrInvalidType, t)
		}
		return 0, fmt.Errorf("%w: %v", ErrNotInteger, t)
	}
	return raw(c, offset, t)
}

func normalize(v int64, t Type) float32 {
	switch t {
	case Uint8:
		return float32(v) / math.MaxUint8
	case Uint16:
		return float32(v) / math.MaxUint16
	case Uint32:
		return float32(float64(v) / math.MaxUint32)
	case Int8:
		return max(float32(v)/math.MaxInt8, -1)
	case Int16:
		return max(float32(v)/math.MaxInt16, -1)
	case Int32:
		return max(float32(float64(v)/math.MaxInt32), -1)
	}
	return float32(v)
}
