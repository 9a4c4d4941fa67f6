package scalar

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/chewxy/math32"
	"github.com/x448/float16"
)

// Encode writes v into dst as one component of type t.
//
// With normalized set, v is clamped to [0,1] (unsigned) or [-1,1] (signed)
// and scaled to the integer range with rounding. Without it, v is rounded
// and saturated to the integer range. NaN encodes as zero.
// dst must hold at least t.Size() bytes.
func Encode(dst []byte, t Type, v float32, normalized bool) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidType, t)
	}
	if len(dst) < t.Size() {
		return fmt.Errorf("scalar: destination too small for %v: %d bytes", t, len(dst))
	}
	if math32.IsNaN(v) {
		v = 0
	}
	switch t {
	case Float16:
		binary.LittleEndian.PutUint16(dst, float16.Fromfloat32(v).Bits())
		return nil
	case Float32:
		binary.LittleEndian.PutUint32(dst, math.Float32bits(v))
		return nil
	}

	if normalized {
		putInt(dst, t, denormalize(v, t))
	} else {
		lo, hi := bounds(t)
		f := max(float64(lo), min(float64(hi), math.Round(float64(v))))
		putInt(dst, t, int64(f))
	}
	return nil
}

// EncodeInt writes an integer component, saturating to the range of t.
func EncodeInt(dst []byte, t Type, v int64) error {
	if !t.IsInteger() {
		return fmt.Errorf("%w: %v", ErrNotInteger, t)
	}
	if len(dst) < t.Size() {
		return fmt.Errorf("scalar: destination too small for %v: %d bytes", t, len(dst))
	}
	putInt(dst, t, saturate(v, t))
	return nil
}

func putInt(dst []byte, t Type, i int64) {
	switch t.Size() {
	case 1:
		dst[0] = byte(i)
	case 2:
		binary.LittleEndian.PutUint16(dst, uint16(i))
	case 4:
		binary.LittleEndian.PutUint32(dst, uint32(i))
	}
}

func denormalize(v float32, t Type) int64 {
	_, hi := bounds(t)
	if t.IsSigned() {
		v = math32.Max(-1, math32.Min(1, v))
	} else {
		v = math32.Max(0, math32.Min(1, v))
	}
	return saturate(int64(math.Round(float64(v)*float64(hi))), t)
}

func saturate(v int64, t Type) int64 {
	lo, hi := bounds(t)
	return max(lo, min(hi, v))
}

func bounds(t Type) (lo, hi int64) {
	switch t {
	case Int8:
		return math.MinInt8, math.MaxInt8
	case Uint8:
		return 0, math.MaxUint8
	case Int16:
		return math.MinInt16, math.MaxInt16
	case Uint16:
		return 0, math.MaxUint16
	case Int32:
		return math.MinInt32, math.MaxInt32
	case Uint32:
		return 0, math.MaxUint32
	}
	return 0, 0
}
