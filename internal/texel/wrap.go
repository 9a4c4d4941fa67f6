package texel

import "github.com/chewxy/math32"

// WrapMode maps texture coordinates outside [0,1] back into range.
type WrapMode uint8

const (
	// WrapRepeat tiles the texture.
	WrapRepeat WrapMode = iota

	// WrapMirroredRepeat tiles the texture, reflecting every odd tile.
	WrapMirroredRepeat

	// WrapClampToEdge clamps coordinates to the edge texels.
	WrapClampToEdge

	// WrapClampToBorder substitutes the sampler's border color.
	WrapClampToBorder
)

// String returns a string representation of the wrap mode.
func (m WrapMode) String() string {
	switch m {
	case WrapRepeat:
		return "Repeat"
	case WrapMirroredRepeat:
		return "MirroredRepeat"
	case WrapClampToEdge:
		return "ClampToEdge"
	case WrapClampToBorder:
		return "ClampToBorder"
	default:
		return "Unknown"
	}
}

// edgeLimit is the largest clamped coordinate; it keeps floor(u*size)
// inside the last texel.
const edgeLimit = 1 - 1.0/(1<<20)

// Wrap applies mode to a single coordinate.
//
// Repeat returns a value in [0,1) with period 1. MirroredRepeat reflects
// the fractional part on odd integer parts. ClampToEdge clamps to
// [0, 1-ε]. ClampToBorder returns coord unchanged with border set;
// the caller decides whether the border color applies.
func Wrap(mode WrapMode, coord float32) (w float32, border bool) {
	if math32.IsNaN(coord) {
		coord = 0
	}
	switch mode {
	case WrapRepeat:
		return fract(coord), false
	case WrapMirroredRepeat:
		i := math32.Floor(coord)
		f := coord - i
		if f >= 1 {
			f = 0
		}
		if int64(i)&1 != 0 {
			f = 1 - f
		}
		return f, false
	case WrapClampToEdge:
		return math32.Max(0, math32.Min(edgeLimit, coord)), false
	case WrapClampToBorder:
		return coord, true
	}
	return fract(coord), false
}

// fract returns coord - floor(coord), folding the float32 rounding case
// where a tiny negative input yields exactly 1.
func fract(coord float32) float32 {
	f := coord - math32.Floor(coord)
	if f >= 1 {
		return 0
	}
	return f
}

// wrapIndex maps a texel index that may fall outside [0,size) back into
// range. Border mode clamps: border texels are resolved before filtering.
func wrapIndex(mode WrapMode, i, size int) int {
	switch mode {
	case WrapRepeat:
		i %= size
		if i < 0 {
			i += size
		}
		return i
	case WrapMirroredRepeat:
		period := 2 * size
		i %= period
		if i < 0 {
			i += period
		}
		if i >= size {
			i = period - 1 - i
		}
		return i
	}
	return max(0, min(size-1, i))
}
