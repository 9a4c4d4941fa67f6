package texel

import (
	"github.com/gogpu/softgl/internal/bytebuf"
	"github.com/gogpu/softgl/internal/color"
	"github.com/gogpu/softgl/internal/scalar"
)

// Color is a decoded texel: linear RGBA in float32.
type Color = [4]float32

// Opaque is the value missing channels default to.
var Opaque = Color{0, 0, 0, 1}

// Decode converts one stored texel to a normalized color.
// Channels the format does not store default to (0,0,0,1).
// Depth formats decode to (d,0,0,1).
func Decode(f Format, px []byte) (Color, error) {
	info := f.Info()
	if !f.Valid() {
		return Opaque, ErrInvalidFormat
	}
	c := bytebuf.NewCursor(px)
	out := Opaque
	size := info.Type.Size()
	for i := 0; i < info.Channels; i++ {
		if info.SRGB && i < 3 {
			b, err := c.Uint8(i)
			if err != nil {
				return Opaque, err
			}
			out[i] = color.Decode8(b)
			continue
		}
		v, err := scalar.Decode(c, i*size, info.Type, info.Normalized)
		if err != nil {
			return Opaque, err
		}
		out[i] = v
	}
	if info.Swizzled {
		out[0], out[2] = out[2], out[0]
	}
	return out, nil
}

// Encode writes c into dst using format f.
// Normalized channels are clamped; sRGB channels are encoded from linear.
func Encode(f Format, dst []byte, c Color) error {
	info := f.Info()
	if !f.Valid() {
		return ErrInvalidFormat
	}
	if len(dst) < f.BytesPerTexel() {
		return bytebuf.ErrOutOfRange
	}
	if info.Swizzled {
		c[0], c[2] = c[2], c[0]
	}
	size := info.Type.Size()
	for i := 0; i < info.Channels; i++ {
		if info.SRGB && i < 3 {
			dst[i] = color.Encode8(c[i])
			continue
		}
		if err := scalar.Encode(dst[i*size:], info.Type, c[i], info.Normalized); err != nil {
			return err
		}
	}
	return nil
}
