package texel

import (
	"errors"
	"fmt"

	"github.com/gogpu/softgl/internal/bytebuf"
)

// Common errors for texture image operations.
var (
	// ErrInvalidDimensions is returned when width, height or depth is non-positive.
	ErrInvalidDimensions = errors.New("texel: invalid dimensions")

	// ErrInvalidFormat is returned when the format is not recognized.
	ErrInvalidFormat = errors.New("texel: invalid format")

	// ErrDataTooSmall is returned when provided data is smaller than the image.
	ErrDataTooSmall = errors.New("texel: data buffer too small")

	// ErrOutOfBounds is returned when texel coordinates are outside the image.
	ErrOutOfBounds = errors.New("texel: coordinates out of bounds")
)

// Level is one mip level of a texture: a tightly packed image of
// Width*Height*Depth texels, x fastest, then rows, then slices.
type Level struct {
	Width  int
	Height int
	Depth  int
	Format Format
	Data   *bytebuf.Buffer
}

// NewLevel allocates a level and fills it from data.
// A nil data leaves the image zeroed; otherwise data must cover the image.
func NewLevel(width, height, depth int, f Format, data []byte) (*Level, error) {
	if width <= 0 || height <= 0 || depth <= 0 {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrInvalidDimensions, width, height, depth)
	}
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, f)
	}
	size := f.ImageBytes(width, height, depth)
	buf := bytebuf.New(size)
	if data == nil {
		if err := buf.Resize(size); err != nil {
			return nil, err
		}
	} else {
		if len(data) < size {
			return nil, fmt.Errorf("%w: have %d bytes, need %d", ErrDataTooSmall, len(data), size)
		}
		buf.Upload(data[:size])
	}
	return &Level{Width: width, Height: height, Depth: depth, Format: f, Data: buf}, nil
}

func (l *Level) offset(x, y, z int) (int, error) {
	if x < 0 || y < 0 || z < 0 || x >= l.Width || y >= l.Height || z >= l.Depth {
		return 0, fmt.Errorf("%w: (%d,%d,%d) in %dx%dx%d", ErrOutOfBounds, x, y, z, l.Width, l.Height, l.Depth)
	}
	return ((z*l.Height+y)*l.Width + x) * l.Format.BytesPerTexel(), nil
}

// Texel decodes the texel at (x, y, z).
func (l *Level) Texel(x, y, z int) (Color, error) {
	off, err := l.offset(x, y, z)
	if err != nil {
		return Opaque, err
	}
	px, err := l.Data.Cursor().Span(off, l.Format.BytesPerTexel())
	if err != nil {
		return Opaque, err
	}
	return Decode(l.Format, px)
}

// SetTexel encodes c into the texel at (x, y, z).
func (l *Level) SetTexel(x, y, z int, c Color) error {
	off, err := l.offset(x, y, z)
	if err != nil {
		return err
	}
	n := l.Format.BytesPerTexel()
	if off+n > l.Data.Len() {
		return bytebuf.ErrOutOfRange
	}
	return Encode(l.Format, l.Data.Bytes()[off:off+n], c)
}

// Fill sets every texel to c.
func (l *Level) Fill(c Color) error {
	n := l.Format.BytesPerTexel()
	px := make([]byte, n)
	if err := Encode(l.Format, px, c); err != nil {
		return err
	}
	data := l.Data.Bytes()
	for off := 0; off+n <= len(data); off += n {
		copy(data[off:off+n], px)
	}
	return nil
}

// WriteRegion copies a tightly packed block of texels into the rectangle
// starting at (x, y, z) with the given extent.
func (l *Level) WriteRegion(x, y, z, width, height, depth int, data []byte) error {
	if width <= 0 || height <= 0 || depth <= 0 {
		return ErrInvalidDimensions
	}
	if x < 0 || y < 0 || z < 0 || x+width > l.Width || y+height > l.Height || z+depth > l.Depth {
		return fmt.Errorf("%w: region %dx%dx%d at (%d,%d,%d)", ErrOutOfBounds, width, height, depth, x, y, z)
	}
	bpt := l.Format.BytesPerTexel()
	row := width * bpt
	if len(data) < row*height*depth {
		return ErrDataTooSmall
	}
	src := 0
	for dz := 0; dz < depth; dz++ {
		for dy := 0; dy < height; dy++ {
			off, _ := l.offset(x, y+dy, z+dz)
			if err := l.Data.UploadAt(off, data[src:src+row]); err != nil {
				return err
			}
			src += row
		}
	}
	return nil
}
