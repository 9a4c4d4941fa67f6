package softgl

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/softgl/internal/texel"
)

// Surface is a caller-owned color image that backs the default
// framebuffer. Pixels are stored row by row from the top-left corner.
type Surface struct {
	level *texel.Level
}

// NewSurface allocates a zeroed surface. The format must be a color
// format.
func NewSurface(width, height int, format PixelFormat) (*Surface, error) {
	if format.IsDepth() {
		return nil, fmt.Errorf("%w: depth format %v for a surface", texel.ErrInvalidFormat, format)
	}
	l, err := texel.NewLevel(width, height, 1, format, nil)
	if err != nil {
		return nil, err
	}
	return &Surface{level: l}, nil
}

// Width returns the width of the surface in pixels.
func (s *Surface) Width() int {
	return s.level.Width
}

// Height returns the height of the surface in pixels.
func (s *Surface) Height() int {
	return s.level.Height
}

// Format returns the pixel format.
func (s *Surface) Format() PixelFormat {
	return s.level.Format
}

// Pix returns the raw pixel bytes. Modifying the slice modifies the
// surface.
func (s *Surface) Pix() []byte {
	return s.level.Data.Bytes()
}

// Pixel returns the decoded color of a pixel, or transparent black
// outside the surface.
func (s *Surface) Pixel(x, y int) mgl32.Vec4 {
	c, err := s.level.Texel(x, y, 0)
	if err != nil {
		return mgl32.Vec4{}
	}
	return mgl32.Vec4(c)
}

// SetPixel encodes c into a pixel. Writes outside the surface are ignored.
func (s *Surface) SetPixel(x, y int, c mgl32.Vec4) {
	_ = s.level.SetTexel(x, y, 0, texel.Color(c))
}

// Fill sets every pixel to c.
func (s *Surface) Fill(c mgl32.Vec4) {
	_ = s.level.Fill(texel.Color(c))
}

// ToImage converts the surface to an 8-bit non-premultiplied image.
func (s *Surface) ToImage() *image.NRGBA {
	w, h := s.Width(), s.Height()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	// sRGB bytes are already display encoded.
	if f := s.Format(); f == FormatRGBA8 || f == FormatSRGBA8 {
		copy(img.Pix, s.Pix())
		return img
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, toNRGBA(s.Pixel(x, y)))
		}
	}
	return img
}

// SavePNG saves the surface to a PNG file.
func (s *Surface) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return png.Encode(f, s.ToImage())
}

// At implements the image.Image interface.
func (s *Surface) At(x, y int) color.Color {
	return toNRGBA(s.Pixel(x, y))
}

// Bounds implements the image.Image interface.
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.Width(), s.Height())
}

// ColorModel implements the image.Image interface.
func (s *Surface) ColorModel() color.Model {
	return color.NRGBAModel
}

func toNRGBA(c mgl32.Vec4) color.NRGBA {
	return color.NRGBA{
		R: unorm8(c[0]),
		G: unorm8(c[1]),
		B: unorm8(c[2]),
		A: unorm8(c[3]),
	}
}

func unorm8(v float32) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}
