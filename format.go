package softgl

import (
	"github.com/gogpu/softgl/internal/scalar"
	"github.com/gogpu/softgl/internal/texel"
)

// PixelFormat is the storage format of a texture level or surface.
type PixelFormat = texel.Format

// Pixel formats.
const (
	FormatR8       = texel.FormatR8
	FormatRG8      = texel.FormatRG8
	FormatRGB8     = texel.FormatRGB8
	FormatRGBA8    = texel.FormatRGBA8
	FormatBGRA8    = texel.FormatBGRA8
	FormatSRGBA8   = texel.FormatSRGBA8
	FormatR16F     = texel.FormatR16F
	FormatRGBA16F  = texel.FormatRGBA16F
	FormatR32F     = texel.FormatR32F
	FormatRG32F    = texel.FormatRG32F
	FormatRGB32F   = texel.FormatRGB32F
	FormatRGBA32F  = texel.FormatRGBA32F
	FormatDepth16  = texel.FormatDepth16
	FormatDepth32F = texel.FormatDepth32F
)

// ScalarType is the component type of a vertex attribute.
type ScalarType = scalar.Type

// Scalar types.
const (
	TypeInt8    = scalar.Int8
	TypeUint8   = scalar.Uint8
	TypeInt16   = scalar.Int16
	TypeUint16  = scalar.Uint16
	TypeInt32   = scalar.Int32
	TypeUint32  = scalar.Uint32
	TypeFloat16 = scalar.Float16
	TypeFloat32 = scalar.Float32
)
