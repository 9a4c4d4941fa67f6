// Package texel stores texture images and implements texel decode/encode,
// coordinate wrapping and filtered sampling for the software device.
package texel

import (
	"fmt"

	"github.com/gogpu/softgl/internal/scalar"
)

// Format is a texel storage format: a channel layout plus a scalar
// component type.
type Format uint8

const (
	// FormatUndefined is the zero Format and is never valid for storage.
	FormatUndefined Format = iota

	// FormatR8 is one 8-bit normalized channel.
	FormatR8

	// FormatRG8 is two 8-bit normalized channels.
	FormatRG8

	// FormatRGB8 is three 8-bit normalized channels.
	FormatRGB8

	// FormatRGBA8 is four 8-bit normalized channels.
	// This is the standard format for color attachments.
	FormatRGBA8

	// FormatBGRA8 is four 8-bit normalized channels stored blue first.
	// Common for presentation surfaces.
	FormatBGRA8

	// FormatSRGBA8 is RGBA8 with sRGB-encoded color channels.
	// Alpha stays linear.
	FormatSRGBA8

	// FormatR16F is one half-float channel.
	FormatR16F

	// FormatRGBA16F is four half-float channels.
	FormatRGBA16F

	// FormatR32F is one float channel.
	FormatR32F

	// FormatRG32F is two float channels.
	FormatRG32F

	// FormatRGB32F is three float channels.
	FormatRGB32F

	// FormatRGBA32F is four float channels.
	FormatRGBA32F

	// FormatDepth16 is a 16-bit normalized depth value.
	FormatDepth16

	// FormatDepth32F is a float depth value.
	FormatDepth32F

	formatCount
)

// FormatInfo contains metadata about a texel format.
type FormatInfo struct {
	// Channels is the number of stored channels.
	Channels int

	// Type is the scalar type of each channel.
	Type scalar.Type

	// Normalized is true when integer channels map to [0,1].
	Normalized bool

	// SRGB is true when color channels are sRGB encoded.
	SRGB bool

	// Swizzled is true when the first and third channels are swapped
	// in storage (BGRA).
	Swizzled bool

	// Depth is true for depth formats.
	Depth bool
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatR8:       {Channels: 1, Type: scalar.Uint8, Normalized: true},
	FormatRG8:      {Channels: 2, Type: scalar.Uint8, Normalized: true},
	FormatRGB8:     {Channels: 3, Type: scalar.Uint8, Normalized: true},
	FormatRGBA8:    {Channels: 4, Type: scalar.Uint8, Normalized: true},
	FormatBGRA8:    {Channels: 4, Type: scalar.Uint8, Normalized: true, Swizzled: true},
	FormatSRGBA8:   {Channels: 4, Type: scalar.Uint8, Normalized: true, SRGB: true},
	FormatR16F:     {Channels: 1, Type: scalar.Float16},
	FormatRGBA16F:  {Channels: 4, Type: scalar.Float16},
	FormatR32F:     {Channels: 1, Type: scalar.Float32},
	FormatRG32F:    {Channels: 2, Type: scalar.Float32},
	FormatRGB32F:   {Channels: 3, Type: scalar.Float32},
	FormatRGBA32F:  {Channels: 4, Type: scalar.Float32},
	FormatDepth16:  {Channels: 1, Type: scalar.Uint16, Normalized: true, Depth: true},
	FormatDepth32F: {Channels: 1, Type: scalar.Float32, Depth: true},
}

// Valid returns true if f is a known storage format.
func (f Format) Valid() bool {
	return f > FormatUndefined && f < formatCount
}

// Info returns the FormatInfo for f.
func (f Format) Info() FormatInfo {
	if !f.Valid() {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// BytesPerTexel returns the storage size of one texel.
func (f Format) BytesPerTexel() int {
	info := f.Info()
	return info.Channels * info.Type.Size()
}

// IsDepth reports whether f is a depth format.
func (f Format) IsDepth() bool {
	return f.Info().Depth
}

// ImageBytes returns the number of bytes for a tightly packed image.
func (f Format) ImageBytes(width, height, depth int) int {
	return f.BytesPerTexel() * width * height * depth
}

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatUndefined:
		return "Undefined"
	case FormatR8:
		return "R8"
	case FormatRG8:
		return "RG8"
	case FormatRGB8:
		return "RGB8"
	case FormatRGBA8:
		return "RGBA8"
	case FormatBGRA8:
		return "BGRA8"
	case FormatSRGBA8:
		return "SRGBA8"
	case FormatR16F:
		return "R16F"
	case FormatRGBA16F:
		return "RGBA16F"
	case FormatR32F:
		return "R32F"
	case FormatRG32F:
		return "RG32F"
	case FormatRGB32F:
		return "RGB32F"
	case FormatRGBA32F:
		return "RGBA32F"
	case FormatDepth16:
		return "Depth16"
	case FormatDepth32F:
		return "Depth32F"
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}
