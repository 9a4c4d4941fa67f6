// Package color implements the sRGB transfer functions used by sRGB texel
// formats.
//
// 8-bit decodes go through a 256-entry table and encodes through a
// 4096-entry table, so per-texel conversion never calls math.Pow.
package color

import "math"

var (
	toLinearLUT [256]float32
	toSRGBLUT   [4096]uint8
)

func init() {
	for i := range toLinearLUT {
		toLinearLUT[i] = float32(eotf(float64(i) / 255))
	}
	for i := range toSRGBLUT {
		toSRGBLUT[i] = quantize(oetf(float64(i) / 4095))
	}
}

// eotf maps an encoded sRGB value in [0,1] to linear light.
func eotf(s float64) float64 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

// oetf maps linear light in [0,1] to an encoded sRGB value.
func oetf(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math.Pow(l, 1/2.4) - 0.055
}

func quantize(s float64) uint8 {
	//nolint:gosec // G115: clamped to [0,255]
	return uint8(max(0, min(255, int(s*255+0.5))))
}

// Decode8 converts an 8-bit sRGB component to linear float32.
func Decode8(s uint8) float32 {
	return toLinearLUT[s]
}

// Encode8 converts a linear component to an 8-bit sRGB value.
// Input outside [0,1] is clamped; NaN encodes as 0.
func Encode8(l float32) uint8 {
	if !(l > 0) {
		return 0
	}
	if l > 1 {
		l = 1
	}
	return toSRGBLUT[int(l*4095+0.5)]
}
