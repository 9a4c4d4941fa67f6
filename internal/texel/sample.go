package texel

import (
	"github.com/chewxy/math32"
	"github.com/gogpu/gputypes"
)

// Sampler holds the filtering and wrapping state applied to a texture read.
type Sampler struct {
	WrapS, WrapT, WrapR  WrapMode
	MinFilter, MagFilter gputypes.FilterMode
	Border               Color
}

// DefaultSampler returns repeat wrapping with nearest filtering and a
// transparent black border.
func DefaultSampler() Sampler {
	return Sampler{
		WrapS:     WrapRepeat,
		WrapT:     WrapRepeat,
		WrapR:     WrapRepeat,
		MinFilter: gputypes.FilterModeNearest,
		MagFilter: gputypes.FilterModeNearest,
	}
}

func (s *Sampler) wrap(axis int) WrapMode {
	switch axis {
	case 0:
		return s.WrapS
	case 1:
		return s.WrapT
	}
	return s.WrapR
}

// Sample reads level l at normalized coordinates using dims axes
// (1, 2 or 3) of coord.
//
// Only the magnification filter applies: no level of detail is computed,
// so every read is treated as magnification of level 0.
func Sample(l *Level, s Sampler, dims int, coord [3]float32) Color {
	if l == nil {
		return Opaque
	}
	dims = max(1, min(3, dims))

	var wrapped [3]float32
	for a := 0; a < dims; a++ {
		w, border := Wrap(s.wrap(a), coord[a])
		if border {
			if w < 0 || w > 1 || math32.IsNaN(w) {
				return s.Border
			}
			w = math32.Min(w, edgeLimit)
		}
		wrapped[a] = w
	}

	size := [3]int{l.Width, l.Height, l.Depth}
	if s.MagFilter == gputypes.FilterModeLinear {
		return sampleLinear(l, &s, dims, wrapped, size)
	}
	return sampleNearest(l, dims, wrapped, size)
}

func sampleNearest(l *Level, dims int, uvw [3]float32, size [3]int) Color {
	var idx [3]int
	for a := 0; a < dims; a++ {
		i := int(math32.Floor(uvw[a] * float32(size[a])))
		idx[a] = max(0, min(size[a]-1, i))
	}
	c, err := l.Texel(idx[0], idx[1], idx[2])
	if err != nil {
		return Opaque
	}
	return c
}

// sampleLinear blends the 2^dims neighbors around the coordinate using
// texel-center weights: linear in 1-D, bilinear in 2-D, trilinear in 3-D.
func sampleLinear(l *Level, s *Sampler, dims int, uvw [3]float32, size [3]int) Color {
	var lo, hi [3]int
	var frac [3]float32
	for a := 0; a < dims; a++ {
		f := uvw[a]*float32(size[a]) - 0.5
		i := math32.Floor(f)
		frac[a] = f - i
		mode := s.wrap(a)
		lo[a] = wrapIndex(mode, int(i), size[a])
		hi[a] = wrapIndex(mode, int(i)+1, size[a])
	}

	var out Color
	corners := 1 << dims
	for corner := 0; corner < corners; corner++ {
		weight := float32(1)
		var idx [3]int
		for a := 0; a < dims; a++ {
			if corner&(1<<a) != 0 {
				idx[a] = hi[a]
				weight *= frac[a]
			} else {
				idx[a] = lo[a]
				weight *= 1 - frac[a]
			}
		}
		if weight == 0 {
			continue
		}
		c, err := l.Texel(idx[0], idx[1], idx[2])
		if err != nil {
			c = Opaque
		}
		for ch := range out {
			out[ch] += weight * c[ch]
		}
	}
	return out
}
