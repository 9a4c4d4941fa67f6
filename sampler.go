package softgl

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/softgl/internal/texel"
)

// WrapMode maps texture coordinates outside [0,1] back into range.
type WrapMode = texel.WrapMode

// Wrap modes.
const (
	WrapRepeat         = texel.WrapRepeat
	WrapMirroredRepeat = texel.WrapMirroredRepeat
	WrapClampToEdge    = texel.WrapClampToEdge
	WrapClampToBorder  = texel.WrapClampToBorder
)

// SamplerDesc describes how a texture is read.
//
// Only level 0 of a texture is sampled and no level of detail is
// computed, so MagFilter selects the filter. MinFilter is used when
// MagFilter is left at a value other than nearest or linear.
type SamplerDesc struct {
	WrapS, WrapT, WrapR  WrapMode
	MinFilter, MagFilter gputypes.FilterMode

	// BorderColor is returned for ClampToBorder reads outside [0,1].
	BorderColor gputypes.Color
}

// DefaultSamplerDesc returns repeat wrapping on every axis, nearest
// filtering and a transparent black border.
func DefaultSamplerDesc() SamplerDesc {
	return SamplerDesc{
		WrapS:     WrapRepeat,
		WrapT:     WrapRepeat,
		WrapR:     WrapRepeat,
		MinFilter: gputypes.FilterModeNearest,
		MagFilter: gputypes.FilterModeNearest,
	}
}

func (d SamplerDesc) sampler() texel.Sampler {
	mag := d.MagFilter
	if mag != gputypes.FilterModeNearest && mag != gputypes.FilterModeLinear {
		mag = d.MinFilter
	}
	return texel.Sampler{
		WrapS:     d.WrapS,
		WrapT:     d.WrapT,
		WrapR:     d.WrapR,
		MinFilter: d.MinFilter,
		MagFilter: mag,
		Border: texel.Color{
			float32(d.BorderColor.R),
			float32(d.BorderColor.G),
			float32(d.BorderColor.B),
			float32(d.BorderColor.A),
		},
	}
}

func validWrap(m WrapMode) bool {
	switch m {
	case WrapRepeat, WrapMirroredRepeat, WrapClampToEdge, WrapClampToBorder:
		return true
	}
	return false
}

func (d SamplerDesc) valid() bool {
	return validWrap(d.WrapS) && validWrap(d.WrapT) && validWrap(d.WrapR)
}

type samplerObject struct {
	desc texel.Sampler
}

// CreateSampler returns a new sampler with DefaultSamplerDesc.
func (c *Context) CreateSampler() (Handle, error) {
	if err := c.live("CreateSampler"); err != nil {
		return 0, err
	}
	return newHandle(c, "CreateSampler", &c.samplers, &samplerObject{desc: DefaultSamplerDesc().sampler()})
}

// DeleteSampler releases a sampler. Units it is bound to fall back to the
// sampling state of their textures.
func (c *Context) DeleteSampler(h Handle) error {
	if err := c.live("DeleteSampler"); err != nil {
		return err
	}
	if _, ok := c.samplers.remove(h); !ok {
		return c.fail("DeleteSampler", ErrInvalidHandle, "handle", h)
	}
	return nil
}

// SamplerParameters replaces the state of a sampler.
func (c *Context) SamplerParameters(h Handle, desc SamplerDesc) error {
	if err := c.live("SamplerParameters"); err != nil {
		return err
	}
	s := c.samplers.get(h)
	if s == nil {
		return c.fail("SamplerParameters", ErrInvalidHandle, "handle", h)
	}
	if !desc.valid() {
		return c.fail("SamplerParameters", ErrInvalidEnum)
	}
	s.desc = desc.sampler()
	return nil
}

// BindSampler binds a sampler to a texture unit, overriding the sampling
// state of every texture bound there. 0 restores the textures' own state.
func (c *Context) BindSampler(unit int, h Handle) error {
	if err := c.live("BindSampler"); err != nil {
		return err
	}
	if unit < 0 || unit >= len(c.units) {
		return c.fail("BindSampler", ErrInvalidValue, "unit", unit)
	}
	if h != 0 && c.samplers.get(h) == nil {
		return c.fail("BindSampler", ErrInvalidHandle, "handle", h)
	}
	c.units[unit].sampler = h
	return nil
}
