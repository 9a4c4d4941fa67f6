package softgl

import (
	"errors"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/softgl/internal/texel"
)

// maxLevels bounds the mip chain of a texture.
const maxLevels = 16

type texture struct {
	dim     gputypes.TextureDimension
	hasDim  bool
	levels  []*texel.Level
	sampler texel.Sampler
}

func (t *texture) level(i int) *texel.Level {
	if t == nil || i < 0 || i >= len(t.levels) {
		return nil
	}
	return t.levels[i]
}

// dimIndex maps a texture dimension to its per-unit binding slot.
func dimIndex(dim gputypes.TextureDimension) (int, bool) {
	switch dim {
	case gputypes.TextureDimension1D:
		return 0, true
	case gputypes.TextureDimension2D:
		return 1, true
	case gputypes.TextureDimension3D:
		return 2, true
	}
	return 0, false
}

// CreateTexture returns a new texture without images. Its dimension is
// fixed by the first BindTexture.
func (c *Context) CreateTexture() (Handle, error) {
	if err := c.live("CreateTexture"); err != nil {
		return 0, err
	}
	return newHandle(c, "CreateTexture", &c.textures, &texture{sampler: DefaultSamplerDesc().sampler()})
}

// DeleteTexture releases a texture and its images.
func (c *Context) DeleteTexture(h Handle) error {
	if err := c.live("DeleteTexture"); err != nil {
		return err
	}
	t, ok := c.textures.remove(h)
	if !ok {
		return c.fail("DeleteTexture", ErrInvalidHandle, "handle", h)
	}
	for _, l := range t.levels {
		if l != nil {
			l.Data.Release()
		}
	}
	return nil
}

// ActiveTexture selects the unit BindTexture and the TexImage calls act on.
func (c *Context) ActiveTexture(unit int) error {
	if err := c.live("ActiveTexture"); err != nil {
		return err
	}
	if unit < 0 || unit >= len(c.units) {
		return c.fail("ActiveTexture", ErrInvalidValue, "unit", unit)
	}
	c.activeUnit = unit
	return nil
}

// BindTexture binds a texture, or 0 to unbind, to dimension dim of the
// active unit. A texture keeps the dimension of its first bind.
func (c *Context) BindTexture(dim gputypes.TextureDimension, h Handle) error {
	if err := c.live("BindTexture"); err != nil {
		return err
	}
	idx, ok := dimIndex(dim)
	if !ok {
		return c.fail("BindTexture", ErrInvalidEnum, "dimension", dim)
	}
	if h != 0 {
		t := c.textures.get(h)
		if t == nil {
			return c.fail("BindTexture", ErrInvalidHandle, "handle", h)
		}
		if t.hasDim && t.dim != dim {
			return c.fail("BindTexture", ErrTargetMismatch, "handle", h)
		}
		t.dim, t.hasDim = dim, true
	}
	c.units[c.activeUnit].textures[idx] = h
	return nil
}

// boundTexture resolves the texture bound to dim on the active unit.
func (c *Context) boundTexture(op string, dim gputypes.TextureDimension) (*texture, error) {
	idx, ok := dimIndex(dim)
	if !ok {
		return nil, c.fail(op, ErrInvalidEnum, "dimension", dim)
	}
	t := c.textures.get(c.units[c.activeUnit].textures[idx])
	if t == nil {
		return nil, c.fail(op, ErrNoTexture, "unit", c.activeUnit, "dimension", dim)
	}
	return t, nil
}

// TexImage1D specifies level of the 1-D texture bound to the active unit.
// A nil data allocates a zeroed image.
func (c *Context) TexImage1D(level int, format PixelFormat, width int, data []byte) error {
	return c.texImage("TexImage1D", gputypes.TextureDimension1D, level, format, width, 1, 1, data)
}

// TexImage2D specifies level of the 2-D texture bound to the active unit.
// Rows are tightly packed from the top.
func (c *Context) TexImage2D(level int, format PixelFormat, width, height int, data []byte) error {
	return c.texImage("TexImage2D", gputypes.TextureDimension2D, level, format, width, height, 1, data)
}

// TexImage3D specifies level of the 3-D texture bound to the active unit.
func (c *Context) TexImage3D(level int, format PixelFormat, width, height, depth int, data []byte) error {
	return c.texImage("TexImage3D", gputypes.TextureDimension3D, level, format, width, height, depth, data)
}

func (c *Context) texImage(op string, dim gputypes.TextureDimension, level int, format PixelFormat, w, h, d int, data []byte) error {
	if err := c.live(op); err != nil {
		return err
	}
	t, err := c.boundTexture(op, dim)
	if err != nil {
		return err
	}
	if level < 0 || level >= maxLevels {
		return c.fail(op, ErrInvalidValue, "level", level)
	}
	img, err := texel.NewLevel(w, h, d, format, data)
	if err != nil {
		return c.fail(op, classifyTexelError(err), "level", level)
	}
	for len(t.levels) <= level {
		t.levels = append(t.levels, nil)
	}
	if old := t.levels[level]; old != nil {
		old.Data.Release()
	}
	t.levels[level] = img
	return nil
}

// TexSubImage2D overwrites a w×h region of an existing level of the 2-D
// texture bound to the active unit. data is in the level's format.
func (c *Context) TexSubImage2D(level, x, y, width, height int, data []byte) error {
	const op = "TexSubImage2D"
	if err := c.live(op); err != nil {
		return err
	}
	t, err := c.boundTexture(op, gputypes.TextureDimension2D)
	if err != nil {
		return err
	}
	img := t.level(level)
	if img == nil {
		return c.fail(op, ErrInvalidValue, "level", level)
	}
	if err := img.WriteRegion(x, y, 0, width, height, 1, data); err != nil {
		return c.fail(op, classifyTexelError(err), "level", level)
	}
	return nil
}

// TexSampler sets the sampling state of the texture bound to dim on the
// active unit. It applies whenever no sampler object is bound to the unit
// the texture is read through.
func (c *Context) TexSampler(dim gputypes.TextureDimension, desc SamplerDesc) error {
	if err := c.live("TexSampler"); err != nil {
		return err
	}
	t, err := c.boundTexture("TexSampler", dim)
	if err != nil {
		return err
	}
	if !desc.valid() {
		return c.fail("TexSampler", ErrInvalidEnum)
	}
	t.sampler = desc.sampler()
	return nil
}

// classifyTexelError keeps the texel error and adds the matching API
// error so callers can test either.
func classifyTexelError(err error) error {
	switch {
	case errors.Is(err, texel.ErrInvalidFormat):
		return errors.Join(ErrInvalidEnum, err)
	case errors.Is(err, texel.ErrInvalidDimensions),
		errors.Is(err, texel.ErrDataTooSmall),
		errors.Is(err, texel.ErrOutOfBounds):
		return errors.Join(ErrInvalidValue, err)
	}
	return err
}
