package softgl

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/softgl/internal/texel"
)

// Attachment names a framebuffer attachment point.
type Attachment uint8

// Attachment points.
const (
	ColorAttachment0 Attachment = iota
	ColorAttachment1
	ColorAttachment2
	ColorAttachment3
	ColorAttachment4
	ColorAttachment5
	ColorAttachment6
	ColorAttachment7
	DepthAttachment
)

// FramebufferStatus is the result of a completeness check.
type FramebufferStatus uint8

const (
	// FramebufferComplete means draws and clears can proceed.
	FramebufferComplete FramebufferStatus = iota

	// FramebufferUndefined means the default framebuffer has no surface.
	FramebufferUndefined

	// FramebufferIncompleteMissingAttachment means nothing is attached.
	FramebufferIncompleteMissingAttachment

	// FramebufferIncompleteAttachment means an attachment names a deleted
	// texture, a missing level, a 3-D level or a format that does not fit
	// the attachment point.
	FramebufferIncompleteAttachment

	// FramebufferIncompleteDimensions means attachments differ in size.
	FramebufferIncompleteDimensions
)

// String returns a string representation of the status.
func (s FramebufferStatus) String() string {
	switch s {
	case FramebufferComplete:
		return "Complete"
	case FramebufferUndefined:
		return "Undefined"
	case FramebufferIncompleteMissingAttachment:
		return "IncompleteMissingAttachment"
	case FramebufferIncompleteAttachment:
		return "IncompleteAttachment"
	case FramebufferIncompleteDimensions:
		return "IncompleteDimensions"
	default:
		return "Unknown"
	}
}

type attachmentRef struct {
	texture Handle
	level   int
}

type framebuffer struct {
	color [MaxColorAttachments]attachmentRef
	depth attachmentRef
}

// CreateFramebuffer returns a new framebuffer without attachments.
func (c *Context) CreateFramebuffer() (Handle, error) {
	if err := c.live("CreateFramebuffer"); err != nil {
		return 0, err
	}
	return newHandle(c, "CreateFramebuffer", &c.framebuffers, &framebuffer{})
}

// DeleteFramebuffer releases a framebuffer. Its textures are not deleted.
func (c *Context) DeleteFramebuffer(h Handle) error {
	if err := c.live("DeleteFramebuffer"); err != nil {
		return err
	}
	if _, ok := c.framebuffers.remove(h); !ok {
		return c.fail("DeleteFramebuffer", ErrInvalidHandle, "handle", h)
	}
	return nil
}

// BindFramebuffer makes a framebuffer the target of draws, clears and
// reads. 0 selects the default framebuffer.
func (c *Context) BindFramebuffer(h Handle) error {
	if err := c.live("BindFramebuffer"); err != nil {
		return err
	}
	if h != 0 && c.framebuffers.get(h) == nil {
		return c.fail("BindFramebuffer", ErrInvalidHandle, "handle", h)
	}
	c.framebuffer = h
	return nil
}

// FramebufferTexture attaches level of a texture to an attachment point of
// the bound framebuffer. Texture 0 detaches.
func (c *Context) FramebufferTexture(at Attachment, tex Handle, level int) error {
	const op = "FramebufferTexture"
	if err := c.live(op); err != nil {
		return err
	}
	if c.framebuffer == 0 {
		return c.fail(op, ErrDefaultFramebuffer)
	}
	fb := c.framebuffers.get(c.framebuffer)
	if fb == nil {
		return c.fail(op, ErrInvalidHandle, "framebuffer", c.framebuffer)
	}
	if tex != 0 && c.textures.get(tex) == nil {
		return c.fail(op, ErrInvalidHandle, "texture", tex)
	}
	if level < 0 || level >= maxLevels {
		return c.fail(op, ErrInvalidValue, "level", level)
	}
	ref := attachmentRef{texture: tex, level: level}
	switch {
	case at == DepthAttachment:
		fb.depth = ref
	case at <= ColorAttachment7:
		fb.color[at] = ref
	default:
		return c.fail(op, ErrInvalidEnum, "attachment", at)
	}
	return nil
}

// depthBuffer reads and writes window depth in either the context-owned
// depth of the default framebuffer or a depth texture level.
type depthBuffer struct {
	values []float32
	level  *texel.Level
	width  int
}

func (d *depthBuffer) present() bool {
	return d.values != nil || d.level != nil
}

func (d *depthBuffer) get(x, y int) float32 {
	if d.values != nil {
		return d.values[y*d.width+x]
	}
	t, _ := d.level.Texel(x, y, 0)
	return t[0]
}

func (d *depthBuffer) set(x, y int, z float32) {
	if d.values != nil {
		d.values[y*d.width+x] = z
		return
	}
	_ = d.level.SetTexel(x, y, 0, texel.Color{z, 0, 0, 1})
}

func (d *depthBuffer) fill(z float32) {
	if d.values != nil {
		for i := range d.values {
			d.values[i] = z
		}
		return
	}
	_ = d.level.Fill(texel.Color{z, 0, 0, 1})
}

// renderTarget is a complete framebuffer resolved for one operation.
type renderTarget struct {
	width, height int
	colors        [MaxColorAttachments]*texel.Level
	depth         depthBuffer
}

// resolveTarget checks the bound framebuffer and resolves its
// attachments. A dangling framebuffer binding reads as the default one.
func (c *Context) resolveTarget() (*renderTarget, FramebufferStatus) {
	fb := c.framebuffers.get(c.framebuffer)
	if fb == nil {
		if c.surface == nil {
			return nil, FramebufferUndefined
		}
		rt := &renderTarget{width: c.surface.Width(), height: c.surface.Height()}
		rt.colors[0] = c.surface.level
		rt.depth = depthBuffer{values: c.depth, width: rt.width}
		return rt, FramebufferComplete
	}

	rt := &renderTarget{width: -1, height: -1}
	attached := false
	check := func(ref attachmentRef, wantDepth bool) (*texel.Level, FramebufferStatus) {
		if ref.texture == 0 {
			return nil, FramebufferComplete
		}
		attached = true
		l := c.textures.get(ref.texture).level(ref.level)
		if l == nil || l.Depth != 1 || l.Format.IsDepth() != wantDepth {
			return nil, FramebufferIncompleteAttachment
		}
		if rt.width < 0 {
			rt.width, rt.height = l.Width, l.Height
		} else if l.Width != rt.width || l.Height != rt.height {
			return nil, FramebufferIncompleteDimensions
		}
		return l, FramebufferComplete
	}

	for i, ref := range fb.color {
		l, st := check(ref, false)
		if st != FramebufferComplete {
			return nil, st
		}
		rt.colors[i] = l
	}
	l, st := check(fb.depth, true)
	if st != FramebufferComplete {
		return nil, st
	}
	if l != nil {
		rt.depth = depthBuffer{level: l, width: l.Width}
	}
	if !attached {
		return nil, FramebufferIncompleteMissingAttachment
	}
	return rt, FramebufferComplete
}

// CheckFramebufferStatus reports whether the bound framebuffer can be
// rendered to.
func (c *Context) CheckFramebufferStatus() (FramebufferStatus, error) {
	if err := c.live("CheckFramebufferStatus"); err != nil {
		return FramebufferUndefined, err
	}
	_, st := c.resolveTarget()
	return st, nil
}

func (c *Context) target(op string) (*renderTarget, error) {
	rt, st := c.resolveTarget()
	if st != FramebufferComplete {
		return nil, c.fail(op, ErrFramebufferIncomplete, "status", st)
	}
	return rt, nil
}

// Clear fills the attachments selected by mask of the bound framebuffer.
func (c *Context) Clear(mask ClearMask) error {
	if err := c.live("Clear"); err != nil {
		return err
	}
	if mask&^(ColorBufferBit|DepthBufferBit) != 0 {
		return c.fail("Clear", ErrInvalidValue, "mask", mask)
	}
	rt, err := c.target("Clear")
	if err != nil {
		return err
	}
	if mask&ColorBufferBit != 0 {
		cc := c.state.clearColor
		col := texel.Color{float32(cc.R), float32(cc.G), float32(cc.B), float32(cc.A)}
		for _, l := range rt.colors {
			if l != nil {
				_ = l.Fill(col)
			}
		}
	}
	if mask&DepthBufferBit != 0 && rt.depth.present() {
		rt.depth.fill(c.state.clearDepth)
	}
	return nil
}

// ReadPixel returns color attachment 0 of the bound framebuffer at (x, y),
// with y = 0 the top row.
func (c *Context) ReadPixel(x, y int) (mgl32.Vec4, error) {
	if err := c.live("ReadPixel"); err != nil {
		return mgl32.Vec4{}, err
	}
	rt, err := c.target("ReadPixel")
	if err != nil {
		return mgl32.Vec4{}, err
	}
	l := rt.colors[0]
	if l == nil {
		return mgl32.Vec4{}, c.fail("ReadPixel", ErrFramebufferIncomplete, "attachment", ColorAttachment0)
	}
	px, err := l.Texel(x, y, 0)
	if err != nil {
		return mgl32.Vec4{}, c.fail("ReadPixel", ErrInvalidValue, "x", x, "y", y)
	}
	return px, nil
}

// ReadDepth returns the depth attachment of the bound framebuffer at
// (x, y).
func (c *Context) ReadDepth(x, y int) (float32, error) {
	if err := c.live("ReadDepth"); err != nil {
		return 0, err
	}
	rt, err := c.target("ReadDepth")
	if err != nil {
		return 0, err
	}
	if !rt.depth.present() {
		return 0, c.fail("ReadDepth", ErrFramebufferIncomplete, "attachment", DepthAttachment)
	}
	if x < 0 || y < 0 || x >= rt.width || y >= rt.height {
		return 0, c.fail("ReadDepth", ErrInvalidValue, "x", x, "y", y)
	}
	return rt.depth.get(x, y), nil
}
