package softgl

import (
	"github.com/gogpu/gputypes"
)

// Capability names a fixed-function stage that Enable and Disable toggle.
type Capability uint8

const (
	// DepthTest compares each fragment against the depth attachment.
	DepthTest Capability = iota + 1

	// CullFace discards triangles by winding, see Context.CullFace.
	CullFace
)

// String returns a string representation of the capability.
func (c Capability) String() string {
	switch c {
	case DepthTest:
		return "DepthTest"
	case CullFace:
		return "CullFace"
	default:
		return "Unknown"
	}
}

// PolygonMode selects how triangles are rasterized.
type PolygonMode uint8

const (
	// PolygonFill covers the triangle interior.
	PolygonFill PolygonMode = iota

	// PolygonLine draws the three edges.
	PolygonLine

	// PolygonPoint draws one fragment per vertex.
	PolygonPoint
)

// String returns a string representation of the polygon mode.
func (m PolygonMode) String() string {
	switch m {
	case PolygonFill:
		return "Fill"
	case PolygonLine:
		return "Line"
	case PolygonPoint:
		return "Point"
	default:
		return "Unknown"
	}
}

// ClearMask selects the attachments Clear writes.
type ClearMask uint8

const (
	// ColorBufferBit clears every color attachment to the clear color.
	ColorBufferBit ClearMask = 1 << iota

	// DepthBufferBit clears the depth attachment to the clear depth.
	DepthBufferBit
)

// Viewport maps normalized device coordinates to pixels. The origin is
// the top-left corner of the target.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// fixedState is the non-programmable pipeline configuration.
type fixedState struct {
	clearColor gputypes.Color
	clearDepth float32

	depthTest  bool
	depthFunc  gputypes.CompareFunction
	depthWrite bool

	cullEnabled bool
	cullMode    gputypes.CullMode
	frontFace   gputypes.FrontFace

	polygonMode PolygonMode

	viewport    Viewport
	viewportSet bool
}

func defaultFixedState() fixedState {
	return fixedState{
		clearColor:  gputypes.Color{R: 0, G: 0, B: 0, A: 0},
		clearDepth:  1,
		depthFunc:   gputypes.CompareFunctionLess,
		depthWrite:  true,
		cullMode:    gputypes.CullModeBack,
		frontFace:   gputypes.FrontFaceCCW,
		polygonMode: PolygonFill,
	}
}

func validCompare(fn gputypes.CompareFunction) bool {
	switch fn {
	case gputypes.CompareFunctionNever,
		gputypes.CompareFunctionLess,
		gputypes.CompareFunctionEqual,
		gputypes.CompareFunctionLessEqual,
		gputypes.CompareFunctionGreater,
		gputypes.CompareFunctionNotEqual,
		gputypes.CompareFunctionGreaterEqual,
		gputypes.CompareFunctionAlways:
		return true
	}
	return false
}

// compareDepth reports whether a fragment at depth z passes against the
// stored depth.
func compareDepth(fn gputypes.CompareFunction, z, stored float32) bool {
	switch fn {
	case gputypes.CompareFunctionNever:
		return false
	case gputypes.CompareFunctionLess:
		return z < stored
	case gputypes.CompareFunctionEqual:
		return z == stored
	case gputypes.CompareFunctionLessEqual:
		return z <= stored
	case gputypes.CompareFunctionGreater:
		return z > stored
	case gputypes.CompareFunctionNotEqual:
		return z != stored
	case gputypes.CompareFunctionGreaterEqual:
		return z >= stored
	default:
		return true
	}
}

// ClearColor sets the color Clear writes to color attachments.
func (c *Context) ClearColor(r, g, b, a float64) error {
	if err := c.live("ClearColor"); err != nil {
		return err
	}
	c.state.clearColor = gputypes.Color{R: r, G: g, B: b, A: a}
	return nil
}

// ClearDepth sets the value Clear writes to the depth attachment. It is
// clamped to [0,1].
func (c *Context) ClearDepth(d float32) error {
	if err := c.live("ClearDepth"); err != nil {
		return err
	}
	c.state.clearDepth = clamp01(d)
	return nil
}

// DepthFunc sets the comparison used by the depth test.
func (c *Context) DepthFunc(fn gputypes.CompareFunction) error {
	if err := c.live("DepthFunc"); err != nil {
		return err
	}
	if !validCompare(fn) {
		return c.fail("DepthFunc", ErrInvalidEnum)
	}
	c.state.depthFunc = fn
	return nil
}

// DepthMask enables or disables depth writes for fragments that pass.
func (c *Context) DepthMask(write bool) error {
	if err := c.live("DepthMask"); err != nil {
		return err
	}
	c.state.depthWrite = write
	return nil
}

// Enable turns a capability on.
func (c *Context) Enable(capability Capability) error {
	return c.setCapability("Enable", capability, true)
}

// Disable turns a capability off.
func (c *Context) Disable(capability Capability) error {
	return c.setCapability("Disable", capability, false)
}

// IsEnabled reports whether a capability is on.
func (c *Context) IsEnabled(capability Capability) bool {
	switch capability {
	case DepthTest:
		return c.state.depthTest
	case CullFace:
		return c.state.cullEnabled
	}
	return false
}

func (c *Context) setCapability(op string, capability Capability, on bool) error {
	if err := c.live(op); err != nil {
		return err
	}
	switch capability {
	case DepthTest:
		c.state.depthTest = on
	case CullFace:
		c.state.cullEnabled = on
	default:
		return c.fail(op, ErrInvalidEnum)
	}
	return nil
}

// CullFace selects which faces are discarded when CullFace is enabled.
func (c *Context) CullFace(mode gputypes.CullMode) error {
	if err := c.live("CullFace"); err != nil {
		return err
	}
	switch mode {
	case gputypes.CullModeNone, gputypes.CullModeFront, gputypes.CullModeBack:
	default:
		return c.fail("CullFace", ErrInvalidEnum)
	}
	c.state.cullMode = mode
	return nil
}

// FrontFace sets the winding, in normalized device coordinates, that
// counts as front facing.
func (c *Context) FrontFace(face gputypes.FrontFace) error {
	if err := c.live("FrontFace"); err != nil {
		return err
	}
	switch face {
	case gputypes.FrontFaceCCW, gputypes.FrontFaceCW:
	default:
		return c.fail("FrontFace", ErrInvalidEnum)
	}
	c.state.frontFace = face
	return nil
}

// PolygonMode sets how triangles are rasterized.
func (c *Context) PolygonMode(mode PolygonMode) error {
	if err := c.live("PolygonMode"); err != nil {
		return err
	}
	switch mode {
	case PolygonFill, PolygonLine, PolygonPoint:
	default:
		return c.fail("PolygonMode", ErrInvalidEnum)
	}
	c.state.polygonMode = mode
	return nil
}

// Viewport sets the pixel rectangle normalized device coordinates map to.
// Until it is called, the viewport follows the size of the bound target.
func (c *Context) Viewport(x, y, width, height int) error {
	if err := c.live("Viewport"); err != nil {
		return err
	}
	if width < 0 || height < 0 {
		return c.fail("Viewport", ErrInvalidValue)
	}
	c.state.viewport = Viewport{X: x, Y: y, Width: width, Height: height}
	c.state.viewportSet = true
	return nil
}

func clamp01(v float32) float32 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
