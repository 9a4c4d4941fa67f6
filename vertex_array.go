package softgl

import (
	"github.com/gogpu/softgl/internal/scalar"
)

// attribute describes where one vertex attribute slot reads its data.
type attribute struct {
	buffer     Handle
	typ        scalar.Type
	size       int
	stride     int
	offset     int
	normalized bool
	integer    bool
	enabled    bool
}

// elemStride returns the byte distance between consecutive vertices.
func (a *attribute) elemStride() int {
	if a.stride != 0 {
		return a.stride
	}
	return a.size * a.typ.Size()
}

// constant is the value a slot yields when it does not read a buffer.
type constant struct {
	f [4]float32
	i [4]int64
}

var defaultConstant = constant{f: [4]float32{0, 0, 0, 1}, i: [4]int64{0, 0, 0, 1}}

type vertexArray struct {
	attribs       []attribute
	constants     []constant
	elementBuffer Handle
}

func newVertexArray(slots int) *vertexArray {
	va := &vertexArray{
		attribs:   make([]attribute, slots),
		constants: make([]constant, slots),
	}
	for i := range va.constants {
		va.constants[i] = defaultConstant
	}
	return va
}

// CreateVertexArray returns a new vertex array with every slot disabled.
func (c *Context) CreateVertexArray() (Handle, error) {
	if err := c.live("CreateVertexArray"); err != nil {
		return 0, err
	}
	return newHandle(c, "CreateVertexArray", &c.vertexArrays, newVertexArray(c.maxAttribs))
}

// DeleteVertexArray releases a vertex array.
func (c *Context) DeleteVertexArray(h Handle) error {
	if err := c.live("DeleteVertexArray"); err != nil {
		return err
	}
	if _, ok := c.vertexArrays.remove(h); !ok {
		return c.fail("DeleteVertexArray", ErrInvalidHandle, "handle", h)
	}
	return nil
}

// BindVertexArray makes a vertex array current, or unbinds with 0.
func (c *Context) BindVertexArray(h Handle) error {
	if err := c.live("BindVertexArray"); err != nil {
		return err
	}
	if h != 0 && c.vertexArrays.get(h) == nil {
		return c.fail("BindVertexArray", ErrInvalidHandle, "handle", h)
	}
	c.vertexArray = h
	return nil
}

// currentSlot returns the bound vertex array and validates slot.
func (c *Context) currentSlot(op string, slot int) (*vertexArray, error) {
	va := c.vertexArrays.get(c.vertexArray)
	if va == nil {
		return nil, c.fail(op, ErrNoVertexArray)
	}
	if slot < 0 || slot >= len(va.attribs) {
		return nil, c.fail(op, ErrInvalidValue, "slot", slot)
	}
	return va, nil
}

// VertexAttribPointer describes slot of the bound vertex array as size
// components of typ read from the buffer bound to ArrayBuffer. Integer
// components convert to float, normalized when requested. A stride of 0
// means tightly packed.
func (c *Context) VertexAttribPointer(slot, size int, typ ScalarType, normalized bool, stride, offset int) error {
	if err := c.live("VertexAttribPointer"); err != nil {
		return err
	}
	return c.attribPointer("VertexAttribPointer", slot, size, typ, normalized, false, stride, offset)
}

// VertexAttribIPointer describes slot as size integer components read
// without conversion. Shaders read such slots with VertexInput.AttribInt.
func (c *Context) VertexAttribIPointer(slot, size int, typ ScalarType, stride, offset int) error {
	if err := c.live("VertexAttribIPointer"); err != nil {
		return err
	}
	if !typ.IsInteger() {
		return c.fail("VertexAttribIPointer", ErrInvalidEnum, "type", typ)
	}
	return c.attribPointer("VertexAttribIPointer", slot, size, typ, false, true, stride, offset)
}

func (c *Context) attribPointer(op string, slot, size int, typ ScalarType, normalized, integer bool, stride, offset int) error {
	va, err := c.currentSlot(op, slot)
	if err != nil {
		return err
	}
	if !typ.Valid() {
		return c.fail(op, ErrInvalidEnum, "type", typ)
	}
	if size < 1 || size > 4 || stride < 0 || offset < 0 {
		return c.fail(op, ErrInvalidValue, "size", size, "stride", stride, "offset", offset)
	}
	if c.buffers.get(c.arrayBuffer) == nil {
		return c.fail(op, ErrNoBuffer, "target", ArrayBuffer)
	}

	a := &va.attribs[slot]
	enabled := a.enabled
	*a = attribute{
		buffer:     c.arrayBuffer,
		typ:        typ,
		size:       size,
		stride:     stride,
		offset:     offset,
		normalized: normalized,
		integer:    integer,
		enabled:    enabled,
	}
	return nil
}

// EnableVertexAttribArray makes slot read from its buffer.
func (c *Context) EnableVertexAttribArray(slot int) error {
	return c.setAttribEnabled("EnableVertexAttribArray", slot, true)
}

// DisableVertexAttribArray makes slot yield its constant value.
func (c *Context) DisableVertexAttribArray(slot int) error {
	return c.setAttribEnabled("DisableVertexAttribArray", slot, false)
}

func (c *Context) setAttribEnabled(op string, slot int, on bool) error {
	if err := c.live(op); err != nil {
		return err
	}
	va, err := c.currentSlot(op, slot)
	if err != nil {
		return err
	}
	va.attribs[slot].enabled = on
	return nil
}

// VertexAttrib4f sets the constant value of slot.
func (c *Context) VertexAttrib4f(slot int, x, y, z, w float32) error {
	if err := c.live("VertexAttrib4f"); err != nil {
		return err
	}
	va, err := c.currentSlot("VertexAttrib4f", slot)
	if err != nil {
		return err
	}
	va.constants[slot] = constant{
		f: [4]float32{x, y, z, w},
		i: [4]int64{int64(x), int64(y), int64(z), int64(w)},
	}
	return nil
}

// VertexAttribI4i sets an integer constant value of slot.
func (c *Context) VertexAttribI4i(slot int, x, y, z, w int32) error {
	if err := c.live("VertexAttribI4i"); err != nil {
		return err
	}
	va, err := c.currentSlot("VertexAttribI4i", slot)
	if err != nil {
		return err
	}
	va.constants[slot] = constant{
		f: [4]float32{float32(x), float32(y), float32(z), float32(w)},
		i: [4]int64{int64(x), int64(y), int64(z), int64(w)},
	}
	return nil
}
