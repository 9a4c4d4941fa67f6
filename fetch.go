package softgl

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/softgl/internal/bytebuf"
	"github.com/gogpu/softgl/internal/scalar"
)

// fetchSlot is an attribute slot resolved against its buffer for the
// duration of one draw.
type fetchSlot struct {
	attribute
	cursor     bytebuf.Cursor
	fromBuffer bool
	constant   constant
}

// resolveAttribs snapshots the vertex array. Enabled slots whose buffer
// was deleted fall back to their constant, like disabled slots.
func (c *Context) resolveAttribs(va *vertexArray) []fetchSlot {
	slots := make([]fetchSlot, len(va.attribs))
	for i, a := range va.attribs {
		s := &slots[i]
		s.attribute = a
		s.constant = va.constants[i]
		if !a.enabled {
			continue
		}
		if b := c.buffers.get(a.buffer); b != nil {
			s.cursor = b.data.Cursor()
			s.fromBuffer = true
		}
	}
	return slots
}

// VertexInput is what a vertex shader reads: the vertex index, its
// attributes and, through the embedded Env, uniforms and textures.
type VertexInput struct {
	*Env

	// Index is the vertex index after index resolution.
	Index int

	slots []fetchSlot
}

func (in *VertexInput) slot(i int) (*fetchSlot, bool) {
	if i < 0 || i >= len(in.slots) {
		in.record(fmt.Errorf("%w: attribute slot %d", ErrInvalidValue, i))
		return nil, false
	}
	return &in.slots[i], true
}

// Attrib returns slot i as four floats. Missing components are filled
// from (0,0,0,1). A slot that does not read a buffer yields its constant.
func (in *VertexInput) Attrib(i int) mgl32.Vec4 {
	s, ok := in.slot(i)
	if !ok {
		return defaultConstant.f
	}
	if !s.fromBuffer {
		return s.constant.f
	}

	out := mgl32.Vec4{0, 0, 0, 1}
	base := s.offset + in.Index*s.elemStride()
	size := s.typ.Size()
	for k := 0; k < s.size; k++ {
		v, err := scalar.Decode(s.cursor, base+k*size, s.typ, s.normalized)
		if err != nil {
			in.record(fmt.Errorf("%w: slot %d vertex %d: %w", ErrAttributeRange, i, in.Index, err))
			return defaultConstant.f
		}
		out[k] = v
	}
	return out
}

// Vec3 returns the first three components of slot i.
func (in *VertexInput) Vec3(i int) mgl32.Vec3 {
	return in.Attrib(i).Vec3()
}

// Vec2 returns the first two components of slot i.
func (in *VertexInput) Vec2(i int) mgl32.Vec2 {
	return in.Attrib(i).Vec2()
}

// Float returns the first component of slot i.
func (in *VertexInput) Float(i int) float32 {
	return in.Attrib(i)[0]
}

// AttribInt returns slot i as four integers without conversion. Reading a
// buffer-backed slot that was not described with VertexAttribIPointer is
// an error recorded on the draw.
func (in *VertexInput) AttribInt(i int) [4]int64 {
	s, ok := in.slot(i)
	if !ok {
		return defaultConstant.i
	}
	if !s.fromBuffer {
		return s.constant.i
	}
	if !s.integer {
		in.record(fmt.Errorf("%w: slot %d", ErrAttributeType, i))
		return defaultConstant.i
	}

	out := [4]int64{0, 0, 0, 1}
	base := s.offset + in.Index*s.elemStride()
	size := s.typ.Size()
	for k := 0; k < s.size; k++ {
		v, err := scalar.DecodeInt(s.cursor, base+k*size, s.typ)
		if err != nil {
			in.record(fmt.Errorf("%w: slot %d vertex %d: %w", ErrAttributeRange, i, in.Index, err))
			return defaultConstant.i
		}
		out[k] = v
	}
	return out
}

// Int returns the first integer component of slot i.
func (in *VertexInput) Int(i int) int64 {
	return in.AttribInt(i)[0]
}
