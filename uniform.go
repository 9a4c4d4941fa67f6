package softgl

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/softgl/internal/bytebuf"
)

// UniformType is the declared element type of a uniform.
type UniformType uint8

const (
	UniformFloat UniformType = iota + 1
	UniformVec2
	UniformVec3
	UniformVec4
	UniformInt
	UniformMat3
	UniformMat4
)

// Size returns the size in bytes of one element.
func (t UniformType) Size() int {
	switch t {
	case UniformFloat, UniformInt:
		return 4
	case UniformVec2:
		return 8
	case UniformVec3:
		return 12
	case UniformVec4:
		return 16
	case UniformMat3:
		return 36
	case UniformMat4:
		return 64
	}
	return 0
}

// String returns a string representation of the uniform type.
func (t UniformType) String() string {
	switch t {
	case UniformFloat:
		return "float"
	case UniformVec2:
		return "vec2"
	case UniformVec3:
		return "vec3"
	case UniformVec4:
		return "vec4"
	case UniformInt:
		return "int"
	case UniformMat3:
		return "mat3"
	case UniformMat4:
		return "mat4"
	}
	return fmt.Sprintf("UniformType(%d)", uint8(t))
}

// UniformLocation identifies a uniform within a program. It is the
// 64-bit xxhash of the uniform's name, so it is the same in every program.
type UniformLocation uint64

// UniformLocationOf returns the location of a uniform name.
func UniformLocationOf(name string) UniformLocation {
	return UniformLocation(xxhash.Sum64String(name))
}

// uniformSlot stores count elements of typ. data always holds exactly
// count*typ.Size() bytes.
type uniformSlot struct {
	typ   UniformType
	count int
	data  *bytebuf.Buffer
}

type uniformTable struct {
	slots map[UniformLocation]*uniformSlot
	names map[UniformLocation]string
}

func newUniformTable() uniformTable {
	return uniformTable{
		slots: make(map[UniformLocation]*uniformSlot),
		names: make(map[UniformLocation]string),
	}
}

func (u *uniformTable) name(loc UniformLocation) string {
	if n, ok := u.names[loc]; ok {
		return n
	}
	return fmt.Sprintf("#%016x", uint64(loc))
}

// set stores count elements of typ from data into the slot at loc,
// creating it on first use. Setting fewer elements than the slot holds
// overwrites a prefix; setting more grows the slot.
func (u *uniformTable) set(loc UniformLocation, typ UniformType, count int, data []byte) error {
	size := typ.Size()
	if size == 0 {
		return fmt.Errorf("%w: uniform type %v", ErrInvalidEnum, typ)
	}
	if count < 1 || len(data) != count*size {
		return fmt.Errorf("%w: %d bytes for %d %v elements", ErrInvalidValue, len(data), count, typ)
	}
	s, ok := u.slots[loc]
	if !ok {
		s = &uniformSlot{typ: typ, data: bytebuf.New(len(data))}
		u.slots[loc] = s
	}
	if s.typ != typ {
		return fmt.Errorf("%w: %s is %v, set as %v", ErrUniformTypeMismatch, u.name(loc), s.typ, typ)
	}
	if count > s.count {
		if err := s.data.Resize(count * size); err != nil {
			return err
		}
		s.count = count
	}
	return s.data.UploadAt(0, data)
}

// words returns element index of the slot at loc as 32-bit words.
func (u *uniformTable) words(loc UniformLocation, typ UniformType, index int, dst []uint32) error {
	s, ok := u.slots[loc]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownUniform, u.name(loc))
	}
	if s.typ != typ {
		return fmt.Errorf("%w: %s is %v, read as %v", ErrUniformTypeMismatch, u.name(loc), s.typ, typ)
	}
	if index < 0 || index >= s.count {
		return fmt.Errorf("%w: %s[%d] of %d", ErrUniformIndex, u.name(loc), index, s.count)
	}
	cur := s.data.Cursor()
	base := index * typ.Size()
	for i := range dst {
		w, err := cur.Uint32(base + 4*i)
		if err != nil {
			return err
		}
		dst[i] = w
	}
	return nil
}

// GetUniformLocation returns the location of name in a program and
// records the name for diagnostics.
func (c *Context) GetUniformLocation(prog Handle, name string) (UniformLocation, error) {
	if err := c.live("GetUniformLocation"); err != nil {
		return 0, err
	}
	p := c.programs.get(prog)
	if p == nil {
		return 0, c.fail("GetUniformLocation", ErrInvalidHandle, "program", prog)
	}
	loc := UniformLocationOf(name)
	p.uniforms.names[loc] = name
	return loc, nil
}

// SetUniform stores count elements of typ, packed little-endian in data,
// into the program in use.
func (c *Context) SetUniform(loc UniformLocation, typ UniformType, count int, data []byte) error {
	if err := c.live("SetUniform"); err != nil {
		return err
	}
	p := c.currentProgram()
	if p == nil {
		return c.fail("SetUniform", ErrNoProgram)
	}
	if err := p.uniforms.set(loc, typ, count, data); err != nil {
		return c.fail("SetUniform", err, "uniform", p.uniforms.name(loc))
	}
	return nil
}

func packFloats(vs []float32) []byte {
	b := make([]byte, 4*len(vs))
	for i, v := range vs {
		binary.LittleEndian.PutUint32(b[4*i:], math.Float32bits(v))
	}
	return b
}

// Uniform1f sets a float uniform.
func (c *Context) Uniform1f(loc UniformLocation, v float32) error {
	return c.SetUniform(loc, UniformFloat, 1, packFloats([]float32{v}))
}

// Uniform2f sets a vec2 uniform.
func (c *Context) Uniform2f(loc UniformLocation, x, y float32) error {
	return c.SetUniform(loc, UniformVec2, 1, packFloats([]float32{x, y}))
}

// Uniform3f sets a vec3 uniform.
func (c *Context) Uniform3f(loc UniformLocation, x, y, z float32) error {
	return c.SetUniform(loc, UniformVec3, 1, packFloats([]float32{x, y, z}))
}

// Uniform4f sets a vec4 uniform.
func (c *Context) Uniform4f(loc UniformLocation, x, y, z, w float32) error {
	return c.SetUniform(loc, UniformVec4, 1, packFloats([]float32{x, y, z, w}))
}

// Uniform1i sets an int uniform. Sampler uniforms are ints naming a
// texture unit.
func (c *Context) Uniform1i(loc UniformLocation, v int32) error {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(v))
	return c.SetUniform(loc, UniformInt, 1, b)
}

// Uniform1fv sets a float array uniform.
func (c *Context) Uniform1fv(loc UniformLocation, vs []float32) error {
	return c.SetUniform(loc, UniformFloat, len(vs), packFloats(vs))
}

// Uniform3fv sets a vec3 array uniform.
func (c *Context) Uniform3fv(loc UniformLocation, vs ...mgl32.Vec3) error {
	flat := make([]float32, 0, 3*len(vs))
	for _, v := range vs {
		flat = append(flat, v[:]...)
	}
	return c.SetUniform(loc, UniformVec3, len(vs), packFloats(flat))
}

// Uniform4fv sets a vec4 array uniform.
func (c *Context) Uniform4fv(loc UniformLocation, vs ...mgl32.Vec4) error {
	flat := make([]float32, 0, 4*len(vs))
	for _, v := range vs {
		flat = append(flat, v[:]...)
	}
	return c.SetUniform(loc, UniformVec4, len(vs), packFloats(flat))
}

// UniformMatrix3fv sets a mat3 array uniform. Matrices are column-major,
// as mgl32 stores them.
func (c *Context) UniformMatrix3fv(loc UniformLocation, ms ...mgl32.Mat3) error {
	flat := make([]float32, 0, 9*len(ms))
	for _, m := range ms {
		flat = append(flat, m[:]...)
	}
	return c.SetUniform(loc, UniformMat3, len(ms), packFloats(flat))
}

// UniformMatrix4fv sets a mat4 array uniform.
func (c *Context) UniformMatrix4fv(loc UniformLocation, ms ...mgl32.Mat4) error {
	flat := make([]float32, 0, 16*len(ms))
	for _, m := range ms {
		flat = append(flat, m[:]...)
	}
	return c.SetUniform(loc, UniformMat4, len(ms), packFloats(flat))
}

// UniformValue lists the Go types a uniform can be read as.
type UniformValue interface {
	float32 | int32 | mgl32.Vec2 | mgl32.Vec3 | mgl32.Vec4 | mgl32.Mat3 | mgl32.Mat4
}

func uniformTypeOf(v any) UniformType {
	switch v.(type) {
	case float32:
		return UniformFloat
	case int32:
		return UniformInt
	case mgl32.Vec2:
		return UniformVec2
	case mgl32.Vec3:
		return UniformVec3
	case mgl32.Vec4:
		return UniformVec4
	case mgl32.Mat3:
		return UniformMat3
	case mgl32.Mat4:
		return UniformMat4
	}
	return 0
}

// Uniform reads element index of the uniform at loc in the program being
// drawn. T must match the declared type; a mismatch, an unknown uniform
// or an index past the element count is recorded on the draw, which then
// fails, and the zero T is returned.
func Uniform[T UniformValue](env *Env, loc UniformLocation, index int) T {
	var v T
	var words [16]uint32
	typ := uniformTypeOf(v)
	n := typ.Size() / 4
	if err := env.prog.uniforms.words(loc, typ, index, words[:n]); err != nil {
		env.record(err)
		return v
	}
	switch p := any(&v).(type) {
	case *float32:
		*p = math.Float32frombits(words[0])
	case *int32:
		*p = int32(words[0])
	case *mgl32.Vec2:
		unpackFloats(p[:], words[:n])
	case *mgl32.Vec3:
		unpackFloats(p[:], words[:n])
	case *mgl32.Vec4:
		unpackFloats(p[:], words[:n])
	case *mgl32.Mat3:
		unpackFloats(p[:], words[:n])
	case *mgl32.Mat4:
		unpackFloats(p[:], words[:n])
	}
	return v
}

// UniformByName is Uniform with the location computed from name.
func UniformByName[T UniformValue](env *Env, name string, index int) T {
	return Uniform[T](env, UniformLocationOf(name), index)
}

func unpackFloats(dst []float32, words []uint32) {
	for i := range dst {
		dst[i] = math.Float32frombits(words[i])
	}
}
