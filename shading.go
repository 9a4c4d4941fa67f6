package softgl

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/softgl/internal/texel"
)

// Env is the draw-wide state shaders read: the uniforms of the program
// being drawn and the textures bound to each unit. Errors recorded on it
// fail the draw once the current primitive finishes.
type Env struct {
	prog  *program
	units []unitView
	err   error
}

// unitView is a texture unit resolved at draw start, per dimension.
type unitView struct {
	levels   [3]*texel.Level
	samplers [3]texel.Sampler
}

func (c *Context) newEnv(p *program) *Env {
	env := &Env{prog: p, units: make([]unitView, len(c.units))}
	for i, u := range c.units {
		var override *samplerObject
		if u.sampler != 0 {
			override = c.samplers.get(u.sampler)
		}
		for d, h := range u.textures {
			t := c.textures.get(h)
			if t == nil {
				continue
			}
			env.units[i].levels[d] = t.level(0)
			env.units[i].samplers[d] = t.sampler
			if override != nil {
				env.units[i].samplers[d] = override.desc
			}
		}
	}
	return env
}

// record keeps the first contract violation of a draw.
func (e *Env) record(err error) {
	if e.err == nil {
		e.err = err
	}
}

// Err returns the first error recorded during the draw, if any.
func (e *Env) Err() error {
	return e.err
}

func (e *Env) sample(unit, dims int, coord [3]float32) mgl32.Vec4 {
	if unit < 0 || unit >= len(e.units) {
		e.record(fmt.Errorf("%w: texture unit %d", ErrInvalidValue, unit))
		return texel.Opaque
	}
	u := &e.units[unit]
	l := u.levels[dims-1]
	if l == nil {
		e.record(fmt.Errorf("%w: unit %d has no %d-D level 0", ErrNoTexture, unit, dims))
		return texel.Opaque
	}
	return texel.Sample(l, u.samplers[dims-1], dims, coord)
}

// Sample1D reads the 1-D texture bound to unit.
func (e *Env) Sample1D(unit int, u float32) mgl32.Vec4 {
	return e.sample(unit, 1, [3]float32{u})
}

// Sample2D reads the 2-D texture bound to unit. v = 0 is the first row.
func (e *Env) Sample2D(unit int, uv mgl32.Vec2) mgl32.Vec4 {
	return e.sample(unit, 2, [3]float32{uv[0], uv[1]})
}

// Sample3D reads the 3-D texture bound to unit.
func (e *Env) Sample3D(unit int, uvw mgl32.Vec3) mgl32.Vec4 {
	return e.sample(unit, 3, uvw)
}

// Interpolation selects how a varying varies across a primitive.
type Interpolation uint8

const (
	// Smooth varyings are interpolated perspective-correctly.
	Smooth Interpolation = iota

	// Flat varyings take the value of the provoking vertex, the last
	// vertex of the primitive.
	Flat
)

type channel struct {
	offset int
	size   int
	interp Interpolation
}

// varyingLayout assigns every varying name a fixed range of floats for
// one draw. The first vertex that writes a name declares it.
type varyingLayout struct {
	index    map[string]int
	channels []channel
	width    int
}

func newVaryingLayout() *varyingLayout {
	return &varyingLayout{index: make(map[string]int)}
}

func (l *varyingLayout) declare(name string, size int, interp Interpolation) (channel, error) {
	if i, ok := l.index[name]; ok {
		ch := l.channels[i]
		if ch.size != size || ch.interp != interp {
			return ch, fmt.Errorf("%w: %q", ErrVaryingMismatch, name)
		}
		return ch, nil
	}
	ch := channel{offset: l.width, size: size, interp: interp}
	l.index[name] = len(l.channels)
	l.channels = append(l.channels, ch)
	l.width += size
	return ch, nil
}

// VertexOutput is what a vertex shader writes.
type VertexOutput struct {
	// Position is the clip-space position.
	Position mgl32.Vec4

	env    *Env
	layout *varyingLayout
	values []float32
}

// Set writes a varying of 1 to 4 floats.
func (o *VertexOutput) Set(name string, interp Interpolation, v ...float32) {
	if len(v) < 1 || len(v) > 4 {
		o.env.record(fmt.Errorf("%w: varying %q has %d components", ErrInvalidValue, name, len(v)))
		return
	}
	ch, err := o.layout.declare(name, len(v), interp)
	if err != nil {
		o.env.record(err)
		return
	}
	if len(o.values) < o.layout.width {
		o.values = append(o.values, make([]float32, o.layout.width-len(o.values))...)
	}
	copy(o.values[ch.offset:ch.offset+ch.size], v)
}

// SetFloat writes a smooth scalar varying.
func (o *VertexOutput) SetFloat(name string, v float32) {
	o.Set(name, Smooth, v)
}

// SetVec2 writes a smooth vec2 varying.
func (o *VertexOutput) SetVec2(name string, v mgl32.Vec2) {
	o.Set(name, Smooth, v[:]...)
}

// SetVec3 writes a smooth vec3 varying.
func (o *VertexOutput) SetVec3(name string, v mgl32.Vec3) {
	o.Set(name, Smooth, v[:]...)
}

// SetVec4 writes a smooth vec4 varying.
func (o *VertexOutput) SetVec4(name string, v mgl32.Vec4) {
	o.Set(name, Smooth, v[:]...)
}

// SetFlat writes a flat varying of 1 to 4 floats.
func (o *VertexOutput) SetFlat(name string, v ...float32) {
	o.Set(name, Flat, v...)
}

// Fragment is what a fragment shader reads: the window position, the
// facing of the primitive and the interpolated varyings.
type Fragment struct {
	*Env

	// FragCoord holds the pixel center, the window depth and 1/w.
	FragCoord mgl32.Vec4

	// FrontFacing reports the facing of the source triangle. Line and
	// point polygon modes keep it.
	FrontFacing bool

	layout *varyingLayout
	values []float32
}

func (f *Fragment) varying(name string, size int) []float32 {
	i, ok := f.layout.index[name]
	if !ok {
		f.record(fmt.Errorf("%w: %q", ErrUnknownVarying, name))
		return nil
	}
	ch := f.layout.channels[i]
	if ch.size < size {
		f.record(fmt.Errorf("%w: %q has %d components, read %d", ErrVaryingMismatch, name, ch.size, size))
		return nil
	}
	return f.values[ch.offset : ch.offset+size]
}

// Float returns a scalar varying, or the first component of a wider one.
func (f *Fragment) Float(name string) float32 {
	if v := f.varying(name, 1); v != nil {
		return v[0]
	}
	return 0
}

// Vec2 returns the first two components of a varying.
func (f *Fragment) Vec2(name string) mgl32.Vec2 {
	var out mgl32.Vec2
	copy(out[:], f.varying(name, 2))
	return out
}

// Vec3 returns the first three components of a varying.
func (f *Fragment) Vec3(name string) mgl32.Vec3 {
	var out mgl32.Vec3
	copy(out[:], f.varying(name, 3))
	return out
}

// Vec4 returns a four-component varying.
func (f *Fragment) Vec4(name string) mgl32.Vec4 {
	var out mgl32.Vec4
	copy(out[:], f.varying(name, 4))
	return out
}

// FragmentOutput is what a fragment shader writes.
type FragmentOutput struct {
	env      *Env
	colors   [MaxColorAttachments]mgl32.Vec4
	written  uint8
	discard  bool
	depth    float32
	hasDepth bool
}

func (o *FragmentOutput) reset() {
	o.written = 0
	o.discard = false
	o.hasDepth = false
}

// SetColor writes color output i, which lands in ColorAttachment i.
func (o *FragmentOutput) SetColor(i int, c mgl32.Vec4) {
	if i < 0 || i >= MaxColorAttachments {
		o.env.record(fmt.Errorf("%w: color output %d", ErrInvalidValue, i))
		return
	}
	o.colors[i] = c
	o.written |= 1 << i
}

// Color writes color output 0.
func (o *FragmentOutput) Color(c mgl32.Vec4) {
	o.SetColor(0, c)
}

// Discard drops the fragment: nothing is written and no depth test runs.
func (o *FragmentOutput) Discard() {
	o.discard = true
}

// SetDepth replaces the interpolated window depth used by the depth test.
func (o *FragmentOutput) SetDepth(z float32) {
	o.depth = z
	o.hasDepth = true
}
