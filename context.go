package softgl

import (
	"fmt"
	"log/slog"
)

// textureUnit holds the per-dimension texture bindings and the sampler
// override of one texture unit.
type textureUnit struct {
	textures [3]Handle // indexed by dimIndex
	sampler  Handle
}

// Context is a software graphics device: it owns every object created
// through it and the binding state that a draw call reads.
//
// A Context is not safe for concurrent use. Shader callables run on the
// goroutine that issues the draw.
type Context struct {
	log    *slog.Logger
	closed bool

	maxAttribs int

	buffers      table[bufferObject]
	vertexArrays table[vertexArray]
	textures     table[texture]
	samplers     table[samplerObject]
	shaders      table[shaderObject]
	programs     table[program]
	framebuffers table[framebuffer]

	arrayBuffer   Handle
	elementBuffer Handle // used while no vertex array is bound
	vertexArray   Handle
	program       Handle
	framebuffer   Handle

	activeUnit int
	units      []textureUnit

	state fixedState

	surface *Surface
	depth   []float32 // default framebuffer depth, one value per surface pixel

	stats Stats
}

// NewContext creates a context with every binding empty and the default
// fixed-function state: depth test and culling disabled, depth function
// Less, depth writes on, back faces culled once enabled, counter-clockwise
// front faces and filled polygons.
func NewContext(opts ...ContextOption) *Context {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger
	if log == nil {
		log = Logger()
	}

	c := &Context{
		log:          log,
		maxAttribs:   o.maxVertexAttribs,
		buffers:      newTable[bufferObject](),
		vertexArrays: newTable[vertexArray](),
		textures:     newTable[texture](),
		samplers:     newTable[samplerObject](),
		shaders:      newTable[shaderObject](),
		programs:     newTable[program](),
		framebuffers: newTable[framebuffer](),
		units:        make([]textureUnit, o.maxTextureUnits),
		state:        defaultFixedState(),
	}
	c.attachSurface(o.surface)
	c.log.Info("softgl: context created",
		"textureUnits", o.maxTextureUnits,
		"vertexAttribs", o.maxVertexAttribs)
	return c
}

// Close releases every object. Every later call returns ErrContextClosed.
// Close is idempotent.
func (c *Context) Close() {
	if c.closed {
		return
	}
	for _, b := range c.buffers.objs {
		b.data.Release()
	}
	c.buffers.clear()
	c.vertexArrays.clear()
	c.textures.clear()
	c.samplers.clear()
	c.shaders.clear()
	c.programs.clear()
	c.framebuffers.clear()
	c.surface = nil
	c.depth = nil
	c.closed = true
	c.log.Info("softgl: context closed")
}

// SetSurface replaces the surface backing the default framebuffer and
// reallocates its depth buffer, cleared to 1. A nil surface leaves the
// default framebuffer incomplete.
func (c *Context) SetSurface(s *Surface) error {
	if err := c.live("SetSurface"); err != nil {
		return err
	}
	c.attachSurface(s)
	return nil
}

// Surface returns the surface backing the default framebuffer.
func (c *Context) Surface() *Surface {
	return c.surface
}

func (c *Context) attachSurface(s *Surface) {
	c.surface = s
	c.depth = nil
	if s == nil {
		return
	}
	c.depth = make([]float32, s.Width()*s.Height())
	for i := range c.depth {
		c.depth[i] = 1
	}
}

// live returns ErrContextClosed after Close.
func (c *Context) live(op string) error {
	if c.closed {
		return fmt.Errorf("%s: %w", op, ErrContextClosed)
	}
	return nil
}

// fail logs a contract violation and wraps err with the operation name.
func (c *Context) fail(op string, err error, args ...any) error {
	c.log.Warn("softgl: "+op+" failed", append([]any{"err", err}, args...)...)
	return fmt.Errorf("%s: %w", op, err)
}
