package demo

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/softgl"
	"github.com/gogpu/softgl/mesh"
)

// checkerSize is the edge length of the checkerboard texture in texels.
const checkerSize = 8

// RenderStats summarizes one frame.
type RenderStats struct {
	Objects   int // objects drawn
	Culled    int // objects outside the view frustum
	Triangles int // triangles rasterized
	Fragments int // fragments written
}

// gpuMesh is a mesh uploaded into a vertex array.
type gpuMesh struct {
	vao, vbo, ebo softgl.Handle
	count         int
	bounds        mesh.AABB
}

// Renderer draws scenes into a surface it owns.
type Renderer struct {
	ctx     *softgl.Context
	surface *softgl.Surface
	log     *slog.Logger

	prog    softgl.Handle
	checker softgl.Handle
	meshes  map[string]*gpuMesh
}

// NewRenderer creates a renderer with a width × height RGBA8 surface.
// Options are passed on to the underlying context.
func NewRenderer(width, height int, opts ...softgl.ContextOption) (*Renderer, error) {
	surface, err := softgl.NewSurface(width, height, softgl.FormatRGBA8)
	if err != nil {
		return nil, err
	}
	ctx := softgl.NewContext(append([]softgl.ContextOption{softgl.WithSurface(surface)}, opts...)...)
	r := &Renderer{
		ctx:     ctx,
		surface: surface,
		log:     softgl.Logger(),
		meshes:  make(map[string]*gpuMesh),
	}
	if err := r.init(); err != nil {
		ctx.Close()
		return nil, fmt.Errorf("demo: init renderer: %w", err)
	}
	return r, nil
}

func (r *Renderer) init() error {
	prog, err := r.ctx.CreateProgram()
	if err != nil {
		return err
	}
	if err := r.ctx.ProgramShader(prog, litShader{}); err != nil {
		return err
	}
	r.prog = prog

	if err := r.uploadChecker(); err != nil {
		return err
	}
	for shape, m := range map[string]*mesh.Mesh{
		ShapeCube:  mesh.Cube(1),
		ShapePlane: mesh.Plane(1, 1, mesh.White),
	} {
		g, err := r.upload(m)
		if err != nil {
			return fmt.Errorf("upload %s: %w", shape, err)
		}
		r.meshes[shape] = g
	}
	return nil
}

func (r *Renderer) uploadChecker() error {
	tex, err := r.ctx.CreateTexture()
	if err != nil {
		return err
	}
	if err := r.ctx.ActiveTexture(checkerUnit); err != nil {
		return err
	}
	if err := r.ctx.BindTexture(gputypes.TextureDimension2D, tex); err != nil {
		return err
	}
	if err := r.ctx.TexImage2D(0, softgl.FormatRGBA8, checkerSize, checkerSize, checkerTexels()); err != nil {
		return err
	}
	if err := r.ctx.TexSampler(gputypes.TextureDimension2D, softgl.DefaultSamplerDesc()); err != nil {
		return err
	}
	r.checker = tex
	return nil
}

// checkerTexels returns an RGBA8 checkerboard of light and mid gray.
func checkerTexels() []byte {
	pix := make([]byte, 0, checkerSize*checkerSize*4)
	for y := 0; y < checkerSize; y++ {
		for x := 0; x < checkerSize; x++ {
			v := byte(160)
			if (x+y)%2 == 0 {
				v = 255
			}
			pix = append(pix, v, v, v, 255)
		}
	}
	return pix
}

func (r *Renderer) upload(m *mesh.Mesh) (*gpuMesh, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	indices, err := m.IndexBytes16()
	if err != nil {
		return nil, err
	}
	g := &gpuMesh{count: len(m.Indices), bounds: m.Bounds()}

	if g.vao, err = r.ctx.CreateVertexArray(); err != nil {
		return nil, err
	}
	if err := r.ctx.BindVertexArray(g.vao); err != nil {
		return nil, err
	}
	if g.vbo, err = r.ctx.CreateBuffer(); err != nil {
		return nil, err
	}
	if err := r.ctx.BindBuffer(softgl.ArrayBuffer, g.vbo); err != nil {
		return nil, err
	}
	if err := r.ctx.BufferData(softgl.ArrayBuffer, m.VertexBytes()); err != nil {
		return nil, err
	}
	if g.ebo, err = r.ctx.CreateBuffer(); err != nil {
		return nil, err
	}
	if err := r.ctx.BindBuffer(softgl.ElementArrayBuffer, g.ebo); err != nil {
		return nil, err
	}
	if err := r.ctx.BufferData(softgl.ElementArrayBuffer, indices); err != nil {
		return nil, err
	}
	if err := describeMesh(r.ctx); err != nil {
		return nil, err
	}
	return g, nil
}

// Surface returns the surface frames are rendered into.
func (r *Renderer) Surface() *softgl.Surface {
	return r.surface
}

// Close releases the context. The surface stays readable.
func (r *Renderer) Close() {
	r.ctx.Close()
}

// Render draws the scene as it looks t seconds after start. The surface
// is reallocated when the scene size differs from it.
func (r *Renderer) Render(s *Scene, t float32) (RenderStats, error) {
	var stats RenderStats
	if err := s.Validate(); err != nil {
		return stats, err
	}
	if err := r.resize(s.Width, s.Height); err != nil {
		return stats, err
	}
	if err := r.setup(s); err != nil {
		return stats, fmt.Errorf("demo: render: %w", err)
	}

	view := s.Camera.View()
	proj := s.Camera.Projection(float32(s.Width) / float32(s.Height))
	viewProj := proj.Mul4(view)
	frustum := mesh.NewFrustum(viewProj)

	for _, o := range s.Objects {
		g := r.meshes[o.Shape]
		model := o.Model(t).Mul4(scaleOf(o.Size))
		if !frustum.IntersectsAABB(g.bounds.Transform(model)) {
			stats.Culled++
			r.log.Debug("demo: object culled", "object", o.Name)
			continue
		}
		if err := r.drawObject(g, o, viewProj.Mul4(model), model); err != nil {
			return stats, fmt.Errorf("demo: draw %q: %w", o.Name, err)
		}
		ds := r.ctx.Stats()
		stats.Objects++
		stats.Triangles += ds.TrianglesRasterized
		stats.Fragments += ds.FragmentsWritten
	}
	return stats, nil
}

func (r *Renderer) resize(w, h int) error {
	if r.surface.Width() == w && r.surface.Height() == h {
		return nil
	}
	surface, err := softgl.NewSurface(w, h, softgl.FormatRGBA8)
	if err != nil {
		return err
	}
	if err := r.ctx.SetSurface(surface); err != nil {
		return err
	}
	r.surface = surface
	return nil
}

// setup applies the per-frame state: clears, fixed-function state and
// the lighting uniforms.
func (r *Renderer) setup(s *Scene) error {
	bg := s.Background
	mode := softgl.PolygonFill
	if s.Wireframe {
		mode = softgl.PolygonLine
	}
	light := mgl32.Vec3(s.Light.Direction)
	if light.Len() > 0 {
		light = light.Normalize()
	}

	steps := []func() error{
		func() error { return r.ctx.BindFramebuffer(0) },
		func() error { return r.ctx.ClearColor(float64(bg[0]), float64(bg[1]), float64(bg[2]), float64(bg[3])) },
		func() error { return r.ctx.ClearDepth(1) },
		func() error { return r.ctx.Clear(softgl.ColorBufferBit | softgl.DepthBufferBit) },
		func() error { return r.ctx.Enable(softgl.DepthTest) },
		func() error { return r.ctx.DepthFunc(gputypes.CompareFunctionLess) },
		func() error { return r.ctx.Enable(softgl.CullFace) },
		func() error { return r.ctx.CullFace(gputypes.CullModeBack) },
		func() error { return r.ctx.FrontFace(gputypes.FrontFaceCCW) },
		func() error { return r.ctx.PolygonMode(mode) },
		func() error { return r.ctx.UseProgram(r.prog) },
		func() error { return r.ctx.ActiveTexture(checkerUnit) },
		func() error { return r.ctx.BindTexture(gputypes.TextureDimension2D, r.checker) },
		func() error { return r.ctx.Uniform3fv(locLightDir, light) },
		func() error { return r.ctx.Uniform1f(locAmbient, s.Light.Ambient) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) drawObject(g *gpuMesh, o Object, mvp, model mgl32.Mat4) error {
	textured := int32(0)
	if o.Texture > 0 {
		textured = 1
	}
	tint := mgl32.Vec4(o.Color)
	if tint == (mgl32.Vec4{}) {
		tint = mesh.White
	}
	steps := []func() error{
		func() error { return r.ctx.UniformMatrix4fv(locMVP, mvp) },
		func() error { return r.ctx.UniformMatrix3fv(locNormal, model.Mat3().Inv().Transpose()) },
		func() error { return r.ctx.Uniform4fv(locTint, tint) },
		func() error { return r.ctx.Uniform1i(locTextured, textured) },
		func() error { return r.ctx.Uniform1f(locUVScale, o.Texture) },
		func() error { return r.ctx.BindVertexArray(g.vao) },
		func() error {
			return r.ctx.DrawElements(gputypes.PrimitiveTopologyTriangleList, g.count, gputypes.IndexFormatUint16, 0)
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// scaleOf returns a scale matrix, treating zero components as 1.
func scaleOf(size [3]float32) mgl32.Mat4 {
	for i := range size {
		if size[i] == 0 {
			size[i] = 1
		}
	}
	return mgl32.Scale3D(size[0], size[1], size[2])
}
