package softgl

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/softgl/internal/raster"
	"github.com/gogpu/softgl/internal/texel"
)

// shadedVertex is the vertex shader result for one index, transformed to
// window space.
type shadedVertex struct {
	clip   mgl32.Vec4
	values []float32
	win    raster.Vertex
	valid  bool // w > 0 and finite
}

// drawCall carries the state of one draw through the pipeline stages.
type drawCall struct {
	env    *Env
	shader Shader
	slots  []fetchSlot
	layout *varyingLayout
	rt     *renderTarget
	clip   raster.Rect
	vp     Viewport
	state  fixedState
	stats  *Stats

	cache    map[int]int
	vertices []shadedVertex

	frag   Fragment
	out    FragmentOutput
	interp []float32
}

func (c *Context) newDrawCall(p *program, va *vertexArray, rt *renderTarget) *drawCall {
	env := c.newEnv(p)
	vp := c.state.viewport
	if !c.state.viewportSet {
		vp = Viewport{Width: rt.width, Height: rt.height}
	}
	layout := newVaryingLayout()
	d := &drawCall{
		env:    env,
		shader: p.shader,
		slots:  c.resolveAttribs(va),
		layout: layout,
		rt:     rt,
		clip: raster.Rect{MaxX: rt.width, MaxY: rt.height}.Intersect(raster.Rect{
			MinX: vp.X, MinY: vp.Y, MaxX: vp.X + vp.Width, MaxY: vp.Y + vp.Height,
		}),
		vp:    vp,
		state: c.state,
		stats: &c.stats,
		cache: make(map[int]int),
	}
	d.frag = Fragment{Env: env, layout: layout}
	d.out = FragmentOutput{env: env}
	return d
}

// run shades every distinct vertex, then rasterizes the triangles.
// Errors raised while shading vertices abort before any pixel is written.
func (d *drawCall) run(idx []int) error {
	refs := make([]int, len(idx))
	for i, index := range idx {
		slot, ok := d.cache[index]
		if !ok {
			slot = len(d.vertices)
			d.cache[index] = slot
			d.vertices = append(d.vertices, d.shadeVertex(index))
			if d.env.err != nil {
				return d.env.err
			}
		}
		refs[i] = slot
	}

	for i := 0; i+2 < len(refs); i += 3 {
		d.stats.TrianglesSubmitted++
		d.triangle(&d.vertices[refs[i]], &d.vertices[refs[i+1]], &d.vertices[refs[i+2]])
		if d.env.err != nil {
			return d.env.err
		}
	}
	return nil
}

func (d *drawCall) shadeVertex(index int) shadedVertex {
	in := VertexInput{Env: d.env, Index: index, slots: d.slots}
	out := VertexOutput{Position: mgl32.Vec4{0, 0, 0, 1}, env: d.env, layout: d.layout}
	d.shader.ShadeVertex(&in, &out)
	d.stats.VerticesShaded++

	v := shadedVertex{clip: out.Position, values: out.values}
	w := v.clip[3]
	if !(w > 0) || math32.IsInf(w, 1) {
		return v
	}
	inv := 1 / w
	ndc := v.clip.Vec3().Mul(inv)
	vp := d.vp
	v.win = raster.Vertex{
		X:    float32(vp.X) + (ndc[0]+1)*0.5*float32(vp.Width),
		Y:    float32(vp.Y) + (1-ndc[1])*0.5*float32(vp.Height),
		Z:    (ndc[2] + 1) * 0.5,
		InvW: inv,
	}
	v.valid = true
	return v
}

// frontFacing reports whether the window-space winding of the triangle
// matches the front face. Window y points down, which mirrors the winding
// seen in normalized device coordinates.
func (d *drawCall) frontFacing(area float32) bool {
	if d.state.frontFace == gputypes.FrontFaceCW {
		return area > 0
	}
	return area < 0
}

func (d *drawCall) culled(front bool) bool {
	if !d.state.cullEnabled {
		return false
	}
	switch d.state.cullMode {
	case gputypes.CullModeFront:
		return front
	case gputypes.CullModeBack:
		return !front
	}
	return false
}

func (d *drawCall) triangle(v0, v1, v2 *shadedVertex) {
	if !v0.valid || !v1.valid || !v2.valid {
		d.stats.TrianglesClipped++
		return
	}
	tri := [3]*shadedVertex{v0, v1, v2}

	area := raster.SignedArea(v0.win, v1.win, v2.win)
	if area == 0 || math32.IsNaN(area) {
		d.stats.TrianglesDegenerate++
		return
	}
	front := d.frontFacing(area)
	if d.culled(front) {
		d.stats.TrianglesCulled++
		return
	}

	switch d.state.polygonMode {
	case PolygonLine:
		d.stats.TrianglesRasterized++
		d.edges(tri, front)
	case PolygonPoint:
		d.stats.TrianglesRasterized++
		d.points(tri, front)
	default:
		d.fill(tri, front)
	}
}

func (d *drawCall) fill(tri [3]*shadedVertex, front bool) {
	setup, err := raster.Setup(tri[0].win, tri[1].win, tri[2].win, d.clip)
	switch {
	case errors.Is(err, raster.ErrDegenerate):
		d.stats.TrianglesDegenerate++
		return
	case err != nil:
		d.stats.TrianglesClipped++
		return
	}
	d.stats.TrianglesRasterized++
	setup.Rasterize(func(f *raster.Fragment) {
		if d.env.err != nil {
			return
		}
		var invW float32
		if f.W != 0 {
			invW = 1 / f.W
		}
		d.fragment(f.X, f.Y, f.Z, invW, f.Weights, tri, front)
	})
}

func (d *drawCall) edges(tri [3]*shadedVertex, front bool) {
	for e := 0; e < 3; e++ {
		ia, ib := e, (e+1)%3
		raster.Line(tri[ia].win, tri[ib].win, d.clip, func(x, y int, t float32) {
			var bary [3]float32
			bary[ia], bary[ib] = 1-t, t
			d.emit(x, y, bary, tri, front)
		})
	}
}

func (d *drawCall) points(tri [3]*shadedVertex, front bool) {
	a, b, c := tri[0].win, tri[1].win, tri[2].win
	for i := range tri {
		v := tri[i].win
		raster.Point(v, d.clip, func(x, y int) {
			l, _ := raster.Barycentric(
				mgl32.Vec2{v.X, v.Y},
				mgl32.Vec2{a.X, a.Y}, mgl32.Vec2{b.X, b.Y}, mgl32.Vec2{c.X, c.Y},
			)
			d.emit(x, y, l, tri, front)
		})
	}
}

// emit shades one line or point fragment at screen-space barycentric
// coordinates bary. Depth and varyings are interpolated perspective-correctly.
func (d *drawCall) emit(x, y int, bary [3]float32, tri [3]*shadedVertex, front bool) {
	if d.env.err != nil {
		return
	}
	invW := [3]float32{tri[0].win.InvW, tri[1].win.InvW, tri[2].win.InvW}
	weights, w := raster.PcerpW(bary, invW)
	z := raster.Lerp3(weights, [3]float32{tri[0].win.Z, tri[1].win.Z, tri[2].win.Z})
	var fragInvW float32
	if w != 0 {
		fragInvW = 1 / w
	}
	d.fragment(x, y, z, fragInvW, weights, tri, front)
}

// interpolate fills d.interp with the varyings at one fragment. Flat
// channels come from the provoking vertex, the last of the triangle.
func (d *drawCall) interpolate(weights [3]float32, tri [3]*shadedVertex) {
	width := d.layout.width
	if cap(d.interp) < width {
		d.interp = make([]float32, width)
	}
	d.interp = d.interp[:width]
	for _, ch := range d.layout.channels {
		for k := ch.offset; k < ch.offset+ch.size; k++ {
			if ch.interp == Flat {
				d.interp[k] = valueAt(tri[2], k)
				continue
			}
			d.interp[k] = raster.Lerp3(weights, [3]float32{valueAt(tri[0], k), valueAt(tri[1], k), valueAt(tri[2], k)})
		}
	}
}

// valueAt reads float k of a vertex's varyings. Vertices shaded before a
// varying was first declared read it as zero.
func valueAt(v *shadedVertex, k int) float32 {
	if k < len(v.values) {
		return v.values[k]
	}
	return 0
}

func (d *drawCall) fragment(x, y int, z, invW float32, weights [3]float32, tri [3]*shadedVertex, front bool) {
	if !(z >= 0 && z <= 1) {
		d.stats.FragmentsDepthClipped++
		return
	}
	d.interpolate(weights, tri)

	d.frag.FragCoord = mgl32.Vec4{float32(x) + 0.5, float32(y) + 0.5, z, invW}
	d.frag.FrontFacing = front
	d.frag.values = d.interp
	d.out.reset()
	d.shader.ShadeFragment(&d.frag, &d.out)
	d.stats.FragmentsShaded++

	if d.out.discard {
		d.stats.FragmentsDiscarded++
		return
	}
	depth := z
	if d.out.hasDepth {
		depth = clamp01(d.out.depth)
	}
	if d.state.depthTest && d.rt.depth.present() {
		if !compareDepth(d.state.depthFunc, depth, d.rt.depth.get(x, y)) {
			d.stats.FragmentsDepthFailed++
			return
		}
		if d.state.depthWrite {
			d.rt.depth.set(x, y, depth)
		}
	}
	for i, l := range d.rt.colors {
		if l == nil || d.out.written&(1<<i) == 0 {
			continue
		}
		if err := l.SetTexel(x, y, 0, texel.Color(d.out.colors[i])); err != nil {
			d.env.record(err)
			return
		}
	}
	d.stats.FragmentsWritten++
}
