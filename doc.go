// Package softgl is a software graphics device for Go.
//
// # Overview
//
// softgl reproduces the object model and pipeline of an immediate-mode 3-D
// graphics API on the CPU: buffers, vertex arrays, textures, samplers,
// framebuffers and programs are created through a Context and used through
// a bind/draw state machine. Shaders are ordinary Go values implementing
// the Shader interface.
//
// # Quick Start
//
//	import "github.com/gogpu/softgl"
//
//	surface, _ := softgl.NewSurface(320, 240, softgl.FormatRGBA8)
//	ctx := softgl.NewContext(softgl.WithSurface(surface))
//	defer ctx.Close()
//
//	vbo, _ := ctx.CreateBuffer()
//	_ = ctx.BindBuffer(softgl.ArrayBuffer, vbo)
//	_ = ctx.BufferData(softgl.ArrayBuffer, positions)
//
//	vao, _ := ctx.CreateVertexArray()
//	_ = ctx.BindVertexArray(vao)
//	_ = ctx.VertexAttribPointer(0, 3, softgl.TypeFloat32, false, 0, 0)
//	_ = ctx.EnableVertexAttribArray(0)
//
//	prog, _ := ctx.CreateProgram()
//	_ = ctx.ProgramShader(prog, softgl.ShaderFuncs{
//	    Vertex: func(in *softgl.VertexInput, out *softgl.VertexOutput) {
//	        out.Position = in.Vec3(0).Vec4(1)
//	    },
//	    Fragment: func(_ *softgl.Fragment, out *softgl.FragmentOutput) {
//	        out.Color(mgl32.Vec4{1, 0.5, 0, 1})
//	    },
//	})
//	_ = ctx.UseProgram(prog)
//
//	_ = ctx.Clear(softgl.ColorBufferBit | softgl.DepthBufferBit)
//	_ = ctx.DrawArrays(gputypes.PrimitiveTopologyTriangleList, 0, 3)
//	_ = surface.SavePNG("triangle.png")
//
// # Pipeline
//
// A draw resolves its indices, runs the vertex shader once per distinct
// index, divides by w and maps to the viewport, culls by winding, then
// scan converts each triangle. Pixel centers on a shared edge belong to
// exactly one triangle (top-left rule). Smooth varyings are interpolated
// perspective-correctly, flat varyings come from the last vertex of the
// triangle. Fragments then go through the shader, the depth test and the
// output merge.
//
// Triangles are not clipped against the view volume: a triangle with a
// vertex at w <= 0 is dropped, and fragments with window depth outside
// [0,1] are dropped.
//
// # Coordinate System
//
//   - Normalized device coordinates: x right, y up, z in [-1,1]
//   - Window coordinates: origin at the top-left pixel, y down
//   - Window depth: (z+1)/2
//   - Texture coordinates: (0,0) is the first texel of the first row
//
// # Errors
//
// API misuse returns errors wrapping the sentinels in this package, for
// example ErrNoProgram, and is logged at warn level. Shaders that misuse
// their inputs (an unknown uniform, an integer read of a float attribute)
// fail the draw with the first such error.
//
// # Concurrency
//
// A Context is not safe for concurrent use. Shaders run on the calling
// goroutine.
package softgl

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
