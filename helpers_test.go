package softgl

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/require"
)

var triangles = gputypes.PrimitiveTopologyTriangleList

func newTestContext(t *testing.T, w, h int) (*Context, *Surface) {
	t.Helper()
	surface, err := NewSurface(w, h, FormatRGBA8)
	require.NoError(t, err)
	ctx := NewContext(WithSurface(surface))
	t.Cleanup(ctx.Close)
	return ctx, surface
}

func f32bytes(vs ...float32) []byte {
	b := make([]byte, 4*len(vs))
	for i, v := range vs {
		binary.LittleEndian.PutUint32(b[4*i:], math.Float32bits(v))
	}
	return b
}

func u16bytes(vs ...uint16) []byte {
	b := make([]byte, 2*len(vs))
	for i, v := range vs {
		binary.LittleEndian.PutUint16(b[2*i:], v)
	}
	return b
}

// bindVertices uploads data into a new buffer and describes slot 0 of a
// new, bound vertex array as vectors of size float32 components.
func bindVertices(t *testing.T, ctx *Context, size int, data ...float32) (vao, vbo Handle) {
	t.Helper()
	var err error
	vbo, err = ctx.CreateBuffer()
	require.NoError(t, err)
	require.NoError(t, ctx.BindBuffer(ArrayBuffer, vbo))
	require.NoError(t, ctx.BufferData(ArrayBuffer, f32bytes(data...)))

	vao, err = ctx.CreateVertexArray()
	require.NoError(t, err)
	require.NoError(t, ctx.BindVertexArray(vao))
	require.NoError(t, ctx.VertexAttribPointer(0, size, TypeFloat32, false, 0, 0))
	require.NoError(t, ctx.EnableVertexAttribArray(0))
	return vao, vbo
}

func useShader(t *testing.T, ctx *Context, s Shader) Handle {
	t.Helper()
	prog, err := ctx.CreateProgram()
	require.NoError(t, err)
	require.NoError(t, ctx.ProgramShader(prog, s))
	require.NoError(t, ctx.UseProgram(prog))
	return prog
}

// passthrough uses slot 0 as the clip position.
var passthrough = VertexFunc(func(in *VertexInput, out *VertexOutput) {
	out.Position = in.Attrib(0)
})

func solid(c mgl32.Vec4) FragmentFunc {
	return func(_ *Fragment, out *FragmentOutput) {
		out.Color(c)
	}
}

// fullscreen is one clip-space triangle covering the whole viewport.
func fullscreen(z float32) []float32 {
	return []float32{
		-1, -1, z, 1,
		3, -1, z, 1,
		-1, 3, z, 1,
	}
}

var (
	red   = mgl32.Vec4{1, 0, 0, 1}
	green = mgl32.Vec4{0, 1, 0, 1}
	blue  = mgl32.Vec4{0, 0, 1, 1}
)

func assertPixel(t *testing.T, s *Surface, x, y int, want mgl32.Vec4) {
	t.Helper()
	got := s.Pixel(x, y)
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1.0/255 {
			t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			return
		}
	}
}
