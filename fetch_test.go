package softgl

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

// captureVertices draws three vertices and returns what read reports for
// each vertex index.
func captureVertices(t *testing.T, ctx *Context, read func(in *VertexInput) any) (map[int]any, error) {
	t.Helper()
	got := map[int]any{}
	useShader(t, ctx, ShaderFuncs{
		Vertex: func(in *VertexInput, out *VertexOutput) {
			got[in.Index] = read(in)
		},
		Fragment: solid(red),
	})
	err := ctx.DrawArrays(triangles, 0, 3)
	return got, err
}

func newFetchContext(t *testing.T, data []byte) *Context {
	t.Helper()
	ctx, _ := newTestContext(t, 1, 1)
	vbo, err := ctx.CreateBuffer()
	require.NoError(t, err)
	require.NoError(t, ctx.BindBuffer(ArrayBuffer, vbo))
	require.NoError(t, ctx.BufferData(ArrayBuffer, data))
	vao, err := ctx.CreateVertexArray()
	require.NoError(t, err)
	require.NoError(t, ctx.BindVertexArray(vao))
	return ctx
}

func TestFetchDisabledSlotYieldsDefault(t *testing.T) {
	ctx := newFetchContext(t, f32bytes(1, 2, 3, 4, 5, 6, 7, 8, 9))
	require.NoError(t, ctx.VertexAttribPointer(0, 3, TypeFloat32, false, 0, 0))

	got, err := captureVertices(t, ctx, func(in *VertexInput) any {
		return [3]any{in.Attrib(0), in.Float(1), in.AttribInt(2)}
	})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		v := got[i].([3]any)
		assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, v[0])
		assert.Equal(t, float32(0), v[1])
		assert.Equal(t, [4]int64{0, 0, 0, 1}, v[2])
	}
}

func TestFetchConstants(t *testing.T) {
	ctx := newFetchContext(t, nil)
	require.NoError(t, ctx.VertexAttrib4f(1, 0.5, 0.25, 0, 1))
	require.NoError(t, ctx.VertexAttribI4i(2, 7, -3, 0, 1))

	got, err := captureVertices(t, ctx, func(in *VertexInput) any {
		return [2]any{in.Attrib(1), in.AttribInt(2)}
	})
	require.NoError(t, err)
	v := got[1].([2]any)
	assert.Equal(t, mgl32.Vec4{0.5, 0.25, 0, 1}, v[0])
	assert.Equal(t, [4]int64{7, -3, 0, 1}, v[1])
}

func TestFetchFormats(t *testing.T) {
	h := func(f float32) []byte {
		b := float16.Fromfloat32(f).Bits()
		return []byte{byte(b), byte(b >> 8)}
	}
	half := append(append(h(0.5), h(-2)...), h(1.5)...)

	tests := []struct {
		name       string
		data       []byte
		size       int
		typ        ScalarType
		normalized bool
		want       mgl32.Vec4 // vertex 1
	}{
		{"float32 vec2", f32bytes(0, 0, 1.5, -2, 0, 0), 2, TypeFloat32, false, mgl32.Vec4{1.5, -2, 0, 1}},
		{"uint8 normalized", []byte{0, 0, 255, 51}, 2, TypeUint8, true, mgl32.Vec4{1, 0.2, 0, 1}},
		{"uint8 unnormalized", []byte{0, 200}, 1, TypeUint8, false, mgl32.Vec4{200, 0, 0, 1}},
		{"int16 normalized", u16bytes(0, 0x8000), 1, TypeInt16, true, mgl32.Vec4{-1, 0, 0, 1}},
		{"float16", half, 1, TypeFloat16, false, mgl32.Vec4{-2, 0, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Pad so three vertices fit.
			data := append(append([]byte{}, tt.data...), make([]byte, 64)...)
			ctx := newFetchContext(t, data)
			require.NoError(t, ctx.VertexAttribPointer(0, tt.size, tt.typ, tt.normalized, 0, 0))
			require.NoError(t, ctx.EnableVertexAttribArray(0))

			got, err := captureVertices(t, ctx, func(in *VertexInput) any { return in.Attrib(0) })
			require.NoError(t, err)
			v := got[1].(mgl32.Vec4)
			for k := range tt.want {
				assert.InDelta(t, tt.want[k], v[k], 1e-6, "component %d", k)
			}
		})
	}
}

func TestFetchInterleaved(t *testing.T) {
	// position xy, color rgb per vertex.
	ctx := newFetchContext(t, f32bytes(
		0, 0, 1, 0, 0,
		1, 0, 0, 1, 0,
		0, 1, 0, 0, 1,
	))
	require.NoError(t, ctx.VertexAttribPointer(0, 2, TypeFloat32, false, 20, 0))
	require.NoError(t, ctx.VertexAttribPointer(1, 3, TypeFloat32, false, 20, 8))
	require.NoError(t, ctx.EnableVertexAttribArray(0))
	require.NoError(t, ctx.EnableVertexAttribArray(1))

	got, err := captureVertices(t, ctx, func(in *VertexInput) any {
		return [2]any{in.Vec2(0), in.Vec3(1)}
	})
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec2{1, 0}, got[1].([2]any)[0])
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, got[1].([2]any)[1])
	assert.Equal(t, mgl32.Vec2{0, 1}, got[2].([2]any)[0])
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, got[2].([2]any)[1])
}

func TestFetchIntegerAttribute(t *testing.T) {
	ctx := newFetchContext(t, []byte{1, 2, 3, 4, 5, 6, 0xff, 0, 0})
	require.NoError(t, ctx.VertexAttribIPointer(0, 3, TypeInt8, 0, 0))
	require.NoError(t, ctx.EnableVertexAttribArray(0))

	got, err := captureVertices(t, ctx, func(in *VertexInput) any { return in.AttribInt(0) })
	require.NoError(t, err)
	assert.Equal(t, [4]int64{1, 2, 3, 1}, got[0])
	assert.Equal(t, [4]int64{-1, 0, 0, 1}, got[2])

	assert.ErrorIs(t, ctx.VertexAttribIPointer(0, 1, TypeFloat32, 0, 0), ErrInvalidEnum)
}

func TestFetchErrors(t *testing.T) {
	t.Run("read past buffer", func(t *testing.T) {
		ctx := newFetchContext(t, f32bytes(0, 0, 0, 0))
		require.NoError(t, ctx.VertexAttribPointer(0, 2, TypeFloat32, false, 0, 0))
		require.NoError(t, ctx.EnableVertexAttribArray(0))
		_, err := captureVertices(t, ctx, func(in *VertexInput) any { return in.Attrib(0) })
		assert.ErrorIs(t, err, ErrAttributeRange)
	})

	t.Run("integer read of float slot", func(t *testing.T) {
		ctx := newFetchContext(t, f32bytes(0, 0, 0))
		require.NoError(t, ctx.VertexAttribPointer(0, 1, TypeFloat32, false, 0, 0))
		require.NoError(t, ctx.EnableVertexAttribArray(0))
		_, err := captureVertices(t, ctx, func(in *VertexInput) any { return in.Int(0) })
		assert.ErrorIs(t, err, ErrAttributeType)
	})

	t.Run("slot out of range", func(t *testing.T) {
		ctx := newFetchContext(t, nil)
		_, err := captureVertices(t, ctx, func(in *VertexInput) any { return in.Attrib(99) })
		assert.ErrorIs(t, err, ErrInvalidValue)
	})

	t.Run("pointer validation", func(t *testing.T) {
		ctx := newFetchContext(t, f32bytes(0))
		assert.ErrorIs(t, ctx.VertexAttribPointer(0, 5, TypeFloat32, false, 0, 0), ErrInvalidValue)
		assert.ErrorIs(t, ctx.VertexAttribPointer(0, 1, TypeFloat32, false, -4, 0), ErrInvalidValue)
		assert.ErrorIs(t, ctx.VertexAttribPointer(DefaultMaxVertexAttribs, 1, TypeFloat32, false, 0, 0), ErrInvalidValue)
		assert.ErrorIs(t, ctx.VertexAttribPointer(0, 1, ScalarType(99), false, 0, 0), ErrInvalidEnum)

		require.NoError(t, ctx.BindBuffer(ArrayBuffer, 0))
		assert.ErrorIs(t, ctx.VertexAttribPointer(0, 1, TypeFloat32, false, 0, 0), ErrNoBuffer)
	})
}

func TestBufferSubData(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	b, err := ctx.CreateBuffer()
	require.NoError(t, err)
	require.NoError(t, ctx.BindBuffer(ArrayBuffer, b))
	require.NoError(t, ctx.BufferData(ArrayBuffer, []byte{1, 2, 3, 4}))
	require.NoError(t, ctx.BufferSubData(ArrayBuffer, 2, []byte{9, 9}))

	n, err := ctx.BufferSize(b)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []byte{1, 2, 9, 9}, ctx.buffers.get(b).data.Bytes())

	assert.ErrorIs(t, ctx.BufferSubData(ArrayBuffer, 3, []byte{1, 2}), ErrInvalidValue)
	assert.ErrorIs(t, ctx.BufferSubData(ArrayBuffer, -1, []byte{1}), ErrInvalidValue)
	assert.ErrorIs(t, ctx.BufferData(ElementArrayBuffer, nil), ErrNoBuffer)
}

func TestElementBindingFollowsVertexArray(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	ebo, err := ctx.CreateBuffer()
	require.NoError(t, err)
	a, err := ctx.CreateVertexArray()
	require.NoError(t, err)
	b, err := ctx.CreateVertexArray()
	require.NoError(t, err)

	require.NoError(t, ctx.BindVertexArray(a))
	require.NoError(t, ctx.BindBuffer(ElementArrayBuffer, ebo))
	require.NoError(t, ctx.BindVertexArray(b))
	assert.Equal(t, Handle(0), ctx.boundElementBuffer())
	require.NoError(t, ctx.BindVertexArray(a))
	assert.Equal(t, ebo, ctx.boundElementBuffer())
}
