package softgl

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/softgl/internal/bytebuf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAttachment(t *testing.T, ctx *Context, format PixelFormat, w, h int) Handle {
	t.Helper()
	tex := newTexture(t, ctx, gputypes.TextureDimension2D)
	require.NoError(t, ctx.TexImage2D(0, format, w, h, nil))
	return tex
}

func TestFramebufferMultipleRenderTargets(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	albedo := newAttachment(t, ctx, FormatRGBA8, 4, 4)
	normal := newAttachment(t, ctx, FormatRGBA32F, 4, 4)
	depth := newAttachment(t, ctx, FormatDepth32F, 4, 4)

	fbo, err := ctx.CreateFramebuffer()
	require.NoError(t, err)
	require.NoError(t, ctx.BindFramebuffer(fbo))
	require.NoError(t, ctx.FramebufferTexture(ColorAttachment0, albedo, 0))
	require.NoError(t, ctx.FramebufferTexture(ColorAttachment1, normal, 0))
	require.NoError(t, ctx.FramebufferTexture(DepthAttachment, depth, 0))

	st, err := ctx.CheckFramebufferStatus()
	require.NoError(t, err)
	require.Equal(t, FramebufferComplete, st)

	require.NoError(t, ctx.ClearColor(0, 0, 0, 1))
	require.NoError(t, ctx.Clear(ColorBufferBit|DepthBufferBit))
	require.NoError(t, ctx.Enable(DepthTest))

	bindVertices(t, ctx, 4, fullscreen(-0.5)...)
	useShader(t, ctx, ShaderFuncs{
		Vertex: passthrough,
		Fragment: func(_ *Fragment, out *FragmentOutput) {
			out.SetColor(0, red)
			out.SetColor(1, mgl32.Vec4{0, -1, 2, 1})
		},
	})
	require.NoError(t, ctx.DrawArrays(triangles, 0, 3))
	assert.Equal(t, 16, ctx.Stats().FragmentsWritten)

	px, err := ctx.ReadPixel(3, 3)
	require.NoError(t, err)
	assert.Equal(t, red, px)

	n, err := ctx.textures.get(normal).level(0).Texel(2, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec4{0, -1, 2, 1}, mgl32.Vec4(n))

	d, err := ctx.ReadDepth(0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, d, 1e-6)
}

func TestFramebufferOutputMask(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	a := newAttachment(t, ctx, FormatRGBA8, 2, 2)
	b := newAttachment(t, ctx, FormatRGBA8, 2, 2)
	fbo, err := ctx.CreateFramebuffer()
	require.NoError(t, err)
	require.NoError(t, ctx.BindFramebuffer(fbo))
	require.NoError(t, ctx.FramebufferTexture(ColorAttachment0, a, 0))
	require.NoError(t, ctx.FramebufferTexture(ColorAttachment2, b, 0))
	require.NoError(t, ctx.ClearColor(0, 0, 1, 1))
	require.NoError(t, ctx.Clear(ColorBufferBit))

	// Only output 2 is written; attachment 0 keeps the clear color.
	bindVertices(t, ctx, 4, fullscreen(0)...)
	useShader(t, ctx, ShaderFuncs{
		Vertex: passthrough,
		Fragment: func(_ *Fragment, out *FragmentOutput) {
			out.SetColor(2, green)
			out.SetColor(5, red)
		},
	})
	require.NoError(t, ctx.DrawArrays(triangles, 0, 3))

	px, err := ctx.ReadPixel(1, 1)
	require.NoError(t, err)
	assert.Equal(t, blue, px)
	got, err := ctx.textures.get(b).level(0).Texel(1, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, green, mgl32.Vec4(got))

	// Depth test without a depth attachment is skipped.
	require.NoError(t, ctx.Enable(DepthTest))
	require.NoError(t, ctx.DrawArrays(triangles, 0, 3))
	assert.Equal(t, 4, ctx.Stats().FragmentsWritten)
	_, err = ctx.ReadDepth(0, 0)
	assert.ErrorIs(t, err, ErrFramebufferIncomplete)
}

func TestFramebufferStatus(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, ctx *Context)
		want  FramebufferStatus
	}{
		{"missing attachment", func(*testing.T, *Context) {}, FramebufferIncompleteMissingAttachment},
		{"depth only", func(t *testing.T, ctx *Context) {
			d := newAttachment(t, ctx, FormatDepth16, 2, 2)
			require.NoError(t, ctx.FramebufferTexture(DepthAttachment, d, 0))
		}, FramebufferComplete},
		{"color format at depth point", func(t *testing.T, ctx *Context) {
			c := newAttachment(t, ctx, FormatRGBA8, 2, 2)
			require.NoError(t, ctx.FramebufferTexture(DepthAttachment, c, 0))
		}, FramebufferIncompleteAttachment},
		{"depth format at color point", func(t *testing.T, ctx *Context) {
			d := newAttachment(t, ctx, FormatDepth32F, 2, 2)
			require.NoError(t, ctx.FramebufferTexture(ColorAttachment0, d, 0))
		}, FramebufferIncompleteAttachment},
		{"missing level", func(t *testing.T, ctx *Context) {
			c := newAttachment(t, ctx, FormatRGBA8, 2, 2)
			require.NoError(t, ctx.FramebufferTexture(ColorAttachment0, c, 3))
		}, FramebufferIncompleteAttachment},
		{"deleted texture", func(t *testing.T, ctx *Context) {
			c := newAttachment(t, ctx, FormatRGBA8, 2, 2)
			require.NoError(t, ctx.FramebufferTexture(ColorAttachment0, c, 0))
			require.NoError(t, ctx.DeleteTexture(c))
		}, FramebufferIncompleteAttachment},
		{"size mismatch", func(t *testing.T, ctx *Context) {
			a := newAttachment(t, ctx, FormatRGBA8, 2, 2)
			b := newAttachment(t, ctx, FormatRGBA8, 4, 2)
			require.NoError(t, ctx.FramebufferTexture(ColorAttachment0, a, 0))
			require.NoError(t, ctx.FramebufferTexture(ColorAttachment1, b, 0))
		}, FramebufferIncompleteDimensions},
		{"detached", func(t *testing.T, ctx *Context) {
			a := newAttachment(t, ctx, FormatRGBA8, 2, 2)
			require.NoError(t, ctx.FramebufferTexture(ColorAttachment0, a, 0))
			require.NoError(t, ctx.FramebufferTexture(ColorAttachment0, 0, 0))
		}, FramebufferIncompleteMissingAttachment},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewContext()
			defer ctx.Close()
			fbo, err := ctx.CreateFramebuffer()
			require.NoError(t, err)
			require.NoError(t, ctx.BindFramebuffer(fbo))
			tt.setup(t, ctx)

			st, err := ctx.CheckFramebufferStatus()
			require.NoError(t, err)
			assert.Equal(t, tt.want, st, "status %v", st)
			if tt.want != FramebufferComplete {
				assert.ErrorIs(t, ctx.Clear(ColorBufferBit), ErrFramebufferIncomplete)
			}
		})
	}
}

func TestFramebufferTextureValidation(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	tex := newAttachment(t, ctx, FormatRGBA8, 1, 1)
	assert.ErrorIs(t, ctx.FramebufferTexture(ColorAttachment0, tex, 0), ErrDefaultFramebuffer)

	fbo, err := ctx.CreateFramebuffer()
	require.NoError(t, err)
	require.NoError(t, ctx.BindFramebuffer(fbo))
	assert.ErrorIs(t, ctx.FramebufferTexture(ColorAttachment0, 99, 0), ErrInvalidHandle)
	assert.ErrorIs(t, ctx.FramebufferTexture(ColorAttachment0, tex, -1), ErrInvalidValue)
	assert.ErrorIs(t, ctx.FramebufferTexture(Attachment(42), tex, 0), ErrInvalidEnum)
}

func TestReadPixelBounds(t *testing.T) {
	ctx, _ := newTestContext(t, 2, 2)
	_, err := ctx.ReadPixel(2, 0)
	assert.ErrorIs(t, err, ErrInvalidValue)
	_, err = ctx.ReadDepth(0, -1)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestFramebufferStatusString(t *testing.T) {
	assert.Equal(t, "IncompleteDimensions", FramebufferIncompleteDimensions.String())
	assert.Equal(t, "Unknown", FramebufferStatus(99).String())
}

func TestDrawReportsAttachmentWriteError(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	color := newAttachment(t, ctx, FormatRGBA8, 4, 4)
	fbo, err := ctx.CreateFramebuffer()
	require.NoError(t, err)
	require.NoError(t, ctx.BindFramebuffer(fbo))
	require.NoError(t, ctx.FramebufferTexture(ColorAttachment0, color, 0))

	// Keep only the first two texels of row 0.
	require.NoError(t, ctx.textures.get(color).level(0).Data.Resize(8))

	bindVertices(t, ctx, 4, fullscreen(0)...)
	useShader(t, ctx, ShaderFuncs{Vertex: passthrough, Fragment: solid(red)})
	err = ctx.DrawArrays(triangles, 0, 3)
	assert.ErrorIs(t, err, bytebuf.ErrOutOfRange)
	assert.Less(t, ctx.Stats().FragmentsWritten, 16)
}
