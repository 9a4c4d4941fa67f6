package softgl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgramFromShaderObjects(t *testing.T) {
	ctx, surface := newTestContext(t, 2, 2)
	bindVertices(t, ctx, 4, fullscreen(0)...)

	vs, err := ctx.CreateShader(VertexStage)
	require.NoError(t, err)
	fs, err := ctx.CreateShader(FragmentStage)
	require.NoError(t, err)
	require.NoError(t, ctx.ShaderVertexFunc(vs, passthrough))
	require.NoError(t, ctx.ShaderFragmentFunc(fs, solid(green)))
	require.NoError(t, ctx.CompileShader(vs))
	require.NoError(t, ctx.CompileShader(fs))

	prog, err := ctx.CreateProgram()
	require.NoError(t, err)
	require.NoError(t, ctx.AttachShader(prog, vs))
	require.NoError(t, ctx.AttachShader(prog, fs))
	require.NoError(t, ctx.LinkProgram(prog))

	// Linked programs keep their callables after the shaders go away.
	require.NoError(t, ctx.DeleteShader(vs))
	require.NoError(t, ctx.DeleteShader(fs))

	require.NoError(t, ctx.UseProgram(prog))
	require.NoError(t, ctx.DrawArrays(triangles, 0, 3))
	assertPixel(t, surface, 1, 1, green)
}

func TestProgramLinkErrors(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	_, err := ctx.CreateShader(ShaderStage(9))
	assert.ErrorIs(t, err, ErrInvalidEnum)

	vs, err := ctx.CreateShader(VertexStage)
	require.NoError(t, err)
	fs, err := ctx.CreateShader(FragmentStage)
	require.NoError(t, err)

	assert.ErrorIs(t, ctx.ShaderFragmentFunc(vs, solid(red)), ErrShaderStage)
	assert.ErrorIs(t, ctx.ShaderVertexFunc(fs, passthrough), ErrShaderStage)
	assert.ErrorIs(t, ctx.CompileShader(vs), ErrShaderNotCompiled)

	prog, err := ctx.CreateProgram()
	require.NoError(t, err)
	assert.ErrorIs(t, ctx.UseProgram(prog), ErrProgramNotLinked)
	assert.ErrorIs(t, ctx.LinkProgram(prog), ErrShaderNotCompiled)

	require.NoError(t, ctx.ShaderVertexFunc(vs, passthrough))
	require.NoError(t, ctx.CompileShader(vs))
	require.NoError(t, ctx.AttachShader(prog, vs))
	assert.ErrorIs(t, ctx.LinkProgram(prog), ErrShaderNotCompiled, "fragment stage missing")

	require.NoError(t, ctx.ShaderFragmentFunc(fs, solid(red)))
	require.NoError(t, ctx.AttachShader(prog, fs))
	assert.ErrorIs(t, ctx.LinkProgram(prog), ErrShaderNotCompiled, "fragment stage not compiled")

	require.NoError(t, ctx.CompileShader(fs))
	require.NoError(t, ctx.LinkProgram(prog))
	require.NoError(t, ctx.UseProgram(prog))

	// Changing the source requires a new compile before the next link.
	require.NoError(t, ctx.ShaderVertexFunc(vs, passthrough))
	assert.ErrorIs(t, ctx.LinkProgram(prog), ErrShaderNotCompiled)

	assert.ErrorIs(t, ctx.AttachShader(prog, 99), ErrInvalidHandle)
	assert.ErrorIs(t, ctx.AttachShader(99, vs), ErrInvalidHandle)
	assert.ErrorIs(t, ctx.ProgramShader(prog, nil), ErrShaderNotCompiled)
}

type countingShader struct {
	vertices, fragments int
}

func (s *countingShader) ShadeVertex(in *VertexInput, out *VertexOutput) {
	s.vertices++
	out.Position = in.Attrib(0)
}

func (s *countingShader) ShadeFragment(_ *Fragment, out *FragmentOutput) {
	s.fragments++
	out.Color(red)
}

func TestProgramShaderInterface(t *testing.T) {
	ctx, _ := newTestContext(t, 3, 3)
	bindVertices(t, ctx, 4, fullscreen(0)...)
	s := &countingShader{}
	useShader(t, ctx, s)

	require.NoError(t, ctx.DrawArrays(triangles, 0, 3))
	assert.Equal(t, 3, s.vertices)
	assert.Equal(t, 9, s.fragments)
}

func TestProgramShaderRejectsMissingFuncs(t *testing.T) {
	tests := []struct {
		name   string
		shader Shader
	}{
		{"nil", nil},
		{"no fragment", ShaderFuncs{Vertex: passthrough}},
		{"no vertex", ShaderFuncs{Fragment: solid(red)}},
		{"empty", ShaderFuncs{}},
		{"nil pointer", (*ShaderFuncs)(nil)},
		{"pointer without vertex", &ShaderFuncs{Fragment: solid(red)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := newTestContext(t, 2, 2)
			bindVertices(t, ctx, 4, fullscreen(0)...)
			prog, err := ctx.CreateProgram()
			require.NoError(t, err)

			assert.ErrorIs(t, ctx.ProgramShader(prog, tt.shader), ErrShaderNotCompiled)
			assert.ErrorIs(t, ctx.UseProgram(prog), ErrProgramNotLinked)
			assert.NotPanics(t, func() {
				assert.Error(t, ctx.DrawArrays(triangles, 0, 3))
			})
		})
	}
}

func TestCompileShaderRejectsNilFunc(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	vs, err := ctx.CreateShader(VertexStage)
	require.NoError(t, err)
	fs, err := ctx.CreateShader(FragmentStage)
	require.NoError(t, err)

	require.NoError(t, ctx.ShaderVertexFunc(vs, VertexFunc(nil)))
	require.NoError(t, ctx.ShaderFragmentFunc(fs, FragmentFunc(nil)))
	assert.ErrorIs(t, ctx.CompileShader(vs), ErrShaderNotCompiled)
	assert.ErrorIs(t, ctx.CompileShader(fs), ErrShaderNotCompiled)

	prog, err := ctx.CreateProgram()
	require.NoError(t, err)
	require.NoError(t, ctx.AttachShader(prog, vs))
	require.NoError(t, ctx.AttachShader(prog, fs))
	assert.ErrorIs(t, ctx.LinkProgram(prog), ErrShaderNotCompiled)

	require.NoError(t, ctx.ShaderVertexFunc(vs, ShaderFuncs{Fragment: solid(red)}))
	assert.ErrorIs(t, ctx.CompileShader(vs), ErrShaderNotCompiled)
	require.NoError(t, ctx.ShaderVertexFunc(vs, passthrough))
	assert.NoError(t, ctx.CompileShader(vs))
}

func TestShaderStageString(t *testing.T) {
	assert.Equal(t, "Vertex", VertexStage.String())
	assert.Equal(t, "Fragment", FragmentStage.String())
	assert.Equal(t, "Unknown", ShaderStage(0).String())
}
