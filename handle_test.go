package softgl

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableNeverReusesHandles(t *testing.T) {
	tbl := newTable[int]()
	a, ok := tbl.create(new(int))
	require.True(t, ok)
	_, ok = tbl.remove(a)
	require.True(t, ok)

	b, ok := tbl.create(new(int))
	require.True(t, ok)
	assert.Equal(t, Handle(1), a)
	assert.Equal(t, Handle(2), b)
	assert.Nil(t, tbl.get(a))
	assert.Nil(t, tbl.get(0))
}

func TestTableStopsAtLastHandle(t *testing.T) {
	tbl := newTable[int]()
	tbl.next = math.MaxUint32 - 1

	last, ok := tbl.create(new(int))
	require.True(t, ok)
	assert.Equal(t, Handle(math.MaxUint32), last)

	h, ok := tbl.create(new(int))
	assert.False(t, ok)
	assert.Equal(t, Handle(0), h)
	assert.Nil(t, tbl.get(0))
	assert.Equal(t, 1, tbl.len())
	assert.Equal(t, Handle(math.MaxUint32), tbl.next)
}

func TestCreateFailsWhenHandlesRunOut(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	tests := []struct {
		name   string
		next   *Handle
		create func() (Handle, error)
	}{
		{"buffer", &ctx.buffers.next, ctx.CreateBuffer},
		{"vertex array", &ctx.vertexArrays.next, ctx.CreateVertexArray},
		{"texture", &ctx.textures.next, ctx.CreateTexture},
		{"sampler", &ctx.samplers.next, ctx.CreateSampler},
		{"program", &ctx.programs.next, ctx.CreateProgram},
		{"framebuffer", &ctx.framebuffers.next, ctx.CreateFramebuffer},
		{"shader", &ctx.shaders.next, func() (Handle, error) { return ctx.CreateShader(VertexStage) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			*tt.next = math.MaxUint32
			h, err := tt.create()
			assert.ErrorIs(t, err, ErrOutOfHandles)
			assert.Equal(t, Handle(0), h)
		})
	}
}
