package demo

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/softgl"
	"github.com/gogpu/softgl/mesh"
)

// Vertex attribute slots of an uploaded mesh.
const (
	slotPosition = iota
	slotNormal
	slotUV
	slotColor
)

// Uniform locations read by litShader.
var (
	locMVP      = softgl.UniformLocationOf("mvp")
	locNormal   = softgl.UniformLocationOf("normalMatrix")
	locTint     = softgl.UniformLocationOf("tint")
	locLightDir = softgl.UniformLocationOf("lightDir")
	locAmbient  = softgl.UniformLocationOf("ambient")
	locTextured = softgl.UniformLocationOf("textured")
	locUVScale  = softgl.UniformLocationOf("uvScale")
)

// checkerUnit is the texture unit the checkerboard is bound to.
const checkerUnit = 0

// litShader shades meshes with one directional light, optionally
// modulated by the texture on checkerUnit.
type litShader struct{}

func (litShader) ShadeVertex(in *softgl.VertexInput, out *softgl.VertexOutput) {
	mvp := softgl.Uniform[mgl32.Mat4](in.Env, locMVP, 0)
	nm := softgl.Uniform[mgl32.Mat3](in.Env, locNormal, 0)

	out.Position = mvp.Mul4x1(in.Vec3(slotPosition).Vec4(1))
	out.SetVec3("normal", nm.Mul3x1(in.Vec3(slotNormal)))
	out.SetVec2("uv", in.Vec2(slotUV))
	out.SetVec4("color", in.Attrib(slotColor))
}

func (litShader) ShadeFragment(frag *softgl.Fragment, out *softgl.FragmentOutput) {
	tint := softgl.Uniform[mgl32.Vec4](frag.Env, locTint, 0)
	light := softgl.Uniform[mgl32.Vec3](frag.Env, locLightDir, 0)
	ambient := softgl.Uniform[float32](frag.Env, locAmbient, 0)

	base := mulVec4(frag.Vec4("color"), tint)
	if softgl.Uniform[int32](frag.Env, locTextured, 0) != 0 {
		scale := softgl.Uniform[float32](frag.Env, locUVScale, 0)
		base = mulVec4(base, frag.Sample2D(checkerUnit, frag.Vec2("uv").Mul(scale)))
	}

	var diffuse float32
	if n := frag.Vec3("normal"); n.Len() > 0 {
		diffuse = math32.Max(0, n.Normalize().Dot(light))
	}
	k := ambient + (1-ambient)*diffuse
	out.Color(mgl32.Vec4{base[0] * k, base[1] * k, base[2] * k, base[3]})
}

func mulVec4(a, b mgl32.Vec4) mgl32.Vec4 {
	return mgl32.Vec4{a[0] * b[0], a[1] * b[1], a[2] * b[2], a[3] * b[3]}
}

// describeMesh points the attribute slots of the bound vertex array at the
// interleaved layout of mesh.Mesh.
func describeMesh(ctx *softgl.Context) error {
	attribs := []struct {
		slot, size, offset int
	}{
		{slotPosition, 3, mesh.PositionOffset},
		{slotNormal, 3, mesh.NormalOffset},
		{slotUV, 2, mesh.UVOffset},
		{slotColor, 4, mesh.ColorOffset},
	}
	for _, a := range attribs {
		if err := ctx.VertexAttribPointer(a.slot, a.size, softgl.TypeFloat32, false, mesh.Stride, a.offset); err != nil {
			return err
		}
		if err := ctx.EnableVertexAttribArray(a.slot); err != nil {
			return err
		}
	}
	return nil
}
