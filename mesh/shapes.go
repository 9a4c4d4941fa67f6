package mesh

import (
	"github.com/go-gl/mathgl/mgl32"
)

// White is the default vertex color.
var White = mgl32.Vec4{1, 1, 1, 1}

// FaceColors colors the faces of Cube in the order +X, -X, +Y, -Y, +Z, -Z.
var FaceColors = [6]mgl32.Vec4{
	{0.90, 0.30, 0.25, 1},
	{0.25, 0.75, 0.35, 1},
	{0.25, 0.45, 0.90, 1},
	{0.95, 0.80, 0.25, 1},
	{0.70, 0.35, 0.85, 1},
	{0.25, 0.80, 0.85, 1},
}

// quad appends a rectangle centered at c spanning ±u and ±v. The face
// normal is u × v and the triangles wind counter-clockwise around it.
// Texture v runs from 0 at the +v edge to 1 at the -v edge.
func (m *Mesh) quad(c, u, v mgl32.Vec3, color mgl32.Vec4) {
	n := u.Cross(v).Normalize()
	base := uint32(m.VertexCount())
	corners := [4]struct {
		p  mgl32.Vec3
		uv mgl32.Vec2
	}{
		{c.Sub(u).Sub(v), mgl32.Vec2{0, 1}},
		{c.Add(u).Sub(v), mgl32.Vec2{1, 1}},
		{c.Add(u).Add(v), mgl32.Vec2{1, 0}},
		{c.Sub(u).Add(v), mgl32.Vec2{0, 0}},
	}
	for _, k := range corners {
		m.Positions = append(m.Positions, k.p)
		m.Normals = append(m.Normals, n)
		m.UVs = append(m.UVs, k.uv)
		m.Colors = append(m.Colors, color)
	}
	m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
}

// Cube returns an axis-aligned cube of edge length size centered at the
// origin: 24 vertices, so each face has its own normal, UVs and color
// from FaceColors.
func Cube(size float32) *Mesh {
	h := size / 2
	m := &Mesh{}
	faces := [6]struct{ n, u, v mgl32.Vec3 }{
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	}
	for i, f := range faces {
		m.quad(f.n.Mul(h), f.u.Mul(h), f.v.Mul(h), FaceColors[i])
	}
	return m
}

// Plane returns a width × depth rectangle in the XZ plane at y = 0,
// facing +Y.
func Plane(width, depth float32, color mgl32.Vec4) *Mesh {
	m := &Mesh{}
	m.quad(mgl32.Vec3{}, mgl32.Vec3{width / 2, 0, 0}, mgl32.Vec3{0, 0, -depth / 2}, color)
	return m
}

// Quad returns a 2 × 2 rectangle in the XY plane facing +Z: with an
// identity transform it covers the whole viewport.
func Quad(color mgl32.Vec4) *Mesh {
	m := &Mesh{}
	m.quad(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}, color)
	return m
}
