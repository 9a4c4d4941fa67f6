package mesh

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// AABB is an axis-aligned bounding box. An empty box has Min > Max.
type AABB struct {
	Min, Max mgl32.Vec3
}

// EmptyAABB returns a box that contains nothing and absorbs the first
// point it is expanded by.
func EmptyAABB() AABB {
	inf := math32.Inf(1)
	return AABB{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

// Empty reports whether the box contains no point.
func (b AABB) Empty() bool {
	return b.Max[0] < b.Min[0] || b.Max[1] < b.Min[1] || b.Max[2] < b.Min[2]
}

// ExpandPoint returns the smallest box containing b and p.
func (b AABB) ExpandPoint(p mgl32.Vec3) AABB {
	for i := range p {
		b.Min[i] = math32.Min(b.Min[i], p[i])
		b.Max[i] = math32.Max(b.Max[i], p[i])
	}
	return b
}

// Union returns the smallest box containing b and o.
func (b AABB) Union(o AABB) AABB {
	if o.Empty() {
		return b
	}
	return b.ExpandPoint(o.Min).ExpandPoint(o.Max)
}

// Center returns the midpoint of the box.
func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Extents returns the half size of the box on each axis.
func (b AABB) Extents() mgl32.Vec3 {
	return b.Max.Sub(b.Min).Mul(0.5)
}

// Transform returns the box enclosing the eight transformed corners.
func (b AABB) Transform(m mgl32.Mat4) AABB {
	if b.Empty() {
		return b
	}
	out := EmptyAABB()
	for i := 0; i < 8; i++ {
		c := b.Min
		if i&1 != 0 {
			c[0] = b.Max[0]
		}
		if i&2 != 0 {
			c[1] = b.Max[1]
		}
		if i&4 != 0 {
			c[2] = b.Max[2]
		}
		out = out.ExpandPoint(mgl32.TransformCoordinate(c, m))
	}
	return out
}

// Frustum is the volume a view-projection matrix maps into the clip
// cube, stored as six inward-facing planes (a, b, c, d) with
// a·x + b·y + c·z + d >= 0 inside.
type Frustum struct {
	Planes [6]mgl32.Vec4 // left, right, bottom, top, near, far
}

// NewFrustum extracts the planes of viewProj, which maps world space to
// clip space with -w <= x, y, z <= w inside.
func NewFrustum(viewProj mgl32.Mat4) Frustum {
	r0, r1, r2, r3 := viewProj.Row(0), viewProj.Row(1), viewProj.Row(2), viewProj.Row(3)
	f := Frustum{Planes: [6]mgl32.Vec4{
		r3.Add(r0),
		r3.Sub(r0),
		r3.Add(r1),
		r3.Sub(r1),
		r3.Add(r2),
		r3.Sub(r2),
	}}
	for i, p := range f.Planes {
		if l := p.Vec3().Len(); l > 0 {
			f.Planes[i] = p.Mul(1 / l)
		}
	}
	return f
}

func distance(p mgl32.Vec4, x mgl32.Vec3) float32 {
	return p[0]*x[0] + p[1]*x[1] + p[2]*x[2] + p[3]
}

// ContainsPoint reports whether x lies inside every plane.
func (f Frustum) ContainsPoint(x mgl32.Vec3) bool {
	for _, p := range f.Planes {
		if distance(p, x) < 0 {
			return false
		}
	}
	return true
}

// IntersectsSphere reports whether a sphere may overlap the frustum. It
// errs towards true near the frustum corners.
func (f Frustum) IntersectsSphere(center mgl32.Vec3, radius float32) bool {
	for _, p := range f.Planes {
		if distance(p, center) < -radius {
			return false
		}
	}
	return true
}

// IntersectsAABB reports whether a box may overlap the frustum: it is
// rejected only when it lies entirely behind one plane.
func (f Frustum) IntersectsAABB(b AABB) bool {
	if b.Empty() {
		return false
	}
	for _, p := range f.Planes {
		// The corner furthest along the plane normal.
		var c mgl32.Vec3
		for i := 0; i < 3; i++ {
			if p[i] >= 0 {
				c[i] = b.Max[i]
			} else {
				c[i] = b.Min[i]
			}
		}
		if distance(p, c) < 0 {
			return false
		}
	}
	return true
}
