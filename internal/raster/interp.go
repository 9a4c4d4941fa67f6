// Package raster implements triangle, line and point scan conversion for
// the software pipeline, together with the barycentric and
// perspective-correct interpolation primitives it relies on.
package raster

import "github.com/go-gl/mathgl/mgl32"

// Barycentric returns the barycentric coordinates of p with respect to
// the triangle (a, b, c).
//
// A point equal to a vertex yields the exact one-hot vector for that
// vertex. For a degenerate (zero-area) triangle the zero vector is
// returned with ok set to false.
func Barycentric(p, a, b, c mgl32.Vec2) (l mgl32.Vec3, ok bool) {
	ax, ay := float64(a[0]), float64(a[1])
	bx, by := float64(b[0]), float64(b[1])
	cx, cy := float64(c[0]), float64(c[1])
	px, py := float64(p[0]), float64(p[1])

	area := (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
	if area == 0 {
		return mgl32.Vec3{}, false
	}
	switch p {
	case a:
		return mgl32.Vec3{1, 0, 0}, true
	case b:
		return mgl32.Vec3{0, 1, 0}, true
	case c:
		return mgl32.Vec3{0, 0, 1}, true
	}
	la := ((cx-bx)*(py-by) - (cy-by)*(px-bx)) / area
	lb := ((ax-cx)*(py-cy) - (ay-cy)*(px-cx)) / area
	return mgl32.Vec3{float32(la), float32(lb), float32(1 - la - lb)}, true
}

// PcerpW converts screen-space barycentric coordinates into
// perspective-correct weights.
//
// invW holds 1/w of each vertex's clip position. The returned weights sum
// to one; w is the interpolated clip-space w, 1 / Σ bary_i*invW_i.
// When every invW is equal the weights equal bary.
func PcerpW(bary, invW [3]float32) (weights [3]float32, w float32) {
	d0 := bary[0] * invW[0]
	d1 := bary[1] * invW[1]
	d2 := bary[2] * invW[2]
	sum := d0 + d1 + d2
	if sum == 0 {
		return bary, 0
	}
	w = 1 / sum
	return [3]float32{d0 * w, d1 * w, d2 * w}, w
}

// Lerp3 returns the weighted sum Σ weights_i * v_i.
func Lerp3(weights, v [3]float32) float32 {
	return weights[0]*v[0] + weights[1]*v[1] + weights[2]*v[2]
}
