package raster

import "github.com/chewxy/math32"

// Line calls fn for each pixel along the segment from a to b using a DDA
// that steps one pixel along the major axis. t is the screen-space
// parameter of the pixel (0 at a, 1 at b). Pixels outside clip are
// skipped. Returns the number of pixels visited.
func Line(a, b Vertex, clip Rect, fn func(x, y int, t float32)) int {
	if !finite(a.X) || !finite(a.Y) || !finite(b.X) || !finite(b.Y) {
		return 0
	}
	dx := b.X - a.X
	dy := b.Y - a.Y
	steps := int(math32.Ceil(math32.Max(math32.Abs(dx), math32.Abs(dy))))
	if steps > 2*GuardBand {
		return 0
	}
	if steps == 0 {
		return Point(a, clip, func(x, y int) { fn(x, y, 0) })
	}

	n := 0
	inv := 1 / float32(steps)
	for i := 0; i <= steps; i++ {
		t := float32(i) * inv
		x := int(math32.Floor(a.X + dx*t))
		y := int(math32.Floor(a.Y + dy*t))
		if x < clip.MinX || x >= clip.MaxX || y < clip.MinY || y >= clip.MaxY {
			continue
		}
		fn(x, y, t)
		n++
	}
	return n
}

// Point calls fn for the pixel containing v, if it lies inside clip.
func Point(v Vertex, clip Rect, fn func(x, y int)) int {
	if !finite(v.X) || !finite(v.Y) {
		return 0
	}
	x := int(math32.Floor(v.X))
	y := int(math32.Floor(v.Y))
	if x < clip.MinX || x >= clip.MaxX || y < clip.MinY || y >= clip.MaxY {
		return 0
	}
	fn(x, y)
	return 1
}

func finite(v float32) bool {
	return math32.Abs(v) < GuardBand
}
