package raster

import (
	"errors"

	"github.com/chewxy/math32"
)

// SubpixelBits is the fixed-point precision vertex positions are snapped
// to before edge evaluation. Snapping makes edge functions exact integers,
// so two triangles sharing an edge evaluate it to exactly opposite values.
const SubpixelBits = 8

const (
	subpixelScale = 1 << SubpixelBits
	halfPixel     = subpixelScale / 2

	// GuardBand bounds screen coordinates (in pixels) so fixed-point edge
	// products stay within int64.
	GuardBand = 1 << 20
)

// Reasons a triangle produces no coverage.
var (
	// ErrDegenerate is returned for zero-area triangles.
	ErrDegenerate = errors.New("raster: degenerate triangle")

	// ErrOutsideGuardBand is returned when a vertex lies too far off-screen
	// (or at infinity) to be snapped.
	ErrOutsideGuardBand = errors.New("raster: vertex outside guard band")

	// ErrOffscreen is returned when the clamped bounding box is empty.
	ErrOffscreen = errors.New("raster: triangle outside target")
)

// Vertex is a post-viewport vertex: pixel coordinates with the origin at
// the top-left corner, window depth, and 1/w of the clip position.
type Vertex struct {
	X, Y float32
	Z    float32
	InvW float32
}

// Rect is a pixel rectangle [MinX,MaxX) x [MinY,MaxY).
type Rect struct {
	MinX, MinY, MaxX, MaxY int
}

// Empty reports whether r contains no pixels.
func (r Rect) Empty() bool {
	return r.MinX >= r.MaxX || r.MinY >= r.MaxY
}

// Intersect returns the overlap of r and o.
func (r Rect) Intersect(o Rect) Rect {
	return Rect{
		MinX: max(r.MinX, o.MinX),
		MinY: max(r.MinY, o.MinY),
		MaxX: min(r.MaxX, o.MaxX),
		MaxY: min(r.MaxY, o.MaxY),
	}
}

type point struct{ x, y int64 }

// edge holds an edge function in fixed point:
// E(p) = a*p.x + b*p.y + c, positive inside after orientation.
type edge struct {
	a, b, c   int64
	inclusive bool
}

func newEdge(p0, p1 point, sign int64) edge {
	dx := p1.x - p0.x
	dy := p1.y - p0.y
	e := edge{
		a: -dy * sign,
		b: dx * sign,
		c: (dy*p0.x - dx*p0.y) * sign,
	}
	// Top-left rule in a y-down target: the inward normal is (a, b).
	// Left edges have a > 0; top edges are horizontal with b > 0.
	e.inclusive = e.a > 0 || (e.a == 0 && e.b > 0)
	return e
}

func (e *edge) eval(x, y int64) int64 {
	return e.a*x + e.b*y + e.c
}

func (e *edge) covers(v int64) bool {
	return v > 0 || (v == 0 && e.inclusive)
}

// Triangle is a set-up triangle ready for traversal.
type Triangle struct {
	v     [3]Vertex
	edges [3]edge // edges[i] is opposite vertex i
	area  int64   // twice the oriented area, positive, in subpixel units²
	bbox  Rect
}

func snap(v float32) (int64, bool) {
	if !(math32.Abs(v) < GuardBand) {
		return 0, false
	}
	return int64(math32.Round(v * subpixelScale)), true
}

// Setup snaps the three vertices, computes the edge functions and the
// bounding box clamped to clip. It returns ErrDegenerate for zero-area
// triangles, ErrOutsideGuardBand for unsnappable vertices and
// ErrOffscreen when nothing of the triangle lies inside clip.
func Setup(v0, v1, v2 Vertex, clip Rect) (*Triangle, error) {
	var p [3]point
	for i, v := range [3]Vertex{v0, v1, v2} {
		x, okx := snap(v.X)
		y, oky := snap(v.Y)
		if !okx || !oky {
			return nil, ErrOutsideGuardBand
		}
		p[i] = point{x, y}
	}

	area := (p[1].x-p[0].x)*(p[2].y-p[0].y) - (p[1].y-p[0].y)*(p[2].x-p[0].x)
	if area == 0 {
		return nil, ErrDegenerate
	}
	sign := int64(1)
	if area < 0 {
		sign = -1
	}

	t := &Triangle{
		v:    [3]Vertex{v0, v1, v2},
		area: area * sign,
	}
	t.edges[0] = newEdge(p[1], p[2], sign)
	t.edges[1] = newEdge(p[2], p[0], sign)
	t.edges[2] = newEdge(p[0], p[1], sign)

	minX := min(p[0].x, p[1].x, p[2].x)
	maxX := max(p[0].x, p[1].x, p[2].x)
	minY := min(p[0].y, p[1].y, p[2].y)
	maxY := max(p[0].y, p[1].y, p[2].y)

	// Pixel x has its center at x*scale + half; include every center in
	// [min, max].
	box := Rect{
		MinX: int(floorDiv(minX-halfPixel+subpixelScale-1, subpixelScale)),
		MinY: int(floorDiv(minY-halfPixel+subpixelScale-1, subpixelScale)),
		MaxX: int(floorDiv(maxX-halfPixel, subpixelScale)) + 1,
		MaxY: int(floorDiv(maxY-halfPixel, subpixelScale)) + 1,
	}
	t.bbox = box.Intersect(clip)
	if t.bbox.Empty() {
		return nil, ErrOffscreen
	}
	return t, nil
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// SignedArea returns twice the area of the triangle (a, b, c) in pixels²,
// signed by the winding as submitted: positive for clockwise order in the
// y-down target.
func SignedArea(a, b, c Vertex) float32 {
	ax, ay := float64(a.X), float64(a.Y)
	return float32((float64(b.X)-ax)*(float64(c.Y)-ay) - (float64(b.Y)-ay)*(float64(c.X)-ax))
}

// Bounds returns the clamped pixel bounding box.
func (t *Triangle) Bounds() Rect {
	return t.bbox
}

// Vertices returns the vertices as passed to Setup.
func (t *Triangle) Vertices() [3]Vertex {
	return t.v
}

// Fragment is one covered pixel of a triangle.
type Fragment struct {
	X, Y int

	// Bary holds the screen-space barycentric coordinates of the pixel
	// center.
	Bary [3]float32

	// Weights holds the perspective-correct interpolation weights.
	Weights [3]float32

	// Z is the window depth, interpolated with Weights.
	Z float32

	// W is the interpolated clip-space w.
	W float32
}

// Rasterize calls fn for every pixel whose center is covered by t.
// Pixels on a shared edge are assigned to exactly one of the two
// triangles by the top-left rule.
func (t *Triangle) Rasterize(fn func(f *Fragment)) int {
	var f Fragment
	invW := [3]float32{t.v[0].InvW, t.v[1].InvW, t.v[2].InvW}
	z := [3]float32{t.v[0].Z, t.v[1].Z, t.v[2].Z}
	inv := 1 / float64(t.area)
	covered := 0

	for y := t.bbox.MinY; y < t.bbox.MaxY; y++ {
		py := int64(y)*subpixelScale + halfPixel
		for x := t.bbox.MinX; x < t.bbox.MaxX; x++ {
			px := int64(x)*subpixelScale + halfPixel
			e0 := t.edges[0].eval(px, py)
			if !t.edges[0].covers(e0) {
				continue
			}
			e1 := t.edges[1].eval(px, py)
			if !t.edges[1].covers(e1) {
				continue
			}
			e2 := t.edges[2].eval(px, py)
			if !t.edges[2].covers(e2) {
				continue
			}

			f.X, f.Y = x, y
			f.Bary = [3]float32{float32(float64(e0) * inv), float32(float64(e1) * inv), float32(float64(e2) * inv)}
			f.Weights, f.W = PcerpW(f.Bary, invW)
			f.Z = Lerp3(f.Weights, z)
			fn(&f)
			covered++
		}
	}
	return covered
}
