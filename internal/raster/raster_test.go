package raster

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBarycentricAtVertices(t *testing.T) {
	a := mgl32.Vec2{1.3, 2.7}
	b := mgl32.Vec2{17.1, 4.2}
	c := mgl32.Vec2{5.5, 19.9}

	tests := []struct {
		name string
		p    mgl32.Vec2
		want mgl32.Vec3
	}{
		{"a", a, mgl32.Vec3{1, 0, 0}},
		{"b", b, mgl32.Vec3{0, 1, 0}},
		{"c", c, mgl32.Vec3{0, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Barycentric(tt.p, a, b, c)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBarycentricInterior(t *testing.T) {
	a := mgl32.Vec2{0, 0}
	b := mgl32.Vec2{4, 0}
	c := mgl32.Vec2{0, 4}

	got, ok := Barycentric(mgl32.Vec2{1, 1}, a, b, c)
	require.True(t, ok)
	assert.InDelta(t, 0.5, got[0], 1e-6)
	assert.InDelta(t, 0.25, got[1], 1e-6)
	assert.InDelta(t, 0.25, got[2], 1e-6)

	// Reversed winding yields the same weights.
	got, ok = Barycentric(mgl32.Vec2{1, 1}, a, c, b)
	require.True(t, ok)
	assert.InDelta(t, 0.5, got[0], 1e-6)
	assert.InDelta(t, 0.25, got[1], 1e-6)
}

func TestBarycentricDegenerate(t *testing.T) {
	got, ok := Barycentric(mgl32.Vec2{1, 1}, mgl32.Vec2{0, 0}, mgl32.Vec2{1, 1}, mgl32.Vec2{2, 2})
	assert.False(t, ok)
	assert.Equal(t, mgl32.Vec3{}, got)
}

func TestPcerpEqualWMatchesAffine(t *testing.T) {
	values := [3]float32{2, -7, 13}
	for _, w := range []float32{0.5, 1, 3, 250} {
		invW := [3]float32{1 / w, 1 / w, 1 / w}
		for _, bary := range [][3]float32{{1, 0, 0}, {0.2, 0.3, 0.5}, {0.6, 0.1, 0.3}} {
			affine := Lerp3(bary, values)
			weights, _ := PcerpW(bary, invW)
			assert.InDelta(t, affine, Lerp3(weights, values), 1e-4, "w=%v bary=%v", w, bary)
		}
	}
}

func TestPcerpWeightsFavorNearVertex(t *testing.T) {
	bary := [3]float32{0.5, 0.5, 0}
	weights, w := PcerpW(bary, [3]float32{1, 0.25, 1})
	assert.InDelta(t, 0.8, weights[0], 1e-6)
	assert.InDelta(t, 0.2, weights[1], 1e-6)
	assert.InDelta(t, 1.6, w, 1e-6)
}

func TestPcerpWZeroSum(t *testing.T) {
	bary := [3]float32{0.2, 0.3, 0.5}
	weights, w := PcerpW(bary, [3]float32{})
	assert.Equal(t, bary, weights)
	assert.Zero(t, w)
}

func full(w, h int) Rect { return Rect{0, 0, w, h} }

func TestSetupErrors(t *testing.T) {
	clip := full(8, 8)

	_, err := Setup(Vertex{X: 1, Y: 1}, Vertex{X: 2, Y: 2}, Vertex{X: 3, Y: 3}, clip)
	assert.ErrorIs(t, err, ErrDegenerate)

	_, err = Setup(Vertex{X: 1e9, Y: 1}, Vertex{X: 2, Y: 2}, Vertex{X: 3, Y: 5}, clip)
	assert.ErrorIs(t, err, ErrOutsideGuardBand)

	_, err = Setup(Vertex{X: 20, Y: 20}, Vertex{X: 30, Y: 20}, Vertex{X: 20, Y: 30}, clip)
	assert.ErrorIs(t, err, ErrOffscreen)
}

func TestBoundsClampedToTarget(t *testing.T) {
	tri, err := Setup(Vertex{X: -10, Y: -10}, Vertex{X: 50, Y: -10}, Vertex{X: -10, Y: 50}, full(8, 6))
	require.NoError(t, err)
	assert.Equal(t, Rect{0, 0, 8, 6}, tri.Bounds())
}

func coverage(t *testing.T, w, h int, tris ...[3]Vertex) []int {
	t.Helper()
	counts := make([]int, w*h)
	for _, v := range tris {
		tri, err := Setup(v[0], v[1], v[2], full(w, h))
		if err != nil {
			continue
		}
		tri.Rasterize(func(f *Fragment) {
			counts[f.Y*w+f.X]++
		})
	}
	return counts
}

func TestFullscreenQuadCoversEveryPixelOnce(t *testing.T) {
	const w, h = 16, 12
	v00 := Vertex{X: 0, Y: 0}
	v10 := Vertex{X: w, Y: 0}
	v01 := Vertex{X: 0, Y: h}
	v11 := Vertex{X: w, Y: h}

	counts := coverage(t, w, h, [3]Vertex{v00, v10, v11}, [3]Vertex{v00, v11, v01})
	for i, c := range counts {
		assert.Equal(t, 1, c, "pixel (%d,%d)", i%w, i/w)
	}
}

func TestSharedEdgeExactlyOnceBothWindings(t *testing.T) {
	const w, h = 9, 9
	// The diagonal passes exactly through pixel centers.
	a := Vertex{X: 0.5, Y: 0.5}
	b := Vertex{X: 8.5, Y: 0.5}
	c := Vertex{X: 8.5, Y: 8.5}
	d := Vertex{X: 0.5, Y: 8.5}

	for _, tris := range [][2][3]Vertex{
		{{a, b, c}, {a, c, d}},
		{{a, c, b}, {a, d, c}},
		{{c, a, b}, {d, c, a}},
	} {
		counts := coverage(t, w, h, tris[0], tris[1])
		for i, n := range counts {
			assert.LessOrEqual(t, n, 1, "pixel (%d,%d) covered twice", i%w, i/w)
		}
		// Diagonal centers are covered by exactly one triangle.
		for k := 0; k < 8; k++ {
			assert.Equal(t, 1, counts[k*w+k], "diagonal pixel %d", k)
		}
	}
}

func TestRasterizeInterpolatesDepth(t *testing.T) {
	tri, err := Setup(
		Vertex{X: 0, Y: 0, Z: 0, InvW: 1},
		Vertex{X: 8, Y: 0, Z: 1, InvW: 1},
		Vertex{X: 0, Y: 8, Z: 1, InvW: 1},
		full(8, 8),
	)
	require.NoError(t, err)

	n := tri.Rasterize(func(f *Fragment) {
		wantZ := (float32(f.X) + 0.5 + float32(f.Y) + 0.5) / 8
		assert.InDelta(t, wantZ, f.Z, 1e-5)
		assert.InDelta(t, 1, f.Bary[0]+f.Bary[1]+f.Bary[2], 1e-5)
		assert.InDelta(t, 1, f.W, 1e-5)
	})
	// Centers on the hypotenuse belong to the neighbor (bottom-right edge).
	assert.Equal(t, 28, n)
}

func TestRasterizeDepthIsPerspectiveCorrect(t *testing.T) {
	v := [3]Vertex{
		{X: 0, Y: 0, Z: 0.2, InvW: 1},
		{X: 16, Y: 0, Z: 0.9, InvW: 0.25},
		{X: 0, Y: 16, Z: 0.5, InvW: 1},
	}
	tri, err := Setup(v[0], v[1], v[2], full(16, 16))
	require.NoError(t, err)

	invW := [3]float32{v[0].InvW, v[1].InvW, v[2].InvW}
	z := [3]float32{v[0].Z, v[1].Z, v[2].Z}
	var farthest float32
	tri.Rasterize(func(f *Fragment) {
		weights, _ := PcerpW(f.Bary, invW)
		assert.InDelta(t, Lerp3(weights, z), f.Z, 1e-5, "pixel (%d,%d)", f.X, f.Y)
		farthest = max(farthest, math32.Abs(f.Z-Lerp3(f.Bary, z)))
	})
	assert.Greater(t, farthest, float32(0.05), "unequal w must bend depth away from the affine value")
}

func TestSignedAreaFollowsWinding(t *testing.T) {
	a, b, c := Vertex{X: 0, Y: 0}, Vertex{X: 4, Y: 0}, Vertex{X: 0, Y: 4}
	assert.InDelta(t, 16, SignedArea(a, b, c), 1e-6)
	assert.InDelta(t, -16, SignedArea(a, c, b), 1e-6)
	assert.Zero(t, SignedArea(a, b, Vertex{X: 8, Y: 0}))
}

func TestLine(t *testing.T) {
	var xs []int
	n := Line(Vertex{X: 0.5, Y: 2.5}, Vertex{X: 5.5, Y: 2.5}, full(4, 4), func(x, y int, _ float32) {
		assert.Equal(t, 2, y)
		xs = append(xs, x)
	})
	assert.Equal(t, 4, n)
	assert.Equal(t, []int{0, 1, 2, 3}, xs)

	var ts []float32
	Line(Vertex{X: 0.5, Y: 0.5}, Vertex{X: 0.5, Y: 2.5}, full(4, 4), func(_, _ int, t float32) {
		ts = append(ts, t)
	})
	assert.Equal(t, []float32{0, 0.5, 1}, ts)
}

func TestPoint(t *testing.T) {
	hit := 0
	assert.Equal(t, 1, Point(Vertex{X: 2.9, Y: 0.1}, full(4, 4), func(x, y int) {
		assert.Equal(t, 2, x)
		assert.Equal(t, 0, y)
		hit++
	}))
	assert.Equal(t, 0, Point(Vertex{X: -0.1, Y: 0}, full(4, 4), func(int, int) { hit++ }))
	assert.Equal(t, 1, hit)
}

func BenchmarkRasterize(b *testing.B) {
	tri, _ := Setup(Vertex{X: 0, Y: 0, InvW: 1}, Vertex{X: 256, Y: 0, InvW: 1}, Vertex{X: 0, Y: 256, InvW: 1}, full(256, 256))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tri.Rasterize(func(*Fragment) {})
	}
}
