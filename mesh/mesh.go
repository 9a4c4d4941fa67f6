// Package mesh builds vertex and index streams in the layout softgl
// vertex arrays read, and culls them against a view frustum before they
// are drawn.
//
// Streams are interleaved per vertex:
//
//	offset  0: position  3 × float32
//	offset 12: normal    3 × float32
//	offset 24: uv        2 × float32
//	offset 32: color     4 × float32
//
// Triangles wind counter-clockwise when seen from the side their normal
// points to.
package mesh

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Interleaved layout, in bytes.
const (
	PositionOffset = 0
	NormalOffset   = 12
	UVOffset       = 24
	ColorOffset    = 32
	Stride         = 48
)

// floatsPerVertex is Stride in float32 units.
const floatsPerVertex = Stride / 4

var (
	// ErrStreamLength is returned when the per-vertex streams differ in
	// length.
	ErrStreamLength = errors.New("mesh: attribute streams differ in length")

	// ErrIndexRange is returned when an index names a missing vertex or
	// does not fit the requested index width.
	ErrIndexRange = errors.New("mesh: index out of range")
)

// Mesh is an indexed triangle list. Every stream holds one entry per
// vertex.
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Colors    []mgl32.Vec4
	Indices   []uint32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of indexed triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Validate checks that the streams agree in length and every index names
// a vertex.
func (m *Mesh) Validate() error {
	n := len(m.Positions)
	if len(m.Normals) != n || len(m.UVs) != n || len(m.Colors) != n {
		return fmt.Errorf("%w: %d positions, %d normals, %d uvs, %d colors",
			ErrStreamLength, n, len(m.Normals), len(m.UVs), len(m.Colors))
	}
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("%w: index %d is %d, %d vertices", ErrIndexRange, i, idx, n)
		}
	}
	return nil
}

// Interleaved returns the vertices in the interleaved layout.
func (m *Mesh) Interleaved() []float32 {
	out := make([]float32, 0, floatsPerVertex*m.VertexCount())
	for i, p := range m.Positions {
		out = append(out, p[:]...)
		out = append(out, m.Normals[i][:]...)
		out = append(out, m.UVs[i][:]...)
		out = append(out, m.Colors[i][:]...)
	}
	return out
}

// VertexBytes returns Interleaved encoded little-endian, ready for
// BufferData.
func (m *Mesh) VertexBytes() []byte {
	fs := m.Interleaved()
	b := make([]byte, 4*len(fs))
	for i, f := range fs {
		binary.LittleEndian.PutUint32(b[4*i:], math.Float32bits(f))
	}
	return b
}

// IndexBytes16 returns the indices as little-endian uint16.
func (m *Mesh) IndexBytes16() ([]byte, error) {
	b := make([]byte, 2*len(m.Indices))
	for i, idx := range m.Indices {
		if idx > math.MaxUint16 {
			return nil, fmt.Errorf("%w: index %d is %d, wider than 16 bits", ErrIndexRange, i, idx)
		}
		binary.LittleEndian.PutUint16(b[2*i:], uint16(idx))
	}
	return b, nil
}

// IndexBytes32 returns the indices as little-endian uint32.
func (m *Mesh) IndexBytes32() []byte {
	b := make([]byte, 4*len(m.Indices))
	for i, idx := range m.Indices {
		binary.LittleEndian.PutUint32(b[4*i:], idx)
	}
	return b
}

// Bounds returns the box enclosing every position.
func (m *Mesh) Bounds() AABB {
	b := EmptyAABB()
	for _, p := range m.Positions {
		b = b.ExpandPoint(p)
	}
	return b
}

// Append adds the vertices and triangles of o, rebasing its indices.
func (m *Mesh) Append(o *Mesh) {
	base := uint32(m.VertexCount())
	m.Positions = append(m.Positions, o.Positions...)
	m.Normals = append(m.Normals, o.Normals...)
	m.UVs = append(m.UVs, o.UVs...)
	m.Colors = append(m.Colors, o.Colors...)
	for _, idx := range o.Indices {
		m.Indices = append(m.Indices, base+idx)
	}
}

// Transform returns a copy with positions moved by model and normals by
// its inverse transpose.
func (m *Mesh) Transform(model mgl32.Mat4) *Mesh {
	normal := model.Mat3().Inv().Transpose()
	out := &Mesh{
		Positions: make([]mgl32.Vec3, len(m.Positions)),
		Normals:   make([]mgl32.Vec3, len(m.Normals)),
		UVs:       append([]mgl32.Vec2(nil), m.UVs...),
		Colors:    append([]mgl32.Vec4(nil), m.Colors...),
		Indices:   append([]uint32(nil), m.Indices...),
	}
	for i, p := range m.Positions {
		out.Positions[i] = mgl32.TransformCoordinate(p, model)
	}
	for i, n := range m.Normals {
		out.Normals[i] = normal.Mul3x1(n).Normalize()
	}
	return out
}
