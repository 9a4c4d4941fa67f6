package softgl

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/softgl/internal/bytebuf"
)

// Stats counts the work done by the most recent draw call.
type Stats struct {
	VerticesShaded      int
	TrianglesSubmitted  int
	TrianglesCulled     int
	TrianglesDegenerate int

	// TrianglesClipped counts triangles rejected for a vertex with w <= 0,
	// a vertex outside the guard band, or no overlap with the viewport.
	TrianglesClipped int

	TrianglesRasterized int
	FragmentsShaded     int
	FragmentsDiscarded  int

	// FragmentsDepthClipped counts fragments whose window depth lies
	// outside [0,1].
	FragmentsDepthClipped int

	FragmentsDepthFailed int
	FragmentsWritten     int
}

// Stats returns the counters of the most recent draw call.
func (c *Context) Stats() Stats {
	return c.stats
}

// DrawArrays draws count vertices starting at first as a triangle list.
// Trailing vertices that do not form a triangle are ignored.
func (c *Context) DrawArrays(topology gputypes.PrimitiveTopology, first, count int) error {
	const op = "DrawArrays"
	if err := c.live(op); err != nil {
		return err
	}
	if first < 0 || count < 0 {
		return c.fail(op, ErrInvalidValue, "first", first, "count", count)
	}
	return c.draw(op, topology, func() ([]int, error) {
		idx := make([]int, count)
		for i := range idx {
			idx[i] = first + i
		}
		return idx, nil
	})
}

// DrawElements draws count indices of the element buffer bound to the
// current vertex array, read from byte offset, as a triangle list.
func (c *Context) DrawElements(topology gputypes.PrimitiveTopology, count int, format gputypes.IndexFormat, offset int) error {
	const op = "DrawElements"
	if err := c.live(op); err != nil {
		return err
	}
	if count < 0 || offset < 0 {
		return c.fail(op, ErrInvalidValue, "count", count, "offset", offset)
	}
	var size int
	switch format {
	case gputypes.IndexFormatUint16:
		size = 2
	case gputypes.IndexFormatUint32:
		size = 4
	default:
		return c.fail(op, ErrInvalidEnum, "indexFormat", format)
	}
	return c.draw(op, topology, func() ([]int, error) {
		b := c.buffers.get(c.boundElementBuffer())
		if b == nil || b.data.Len() == 0 {
			return nil, ErrEmptyIndexBuffer
		}
		return readIndices(b.data.Cursor(), count, size, offset)
	})
}

func readIndices(cur bytebuf.Cursor, count, size, offset int) ([]int, error) {
	idx := make([]int, count)
	for i := range idx {
		at := offset + i*size
		var v uint32
		var err error
		if size == 2 {
			var v16 uint16
			v16, err = cur.Uint16(at)
			v = uint32(v16)
		} else {
			v, err = cur.Uint32(at)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: index %d: %w", ErrIndexOutOfRange, i, err)
		}
		idx[i] = int(v)
	}
	return idx, nil
}

// draw validates the bound state, resolves indices and runs the
// pipeline. Nothing is written unless every check and every index read
// succeeds.
func (c *Context) draw(op string, topology gputypes.PrimitiveTopology, indices func() ([]int, error)) error {
	c.stats = Stats{}
	if topology != gputypes.PrimitiveTopologyTriangleList {
		return c.fail(op, ErrUnsupportedPrimitive, "topology", topology)
	}
	prog := c.currentProgram()
	if prog == nil || prog.shader == nil {
		return c.fail(op, ErrNoProgram)
	}
	va := c.vertexArrays.get(c.vertexArray)
	if va == nil {
		return c.fail(op, ErrNoVertexArray)
	}
	rt, err := c.target(op)
	if err != nil {
		return err
	}
	idx, err := indices()
	if err != nil {
		return c.fail(op, err)
	}
	if len(idx) < 3 {
		return nil
	}

	d := c.newDrawCall(prog, va, rt)
	if err := d.run(idx[:len(idx)-len(idx)%3]); err != nil {
		return c.fail(op, err)
	}
	c.log.Debug("softgl: draw",
		"op", op,
		"vertices", c.stats.VerticesShaded,
		"triangles", c.stats.TrianglesRasterized,
		"culled", c.stats.TrianglesCulled,
		"degenerate", c.stats.TrianglesDegenerate,
		"clipped", c.stats.TrianglesClipped,
		"fragments", c.stats.FragmentsShaded,
		"written", c.stats.FragmentsWritten)
	return nil
}
