package bytebuf

import (
	"encoding/binary"
	"fmt"
)

// Cursor validates offsets against a byte span before every read.
// The zero value reads from an empty span and fails every access.
type Cursor struct {
	data []byte
}

// NewCursor wraps an existing byte span without copying it.
func NewCursor(data []byte) Cursor {
	return Cursor{data: data}
}

// Len returns the number of readable bytes.
func (c Cursor) Len() int { return len(c.data) }

// Span returns n bytes starting at offset.
func (c Cursor) Span(offset, n int) ([]byte, error) {
	if offset < 0 || n < 0 {
		return nil, ErrNegative
	}
	end := offset + n
	if end > len(c.data) || end < offset {
		return nil, fmt.Errorf("%w: read [%d,%d) from %d bytes", ErrOutOfRange, offset, end, len(c.data))
	}
	return c.data[offset:end:end], nil
}

// Uint8 reads one byte at offset.
func (c Cursor) Uint8(offset int) (uint8, error) {
	p, err := c.Span(offset, 1)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

// Uint16 reads a little-endian uint16 at offset.
func (c Cursor) Uint16(offset int) (uint16, error) {
	p, err := c.Span(offset, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(p), nil
}

// Uint32 reads a little-endian uint32 at offset.
func (c Cursor) Uint32(offset int) (uint32, error) {
	p, err := c.Span(offset, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(p), nil
}
