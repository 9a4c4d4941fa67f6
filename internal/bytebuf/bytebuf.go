// Package bytebuf provides owned byte storage for vertex, index and pixel
// data, plus a bounds-checked cursor for typed reads.
package bytebuf

import (
	"errors"
	"fmt"
)

// Common errors for buffer operations.
var (
	// ErrOutOfRange is returned when a read or write would cross the
	// buffer's fill length.
	ErrOutOfRange = errors.New("bytebuf: access out of range")

	// ErrNegative is returned for negative offsets or lengths.
	ErrNegative = errors.New("bytebuf: negative offset or length")
)

// Buffer is an owned, resizable block of raw bytes.
//
// The fill length is len(Bytes()). A Buffer never aliases caller memory: Upload copies.
type Buffer struct {
	data []byte
}

// New creates an empty buffer with the given capacity.
func New(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{data: make([]byte, 0, capacity)}
}

// Len returns the current fill length in bytes.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.data)
}

// Bytes returns the filled portion of the buffer. The slice is owned by
// the buffer and must not be retained across Upload calls.
func (b *Buffer) Bytes() []byte {
	if b == nil {
		return nil
	}
	return b.data
}

// Upload replaces the buffer contents with a copy of src.
// Storage is reused when the capacity suffices.
func (b *Buffer) Upload(src []byte) {
	if cap(b.data) < len(src) {
		b.data = make([]byte, len(src))
	} else {
		b.data = b.data[:len(src)]
	}
	copy(b.data, src)
}

// Resize sets the fill length to n, zeroing any newly exposed bytes.
func (b *Buffer) Resize(n int) error {
	if n < 0 {
		return ErrNegative
	}
	old := len(b.data)
	if cap(b.data) < n {
		grown := make([]byte, n)
		copy(grown, b.data)
		b.data = grown
		return nil
	}
	b.data = b.data[:n]
	if n > old {
		clear(b.data[old:n])
	}
	return nil
}

// UploadAt copies src into the buffer starting at offset.
// The write must fit within the current fill length.
func (b *Buffer) UploadAt(offset int, src []byte) error {
	if offset < 0 {
		return ErrNegative
	}
	if offset+len(src) > len(b.data) {
		return fmt.Errorf("%w: write [%d,%d) into %d bytes", ErrOutOfRange, offset, offset+len(src), len(b.data))
	}
	copy(b.data[offset:], src)
	return nil
}

// Release drops the storage.
func (b *Buffer) Release() {
	b.data = nil
}

// Cursor returns a read cursor over the filled bytes.
func (b *Buffer) Cursor() Cursor {
	return Cursor{data: b.Bytes()}
}
