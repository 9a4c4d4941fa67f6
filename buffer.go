package softgl

import (
	"errors"

	"github.com/gogpu/softgl/internal/bytebuf"
)

// BufferTarget names a buffer binding point.
type BufferTarget uint8

const (
	// ArrayBuffer is the source for VertexAttribPointer.
	ArrayBuffer BufferTarget = iota + 1

	// ElementArrayBuffer holds the indices of DrawElements. The binding is
	// recorded on the bound vertex array.
	ElementArrayBuffer
)

// String returns a string representation of the target.
func (t BufferTarget) String() string {
	switch t {
	case ArrayBuffer:
		return "ArrayBuffer"
	case ElementArrayBuffer:
		return "ElementArrayBuffer"
	default:
		return "Unknown"
	}
}

type bufferObject struct {
	data *bytebuf.Buffer
}

// CreateBuffer returns a new empty buffer.
func (c *Context) CreateBuffer() (Handle, error) {
	if err := c.live("CreateBuffer"); err != nil {
		return 0, err
	}
	return newHandle(c, "CreateBuffer", &c.buffers, &bufferObject{data: bytebuf.New(0)})
}

// DeleteBuffer releases a buffer. Bindings that name it are left
// dangling and read as unbound.
func (c *Context) DeleteBuffer(h Handle) error {
	if err := c.live("DeleteBuffer"); err != nil {
		return err
	}
	b, ok := c.buffers.remove(h)
	if !ok {
		return c.fail("DeleteBuffer", ErrInvalidHandle, "handle", h)
	}
	b.data.Release()
	return nil
}

// BindBuffer binds a buffer, or 0 to unbind, to a target.
func (c *Context) BindBuffer(target BufferTarget, h Handle) error {
	if err := c.live("BindBuffer"); err != nil {
		return err
	}
	if h != 0 && c.buffers.get(h) == nil {
		return c.fail("BindBuffer", ErrInvalidHandle, "handle", h)
	}
	switch target {
	case ArrayBuffer:
		c.arrayBuffer = h
	case ElementArrayBuffer:
		if vao := c.vertexArrays.get(c.vertexArray); vao != nil {
			vao.elementBuffer = h
		} else {
			c.elementBuffer = h
		}
	default:
		return c.fail("BindBuffer", ErrInvalidEnum, "target", target)
	}
	return nil
}

// boundBuffer resolves the buffer bound to target. Dangling bindings
// resolve to nil.
func (c *Context) boundBuffer(target BufferTarget) (*bufferObject, error) {
	switch target {
	case ArrayBuffer:
		return c.buffers.get(c.arrayBuffer), nil
	case ElementArrayBuffer:
		return c.buffers.get(c.boundElementBuffer()), nil
	}
	return nil, ErrInvalidEnum
}

func (c *Context) boundElementBuffer() Handle {
	if vao := c.vertexArrays.get(c.vertexArray); vao != nil {
		return vao.elementBuffer
	}
	return c.elementBuffer
}

// BufferData replaces the contents of the buffer bound to target with a
// copy of data.
func (c *Context) BufferData(target BufferTarget, data []byte) error {
	if err := c.live("BufferData"); err != nil {
		return err
	}
	b, err := c.boundBuffer(target)
	if err != nil {
		return c.fail("BufferData", err, "target", target)
	}
	if b == nil {
		return c.fail("BufferData", ErrNoBuffer, "target", target)
	}
	b.data.Upload(data)
	return nil
}

// BufferSubData overwrites part of the buffer bound to target starting at
// offset. The range must lie within the current contents.
func (c *Context) BufferSubData(target BufferTarget, offset int, data []byte) error {
	if err := c.live("BufferSubData"); err != nil {
		return err
	}
	b, err := c.boundBuffer(target)
	if err != nil {
		return c.fail("BufferSubData", err, "target", target)
	}
	if b == nil {
		return c.fail("BufferSubData", ErrNoBuffer, "target", target)
	}
	if err := b.data.UploadAt(offset, data); err != nil {
		if errors.Is(err, bytebuf.ErrOutOfRange) || errors.Is(err, bytebuf.ErrNegative) {
			err = errors.Join(ErrInvalidValue, err)
		}
		return c.fail("BufferSubData", err, "offset", offset, "size", len(data))
	}
	return nil
}

// BufferSize returns the size in bytes of a buffer's contents.
func (c *Context) BufferSize(h Handle) (int, error) {
	if err := c.live("BufferSize"); err != nil {
		return 0, err
	}
	b := c.buffers.get(h)
	if b == nil {
		return 0, c.fail("BufferSize", ErrInvalidHandle, "handle", h)
	}
	return b.data.Len(), nil
}
