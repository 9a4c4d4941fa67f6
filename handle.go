package softgl

import "math"

// Handle names one live object of one kind. Handle 0 is reserved: it means
// "unbound", and for framebuffers it names the default framebuffer.
type Handle uint32

// table owns the objects of one kind. Handles come from a counter that
// only grows, so a handle is never reused, even after deletion. Once the
// counter reaches the largest Handle, create fails.
type table[T any] struct {
	next Handle
	objs map[Handle]*T
}

func newTable[T any]() table[T] {
	return table[T]{objs: make(map[Handle]*T)}
}

func (t *table[T]) create(obj *T) (Handle, bool) {
	if t.next == math.MaxUint32 {
		return 0, false
	}
	t.next++
	t.objs[t.next] = obj
	return t.next, true
}

// newHandle stores obj in t and reports exhaustion as an op failure.
func newHandle[T any](c *Context, op string, t *table[T], obj *T) (Handle, error) {
	h, ok := t.create(obj)
	if !ok {
		return 0, c.fail(op, ErrOutOfHandles)
	}
	return h, nil
}

// get returns nil for handle 0 and for deleted handles, which is how
// dangling bindings resolve to "nothing bound".
func (t *table[T]) get(h Handle) *T {
	if h == 0 {
		return nil
	}
	return t.objs[h]
}

func (t *table[T]) remove(h Handle) (*T, bool) {
	obj, ok := t.objs[h]
	if !ok || h == 0 {
		return nil, false
	}
	delete(t.objs, h)
	return obj, true
}

func (t *table[T]) len() int {
	return len(t.objs)
}

func (t *table[T]) clear() {
	clear(t.objs)
}
