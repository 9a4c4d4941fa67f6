package softgl

import "errors"

// Errors returned by Context methods. Every one of them reports a bug in
// the calling code; they are wrapped with the failing operation and can
// be matched with errors.Is.
var (
	// ErrContextClosed is returned by every method after Close.
	ErrContextClosed = errors.New("softgl: context closed")

	// ErrInvalidHandle is returned for handles that name no live object
	// of the expected kind.
	ErrInvalidHandle = errors.New("softgl: invalid handle")

	// ErrOutOfHandles is returned when every handle of an object kind has
	// been issued.
	ErrOutOfHandles = errors.New("softgl: out of handles")

	// ErrInvalidEnum is returned for an unknown enumerant.
	ErrInvalidEnum = errors.New("softgl: invalid enum")

	// ErrInvalidValue is returned for an out-of-range numeric argument.
	ErrInvalidValue = errors.New("softgl: invalid value")

	// ErrNoBuffer is returned when an operation needs a buffer bound to a
	// target and none is.
	ErrNoBuffer = errors.New("softgl: no buffer bound")

	// ErrNoVertexArray is returned when an operation needs a bound vertex
	// array and none is.
	ErrNoVertexArray = errors.New("softgl: no vertex array bound")

	// ErrNoTexture is returned when no texture is bound to the addressed
	// unit and dimension.
	ErrNoTexture = errors.New("softgl: no texture bound")

	// ErrNoProgram is returned when drawing or setting uniforms without a
	// program in use.
	ErrNoProgram = errors.New("softgl: no program in use")

	// ErrProgramNotLinked is returned when using a program that has not
	// been linked successfully.
	ErrProgramNotLinked = errors.New("softgl: program not linked")

	// ErrShaderStage is returned when a shader callable does not match the
	// shader object's stage.
	ErrShaderStage = errors.New("softgl: shader stage mismatch")

	// ErrShaderNotCompiled is returned when linking with a shader that has
	// no compiled callable.
	ErrShaderNotCompiled = errors.New("softgl: shader not compiled")

	// ErrTargetMismatch is returned when binding a texture to a dimension
	// other than the one it was first bound to.
	ErrTargetMismatch = errors.New("softgl: texture target mismatch")

	// ErrEmptyIndexBuffer is returned by DrawElements when the element
	// buffer is missing or empty.
	ErrEmptyIndexBuffer = errors.New("softgl: empty index buffer")

	// ErrIndexOutOfRange is returned when an index read crosses the end of
	// the element buffer.
	ErrIndexOutOfRange = errors.New("softgl: index out of range")

	// ErrUnsupportedPrimitive is returned for topologies other than
	// triangle lists.
	ErrUnsupportedPrimitive = errors.New("softgl: unsupported primitive topology")

	// ErrFramebufferIncomplete is returned when the bound framebuffer
	// cannot be rendered to.
	ErrFramebufferIncomplete = errors.New("softgl: framebuffer incomplete")

	// ErrDefaultFramebuffer is returned when attaching textures to the
	// default framebuffer.
	ErrDefaultFramebuffer = errors.New("softgl: operation not valid on the default framebuffer")

	// ErrAttributeType is returned when an integer fetch targets an
	// attribute not declared as integer.
	ErrAttributeType = errors.New("softgl: attribute is not an integer attribute")

	// ErrAttributeRange is returned when an attribute read crosses the end
	// of its buffer.
	ErrAttributeRange = errors.New("softgl: attribute read out of range")

	// ErrUniformTypeMismatch is returned when a uniform is set or read with
	// a type other than the one it was declared with.
	ErrUniformTypeMismatch = errors.New("softgl: uniform type mismatch")

	// ErrUniformIndex is returned for an array index past the uniform's
	// element count.
	ErrUniformIndex = errors.New("softgl: uniform index out of range")

	// ErrUnknownUniform is returned when reading a uniform that was never
	// set.
	ErrUnknownUniform = errors.New("softgl: unknown uniform")

	// ErrVaryingMismatch is returned when a vertex shader writes a varying
	// with a different size or interpolation than an earlier vertex did.
	ErrVaryingMismatch = errors.New("softgl: varying redeclared")

	// ErrUnknownVarying is returned when a fragment shader reads a varying
	// the vertex shader never wrote.
	ErrUnknownVarying = errors.New("softgl: unknown varying")
)
