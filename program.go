package softgl

// ShaderStage identifies the pipeline stage a shader object runs in.
type ShaderStage uint8

const (
	// VertexStage shades one vertex at a time.
	VertexStage ShaderStage = iota + 1

	// FragmentStage shades one covered pixel at a time.
	FragmentStage
)

// String returns a string representation of the stage.
func (s ShaderStage) String() string {
	switch s {
	case VertexStage:
		return "Vertex"
	case FragmentStage:
		return "Fragment"
	default:
		return "Unknown"
	}
}

// VertexShader computes the clip position and varyings of a vertex.
type VertexShader interface {
	ShadeVertex(in *VertexInput, out *VertexOutput)
}

// FragmentShader computes the color outputs of a fragment.
type FragmentShader interface {
	ShadeFragment(frag *Fragment, out *FragmentOutput)
}

// Shader is a complete programmable stage pair. Implementations run on
// the goroutine that issues the draw and must not call back into the
// Context.
type Shader interface {
	VertexShader
	FragmentShader
}

// VertexFunc adapts a function to VertexShader.
type VertexFunc func(in *VertexInput, out *VertexOutput)

// ShadeVertex calls f(in, out).
func (f VertexFunc) ShadeVertex(in *VertexInput, out *VertexOutput) { f(in, out) }

// FragmentFunc adapts a function to FragmentShader.
type FragmentFunc func(frag *Fragment, out *FragmentOutput)

// ShadeFragment calls f(frag, out).
func (f FragmentFunc) ShadeFragment(frag *Fragment, out *FragmentOutput) { f(frag, out) }

// ShaderFuncs combines two functions into a Shader.
//
// Example:
//
//	prog, _ := ctx.CreateProgram()
//	_ = ctx.ProgramShader(prog, softgl.ShaderFuncs{
//	    Vertex: func(in *softgl.VertexInput, out *softgl.VertexOutput) {
//	        out.Position = in.Attrib(0)
//	    },
//	    Fragment: func(_ *softgl.Fragment, out *softgl.FragmentOutput) {
//	        out.Color(mgl32.Vec4{1, 0, 0, 1})
//	    },
//	})
type ShaderFuncs struct {
	Vertex   VertexFunc
	Fragment FragmentFunc
}

// ShadeVertex calls s.Vertex.
func (s ShaderFuncs) ShadeVertex(in *VertexInput, out *VertexOutput) { s.Vertex(in, out) }

// ShadeFragment calls s.Fragment.
func (s ShaderFuncs) ShadeFragment(frag *Fragment, out *FragmentOutput) { s.Fragment(frag, out) }

// missingVertex reports whether v has no function to call, including a
// nil VertexFunc held in the interface.
func missingVertex(v VertexShader) bool {
	switch f := v.(type) {
	case nil:
		return true
	case VertexFunc:
		return f == nil
	case ShaderFuncs:
		return f.Vertex == nil
	case *ShaderFuncs:
		return f == nil || f.Vertex == nil
	}
	return false
}

func missingFragment(v FragmentShader) bool {
	switch f := v.(type) {
	case nil:
		return true
	case FragmentFunc:
		return f == nil
	case ShaderFuncs:
		return f.Fragment == nil
	case *ShaderFuncs:
		return f == nil || f.Fragment == nil
	}
	return false
}

// linkedShader pairs the callables captured at link time.
type linkedShader struct {
	VertexShader
	FragmentShader
}

type shaderObject struct {
	stage    ShaderStage
	vertex   VertexShader
	fragment FragmentShader
	compiled bool
}

type program struct {
	attached [2]Handle // vertex, fragment
	shader   Shader
	uniforms uniformTable
}

// CreateShader returns a new shader object for a stage.
func (c *Context) CreateShader(stage ShaderStage) (Handle, error) {
	if err := c.live("CreateShader"); err != nil {
		return 0, err
	}
	switch stage {
	case VertexStage, FragmentStage:
	default:
		return 0, c.fail("CreateShader", ErrInvalidEnum, "stage", stage)
	}
	return newHandle(c, "CreateShader", &c.shaders, &shaderObject{stage: stage})
}

// DeleteShader releases a shader object. Programs already linked with it
// keep working.
func (c *Context) DeleteShader(h Handle) error {
	if err := c.live("DeleteShader"); err != nil {
		return err
	}
	if _, ok := c.shaders.remove(h); !ok {
		return c.fail("DeleteShader", ErrInvalidHandle, "handle", h)
	}
	return nil
}

// ShaderVertexFunc sets the callable of a vertex shader object. It plays
// the role of shader source: the object must be compiled again.
func (c *Context) ShaderVertexFunc(h Handle, fn VertexShader) error {
	if err := c.live("ShaderVertexFunc"); err != nil {
		return err
	}
	s := c.shaders.get(h)
	if s == nil {
		return c.fail("ShaderVertexFunc", ErrInvalidHandle, "handle", h)
	}
	if s.stage != VertexStage {
		return c.fail("ShaderVertexFunc", ErrShaderStage, "stage", s.stage)
	}
	s.vertex, s.compiled = fn, false
	return nil
}

// ShaderFragmentFunc sets the callable of a fragment shader object.
func (c *Context) ShaderFragmentFunc(h Handle, fn FragmentShader) error {
	if err := c.live("ShaderFragmentFunc"); err != nil {
		return err
	}
	s := c.shaders.get(h)
	if s == nil {
		return c.fail("ShaderFragmentFunc", ErrInvalidHandle, "handle", h)
	}
	if s.stage != FragmentStage {
		return c.fail("ShaderFragmentFunc", ErrShaderStage, "stage", s.stage)
	}
	s.fragment, s.compiled = fn, false
	return nil
}

// CompileShader validates that a shader object has a callable.
func (c *Context) CompileShader(h Handle) error {
	if err := c.live("CompileShader"); err != nil {
		return err
	}
	s := c.shaders.get(h)
	if s == nil {
		return c.fail("CompileShader", ErrInvalidHandle, "handle", h)
	}
	if (s.stage == VertexStage && missingVertex(s.vertex)) || (s.stage == FragmentStage && missingFragment(s.fragment)) {
		return c.fail("CompileShader", ErrShaderNotCompiled, "handle", h, "stage", s.stage)
	}
	s.compiled = true
	return nil
}

// CreateProgram returns a new, unlinked program.
func (c *Context) CreateProgram() (Handle, error) {
	if err := c.live("CreateProgram"); err != nil {
		return 0, err
	}
	return newHandle(c, "CreateProgram", &c.programs, &program{uniforms: newUniformTable()})
}

// DeleteProgram releases a program. If it is in use the binding dangles
// and draws fail with ErrNoProgram.
func (c *Context) DeleteProgram(h Handle) error {
	if err := c.live("DeleteProgram"); err != nil {
		return err
	}
	if _, ok := c.programs.remove(h); !ok {
		return c.fail("DeleteProgram", ErrInvalidHandle, "handle", h)
	}
	return nil
}

// AttachShader attaches a shader object to the program slot of its stage,
// replacing any shader attached there.
func (c *Context) AttachShader(prog, shader Handle) error {
	if err := c.live("AttachShader"); err != nil {
		return err
	}
	p := c.programs.get(prog)
	if p == nil {
		return c.fail("AttachShader", ErrInvalidHandle, "program", prog)
	}
	s := c.shaders.get(shader)
	if s == nil {
		return c.fail("AttachShader", ErrInvalidHandle, "shader", shader)
	}
	p.attached[s.stage-VertexStage] = shader
	return nil
}

// LinkProgram captures the callables of the attached shaders. Both stages
// must be attached and compiled.
func (c *Context) LinkProgram(prog Handle) error {
	if err := c.live("LinkProgram"); err != nil {
		return err
	}
	p := c.programs.get(prog)
	if p == nil {
		return c.fail("LinkProgram", ErrInvalidHandle, "program", prog)
	}
	vs := c.shaders.get(p.attached[0])
	fs := c.shaders.get(p.attached[1])
	if vs == nil || fs == nil || !vs.compiled || !fs.compiled {
		return c.fail("LinkProgram", ErrShaderNotCompiled, "program", prog)
	}
	p.shader = linkedShader{VertexShader: vs.vertex, FragmentShader: fs.fragment}
	return nil
}

// ProgramShader links a program directly from a Shader, bypassing shader
// objects.
func (c *Context) ProgramShader(prog Handle, s Shader) error {
	if err := c.live("ProgramShader"); err != nil {
		return err
	}
	p := c.programs.get(prog)
	if p == nil {
		return c.fail("ProgramShader", ErrInvalidHandle, "program", prog)
	}
	if missingVertex(s) || missingFragment(s) {
		return c.fail("ProgramShader", ErrShaderNotCompiled, "program", prog)
	}
	p.shader = s
	return nil
}

// UseProgram makes a linked program current, or clears it with 0.
func (c *Context) UseProgram(h Handle) error {
	if err := c.live("UseProgram"); err != nil {
		return err
	}
	if h != 0 {
		p := c.programs.get(h)
		if p == nil {
			return c.fail("UseProgram", ErrInvalidHandle, "program", h)
		}
		if p.shader == nil {
			return c.fail("UseProgram", ErrProgramNotLinked, "program", h)
		}
	}
	c.program = h
	return nil
}

// currentProgram resolves the program in use. A dangling binding reads as
// no program.
func (c *Context) currentProgram() *program {
	return c.programs.get(c.program)
}
