package gfx

import (
	"log"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.2/glfw"
)

// Context is a context for doing opengl graphics
type Context struct {
	Window  *Window
	Program *Program

	uniforms   map[string]int32
	attributes map[string]int32
	meshes     []*Mesh

	done chan struct{}
}

// NewContext creates a new opengl context with depth testing and alpha
// blending enabled for translucent geometry.
func NewContext(done chan struct{},
	windowConfig *WindowConfig, shaderConfigs []*ShaderConfig) (*Context, error) {
	window, err := NewWindow(windowConfig)
	if err != nil {
		return nil, err
	}

	if err := gl.Init(); err != nil {
		return nil, err
	}
	version := gl.GoStr(gl.GetString(gl.VERSION))
	log.Println("OpenGL version", version)

	program, err := NewProgram()
	if err != nil {
		return nil, err
	}
	for _, cfg := range shaderConfigs {
		if err := program.AttachShader(cfg); err != nil {
			return nil, err
		}
	}
	if err := program.Link(); err != nil {
		return nil, err
	}

	uniforms := make(map[string]int32)
	attributes := make(map[string]int32)
	for _, sh := range program.Shaders {
		for uname, uloc := range sh.UniformLocations {
			uniforms[uname] = uloc
		}
		for aname, aloc := range sh.AttributeLocations {
			attributes[aname] = aloc
		}
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.MULTISAMPLE)
	gl.ClearColor(0, 0, 0, 1)

	return &Context{
		Window:     window,
		Program:    program,
		uniforms:   uniforms,
		attributes: attributes,
		done:       done,
	}, nil
}

// EventLoop clears the current framebuffer and executes render in a loop
// until the underlying glfw window tells it to stop.
func (c *Context) EventLoop(render func(*Context)) {

	// GL calls must stay on one OS thread, and the context created in
	// NewWindow has to be made current on it before the first draw.
	runtime.LockOSThread()
	c.Window.GlfwWindow.MakeContextCurrent()

	for !c.Window.GlfwWindow.ShouldClose() {
		select {
		case <-c.done:
			return
		default:
		}

		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		gl.UseProgram(c.Program.ProgramID)

		render(c)

		c.Draw()

		glfw.PollEvents()
		c.Window.GlfwWindow.SwapBuffers()
	}
}

// Draw draws every mesh that's attached to the context.
func (c *Context) Draw() {
	for _, m := range c.meshes {
		m.Draw(c)
	}
}

// Terminate ends the glfw session
func (c *Context) Terminate() {
	glfw.Terminate()
}

// GetUniformLocation returns the location of a uniform within the context's
// program.
func (c *Context) GetUniformLocation(uname string) int32 {
	uloc, ok := c.uniforms[uname]
	if !ok {
		panic("unknown uniform name: " + uname)
	}
	return uloc
}

// GetAttributeLocation returns the location of an attribute within the
// context's program.
func (c *Context) GetAttributeLocation(aname string) uint32 {
	aloc, ok := c.attributes[aname]
	if !ok {
		panic("unknown attribute name: " + aname)
	}
	return uint32(aloc)
}
