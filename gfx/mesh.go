package gfx

import (
	"errors"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Mesh holds a triangle soup with a streaming position buffer and an
// updatable color buffer. Positions are expected to change every frame;
// colors usually do not.
type Mesh struct {
	vaoID      uint32
	vbo        uint32
	cbo        uint32
	count      int32
	glDrawType uint32

	// onDraw is called before the fill pass; returning false skips the
	// mesh. onDrawEdges, when it returns true, triggers a second pass in
	// line polygon mode for wireframe overlays.
	onDraw      func(ctx *Context) bool
	onDrawEdges func(ctx *Context) bool
}

// MeshConfig represents a configuration for creating a new Mesh. Vertices
// are xyz triples and Colors rgba quads, one per vertex.
type MeshConfig struct {
	Vertices    []float32
	Colors      []float32
	VertAttr    string
	ColorAttr   string
	GLDrawType  uint32
	OnDraw      func(ctx *Context) bool
	OnDrawEdges func(ctx *Context) bool
}

// AddMesh uploads the initial buffers, records the attribute layout in a
// VAO, and attaches the mesh to the context's draw list.
func (c *Context) AddMesh(cfg *MeshConfig) (*Mesh, error) {
	if len(cfg.Vertices)%3 != 0 {
		return nil, errors.New("invalid length for vertices, must be a multiple of 3")
	}
	if len(cfg.Colors)/4 != len(cfg.Vertices)/3 {
		return nil, errors.New("need exactly one rgba color per vertex")
	}

	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(cfg.Vertices), gl.Ptr(cfg.Vertices), gl.STREAM_DRAW)

	var cbo uint32
	gl.GenBuffers(1, &cbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, cbo)
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(cfg.Colors), gl.Ptr(cfg.Colors), gl.DYNAMIC_DRAW)

	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	vattr := c.GetAttributeLocation(cfg.VertAttr)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.EnableVertexAttribArray(vattr)
	gl.VertexAttribPointer(vattr, 3, gl.FLOAT, false, 0, gl.PtrOffset(0))

	cattr := c.GetAttributeLocation(cfg.ColorAttr)
	gl.BindBuffer(gl.ARRAY_BUFFER, cbo)
	gl.EnableVertexAttribArray(cattr)
	gl.VertexAttribPointer(cattr, 4, gl.FLOAT, false, 0, gl.PtrOffset(0))

	gl.BindVertexArray(0)

	mesh := &Mesh{
		vaoID:       vao,
		vbo:         vbo,
		cbo:         cbo,
		count:       int32(len(cfg.Vertices) / 3),
		glDrawType:  cfg.GLDrawType,
		onDraw:      cfg.OnDraw,
		onDrawEdges: cfg.OnDrawEdges,
	}
	c.meshes = append(c.meshes, mesh)
	return mesh, nil
}

// SetVertices replaces the position buffer contents. The length must match
// the initial upload.
func (m *Mesh) SetVertices(verts []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, 4*len(verts), gl.Ptr(verts))
}

// SetColors replaces the color buffer contents.
func (m *Mesh) SetColors(colors []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, m.cbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, 4*len(colors), gl.Ptr(colors))
}

// Draw draws the mesh to the current frame buffer, optionally followed by a
// wireframe pass.
func (m *Mesh) Draw(ctx *Context) {
	gl.BindVertexArray(m.vaoID)
	if m.onDraw != nil {
		if !m.onDraw(ctx) {
			return
		}
	}
	gl.DrawArrays(m.glDrawType, 0, m.count)

	if m.onDrawEdges != nil && m.onDrawEdges(ctx) {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		gl.DrawArrays(m.glDrawType, 0, m.count)
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}
