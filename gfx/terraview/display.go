// Package terraview renders terrain meshes into an OpenGL window. It
// implements the renderer side of the visualization: the mesh arrives as a
// vertex array plus face/color index lists and is expanded into a flat
// triangle soup so each face keeps its own color.
package terraview

import (
	"math"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/peragwin/terravox/gfx"
)

const (
	vertexShaderSource = `
	#version 410
	uniform mat4 proj;
	uniform mat4 view;
	in vec3  vertPos;
	in vec4  vertColor;
	out vec4 fragColor;
	void main() {
		fragColor = vertColor;
		gl_Position = proj * view * vec4(vertPos, 1.0);
	}`

	fragmentShaderSource = `
	#version 410
	uniform vec4  edgeColor;
	uniform float edgeMix;
	in vec4  fragColor;
	out vec4 outColor;
	void main() {
		outColor = mix(fragColor, edgeColor, edgeMix);
	}`
)

// shadeRange bounds |z| for height shading: max amplitude is 128*0.02 and
// the noise field stays within [-1, 1].
const shadeRange = 2.56

// Config is a configuration for creating a new Display.
type Config struct {
	Width  int
	Height int
	Title  string

	// Camera placement, looking at the origin with +Z up.
	Distance  float64
	Elevation float64 // degrees above the horizon

	// Edges draws a wireframe overlay on top of the translucent faces.
	Edges bool
	// Shade replaces the supplied face colors with a height gradient.
	Shade bool
}

// Display is an OpenGL terrain mesh display.
type Display struct {
	cfg  *Config
	gfx  *gfx.Context
	mesh *gfx.Mesh
	cmap ColorMap

	mu     sync.Mutex
	verts  []mgl32.Vec3
	faces  [][3]uint32
	colors []mgl32.Vec4
	dirty  bool

	positions []float32
	colorBuf  []float32

	camInit bool

	Done chan struct{}
}

// New creates a Display and starts its event loop. The loop owns the GL
// context; Done is closed when the window closes.
func New(done chan struct{}, cfg *Config) (*Display, error) {
	g, err := gfx.NewContext(done, &gfx.WindowConfig{
		Width: cfg.Width, Height: cfg.Height, Title: cfg.Title,
	}, []*gfx.ShaderConfig{
		{
			Typ:            gfx.VertexShaderType,
			Source:         vertexShaderSource,
			AttributeNames: []string{"vertPos", "vertColor"},
			UniformNames:   []string{"proj", "view"},
		},
		{
			Typ:          gfx.FragmentShaderType,
			Source:       fragmentShaderSource,
			UniformNames: []string{"edgeColor", "edgeMix"},
		},
	})
	if err != nil {
		return nil, err
	}

	if cfg.Distance == 0 {
		cfg.Distance = 35
	}
	if cfg.Elevation == 0 {
		cfg.Elevation = 15
	}

	d := &Display{
		cfg:  cfg,
		gfx:  g,
		cmap: NewTerrainColorMap(),
		Done: done,
	}

	go func() {
		defer g.Terminate()
		defer close(done)

		g.EventLoop(func(c *gfx.Context) {
			d.render(c)
		})
	}()

	return d, nil
}

// SetMesh hands a completed frame to the display. Safe to call from the
// driver goroutine; the upload happens on the render thread.
func (d *Display) SetMesh(verts []mgl32.Vec3, faces [][3]uint32, colors []mgl32.Vec4) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.verts = verts
	d.faces = faces
	d.colors = colors
	d.dirty = true
}

func (d *Display) render(ctx *gfx.Context) {
	if !d.camInit {
		d.setCamera(ctx)
		d.camInit = true
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.dirty || d.verts == nil {
		return
	}
	d.dirty = false

	d.expand()

	if d.mesh == nil {
		mesh, err := ctx.AddMesh(&gfx.MeshConfig{
			Vertices:   d.positions,
			Colors:     d.colorBuf,
			VertAttr:   "vertPos",
			ColorAttr:  "vertColor",
			GLDrawType: gl.TRIANGLES,
			OnDraw: func(c *gfx.Context) bool {
				gl.Uniform1f(c.GetUniformLocation("edgeMix"), 0)
				return true
			},
			OnDrawEdges: func(c *gfx.Context) bool {
				if !d.cfg.Edges {
					return false
				}
				gl.Uniform1f(c.GetUniformLocation("edgeMix"), 1)
				gl.Uniform4f(c.GetUniformLocation("edgeColor"), 0.1, 0.6, 0, 1)
				return true
			},
		})
		if err != nil {
			panic(err)
		}
		d.mesh = mesh
		return
	}

	d.mesh.SetVertices(d.positions)
	if d.cfg.Shade {
		// height shading changes colors every frame
		d.mesh.SetColors(d.colorBuf)
	}
}

// expand flattens the indexed mesh into per-face vertices so the two
// triangles of a quad can carry different colors.
func (d *Display) expand() {
	nf := len(d.faces)
	if cap(d.positions) < 9*nf {
		d.positions = make([]float32, 9*nf)
		d.colorBuf = make([]float32, 12*nf)
	}
	d.positions = d.positions[:9*nf]
	d.colorBuf = d.colorBuf[:12*nf]

	for fi, face := range d.faces {
		clr := d.colors[fi]
		if d.cfg.Shade {
			clr = d.shadeColor(face)
		}
		for k, vi := range face {
			v := d.verts[vi]
			p := 9*fi + 3*k
			d.positions[p] = v.X()
			d.positions[p+1] = v.Y()
			d.positions[p+2] = v.Z()

			c := 12*fi + 4*k
			d.colorBuf[c] = clr[0]
			d.colorBuf[c+1] = clr[1]
			d.colorBuf[c+2] = clr[2]
			d.colorBuf[c+3] = clr[3]
		}
	}
}

func (d *Display) shadeColor(face [3]uint32) mgl32.Vec4 {
	z := (d.verts[face[0]].Z() + d.verts[face[1]].Z() + d.verts[face[2]].Z()) / 3
	t := (float64(z) + shadeRange) / (2 * shadeRange)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	c := d.cmap.GetInterpolatedColorFor(t)
	return mgl32.Vec4{float32(c.R), float32(c.G), float32(c.B), 0.35}
}

func (d *Display) setCamera(ctx *gfx.Context) {
	w, h := d.cfg.Width, d.cfg.Height
	proj := mgl32.Perspective(mgl32.DegToRad(60), float32(w)/float32(h), 0.1, 500)

	elev := d.cfg.Elevation * math.Pi / 180
	eye := mgl32.Vec3{
		0,
		float32(-d.cfg.Distance * math.Cos(elev)),
		float32(d.cfg.Distance * math.Sin(elev)),
	}
	view := mgl32.LookAtV(eye, mgl32.Vec3{}, mgl32.Vec3{0, 0, 1})

	gl.UniformMatrix4fv(ctx.GetUniformLocation("proj"), 1, false, &proj[0])
	gl.UniformMatrix4fv(ctx.GetUniformLocation("view"), 1, false, &view[0])
}
