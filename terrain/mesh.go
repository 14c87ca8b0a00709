package terrain

import (
	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/mat"
)

// The two translucent shades of green alternated across the two triangles of
// each grid quad.
var (
	faceColorA = mgl32.Vec4{0.1, 0.3, 0, 0.35}
	faceColorB = mgl32.Vec4{0.09, 0.3, 0, 0.35}
)

// Builder generates the per-frame vertex array for a grid. The face index
// list and the face color list only depend on grid topology, which never
// changes, so both are computed once at construction and shared read-only
// across every Build call.
type Builder struct {
	grid   *Grid
	faces  [][3]uint32
	colors []mgl32.Vec4
	ones   *mat.Dense
}

// NewBuilder triangulates the grid and caches the derived face structures.
func NewBuilder(grid *Grid) *Builder {
	b := &Builder{grid: grid}
	b.triangulate()

	n := grid.Size()
	data := make([]float64, n*n)
	for i := range data {
		data[i] = 1
	}
	b.ones = mat.NewDense(n, n, data)

	return b
}

// Build computes a fresh vertex array for the given scroll offset and
// amplitude matrix. Iteration is x-outer, y-inner, so vertex (i, j) lands at
// index i*Size()+j. A nil amp means no audio has been captured yet and a
// constant unit multiplier is used. The returned faces and colors must not
// be mutated; the vertex slice is owned by the caller.
func (b *Builder) Build(offset float64, amp *mat.Dense) ([]mgl32.Vec3, [][3]uint32, []mgl32.Vec4) {
	if amp == nil {
		amp = b.ones
	}

	verts := make([]mgl32.Vec3, 0, b.grid.Cells())
	for xid, x := range b.grid.xpoints {
		for yid, y := range b.grid.ypoints {
			z := amp.At(xid, yid) * b.grid.Sample(xid, yid, offset)
			verts = append(verts, mgl32.Vec3{float32(x), float32(y), float32(z)})
		}
	}

	return verts, b.faces, b.colors
}

// Faces returns the cached face index list.
func (b *Builder) Faces() [][3]uint32 { return b.faces }

// FaceColors returns the cached per-face color list.
func (b *Builder) FaceColors() []mgl32.Vec4 { return b.colors }

// triangulate emits two triangles per grid quad, (nfaces-1)^2 quads total.
func (b *Builder) triangulate() {
	n := uint32(b.grid.Size())
	b.faces = make([][3]uint32, 0, 2*(n-1)*(n-1))
	b.colors = make([]mgl32.Vec4, 0, 2*(n-1)*(n-1))

	for yid := uint32(0); yid < n-1; yid++ {
		yoffset := yid * n
		for xid := uint32(0); xid < n-1; xid++ {
			b.faces = append(b.faces,
				[3]uint32{xid + yoffset, xid + yoffset + n, xid + yoffset + n + 1},
				[3]uint32{xid + yoffset, xid + yoffset + 1, xid + yoffset + n + 1},
			)
			b.colors = append(b.colors, faceColorA, faceColorB)
		}
	}
}
