package terrain

import "testing"

func TestTriangulation(t *testing.T) {
	g := defaultGrid(t, 0)
	b := NewBuilder(g)

	n := g.Size()
	want := 2 * (n - 1) * (n - 1)
	if len(b.Faces()) != want {
		t.Fatal("expected", want, "faces, got", len(b.Faces()))
	}
	if len(b.FaceColors()) != len(b.Faces()) {
		t.Fatal("color list must match face list length")
	}

	cells := uint32(g.Cells())
	for fi, f := range b.Faces() {
		if f[0] == f[1] || f[1] == f[2] || f[0] == f[2] {
			t.Fatal("face", fi, "has repeated vertices:", f)
		}
		for _, idx := range f {
			if idx >= cells {
				t.Fatal("face", fi, "references vertex", idx, "outside grid")
			}
		}
	}
}

func TestBuildBootstrap(t *testing.T) {
	g := defaultGrid(t, 3)
	b := NewBuilder(g)

	verts, _, _ := b.Build(0.25, nil)
	if len(verts) != g.Cells() {
		t.Fatal("expected one vertex per cell, got", len(verts))
	}

	n := g.Size()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := verts[i*n+j]
			if v.X() != float32(g.xpoints[i]) || v.Y() != float32(g.ypoints[j]) {
				t.Fatal("vertex", i, j, "not at its lattice coordinate:", v)
			}
			// unit amplitude: z is the bare noise sample
			if want := float32(g.Sample(i, j, 0.25)); v.Z() != want {
				t.Fatal("vertex", i, j, "expected z", want, "got", v.Z())
			}
		}
	}
}

func TestBuildCacheStability(t *testing.T) {
	g := defaultGrid(t, 0)
	b := NewBuilder(g)

	v1, f1, c1 := b.Build(0, nil)
	v2, f2, c2 := b.Build(-0.059, nil)

	if &f1[0] != &f2[0] {
		t.Fatal("face list must be shared across builds")
	}
	if &c1[0] != &c2[0] {
		t.Fatal("color list must be shared across builds")
	}
	if &v1[0] == &v2[0] {
		t.Fatal("vertex arrays must be fresh per build")
	}

	changed := false
	for i := range v1 {
		if v1[i].X() != v2[i].X() || v1[i].Y() != v2[i].Y() {
			t.Fatal("x/y coordinates must not change across builds")
		}
		if v1[i].Z() != v2[i].Z() {
			changed = true
		}
	}
	if !changed {
		t.Fatal("expected z heights to move with the offset")
	}
}
