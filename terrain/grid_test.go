package terrain

import "testing"

func defaultGrid(t *testing.T, seed int64) *Grid {
	t.Helper()
	g, err := NewGrid(&GridConfig{
		Min: DefaultMin, Max: DefaultMax, Step: DefaultStep, Seed: seed,
	})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestGridShape(t *testing.T) {
	g := defaultGrid(t, 0)

	if len(g.xpoints) != len(g.ypoints) {
		t.Fatal("grid must be square:", len(g.xpoints), len(g.ypoints))
	}
	if g.Size() != 32 {
		t.Fatal("default grid should have 32 points per axis, got", g.Size())
	}
	if g.Cells() != 1024 {
		t.Fatal("default grid should have 1024 cells, got", g.Cells())
	}
	if g.Cells() != g.Size()*g.Size() {
		t.Fatal("cell count must be the squared axis length")
	}
}

func TestGridBoundsIncluded(t *testing.T) {
	// the upper bound is part of the lattice when exactly reachable
	g, err := NewGrid(&GridConfig{Min: -1, Max: 1, Step: 0.5})
	if err != nil {
		t.Fatal(err)
	}
	if g.Size() != 5 {
		t.Fatal("expected 5 points, got", g.Size())
	}
	if got := g.xpoints[g.Size()-1]; got != 1 {
		t.Fatal("expected last point at the upper bound, got", got)
	}
}

func TestGridRejectsBadConfig(t *testing.T) {
	if _, err := NewGrid(&GridConfig{Min: -20, Max: 20, Step: 0}); err == nil {
		t.Fatal("expected error for zero step")
	}
	if _, err := NewGrid(&GridConfig{Min: -20, Max: 20, Step: -1.3}); err == nil {
		t.Fatal("expected error for negative step")
	}
	if _, err := NewGrid(&GridConfig{Min: 20, Max: -20, Step: 1.3}); err == nil {
		t.Fatal("expected error for inverted bounds")
	}
}

func TestGridRejectsInvalidParams(t *testing.T) {
	p := DefaultParameters()
	p.FrameTime = 0
	if _, err := NewGrid(&GridConfig{Min: -20, Max: 20, Step: 1.3, Params: p}); err == nil {
		t.Fatal("expected error for zero frameTime")
	}

	p = DefaultParameters()
	p.Zoom = 0
	if _, err := NewGrid(&GridConfig{Min: -20, Max: 20, Step: 1.3, Params: p}); err == nil {
		t.Fatal("expected error for zero zoom")
	}
}

func TestSampleDeterminism(t *testing.T) {
	a := defaultGrid(t, 7)
	b := defaultGrid(t, 7)

	for i := 0; i < a.Size(); i += 3 {
		for j := 0; j < a.Size(); j += 3 {
			va := a.Sample(i, j, -1.77)
			if vb := a.Sample(i, j, -1.77); va != vb {
				t.Fatal("repeated sample differs:", va, vb)
			}
			if vb := b.Sample(i, j, -1.77); va != vb {
				t.Fatal("same seed must produce identical fields:", va, vb)
			}
		}
	}

	c := defaultGrid(t, 8)
	same := true
	for i := 0; i < a.Size() && same; i++ {
		for j := 0; j < a.Size(); j++ {
			if a.Sample(i, j, 0.5) != c.Sample(i, j, 0.5) {
				same = false
				break
			}
		}
	}
	if same {
		t.Fatal("different seeds produced an identical field")
	}
}
