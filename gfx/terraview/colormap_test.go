package terraview

import "testing"

func TestColorMapEndpoints(t *testing.T) {
	cm := NewTerrainColorMap()

	lo := cm.GetInterpolatedColorFor(0)
	if lo != cm[0].Col {
		t.Fatal("expected first keypoint at t=0, got", lo)
	}
	hi := cm.GetInterpolatedColorFor(1)
	if hi != cm[len(cm)-1].Col {
		t.Fatal("expected last keypoint at t=1, got", hi)
	}
	// past the end clamps to the last keypoint
	if cm.GetInterpolatedColorFor(2) != cm[len(cm)-1].Col {
		t.Fatal("expected clamp past t=1")
	}
}

func TestColorMapInterpolates(t *testing.T) {
	cm := NewTerrainColorMap()

	mid := cm.GetInterpolatedColorFor(0.5)
	for _, kp := range cm {
		if mid == kp.Col {
			t.Fatal("mid-range color should not equal a keypoint")
		}
	}
	r, g, b := mid.RGB255()
	if r == 0 && g == 0 && b == 0 {
		t.Fatal("mid-range color should not be black")
	}
}
