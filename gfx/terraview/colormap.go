package terraview

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// ColorMap contains the "keypoints" of a color gradient. The position of
// each keypoint has to live in the range [0,1], sorted ascending.
type ColorMap []struct {
	Col colorful.Color
	Pos float64
}

// GetInterpolatedColorFor returns an HCL-blend between the two keypoints
// around t.
func (g ColorMap) GetInterpolatedColorFor(t float64) colorful.Color {
	for i := 0; i < len(g)-1; i++ {
		c1 := g[i]
		c2 := g[i+1]
		if c1.Pos <= t && t <= c2.Pos {
			t := (t - c1.Pos) / (c2.Pos - c1.Pos)
			return c1.Col.BlendHcl(c2.Col, t).Clamped()
		}
	}

	// At (or past) the last gradient keypoint.
	return g[len(g)-1].Col
}

func mustParseHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("mustParseHex: " + err.Error())
	}
	return c
}

// NewTerrainColorMap returns the gradient used for height shading: deep
// valley green up to a pale peak.
func NewTerrainColorMap() ColorMap {
	return ColorMap{
		{mustParseHex("#04260a"), 0.0},
		{mustParseHex("#0d4d13"), 0.35},
		{mustParseHex("#1a801a"), 0.6},
		{mustParseHex("#56b956"), 0.8},
		{mustParseHex("#d2f5c9"), 1.0},
	}
}
