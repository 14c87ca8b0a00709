package terrain

import (
	"fmt"
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Default lattice bounds and spacing. The defaults give a 32x32 grid, so the
// capture block size derived from it is 1024 samples.
const (
	DefaultMin  = -20.0
	DefaultMax  = 20.0
	DefaultStep = 1.3
)

// GridConfig configures a new Grid.
type GridConfig struct {
	// Min and Max bound the lattice in both axes.
	Min, Max float64
	// Step is the lattice spacing. Must be positive.
	Step float64
	// Seed seeds the noise field. The same seed always produces the same
	// terrain for a given offset.
	Seed int64
	// Parameters for live tunables. Defaults are used when nil.
	Params *Parameters
}

// Grid owns the fixed lattice of sample coordinates and the 2D noise field
// that displaces it. It is immutable after construction.
type Grid struct {
	xpoints []float64
	ypoints []float64
	noise   opensimplex.Noise
	params  *Parameters
}

// NewGrid builds the lattice and seeds the noise field. It fails when the
// step would produce a degenerate sequence.
func NewGrid(cfg *GridConfig) (*Grid, error) {
	if cfg.Step <= 0 {
		return nil, fmt.Errorf("grid step must be positive, got %v", cfg.Step)
	}
	if cfg.Max <= cfg.Min {
		return nil, fmt.Errorf("grid bounds are empty: [%v, %v]", cfg.Min, cfg.Max)
	}

	pts := arange(cfg.Min, cfg.Max+cfg.Step, cfg.Step)
	if len(pts) < 2 {
		return nil, fmt.Errorf("grid needs at least 2 points per axis, got %d", len(pts))
	}

	params := cfg.Params
	if params == nil {
		params = DefaultParameters()
	}
	if err := params.validate(); err != nil {
		return nil, err
	}

	return &Grid{
		xpoints: pts,
		ypoints: append([]float64(nil), pts...),
		noise:   opensimplex.New(cfg.Seed),
		params:  params,
	}, nil
}

// arange generates the half-open progression [lo, hi) with the given step.
// The caller passes hi = max + step, which includes max when it is exactly
// reachable and otherwise overshoots it by less than one step.
func arange(lo, hi, step float64) []float64 {
	n := int(math.Ceil((hi - lo) / step))
	pts := make([]float64, n)
	for i := range pts {
		pts[i] = lo + float64(i)*step
	}
	return pts
}

// Size returns the number of lattice points per axis.
func (g *Grid) Size() int { return len(g.ypoints) }

// Cells returns the total number of lattice cells. The capture device's
// frames-per-buffer must equal this.
func (g *Grid) Cells() int { return len(g.xpoints) * len(g.ypoints) }

// Sample evaluates the noise field at lattice point (i, j) displaced by the
// scroll offset. The zoom divisor rescales lattice spacing into the noise
// function's natural frequency; larger zoom means broader terrain features.
func (g *Grid) Sample(i, j int, offset float64) float64 {
	zoom := g.params.Zoom
	return g.noise.Eval2(g.xpoints[i]/zoom+offset, g.ypoints[j]/zoom+offset)
}
