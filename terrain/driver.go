package terrain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/golang/glog"
	"github.com/graphql-go/graphql"

	"github.com/peragwin/terravox/audio"
)

// ErrSourceClosed is returned by Tick and Run when the capture source
// channel has been closed.
var ErrSourceClosed = errors.New("audio source closed")

// Renderer receives each completed frame. SetMesh is called once per tick
// with a fresh vertex array and the cached face and color lists.
type Renderer interface {
	SetMesh(verts []mgl32.Vec3, faces [][3]uint32, colors []mgl32.Vec4)
}

// DriverConfig wires up a new Driver.
type DriverConfig struct {
	Grid     *Grid
	Source   <-chan []byte
	Renderer Renderer
	// BlockSize is the capture device's frames-per-buffer. It must equal
	// the grid's cell count; every per-tick reshape depends on that.
	BlockSize int
	Params    *Parameters
}

// Driver owns the scroll offset and runs the per-tick pipeline: block on one
// capture frame, decode it, rebuild the mesh, hand it to the renderer,
// advance the offset. Ticks are strictly sequential.
type Driver struct {
	grid     *Grid
	builder  *Builder
	decoder  *audio.Decoder
	params   *Parameters
	source   <-chan []byte
	renderer Renderer

	offset float64
	ticks  int

	schema graphql.Schema
}

// NewDriver validates the capture configuration against the grid before any
// tick can run. The driver and its grid read the same Parameters instance,
// so a nil DriverConfig.Params adopts the grid's and a different instance is
// rejected: with two copies, a zoom mutation through the GraphQL surface
// would never reach the noise field.
func NewDriver(cfg *DriverConfig) (*Driver, error) {
	if cfg.BlockSize != cfg.Grid.Cells() {
		return nil, fmt.Errorf("capture buffer size %d does not match grid cell count %d",
			cfg.BlockSize, cfg.Grid.Cells())
	}
	params := cfg.Params
	if params == nil {
		params = cfg.Grid.params
	}
	if params != cfg.Grid.params {
		return nil, errors.New("driver and grid must share the same Parameters instance")
	}
	if err := params.validate(); err != nil {
		return nil, err
	}

	n := cfg.Grid.Size()
	d := &Driver{
		grid:     cfg.Grid,
		builder:  NewBuilder(cfg.Grid),
		decoder:  audio.NewDecoder(n, n, params.Gain),
		params:   params,
		source:   cfg.Source,
		renderer: cfg.Renderer,
	}
	if err := d.initGraphql(); err != nil {
		return nil, err
	}
	return d, nil
}

// Prime renders the bootstrap frame before any audio has been captured. The
// unit amplitude matrix leaves the bare noise field visible.
func (d *Driver) Prime() {
	verts, faces, colors := d.builder.Build(d.offset, nil)
	d.renderer.SetMesh(verts, faces, colors)
}

// Offset reports the current scroll offset.
func (d *Driver) Offset() float64 { return d.offset }

// Tick runs one frame of the pipeline. It blocks until the source delivers a
// frame. A frame of the wrong size fails the tick without rendering or
// advancing the offset.
func (d *Driver) Tick() error {
	frame, ok := <-d.source
	if !ok || frame == nil {
		return ErrSourceClosed
	}

	d.decoder.Gain = d.params.Gain
	amp, err := d.decoder.Decode(frame)
	if err != nil {
		return err
	}

	verts, faces, colors := d.builder.Build(d.offset, amp)
	d.renderer.SetMesh(verts, faces, colors)

	d.offset -= d.params.ScrollStep
	d.ticks++
	glog.V(2).Infof("tick %d offset=%.3f", d.ticks, d.offset)
	return nil
}

// Run ticks the driver on the configured cadence until ctx is canceled or
// the source closes. Ticks never overlap: each one runs to completion on
// this goroutine before the next timer fire is serviced. The blocking frame
// read inside Tick bounds the effective frame rate by the device's
// buffer-fill rate, not just the timer period.
func (d *Driver) Run(ctx context.Context) error {
	period := time.Duration(d.params.FrameTime) * time.Millisecond
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if p := time.Duration(d.params.FrameTime) * time.Millisecond; p != period {
				period = p
				ticker.Reset(period)
			}
			if err := d.Tick(); err != nil {
				if errors.Is(err, ErrSourceClosed) {
					return err
				}
				glog.Errorf("tick failed: %v", err)
			}
		}
	}
}
