package audio

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// DefaultGain scales the decoded 8-bit amplitude into a usable height
// multiplier.
const DefaultGain = 0.02

// Decoder converts raw PCM16 capture frames into an amplitude matrix whose
// shape matches the terrain grid. The decode is deliberately lossy: only the
// low byte of each 16-bit sample is kept, reinterpreted as a signed 8-bit
// value. Decoding the full 16 bits would change the visual response curve.
type Decoder struct {
	// Gain is applied to every decoded sample. It may be retuned between
	// frames.
	Gain float64

	rows, cols int
}

// NewDecoder creates a Decoder producing rows x cols matrices.
func NewDecoder(rows, cols int, gain float64) *Decoder {
	return &Decoder{Gain: gain, rows: rows, cols: cols}
}

// Decode reshapes one capture frame of 2*rows*cols bytes into a rows x cols
// amplitude matrix, row-major, matching the mesh builder's vertex order.
func (d *Decoder) Decode(frame []byte) (*mat.Dense, error) {
	want := 2 * d.rows * d.cols
	if len(frame) != want {
		return nil, fmt.Errorf("bad frame size: got %d bytes, want %d", len(frame), want)
	}

	data := make([]float64, d.rows*d.cols)
	for i := range data {
		// low byte as signed 8-bit, shifted through unsigned range and back
		v := int32(int8(frame[2*i])) + 128
		v -= 128
		data[i] = float64(v) * d.Gain
	}
	return mat.NewDense(d.rows, d.cols, data), nil
}
