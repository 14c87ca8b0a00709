package audio

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// Config represents a config that is used to open a new Source.
type Config struct {
	// BlockSize is the number of int16 samples captured per frame. Each
	// emitted frame is 2*BlockSize bytes of little-endian PCM.
	BlockSize int
	// Channels is the number of input channels
	Channels int
	// SampleRate is the sample rate (Fs).
	SampleRate float64
	// Duplex also opens the output side of the stream. Nothing is played
	// back; the output buffer is fed silence to keep the stream serviced.
	Duplex bool
}

// NewSource initializes a new streaming source with portaudio and returns a
// channel on which to receive raw PCM16 frames. The internal read blocks
// until the device has filled a whole buffer, so the channel delivers at most
// one frame per BlockSize/SampleRate seconds.
func NewSource(ctx context.Context, cfg *Config) (<-chan []byte, <-chan error) {
	out := make(chan []byte)
	errc := make(chan error, 1)
	done := ctx.Done()

	go func() {
		defer close(out)

		portaudio.Initialize()
		defer portaudio.Terminate()

		in := make([]int16, cfg.BlockSize)

		var (
			stream  *portaudio.Stream
			silence []int16
			err     error
		)
		if cfg.Duplex {
			silence = make([]int16, cfg.BlockSize)
			stream, err = portaudio.OpenDefaultStream(
				cfg.Channels, cfg.Channels, cfg.SampleRate, cfg.BlockSize, in, silence)
		} else {
			stream, err = portaudio.OpenDefaultStream(
				cfg.Channels, 0, cfg.SampleRate, cfg.BlockSize, in)
		}
		if err != nil {
			errc <- fmt.Errorf("error opening stream: %v", err)
			return
		}
		defer stream.Close()
		if err := stream.Start(); err != nil {
			errc <- fmt.Errorf("error starting stream: %v", err)
			return
		}

		for {
			select {
			case <-done:
				return
			default:
			}

			if err := stream.Read(); err != nil {
				errc <- fmt.Errorf("error reading from stream: %v", err)
				return
			}
			if cfg.Duplex {
				if err := stream.Write(); err != nil {
					errc <- fmt.Errorf("error writing to stream: %v", err)
					return
				}
			}

			frame := make([]byte, 2*len(in))
			for i, s := range in {
				binary.LittleEndian.PutUint16(frame[2*i:], uint16(s))
			}

			select {
			case out <- frame:
			case <-done:
				return
			}
		}
	}()

	return out, errc
}
