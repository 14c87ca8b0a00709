package audio

import (
	"context"
	"testing"
	"time"
)

func TestNewSource(t *testing.T) {
	if testing.Short() {
		t.Skip("requires a capture device")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	out, errc := NewSource(ctx, &Config{
		BlockSize: 256, Channels: 1, SampleRate: 44100,
	})
	n := 0

	go func() {
		for {
			select {
			case in := <-out:
				if in == nil {
					return
				}
				if len(in) != 2*256 {
					t.Error("expected 512-byte frames, got", len(in))
					return
				}
			case err := <-errc:
				t.Error(err)
				return
			}
			n++
		}
	}()

	<-ctx.Done()

	if n < 10 {
		t.Fatal("expected at least 10 reads from source")
	}
}
