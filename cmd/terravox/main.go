// Terravox renders an audio-reactive terrain: a scrolling simplex noise
// field whose peaks are scaled by live microphone amplitude.

package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/gordonklaus/portaudio"

	"github.com/peragwin/terravox/audio"
	"github.com/peragwin/terravox/gfx/terraview"
	"github.com/peragwin/terravox/terrain"
)

const sampleRate = 44100

var (
	width  = flag.Int("width", 1200, "width of window")
	height = flag.Int("height", 800, "height of window")

	gridMin  = flag.Float64("grid-min", terrain.DefaultMin, "lower lattice bound")
	gridMax  = flag.Float64("grid-max", terrain.DefaultMax, "upper lattice bound")
	gridStep = flag.Float64("grid-step", terrain.DefaultStep, "lattice spacing")

	seed       = flag.Int64("seed", 0, "noise field seed")
	randomSeed = flag.Bool("random-seed", false, "seed the noise field from the clock")

	scrollStep = flag.Float64("scroll-step", 0.059, "offset decrement per frame")
	gain       = flag.Float64("gain", audio.DefaultGain, "amplitude gain")
	zoom       = flag.Float64("zoom", 5, "noise zoom; larger means broader terrain features")
	frameTime  = flag.Int("frame-time", 120, "tick period in milliseconds")

	duplex = flag.Bool("duplex", false, "open the output side of the audio stream too")
	edges  = flag.Bool("edges", true, "draw the wireframe overlay")
	shade  = flag.Bool("shade", false, "shade faces by height instead of the fixed colors")

	listDevices = flag.Bool("list-devices", false, "list audio devices and exit")
	apiAddr     = flag.String("api-addr", ":8080", "address for the graphql parameter api")
)

func main() {
	flag.Parse()

	if *listDevices {
		portaudio.Initialize()
		defer portaudio.Terminate()
		audio.PrintDevices()
		return
	}

	params := terrain.DefaultParameters()
	params.ScrollStep = *scrollStep
	params.Gain = *gain
	params.Zoom = *zoom
	params.FrameTime = *frameTime

	nseed := *seed
	if *randomSeed {
		nseed = time.Now().UnixNano()
	}

	grid, err := terrain.NewGrid(&terrain.GridConfig{
		Min: *gridMin, Max: *gridMax, Step: *gridStep,
		Seed:   nseed,
		Params: params,
	})
	if err != nil {
		log.Fatal("error building grid:", err)
	}
	log.Printf("grid is %dx%d, capture block size %d", grid.Size(), grid.Size(), grid.Cells())

	done := make(chan struct{})
	display, err := terraview.New(done, &terraview.Config{
		Width: *width, Height: *height,
		Title: "Terravox",
		Edges: *edges,
		Shade: *shade,
	})
	if err != nil {
		log.Fatal("error creating display:", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source, errc := audio.NewSource(ctx, &audio.Config{
		BlockSize:  grid.Cells(),
		Channels:   1,
		SampleRate: sampleRate,
		Duplex:     *duplex,
	})

	// watch for capture errors
	go func() {
		err := <-errc
		log.Fatal(err)
	}()

	driver, err := terrain.NewDriver(&terrain.DriverConfig{
		Grid:      grid,
		Source:    source,
		Renderer:  display,
		BlockSize: grid.Cells(),
		Params:    params,
	})
	if err != nil {
		log.Fatal(err)
	}

	// show the bare noise field until the first buffer arrives
	driver.Prime()

	go func() {
		if err := driver.Run(ctx); err != nil && err != context.Canceled {
			log.Println("driver stopped:", err)
		}
	}()

	go func() {
		http.HandleFunc("/api/v1/graphql", func(w http.ResponseWriter, r *http.Request) {
			query := r.URL.Query().Get("query")
			res := driver.Query(query, nil)
			json.NewEncoder(w).Encode(res)
		})
		http.ListenAndServe(*apiAddr, nil)
	}()

	<-display.Done
}
