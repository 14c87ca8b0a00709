package audio

import (
	"bytes"
	"log"
	"text/template"

	"github.com/gordonklaus/portaudio"
)

var deviceTmpl = template.Must(template.New("").Parse(
	`{{. | len}} host APIs: {{range .}}
	Name:                  {{.Name}}
	{{if .DefaultInputDevice}}Default input device:  {{.DefaultInputDevice.Name}}{{end}}
	Devices: {{range .Devices}}
		Name:               {{.Name}}
		MaxInputChannels:   {{.MaxInputChannels}}
		DefaultLowInputLatency: {{.DefaultLowInputLatency}}
		DefaultSampleRate:  {{.DefaultSampleRate}}
	{{end}}
{{end}}`,
))

// PrintDevices prints the capture-relevant properties of every host device
// using deviceTmpl. portaudio must already be initialized.
func PrintDevices() {
	hs, err := portaudio.HostApis()
	if err != nil {
		panic(err)
	}
	buf := bytes.NewBuffer([]byte{})
	err = deviceTmpl.Execute(buf, hs)
	if err != nil {
		panic(err)
	}
	log.Println(buf.String())
}
