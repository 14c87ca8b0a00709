package terrain

import (
	"encoding/json"
	"testing"
)

func TestGraphqlParams(t *testing.T) {
	d, _ := newTestDriver(t, make(chan []byte))

	query := `{
		params {
			scrollStep
			gain
		}
		offset
	}`
	res := d.Query(query, nil)
	if len(res.Errors) > 0 {
		t.Fatal(res.Errors)
	}

	data := struct {
		Params Parameters `json:"params"`
		Offset float64    `json:"offset"`
	}{}
	bs, _ := json.Marshal(res.Data)
	if err := json.Unmarshal(bs, &data); err != nil {
		t.Fatal(err)
	}
	if data.Params.ScrollStep != 0.059 {
		t.Fatal("expected default scrollStep, got", data.Params.ScrollStep)
	}
	if data.Params.Gain != 0.02 {
		t.Fatal("expected default gain, got", data.Params.Gain)
	}

	mut := `mutation {
		params(scrollStep: 0.1, frameTime: 60) {
			scrollStep
		}
	}`
	res = d.Query(mut, nil)
	if len(res.Errors) > 0 {
		t.Fatal(res.Errors)
	}
	if d.params.ScrollStep != 0.1 {
		t.Fatal("mutation did not update scrollStep:", d.params.ScrollStep)
	}
	if d.params.FrameTime != 60 {
		t.Fatal("mutation did not update frameTime:", d.params.FrameTime)
	}
	// untouched fields keep their values
	if d.params.Zoom != 5 {
		t.Fatal("mutation clobbered zoom:", d.params.Zoom)
	}
}

func TestGraphqlRejectsInvalidParams(t *testing.T) {
	d, _ := newTestDriver(t, make(chan []byte))

	// a zero frame time can never arm the driver's ticker
	res := d.Query(`mutation { params(frameTime: 0) { frameTime } }`, nil)
	if len(res.Errors) == 0 {
		t.Fatal("expected error for frameTime: 0")
	}
	if d.params.FrameTime != 120 {
		t.Fatal("rejected mutation must not change frameTime:", d.params.FrameTime)
	}

	res = d.Query(`mutation { params(frameTime: -40) { frameTime } }`, nil)
	if len(res.Errors) == 0 {
		t.Fatal("expected error for negative frameTime")
	}

	res = d.Query(`mutation { params(zoom: 0) { zoom } }`, nil)
	if len(res.Errors) == 0 {
		t.Fatal("expected error for zoom: 0")
	}
	if d.params.Zoom != 5 {
		t.Fatal("rejected mutation must not change zoom:", d.params.Zoom)
	}

	// one bad argument rejects the whole request
	res = d.Query(`mutation { params(scrollStep: 0.2, frameTime: 0) { scrollStep } }`, nil)
	if len(res.Errors) == 0 {
		t.Fatal("expected error for mixed valid/invalid mutation")
	}
	if d.params.ScrollStep != 0.059 {
		t.Fatal("rejected mutation must leave every field untouched:", d.params.ScrollStep)
	}
}
