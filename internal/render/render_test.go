package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/signalsfoundry/ssc-conjunctions/internal/catalog"
	"github.com/signalsfoundry/ssc-conjunctions/model"
)

func TestNewOnBufferIsPlain(t *testing.T) {
	var buf bytes.Buffer
	if New(&buf).styled {
		t.Fatalf("renderer on a buffer should not be styled")
	}
}

func TestObservatoriesPlain(t *testing.T) {
	var buf bytes.Buffer
	err := NewPlain(&buf).Observatories([]model.ObservatoryDescription{
		{ID: "themisa", Name: "THEMIS-A", Resolution: 60,
			StartTime: time.Date(2007, 2, 18, 0, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)},
	})
	if err != nil {
		t.Fatalf("Observatories: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"ID", "themisa", "THEMIS-A", "2007-02-18", "1m0s"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("plain output contains escape sequences:\n%q", out)
	}
}

func TestEmptyListing(t *testing.T) {
	var buf bytes.Buffer
	if err := NewPlain(&buf).GroundStations(nil); err != nil {
		t.Fatalf("GroundStations: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "(none)" {
		t.Fatalf("empty listing = %q, want (none)", buf.String())
	}
}

func TestConjunctions(t *testing.T) {
	start := time.Date(2008, 1, 2, 11, 5, 0, 0, time.UTC)
	res := &model.QueryResult{
		ResultStatus: model.ResultStatus{StatusCode: model.StatusSuccess},
		Conjunctions: []model.Conjunction{{
			TimeInterval: model.TimeInterval{Start: start, End: start.Add(4 * time.Minute)},
			Satellites: []model.ConjunctionSatellite{
				{Satellite: "themisa", Descriptions: []model.SatelliteDescription{{Location: model.Vector{X: 1000}}}},
				{Satellite: "themisd", Descriptions: []model.SatelliteDescription{{Location: model.Vector{X: 1300}}}},
			},
		}},
	}
	var buf bytes.Buffer
	if err := NewPlain(&buf).Conjunctions(res); err != nil {
		t.Fatalf("Conjunctions: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"status: Success", "2008-01-02T11:05:00Z", "4m0s", "themisa,themisd", "300.0 km"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLocationsAddsGeodeticForInertial(t *testing.T) {
	ts := time.Date(2008, 1, 2, 11, 0, 0, 0, time.UTC)
	res := &model.DataResult{
		ResultStatus: model.ResultStatus{StatusCode: model.StatusSuccess},
		Data: []model.SatelliteData{{
			ID:   "themisa",
			Time: []time.Time{ts},
			Coordinates: []model.CoordinateData{
				{CoordinateSystem: model.CoordinateGeiJ2000, X: []float64{0}, Y: []float64{0}, Z: []float64{20000}},
				{CoordinateSystem: model.CoordinateGsm, X: []float64{1}, Y: []float64{2}, Z: []float64{3}},
			},
		}},
	}
	var buf bytes.Buffer
	if err := NewPlain(&buf).Locations(res); err != nil {
		t.Fatalf("Locations: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var gei, gsm string
	for _, l := range lines {
		switch {
		case strings.Contains(l, "GeiJ2000"):
			gei = l
		case strings.Contains(l, "Gsm"):
			gsm = l
		}
	}
	if !strings.Contains(gei, "90.00") {
		t.Fatalf("inertial row lacks geodetic latitude: %q", gei)
	}
	if strings.Contains(gsm, "km") {
		t.Fatalf("non-inertial row should not have altitude: %q", gsm)
	}
}

func TestNearestStationsAndFiles(t *testing.T) {
	var buf bytes.Buffer
	r := NewPlain(&buf)
	if err := r.NearestStations([]catalog.StationDistance{
		{Station: model.GroundStation{ID: "GILL", Name: "Gillam"}, DistanceKm: 72.46},
	}); err != nil {
		t.Fatalf("NearestStations: %v", err)
	}
	if err := r.Files(&model.FileResult{
		ResultStatus: model.ResultStatus{StatusCode: model.StatusSuccess},
		Files:        []model.FileDescription{{Name: "https://example.test/orbit.png", MimeType: "image/png", Length: 2048}},
	}); err != nil {
		t.Fatalf("Files: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"GILL", "72.5 km", "orbit.png", "image/png", "2048"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}
