package query

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/signalsfoundry/ssc-conjunctions/internal/sscxml"
	"github.com/signalsfoundry/ssc-conjunctions/model"
)

// File is the hand-written form of a query accepted in YAML and TOML.
type File struct {
	Description           string     `yaml:"description" toml:"description"`
	Start                 time.Time  `yaml:"start" toml:"start"`
	End                   time.Time  `yaml:"end" toml:"end"`
	Operator              string     `yaml:"operator" toml:"operator"`
	WaitForResult         *bool      `yaml:"wait_for_result" toml:"wait_for_result"`
	IncludeQueryInResult  bool       `yaml:"include_query_in_result" toml:"include_query_in_result"`
	TraceCoordinateSystem string     `yaml:"trace_coordinate_system" toml:"trace_coordinate_system"`
	FieldModel            *FieldFile `yaml:"field_model" toml:"field_model"`
	Conditions            []CondFile `yaml:"conditions" toml:"conditions"`
}

// FieldFile selects the magnetic field models. External is one of t89c, t96,
// t01 or empty.
type FieldFile struct {
	Internal          string  `yaml:"internal" toml:"internal"`
	External          string  `yaml:"external" toml:"external"`
	Kp                string  `yaml:"kp" toml:"kp"`
	SolarWindPressure float64 `yaml:"solar_wind_pressure" toml:"solar_wind_pressure"`
	DstIndex          int     `yaml:"dst_index" toml:"dst_index"`
	ByImf             float64 `yaml:"by_imf" toml:"by_imf"`
	BzImf             float64 `yaml:"bz_imf" toml:"bz_imf"`
	G1                float64 `yaml:"g1" toml:"g1"`
	G2                float64 `yaml:"g2" toml:"g2"`
	StopAltitude      int     `yaml:"stop_altitude" toml:"stop_altitude"`
}

// CondFile is one condition. Type is satellite, lead or ground_station.
type CondFile struct {
	Type             string        `yaml:"type" toml:"type"`
	Satellites       []string      `yaml:"satellites" toml:"satellites"`
	Combination      int           `yaml:"combination" toml:"combination"`
	TraceDirection   string        `yaml:"trace_direction" toml:"trace_direction"`
	Satellite        string        `yaml:"satellite" toml:"satellite"`
	TraceType        string        `yaml:"trace_type" toml:"trace_type"`
	Radius           float64       `yaml:"radius" toml:"radius"`
	DeltaLatitude    float64       `yaml:"delta_latitude" toml:"delta_latitude"`
	DeltaLongitude   float64       `yaml:"delta_longitude" toml:"delta_longitude"`
	CoordinateSystem string        `yaml:"coordinate_system" toml:"coordinate_system"`
	Stations         []StationFile `yaml:"stations" toml:"stations"`
}

// StationFile is a ground station site.
type StationFile struct {
	ID        string  `yaml:"id" toml:"id"`
	Name      string  `yaml:"name" toml:"name"`
	Latitude  float64 `yaml:"latitude" toml:"latitude"`
	Longitude float64 `yaml:"longitude" toml:"longitude"`
}

// Load reads a query from path, choosing the format by extension, and
// validates it.
func Load(path string) (*model.QueryRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	req, err := Parse(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return req, nil
}

// Parse decodes data in the format named by ext (".yaml", ".yml", ".toml" or
// ".xml") and validates the result.
func Parse(ext string, data []byte) (*model.QueryRequest, error) {
	var req *model.QueryRequest
	switch strings.ToLower(ext) {
	case ".xml":
		req = &model.QueryRequest{}
		if err := sscxml.Unmarshal(data, req); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		var f File
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		r, err := f.Request()
		if err != nil {
			return nil, err
		}
		req = r
	case ".toml":
		var f File
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("decode toml: unknown keys %v", undecoded)
		}
		r, err := f.Request()
		if err != nil {
			return nil, err
		}
		req = r
	default:
		return nil, fmt.Errorf("unsupported query file extension %q", ext)
	}
	if err := Validate(req); err != nil {
		return nil, err
	}
	return req, nil
}

// Request converts f into a QueryRequest without validating it.
func (f *File) Request() (*model.QueryRequest, error) {
	b := NewBuilder().Description(f.Description).Interval(f.Start, f.End)
	if f.WaitForResult != nil {
		b.WaitForResult(*f.WaitForResult)
	}
	if f.Operator != "" {
		b.Operator(model.ConditionOperator(canonical(f.Operator, "All", "Any")))
	}
	results := model.ResultOptions{
		IncludeQueryInResult: f.IncludeQueryInResult,
		QueryResultType:      model.ResultTypeXML,
	}
	if f.TraceCoordinateSystem != "" {
		results.TraceCoordinateSystem = model.TraceCoordinateSystem(canonical(f.TraceCoordinateSystem, "Geo", "Gm"))
	}
	b.Results(results)

	if fm := f.FieldModel; fm != nil {
		internal := model.InternalFieldIGRF
		if fm.Internal != "" {
			internal = model.InternalFieldModel(canonical(fm.Internal, "IGRF", "SimpleDipole"))
		}
		var ext model.ExternalFieldModel
		switch strings.ToLower(fm.External) {
		case "":
		case "t89c":
			kp := model.Kp3_3_3
			if fm.Kp != "" {
				kp = model.Tsyganenko89cKp(strings.ToUpper(fm.Kp))
			}
			ext = &model.Tsyganenko89cModel{KeyParameterValues: kp}
		case "t96":
			ext = &model.Tsyganenko96Model{SolarWindPressure: fm.SolarWindPressure, DstIndex: fm.DstIndex, ByImf: fm.ByImf, BzImf: fm.BzImf}
		case "t01":
			ext = &model.Tsyganenko01Model{SolarWindPressure: fm.SolarWindPressure, DstIndex: fm.DstIndex, ByImf: fm.ByImf, BzImf: fm.BzImf, G1: fm.G1, G2: fm.G2}
		default:
			return nil, fmt.Errorf("%w: unknown external field model %q", ErrInvalidQuery, fm.External)
		}
		b.FieldModel(internal, ext, fm.StopAltitude)
	}

	for i, c := range f.Conditions {
		dir := model.TraceSameHemisphere
		if c.TraceDirection != "" {
			dir = model.FieldTraceDirection(canonical(c.TraceDirection,
				"SameHemisphere", "OppositeHemisphere", "NorthHemisphere", "SouthHemisphere"))
		}
		switch strings.ToLower(c.Type) {
		case "satellite":
			b.Satellites(c.Combination, dir, c.Satellites...)
		case "lead":
			trace := model.TraceTypeBField
			if c.TraceType != "" {
				trace = model.TraceType(canonical(c.TraceType, "BField", "Radial"))
			}
			b.Lead(model.Satellite{ID: c.Satellite, BFieldTraceDirection: dir}, c.area(), trace)
		case "ground_station", "groundstation":
			cs := model.TraceCoordinateGeo
			if c.CoordinateSystem != "" {
				cs = model.TraceCoordinateSystem(canonical(c.CoordinateSystem, "Geo", "Gm"))
			}
			sites := make([]model.GroundStationSite, 0, len(c.Stations))
			for _, s := range c.Stations {
				sites = append(sites, model.GroundStationSite{
					ID:       s.ID,
					Name:     s.Name,
					Location: model.GeoLocation{Latitude: s.Latitude, Longitude: s.Longitude},
				})
			}
			b.GroundStations(cs, c.area(), sites...)
		default:
			return nil, fmt.Errorf("%w: condition %d has unknown type %q", ErrInvalidQuery, i, c.Type)
		}
	}
	return b.Request(), nil
}

func (c CondFile) area() model.ConjunctionArea {
	if c.DeltaLatitude != 0 || c.DeltaLongitude != 0 {
		return &model.BoxConjunctionArea{DeltaLatitude: c.DeltaLatitude, DeltaLongitude: c.DeltaLongitude}
	}
	if c.Radius != 0 {
		return &model.DistanceConjunctionArea{Radius: c.Radius}
	}
	return nil
}

// canonical maps s case-insensitively onto one of the schema spellings,
// returning s unchanged when none match so validation can report it.
func canonical(s string, options ...string) string {
	for _, o := range options {
		if strings.EqualFold(s, o) {
			return o
		}
	}
	return s
}
