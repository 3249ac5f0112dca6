package model

import (
	"encoding/xml"
	"time"
)

// GraphRequest is the root document POSTed to /graphs.
type GraphRequest struct {
	XMLName      xml.Name                 `xml:"http://sscweb.gsfc.nasa.gov/schema GraphRequest"`
	TimeInterval TimeInterval             `xml:"TimeInterval"`
	BFieldModel  *BFieldModel             `xml:"BFieldModel,omitempty"`
	Satellites   []SatelliteSpecification `xml:"Satellites"`
	GraphOptions GraphOptions             `xml:"GraphOptions"`
}

func (g *GraphRequest) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var aux struct {
		XMLName      xml.Name
		TimeInterval TimeInterval             `xml:"TimeInterval"`
		BFieldModel  *BFieldModel             `xml:"BFieldModel"`
		Satellites   []SatelliteSpecification `xml:"Satellites"`
		GraphOptions *graphOptionsField       `xml:"GraphOptions"`
	}
	if err := d.DecodeElement(&aux, &start); err != nil {
		return err
	}
	*g = GraphRequest{
		XMLName:      aux.XMLName,
		TimeInterval: aux.TimeInterval,
		BFieldModel:  aux.BFieldModel,
		Satellites:   aux.Satellites,
	}
	if aux.GraphOptions != nil {
		g.GraphOptions = aux.GraphOptions.options
	}
	return nil
}

// GraphOptions selects the plot kind. The concrete kinds are
// *OrbitGraphOptions and *MapProjectionGraphOptions.
type GraphOptions interface {
	graphOptionsType() string
}

// OrbitGraphOptions requests orbit view plots.
type OrbitGraphOptions struct {
	CoordinateSystem         CoordinateSystem `xml:"CoordinateSystem"`
	Combined                 bool             `xml:"Combined"`
	XyView                   bool             `xml:"XyView"`
	XzView                   bool             `xml:"XzView"`
	YzView                   bool             `xml:"YzView"`
	XrView                   bool             `xml:"XrView"`
	SunToRight               bool             `xml:"SunToRight"`
	EvenAxesScale            bool             `xml:"EvenAxesScale"`
	ShowBowShockMagnetopause bool             `xml:"ShowBowShockMagnetopause"`
	SolarWindPressure        float64          `xml:"SolarWindPressure,omitempty"`
	ImfBz                    float64          `xml:"ImfBz"`
}

// MapProjectionGraphOptions requests a mapped footpoint plot.
type MapProjectionGraphOptions struct {
	Trace                 string                `xml:"Trace"`
	CoordinateSystem      TraceCoordinateSystem `xml:"CoordinateSystem"`
	ShowContinents        bool                  `xml:"ShowContinents"`
	Projection            string                `xml:"Projection"`
	GroundStations        []string              `xml:"GroundStations"`
	MapLimits             *MapLimits            `xml:"MapLimits,omitempty"`
	PolarMapOrientation   string                `xml:"PolarMapOrientation,omitempty"`
	LongitudeVerticalDown float64               `xml:"LongitudeVerticalDown"`
	Title                 string                `xml:"Title,omitempty"`
}

// MapLimits bounds a map projection in degrees.
type MapLimits struct {
	MinLatitude  float64 `xml:"MinLatitude"`
	MaxLatitude  float64 `xml:"MaxLatitude"`
	MinLongitude float64 `xml:"MinLongitude"`
	MaxLongitude float64 `xml:"MaxLongitude"`
}

func (*OrbitGraphOptions) graphOptionsType() string         { return "OrbitGraphOptions" }
func (*MapProjectionGraphOptions) graphOptionsType() string { return "MapProjectionGraphOptions" }

func (o OrbitGraphOptions) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	type plain OrbitGraphOptions
	return encodeTyped(e, start, o.graphOptionsType(), plain(o))
}

func (o MapProjectionGraphOptions) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	type plain MapProjectionGraphOptions
	return encodeTyped(e, start, o.graphOptionsType(), plain(o))
}

type graphOptionsField struct {
	options GraphOptions
}

func (f *graphOptionsField) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var o GraphOptions
	switch t := xsiType(start); t {
	case "OrbitGraphOptions":
		o = &OrbitGraphOptions{}
	case "MapProjectionGraphOptions":
		o = &MapProjectionGraphOptions{}
	default:
		return &UnknownTypeError{Element: start.Name.Local, Type: t}
	}
	if err := d.DecodeElement(o, &start); err != nil {
		return err
	}
	f.options = o
	return nil
}

// FileResponse is the document returned by POST /graphs.
type FileResponse struct {
	XMLName xml.Name    `xml:"http://sscweb.gsfc.nasa.gov/schema FileResponse"`
	Result  *FileResult `xml:"FileResult"`
}

// FileResult lists the generated plot files.
type FileResult struct {
	ResultStatus
	Files []FileDescription `xml:"Files"`
}

// FileDescription is one generated file; Name is its URL.
type FileDescription struct {
	Name         string    `xml:"Name"`
	MimeType     string    `xml:"MimeType,omitempty"`
	Length       int64     `xml:"Length,omitempty"`
	LastModified time.Time `xml:"LastModified,omitempty"`
}
