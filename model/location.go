package model

import (
	"encoding/xml"
	"time"
)

// DataRequest is the root document POSTed to /locations.
type DataRequest struct {
	XMLName       xml.Name                 `xml:"http://sscweb.gsfc.nasa.gov/schema DataRequest"`
	Description   string                   `xml:"Description,omitempty"`
	TimeInterval  TimeInterval             `xml:"TimeInterval"`
	BFieldModel   *BFieldModel             `xml:"BFieldModel,omitempty"`
	Satellites    []SatelliteSpecification `xml:"Satellites"`
	OutputOptions *OutputOptions           `xml:"OutputOptions,omitempty"`
}

// SatelliteSpecification selects an observatory and its sampling.
type SatelliteSpecification struct {
	ID               string `xml:"Id"`
	ResolutionFactor int    `xml:"ResolutionFactor,omitempty"`
}

// OutputOptions selects the values returned for each satellite.
type OutputOptions struct {
	AllLocationFilters bool                `xml:"AllLocationFilters"`
	CoordinateOptions  []CoordinateOptions `xml:"CoordinateOptions"`
	MinMaxPoints       int                 `xml:"MinMaxPoints,omitempty"`
}

// CoordinateOptions requests one component in one coordinate system.
type CoordinateOptions struct {
	CoordinateSystem CoordinateSystem    `xml:"CoordinateSystem"`
	Component        CoordinateComponent `xml:"Component"`
}

// DataResponse is the document returned by POST /locations.
type DataResponse struct {
	XMLName xml.Name    `xml:"http://sscweb.gsfc.nasa.gov/schema DataResponse"`
	Result  *DataResult `xml:"DataResult"`
}

// DataResult carries per-satellite location series.
type DataResult struct {
	ResultStatus
	Data []SatelliteData `xml:"Data"`
}

// SatelliteData is the location series of one satellite.
type SatelliteData struct {
	ID          string           `xml:"Id"`
	Coordinates []CoordinateData `xml:"Coordinates"`
	Time        []time.Time      `xml:"Time"`
}

// CoordinateData holds parallel component arrays in one coordinate system.
// Positions are km.
type CoordinateData struct {
	CoordinateSystem CoordinateSystem `xml:"CoordinateSystem"`
	X                []float64        `xml:"X"`
	Y                []float64        `xml:"Y"`
	Z                []float64        `xml:"Z"`
	Latitude         []float64        `xml:"Latitude"`
	Longitude        []float64        `xml:"Longitude"`
	LocalTime        []float64        `xml:"LocalTime"`
}

// Len returns the number of cartesian samples.
func (c CoordinateData) Len() int {
	n := len(c.X)
	if len(c.Y) < n {
		n = len(c.Y)
	}
	if len(c.Z) < n {
		n = len(c.Z)
	}
	return n
}
