package model

import "encoding/xml"

// QueryResponse is the document returned by POST /conjunctions.
type QueryResponse struct {
	XMLName xml.Name     `xml:"http://sscweb.gsfc.nasa.gov/schema QueryResponse"`
	Result  *QueryResult `xml:"QueryResult"`
}

// ResultStatus is the status block shared by every SSC result document.
type ResultStatus struct {
	StatusCode    StatusCode `xml:"StatusCode"`
	StatusSubCode string     `xml:"StatusSubCode,omitempty"`
	StatusText    []string   `xml:"StatusText"`
}

// QueryResult lists the conjunctions the service found.
type QueryResult struct {
	ResultStatus
	Conjunctions []Conjunction `xml:"Conjunction"`
}

// Conjunction is one interval during which the query's conditions held.
type Conjunction struct {
	TimeInterval TimeInterval           `xml:"TimeInterval"`
	Satellites   []ConjunctionSatellite `xml:"SatelliteDescription"`
}

// ConjunctionSatellite describes one participating satellite.
type ConjunctionSatellite struct {
	Satellite    string                 `xml:"Satellite"`
	Descriptions []SatelliteDescription `xml:"Description"`
}

// SatelliteDescription is a satellite's position and traces at a point of
// the conjunction.
type SatelliteDescription struct {
	Location        Vector      `xml:"Location"`
	TraceDirection  string      `xml:"TraceDirection,omitempty"`
	NorthTracePoint *TracePoint `xml:"NorthBTracePoint,omitempty"`
	SouthTracePoint *TracePoint `xml:"SouthBTracePoint,omitempty"`
	// Distance is km from the lead satellite or reference, when reported.
	Distance float64 `xml:"Distance,omitempty"`
}

// Vector is a cartesian position in km.
type Vector struct {
	X float64 `xml:"X"`
	Y float64 `xml:"Y"`
	Z float64 `xml:"Z"`
}

// TracePoint is the footpoint of a field line trace.
type TracePoint struct {
	Latitude  float64 `xml:"Latitude"`
	Longitude float64 `xml:"Longitude"`
	ArcLength float64 `xml:"ArcLength,omitempty"`
}

// Footpoint returns the north trace point when present, else the south one.
func (d SatelliteDescription) Footpoint() *TracePoint {
	if d.NorthTracePoint != nil {
		return d.NorthTracePoint
	}
	return d.SouthTracePoint
}
